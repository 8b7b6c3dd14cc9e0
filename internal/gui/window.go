// Package gui opens a raylib window that renders the swarm with textured
// sphere meshes and feeds mouse and keyboard input to the driver.
package gui

import (
	"fmt"
	"image"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/memespheres/internal/sim"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColBlast   = rl.NewColor(239, 68, 68, 255)
)

const (
	sphereRings  = 32
	sphereSlices = 32
)

type Options struct {
	Title      string
	Width      int
	Height     int
	FPS        int
	PixelRatio float64
}

// Window is a raylib surface. All methods must run on the thread that
// called Open.
type Window struct {
	driver *sim.Driver
	camera rl.Camera3D

	mesh     rl.Mesh
	plain    rl.Material
	skins    []rl.Material
	textures []rl.Texture2D

	width, height int
	ratio         float64
	fixedRatio    float64
	showHUD       bool
	onScreen      bool
}

// Open creates the window and GPU resources and attaches the window to d.
// imgs are uploaded as textures in slot order.
func Open(d *sim.Driver, imgs []image.Image, opts Options) *Window {
	if opts.Title == "" {
		opts.Title = "memespheres"
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint | rl.FlagWindowHighdpi)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(rl.KeyQ)

	w := &Window{
		driver: d,
		camera: rl.NewCamera3D(
			rl.NewVector3(0, 0, 15),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			50.0,
			rl.CameraPerspective,
		),
		mesh:       rl.GenMeshSphere(1, sphereRings, sphereSlices),
		plain:      rl.LoadMaterialDefault(),
		width:      opts.Width,
		height:     opts.Height,
		ratio:      1,
		fixedRatio: opts.PixelRatio,
		showHUD:    true,
	}
	w.upload(imgs)

	d.Resize(opts.Width, opts.Height)
	d.Attach(w)
	d.SetPixelRatio(pixelRatio(opts.PixelRatio, monitorScale))
	return w
}

// pixelRatio prefers an explicit ratio and otherwise asks the monitor.
func pixelRatio(explicit float64, monitor func() float64) float64 {
	if explicit > 0 {
		return explicit
	}
	return monitor()
}

func monitorScale() float64 { return float64(rl.GetWindowScaleDPI().X) }

func (w *Window) upload(imgs []image.Image) {
	for _, img := range imgs {
		ri := rl.NewImageFromImage(img)
		tex := rl.LoadTextureFromImage(ri)
		rl.UnloadImage(ri)
		rl.SetTextureFilter(tex, rl.FilterBilinear)

		mtl := rl.LoadMaterialDefault()
		if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
			albedo.Color = rl.White
		}
		rl.SetMaterialTexture(&mtl, rl.MapAlbedo, tex)

		w.textures = append(w.textures, tex)
		w.skins = append(w.skins, mtl)
	}
}

// Run drives the scene until the window is closed.
func (w *Window) Run() {
	for !rl.WindowShouldClose() {
		w.input()
		w.driver.Tick()
	}
}

func (w *Window) input() {
	ctrl := w.driver.Controller()

	if rl.IsWindowResized() {
		w.driver.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
		w.driver.SetPixelRatio(pixelRatio(w.fixedRatio, monitorScale))
	}

	on := rl.IsCursorOnScreen()
	if on && !w.onScreen {
		ctrl.PointerEnter()
	}
	w.onScreen = on

	if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
		p := rl.GetMousePosition()
		ctrl.PointerMove(float64(p.X), float64(p.Y))
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		ctrl.Click()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		ctrl.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		w.showHUD = !w.showHUD
	}
}

// Resize implements sim.Surface.
func (w *Window) Resize(width, height int) {
	w.width, w.height = width, height
}

// SetPixelRatio implements sim.Surface. Raylib scales the framebuffer
// itself on high-DPI monitors; the ratio sizes the HUD text.
func (w *Window) SetPixelRatio(r float64) { w.ratio = r }

// Render implements sim.Surface.
func (w *Window) Render(f *sim.Frame) {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	scene := sceneMatrix(f)
	rl.BeginMode3D(w.camera)
	for i := range f.Stars {
		s := &f.Stars[i]
		rl.DrawPoint3D(rl.Vector3Transform(vec(s.Position), scene), color(s.Color))
	}
	for i := range f.Bodies {
		b := &f.Bodies[i]
		rl.DrawMesh(w.mesh, w.material(b.Skin.Texture, b.Skin.Color), bodyMatrix(b, scene))
	}
	rl.EndMode3D()

	if w.showHUD {
		w.drawHUD(f)
	}
	rl.EndDrawing()
}

func (w *Window) material(slot int, rgb uint32) rl.Material {
	if slot >= 0 && slot < len(w.skins) {
		return w.skins[slot]
	}
	if albedo := w.plain.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = color(rgb)
	}
	return w.plain
}

func (w *Window) drawHUD(f *sim.Frame) {
	size := int32(16 * w.ratio)
	x, y := int32(16), int32(16)

	status := "running"
	if f.State.Paused {
		status = "paused"
	}
	rl.DrawText(fmt.Sprintf("memespheres  %s", status), x, y, size, ColText)
	y += size + 6
	rl.DrawText(fmt.Sprintf("bodies %d  contacts %d  fps %d", len(f.Bodies), f.Stats.Collisions, rl.GetFPS()), x, y, size, ColTextDim)
	y += size + 6

	barW := int32(160 * w.ratio)
	rl.DrawRectangleLines(x, y, barW, 6, ColTextDim)
	rl.DrawRectangle(x, y, int32(float64(barW)*f.State.ExplosionForce), 6, ColBlast)

	rl.DrawText("move push · click explode · space pause · h hud · q quit",
		x, int32(w.height)-size-16, size, ColTextDim)
}

// Close releases GPU resources and the window.
func (w *Window) Close() {
	for _, t := range w.textures {
		rl.UnloadTexture(t)
	}
	rl.UnloadMesh(&w.mesh)
	rl.CloseWindow()
}
