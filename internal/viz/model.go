package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/memespheres/internal/metrics"
	"github.com/san-kum/memespheres/internal/sim"
)

const (
	panelWidth = 36
	historyLen = 120
)

type TickMsg time.Time

// Model is a Bubble Tea program that owns a terminal surface for the driver.
type Model struct {
	driver  *sim.Driver
	painter *Painter
	canvas  *Canvas
	theme   Theme
	styles  Styles

	energy  *metrics.KineticEnergy
	spread  *metrics.Spread
	history []float64
	frame   *sim.Frame

	width, height int
	ratio         float64
	panel         bool
	sized         bool
	interval      time.Duration
	lastFrame     time.Time
	fps           float64
}

// New creates the model and attaches it to d. tints holds one flat colour
// per texture slot.
func New(d *sim.Driver, tints []uint32, theme Theme, fps int) *Model {
	if fps <= 0 {
		fps = 60
	}
	m := &Model{
		driver:   d,
		painter:  NewPainter(NewCamera(), tints),
		canvas:   NewCanvas(0, 0),
		theme:    theme,
		styles:   NewStyles(theme),
		energy:   metrics.NewKineticEnergy(),
		spread:   metrics.NewSpread(d.Params().Attractor),
		history:  make([]float64, 0, historyLen),
		ratio:    1,
		panel:    true,
		interval: time.Second / time.Duration(fps),
	}
	d.Attach(m)
	return m
}

// Render implements sim.Surface.
func (m *Model) Render(f *sim.Frame) {
	m.frame = f
	m.painter.Paint(m.canvas, f)
	m.energy.Observe(f)
	m.spread.Observe(f)
	if len(m.history) == historyLen {
		copy(m.history, m.history[1:])
		m.history = m.history[:historyLen-1]
	}
	m.history = append(m.history, m.energy.Last())
}

// Resize implements sim.Surface. Sizes are in terminal cells, so calls
// before the first window size message carry pixels and are ignored.
func (m *Model) Resize(width, height int) {
	if !m.sized {
		return
	}
	if width == m.canvas.Width && height == m.canvas.Height {
		return
	}
	m.canvas = NewCanvas(width, height)
}

// SetPixelRatio implements sim.Surface. Terminal cells have a fixed dot
// density, so the ratio is only reported.
func (m *Model) SetPixelRatio(r float64) { m.ratio = r }

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		now := time.Time(msg)
		if !m.lastFrame.IsZero() {
			if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
				m.fps = 0.9*m.fps + 0.1/dt
			}
		}
		m.lastFrame = now
		m.driver.Tick()
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.MouseMsg:
		m.mouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m.key(msg)
	}
	return m, nil
}

func (m *Model) canvasCols() int {
	if m.panel {
		return max(m.width-panelWidth, 1)
	}
	return max(m.width, 1)
}

func (m *Model) layout() {
	m.sized = true
	m.driver.Resize(m.canvasCols(), max(m.height, 1))
}

func (m *Model) mouse(msg tea.MouseMsg) {
	if msg.X >= m.canvasCols() {
		return
	}
	ctrl := m.driver.Controller()
	ctrl.PointerEnter()

	x, y := float64(msg.X)+0.5, float64(msg.Y)+0.5
	switch msg.Action {
	case tea.MouseActionMotion:
		ctrl.PointerMove(x, y)
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			ctrl.Click()
		}
	}
}

func (m *Model) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ":
		m.driver.Controller().TogglePause()
	case "e":
		m.driver.Controller().Click()
	case "t":
		m.theme = m.theme.Next()
		m.styles = NewStyles(m.theme)
	case "p":
		m.panel = !m.panel
		m.layout()
	}
	return m, nil
}

func (m *Model) View() string {
	scene := m.canvas.Styled()
	if !m.panel {
		return scene
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, scene, m.sidePanel())
}

func (m *Model) sidePanel() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("memespheres") + "\n\n")

	st := m.driver.State()
	if st.Paused {
		b.WriteString(s.Paused.Render("■ paused") + "\n")
	} else {
		b.WriteString(s.Running.Render("▶ running") + "\n")
	}
	b.WriteString(s.Row("tick     ", fmt.Sprintf("%d", m.driver.Ticks())) + "\n")
	b.WriteString(s.Row("bodies   ", fmt.Sprintf("%d", m.driver.Store().Len())) + "\n")
	b.WriteString(s.Row("fps      ", fmt.Sprintf("%.0f", m.fps)) + "\n")
	b.WriteString(s.Row("ratio    ", fmt.Sprintf("%.1f", m.ratio)) + "\n\n")

	b.WriteString(s.Label.Render("explosion") + "\n")
	b.WriteString(s.Blast.Render(Bar(st.ExplosionForce, panelWidth-6)) + "\n\n")

	if m.frame != nil {
		b.WriteString(s.Row("energy   ", fmt.Sprintf("%.5f", m.energy.Last())) + "\n")
		b.WriteString(s.Row("spread   ", fmt.Sprintf("%.2f", m.spread.Last())) + "\n")
		b.WriteString(s.Row("contacts ", fmt.Sprintf("%d", m.frame.Stats.Collisions)) + "\n")
		b.WriteString(s.Row("limit    ", fmt.Sprintf("%.2f", m.frame.Stats.SpeedLimit)) + "\n\n")
	}

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(5),
			asciigraph.Width(panelWidth-14),
			asciigraph.Precision(4),
			asciigraph.Caption("kinetic energy"))
		b.WriteString(chart + "\n\n")
	}

	b.WriteString(s.Hint.Render("move push · click explode") + "\n")
	b.WriteString(s.Hint.Render("space pause · t theme · q quit"))

	return s.Panel.Width(panelWidth - 2).Render(b.String())
}

// Run starts the program on the alternate screen with full mouse tracking
// and blocks until the user quits.
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
