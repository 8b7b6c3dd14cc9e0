package interact

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/memespheres/internal/dynamo"
	"github.com/san-kum/memespheres/internal/physics"
)

func newStore(positions ...mgl64.Vec3) *dynamo.Store {
	bodies := make([]dynamo.Body, len(positions))
	for i, p := range positions {
		bodies[i] = dynamo.NewBody(p, 0.5, dynamo.ColorSkin(0x3b82f6))
	}
	s, err := dynamo.NewStore(bodies)
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("Controller", func() {
	var (
		rng   *rand.Rand
		p     physics.Params
		st    *dynamo.SimState
		store *dynamo.Store
		c     *Controller
	)

	BeforeEach(func() {
		rng = rand.New(rand.NewSource(GinkgoRandomSeed()))
		p = physics.DefaultParams()
		st = dynamo.NewSimState()
		store = newStore(
			mgl64.Vec3{14, 0, 2},
			mgl64.Vec3{15, 0, 2},
			mgl64.Vec3{-10, 0, 0},
		)
		c = New(store, st, p, rng)
		c.Resize(800, 600)
	})

	Describe("NDC", func() {
		It("maps the centre to the origin", func() {
			Expect(c.NDC(400, 300)).To(Equal(mgl64.Vec2{0, 0}))
		})

		It("flips the vertical axis", func() {
			Expect(c.NDC(0, 0)).To(Equal(mgl64.Vec2{-1, 1}))
			Expect(c.NDC(800, 600)).To(Equal(mgl64.Vec2{1, -1}))
		})

		It("ignores degenerate viewports", func() {
			c.Resize(0, 100)
			w, h := c.Viewport()
			Expect(w).To(Equal(800))
			Expect(h).To(Equal(600))
		})
	})

	Describe("PointerMove", func() {
		It("sets the tilt target with swapped axes", func() {
			c.PointerMove(800, 300)
			Expect(st.Tilt.X()).To(BeNumerically("~", 0, 1e-12))
			Expect(st.Tilt.Y()).To(BeNumerically("~", p.TiltGain, 1e-12))
		})

		It("does nothing below the speed threshold", func() {
			Expect(c.PointerMove(400, 300)).To(Equal(0))
			for _, b := range store.Bodies() {
				Expect(b.Velocity).To(Equal(mgl64.Vec3{}))
			}
		})

		It("pushes only bodies inside the interaction radius", func() {
			pushed := c.PointerMove(800, 300)
			Expect(c.PointerWorld()).To(Equal(mgl64.Vec3{15, 0, 2}))
			Expect(pushed).To(Equal(2))

			near := store.At(0)
			Expect(near.Velocity.X()).To(BeNumerically("<", 0))
			Expect(store.At(2).Velocity).To(Equal(mgl64.Vec3{}))
		})

		It("pushes a body sitting exactly on the pointer in some finite direction", func() {
			c.PointerMove(800, 300)
			b := store.At(1)
			Expect(b.IsValid()).To(BeTrue())
			Expect(b.Velocity.Len()).To(BeNumerically(">", 0))
		})

		It("kicks spin only on x and y", func() {
			c.PointerMove(800, 300)
			Expect(store.At(0).Spin.Z()).To(Equal(0.0))
		})
	})

	Describe("Click", func() {
		It("explodes at full force and speeds every body up", func() {
			for i := range store.Bodies() {
				store.At(i).Velocity = mgl64.Vec3{0.01, 0, 0}
			}
			before := make([]float64, store.Len())
			for i, b := range store.Bodies() {
				before[i] = b.Velocity.Len()
			}

			c.Click()

			Expect(st.ExplosionForce).To(Equal(1.0))
			Expect(st.Exploding).To(BeTrue())
			for i, b := range store.Bodies() {
				Expect(b.Velocity.Len()).To(BeNumerically(">", before[i]))
				Expect(b.Spin.Len()).To(BeNumerically("<=", p.ExplosionSpin*2))
			}
		})

		It("throws bodies away from the attractor", func() {
			c.Click()
			far := store.At(2)
			Expect(far.Velocity.X()).To(BeNumerically("<", 0))
		})
	})

	Describe("PointerEnter", func() {
		It("fires once", func() {
			Expect(c.PointerEnter()).To(BeTrue())
			Expect(st.Exploding).To(BeTrue())

			st.ExplosionForce = 0
			st.Exploding = false
			Expect(c.PointerEnter()).To(BeFalse())
			Expect(st.Exploding).To(BeFalse())
		})
	})

	Describe("TogglePause", func() {
		It("flips the paused flag", func() {
			Expect(c.TogglePause()).To(BeTrue())
			Expect(st.Paused).To(BeTrue())
			Expect(c.TogglePause()).To(BeFalse())
		})
	})
})
