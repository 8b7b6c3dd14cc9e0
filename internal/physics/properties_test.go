package physics

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/memespheres/internal/dynamo"
)

// shellStore scatters n bodies on a shell around the origin the way the
// landing page does, with small random drift.
func shellStore(rng *rand.Rand, n int) *dynamo.Store {
	bodies := make([]dynamo.Body, n)
	for i := range bodies {
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(2*rng.Float64() - 1)
		r := 5 + rng.Float64()*8
		pos := mgl64.Vec3{
			r * math.Sin(phi) * math.Cos(theta),
			r * math.Sin(phi) * math.Sin(theta),
			r * math.Cos(phi),
		}
		bodies[i] = dynamo.NewBody(pos, 0.3+rng.Float64()*0.7, dynamo.ColorSkin(0))
		bodies[i].Velocity = dynamo.Jitter(rng, 0.01)
		bodies[i].Spin = dynamo.Jitter(rng, 0.005)
	}
	s, err := dynamo.NewStore(bodies)
	Expect(err).NotTo(HaveOccurred())
	return s
}

// kick pushes every body outward the way an explosion does.
func kick(rng *rand.Rand, s *dynamo.Store, st *dynamo.SimState, p Params) {
	st.ExplosionForce = 1
	st.Exploding = true
	for i := range s.Bodies() {
		b := s.At(i)
		dir := dynamo.Direction(b.Position.Sub(p.Attractor), rng)
		b.Velocity = b.Velocity.Add(dir.Mul(p.ExplosionImpulseMin + rng.Float64()*(p.ExplosionImpulseMax-p.ExplosionImpulseMin)))
	}
}

var _ = Describe("Step", func() {
	var (
		rng   *rand.Rand
		p     Params
		store *dynamo.Store
		st    *dynamo.SimState
	)

	BeforeEach(func() {
		rng = rand.New(rand.NewSource(GinkgoRandomSeed()))
		p = DefaultParams()
		store = shellStore(rng, 50)
		st = dynamo.NewSimState()
	})

	It("never changes a body's radius", func() {
		radii := make([]float64, store.Len())
		for i := range radii {
			radii[i] = store.At(i).Radius()
		}

		for tick := 0; tick < 600; tick++ {
			if tick%150 == 0 {
				kick(rng, store, st, p)
			}
			Step(store, st, p)
		}

		for i := range radii {
			Expect(store.At(i).Radius()).To(Equal(radii[i]))
		}
	})

	It("keeps every speed within the limit that applied to the tick", func() {
		for tick := 0; tick < 600; tick++ {
			if tick == 10 || tick == 300 {
				kick(rng, store, st, p)
			}
			stats := Step(store, st, p)
			for i := range store.Bodies() {
				Expect(store.At(i).Velocity.Len()).To(BeNumerically("<=", stats.SpeedLimit+1e-12))
			}
		}
	})

	It("keeps the store finite", func() {
		for tick := 0; tick < 400; tick++ {
			if tick%100 == 0 {
				kick(rng, store, st, p)
			}
			Step(store, st, p)
		}
		Expect(store.Validate()).To(Succeed())
	})

	It("uses the higher limit only while exploding", func() {
		Expect(Step(store, st, p).SpeedLimit).To(Equal(p.MaxSpeed))
		kick(rng, store, st, p)
		Expect(Step(store, st, p).SpeedLimit).To(Equal(p.ExplosionSpeed))
	})
})

var _ = Describe("ResolvePair", func() {
	It("never lets an overlapping pair get closer", func() {
		rng := rand.New(rand.NewSource(GinkgoRandomSeed()))
		for trial := 0; trial < 200; trial++ {
			ra, rb := 0.3+rng.Float64()*0.7, 0.3+rng.Float64()*0.7
			minDist := (ra + rb) * DefaultCollisionPadding
			dir := dynamo.RandomUnit(rng)
			gap := minDist * (0.01 + rng.Float64()*0.98)

			a := dynamo.NewBody(mgl64.Vec3{}, ra, dynamo.ColorSkin(0))
			b := dynamo.NewBody(dir.Mul(gap), rb, dynamo.ColorSkin(0))
			a.Velocity = dynamo.Jitter(rng, 0.2)
			b.Velocity = dynamo.Jitter(rng, 0.2)

			pre := a.Position.Sub(b.Position).Len()
			Expect(ResolvePair(&a, &b, DefaultCollisionPadding)).To(BeTrue())
			post := a.Position.Sub(b.Position).Len()
			Expect(post).To(BeNumerically(">=", pre))
		}
	})

	It("skips coincident centres and stays finite", func() {
		a := dynamo.NewBody(mgl64.Vec3{2, 2, 2}, 0.5, dynamo.ColorSkin(0))
		b := dynamo.NewBody(mgl64.Vec3{2, 2, 2}, 0.8, dynamo.ColorSkin(0))
		a.Velocity = mgl64.Vec3{0.1, 0, 0}

		Expect(ResolvePair(&a, &b, DefaultCollisionPadding)).To(BeFalse())
		Expect(a.Position).To(Equal(mgl64.Vec3{2, 2, 2}))
		Expect(b.Position).To(Equal(mgl64.Vec3{2, 2, 2}))
		Expect(a.Velocity).To(Equal(mgl64.Vec3{0.1, 0, 0}))
		Expect(a.IsValid() && b.IsValid()).To(BeTrue())
	})
})

var _ = Describe("DecayExplosion", func() {
	DescribeTable("reaches exactly zero within the bound",
		func(start float64) {
			p := DefaultParams()
			st := &dynamo.SimState{ExplosionForce: start, Exploding: true}

			prev := st.ExplosionForce
			ticks := 0
			for st.ExplosionForce > 0 {
				DecayExplosion(st, p)
				ticks++
				Expect(st.ExplosionForce).To(BeNumerically("<=", prev))
				Expect(st.Exploding).To(Equal(st.ExplosionForce > 0))
				prev = st.ExplosionForce
				Expect(ticks).To(BeNumerically("<=", p.DecayBound()))
			}
			Expect(st.ExplosionForce).To(Equal(0.0))
			Expect(st.Exploding).To(BeFalse())
		},
		Entry("full force", 1.0),
		Entry("half force", 0.5),
		Entry("just above cutoff", 0.0101),
		Entry("below cutoff", 0.005),
		Entry("tiny", 1e-9),
	)
})

var _ = Describe("Params by name", func() {
	It("round-trips every tunable constant", func() {
		p := DefaultParams()
		for name, v := range p.GetParams() {
			Expect(p.SetParam(name, v*2)).To(Succeed())
			Expect(p.GetParams()[name]).To(Equal(v * 2))
		}
	})

	It("rejects unknown names", func() {
		p := DefaultParams()
		Expect(p.SetParam("gravity", 9.81)).To(MatchError(ContainSubstring("unknown param")))
	})
})
