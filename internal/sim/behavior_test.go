package sim

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravbox/internal/body"
	"github.com/san-kum/gravbox/internal/geom"
)

var _ = Describe("Simulation", func() {
	var params Params

	BeforeEach(func() {
		params = DefaultParams()
		params.Bounds = geom.NewRect(-30, -30, 30, 30)
	})

	Describe("determinism", func() {
		It("produces bit-identical runs from identical input", func() {
			initial := Spawn(40, 12345, 1.0, 0.3, params.Bounds)

			runOnce := func() (*Result, Snapshot) {
				s, err := New(initial, params, nil)
				Expect(err).NotTo(HaveOccurred())
				res, err := s.Run(context.Background(), 300)
				Expect(err).NotTo(HaveOccurred())
				return res, s.Snapshot()
			}

			resA, snapA := runOnce()
			resB, snapB := runOnce()

			Expect(resB.Records).To(Equal(resA.Records))
			Expect(snapB.Particles).To(Equal(snapA.Particles))
			Expect(snapB.Time).To(Equal(snapA.Time))
		})

		It("produces identical results across a parallel ensemble", func() {
			initial := Spawn(25, 777, 1.0, 0.3, params.Bounds)

			ens := NewEnsemble(initial, params, "", 4)
			results, err := ens.Run(context.Background(), 200)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(4))

			for i := 1; i < len(results); i++ {
				Expect(results[i].Records).To(Equal(results[0].Records))
			}
		})
	})

	Describe("conservation", func() {
		It("conserves momentum in a closed system with exact forces", func() {
			// theta = 0 keeps pairwise forces exactly antisymmetric;
			// particles stay near the center so walls never fire.
			params.Theta = 0
			params.WallRestitution = 1

			initial := []body.Particle{
				{Pos: geom.Vec2{X: -2, Y: 0}, Vel: geom.Vec2{X: 0.3, Y: 0.1}, Mass: 2, Radius: 0.3},
				{Pos: geom.Vec2{X: 2, Y: 0}, Vel: geom.Vec2{X: -0.3, Y: -0.1}, Mass: 2, Radius: 0.3},
				{Pos: geom.Vec2{X: 0, Y: 2}, Vel: geom.Vec2{X: 0.1, Y: 0}, Mass: 1, Radius: 0.3},
				{Pos: geom.Vec2{X: 0, Y: -2}, Vel: geom.Vec2{X: -0.2, Y: 0}, Mass: 1, Radius: 0.3},
			}

			s, err := New(initial, params, nil)
			Expect(err).NotTo(HaveOccurred())

			before := s.Record()
			res, err := s.Run(context.Background(), 500)
			Expect(err).NotTo(HaveOccurred())

			last := res.Records[len(res.Records)-1]
			Expect(last.MomentumX).To(BeNumerically("~", before.MomentumX, 1e-9))
			Expect(last.MomentumY).To(BeNumerically("~", before.MomentumY, 1e-9))
		})

		It("conserves kinetic energy with elastic collisions and no gravity", func() {
			params.G = 0
			params.Restitution = 1
			params.WallRestitution = 1

			initial := []body.Particle{
				{Pos: geom.Vec2{X: -5, Y: 0.2}, Vel: geom.Vec2{X: 3, Y: 0}, Mass: 1, Radius: 0.5},
				{Pos: geom.Vec2{X: 5, Y: -0.2}, Vel: geom.Vec2{X: -3, Y: 0}, Mass: 2, Radius: 0.5},
				{Pos: geom.Vec2{X: 0, Y: 5}, Vel: geom.Vec2{X: 0, Y: -2}, Mass: 1, Radius: 0.5},
			}

			s, err := New(initial, params, nil)
			Expect(err).NotTo(HaveOccurred())

			before := s.Record().KineticEnergy
			res, err := s.Run(context.Background(), 1000)
			Expect(err).NotTo(HaveOccurred())

			for _, rec := range res.Records {
				Expect(rec.KineticEnergy).To(BeNumerically("~", before, before*1e-6))
			}
		})
	})

	Describe("head-on elastic collision", func() {
		It("swaps the velocities of equal-mass particles", func() {
			params.G = 0 // attraction off
			params.Restitution = 1
			params.MaxDt = 0.05

			initial := []body.Particle{
				{Pos: geom.Vec2{X: 0, Y: 0}, Vel: geom.Vec2{X: 1, Y: 0}, Mass: 1, Radius: 0.5},
				{Pos: geom.Vec2{X: 3, Y: 0}, Vel: geom.Vec2{X: -1, Y: 0}, Mass: 1, Radius: 0.5},
			}

			s, err := New(initial, params, nil)
			Expect(err).NotTo(HaveOccurred())

			before := s.Record()
			// Closing speed 2, gap 2: collision near t=1. Run well past it.
			res, err := s.Run(context.Background(), 400)
			Expect(err).NotTo(HaveOccurred())

			snap := s.Snapshot()
			Expect(snap.Particles[0].Vel.X).To(BeNumerically("~", -1, 1e-9))
			Expect(snap.Particles[0].Vel.Y).To(BeNumerically("~", 0, 1e-9))
			Expect(snap.Particles[1].Vel.X).To(BeNumerically("~", 1, 1e-9))
			Expect(snap.Particles[1].Vel.Y).To(BeNumerically("~", 0, 1e-9))

			last := res.Records[len(res.Records)-1]
			Expect(last.MomentumX).To(BeNumerically("~", before.MomentumX, 1e-9))
			Expect(last.KineticEnergy).To(BeNumerically("~", before.KineticEnergy, 1e-9))
		})
	})

	Describe("metrics", func() {
		It("observes every step and reports values in the result", func() {
			s, err := New(Spawn(10, 55, 1.0, 0.25, params.Bounds), params, nil)
			Expect(err).NotTo(HaveOccurred())

			m := &countingMetric{}
			s.AddMetric(m)

			res, err := s.Run(context.Background(), 50)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.steps).To(Equal(50))
			Expect(res.Metrics).To(HaveKey("steps"))
			Expect(res.Metrics["steps"]).To(Equal(50.0))
		})
	})
})

type countingMetric struct{ steps int }

func (m *countingMetric) Name() string           { return "steps" }
func (m *countingMetric) Observe(rec StepRecord) { m.steps++ }
func (m *countingMetric) Value() float64         { return float64(m.steps) }
func (m *countingMetric) Reset()                 { m.steps = 0 }
