// Package sim owns the particle set and orchestrates the per-step
// pipeline: rebuild the spatial index, accumulate forces, integrate
// with an adaptive step, resolve collisions, advance the clock.
//
// A Simulation is single-threaded: one Step completes fully before the
// next begins, and external collaborators only ever see post-step
// Snapshots. Edits (particle injection/removal, parameter changes) are
// queued and applied at step boundaries.
package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/gravbox/internal/body"
	"github.com/san-kum/gravbox/internal/collision"
	"github.com/san-kum/gravbox/internal/geom"
	"github.com/san-kum/gravbox/internal/integrate"
	"github.com/san-kum/gravbox/internal/quadtree"
)

type editKind int

const (
	editAdd editKind = iota
	editRemove
	editParams
)

type edit struct {
	kind     editKind
	particle body.Particle
	id       int
	params   Params
}

type Simulation struct {
	params    Params
	particles []body.Particle
	initial   []body.Particle

	tree     quadtree.Tree
	stepper  integrate.Stepper
	timestep integrate.TimestepController
	resolver collision.Resolver

	time   float64
	dt     float64
	step   int
	nextID int

	pending   []edit
	metrics   []Metric
	observers []Observer
}

// New validates params and every particle, then returns a simulation
// positioned at t=0. Particle IDs are reassigned to their index order;
// a particle whose disc does not fit inside the bounds is rejected.
func New(particles []body.Particle, params Params, stepper integrate.Stepper) (*Simulation, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if stepper == nil {
		stepper = integrate.NewSemiImplicit()
	}

	owned := make([]body.Particle, len(particles))
	copy(owned, particles)
	for i := range owned {
		owned[i].ID = i
		owned[i].Force = geom.Vec2{}
		if err := checkParticle(&owned[i], params.Bounds); err != nil {
			return nil, fmt.Errorf("particle %d: %w", i, err)
		}
	}

	s := &Simulation{
		params:    params,
		particles: owned,
		initial:   append([]body.Particle(nil), owned...),
		stepper:   stepper,
		nextID:    len(owned),
	}
	s.configure(params)
	return s, nil
}

func checkParticle(p *body.Particle, bounds geom.Rect) error {
	if !p.Valid() {
		return fmt.Errorf("%w: non-positive mass, negative radius or non-finite state", ErrInvalidConfig)
	}
	if p.Pos.X-p.Radius < bounds.Min.X || p.Pos.X+p.Radius > bounds.Max.X ||
		p.Pos.Y-p.Radius < bounds.Min.Y || p.Pos.Y+p.Radius > bounds.Max.Y {
		return fmt.Errorf("%w: position %v outside world bounds", ErrInvalidConfig, p.Pos)
	}
	return nil
}

func (s *Simulation) configure(p Params) {
	s.params = p
	s.timestep = integrate.TimestepController{MinDt: p.MinDt, MaxDt: p.MaxDt, Safety: p.Safety}
	s.resolver = collision.Resolver{Restitution: p.Restitution, WallRestitution: p.WallRestitution}
}

func (s *Simulation) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulation) Time() float64 { return s.time }
func (s *Simulation) Dt() float64   { return s.dt }
func (s *Simulation) Steps() int    { return s.step }
func (s *Simulation) Count() int    { return len(s.particles) }
func (s *Simulation) Params() Params { return s.params }

// Step advances the state by one adaptively-chosen dt.
func (s *Simulation) Step() error {
	for i := range s.particles {
		s.particles[i].Force = geom.Vec2{}
	}

	s.tree.Build(s.particles, s.params.Bounds)
	for i := range s.particles {
		s.particles[i].Force = s.tree.ForceOn(&s.particles[i],
			s.params.Theta, s.params.G, s.params.Softening)
	}

	dt := s.timestep.Select(s.particles)
	s.stepper.Step(s.particles, dt)
	s.resolver.Resolve(s.particles, s.params.Bounds)

	for i := range s.particles {
		if !s.particles[i].Valid() {
			return &StepError{Step: s.step, Time: s.time, Wrapped: ErrUnstable}
		}
	}

	s.dt = dt
	s.time += dt
	s.step++

	s.applyPending()

	if len(s.observers) > 0 {
		snap := s.Snapshot()
		for _, o := range s.observers {
			o.OnStep(snap)
		}
	}
	return nil
}

// Run advances the simulation by steps, observing metrics and
// collecting one StepRecord per step. Cancellation is honored between
// steps; a partially filled Result is returned with the error.
func (s *Simulation) Run(ctx context.Context, steps int) (*Result, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("%w: steps must be positive, got %d", ErrInvalidConfig, steps)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{
		Records: make([]StepRecord, 0, steps),
		Metrics: make(map[string]float64),
	}

	initialKE := s.kineticEnergy()

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := s.Step(); err != nil {
			return result, err
		}

		rec := s.Record()
		result.Records = append(result.Records, rec)
		result.StepsTaken++

		for _, m := range s.metrics {
			m.Observe(rec)
		}
	}

	if initialKE != 0 {
		result.EnergyDrift = math.Abs(s.kineticEnergy()-initialKE) / math.Abs(initialKE)
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// Snapshot deep-copies the current state. Safe to call between steps
// only; the simulation never publishes mid-step state.
func (s *Simulation) Snapshot() Snapshot {
	ps := make([]body.Particle, len(s.particles))
	copy(ps, s.particles)
	return Snapshot{Particles: ps, Time: s.time, Dt: s.dt, Step: s.step}
}

// Record derives the per-step summary without copying particles.
func (s *Simulation) Record() StepRecord {
	var ke float64
	var p geom.Vec2
	for i := range s.particles {
		ke += s.particles[i].KineticEnergy()
		p = p.Add(s.particles[i].Momentum())
	}
	return StepRecord{
		Step:          s.step,
		Time:          s.time,
		Dt:            s.dt,
		KineticEnergy: ke,
		MomentumX:     p.X,
		MomentumY:     p.Y,
		Count:         len(s.particles),
	}
}

func (s *Simulation) kineticEnergy() float64 {
	var ke float64
	for i := range s.particles {
		ke += s.particles[i].KineticEnergy()
	}
	return ke
}

// QueueAdd requests particle injection at the next step boundary. The
// particle is validated now so a bad request fails at the call site.
func (s *Simulation) QueueAdd(p body.Particle) error {
	if err := checkParticle(&p, s.params.Bounds); err != nil {
		return err
	}
	s.pending = append(s.pending, edit{kind: editAdd, particle: p})
	return nil
}

// QueueRemove requests removal of the particle with the given ID at
// the next step boundary. Unknown IDs are rejected.
func (s *Simulation) QueueRemove(id int) error {
	for i := range s.particles {
		if s.particles[i].ID == id {
			s.pending = append(s.pending, edit{kind: editRemove, id: id})
			return nil
		}
	}
	return fmt.Errorf("%w: no particle with id %d", ErrInvalidConfig, id)
}

// QueueParams requests a parameter change at the next step boundary.
func (s *Simulation) QueueParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.pending = append(s.pending, edit{kind: editParams, params: p})
	return nil
}

func (s *Simulation) applyPending() {
	for _, e := range s.pending {
		switch e.kind {
		case editAdd:
			p := e.particle
			p.ID = s.nextID
			s.nextID++
			s.particles = append(s.particles, p)
		case editRemove:
			for i := range s.particles {
				if s.particles[i].ID == e.id {
					s.particles = append(s.particles[:i], s.particles[i+1:]...)
					break
				}
			}
		case editParams:
			s.configure(e.params)
		}
	}
	s.pending = s.pending[:0]
}

// Reset restores the initial particle set and rewinds the clock.
// Queued edits are discarded.
func (s *Simulation) Reset() {
	s.particles = append(s.particles[:0], s.initial...)
	s.time = 0
	s.dt = 0
	s.step = 0
	s.nextID = len(s.initial)
	s.pending = s.pending[:0]
}
