// Package anim drives a confetti burst through its animation lifetime.
//
// The Driver is frame-synchronized: the host calls Tick once per frame
// (an ebiten Update, or a fixed-rate timer when headless) and receives
// a snapshot of the live particle set to render. All state is owned by
// the scheduling context; the driver starts no goroutines and holds no
// locks, so teardown is just Stop.
package anim

import (
	"log"
	"time"

	"github.com/LynchzDEV/lynchz-confetti/internal/sim"
)

// DefaultCount is the particle count used by Burst when the caller
// does not choose one.
const DefaultCount = 50

// Snapshot is the per-tick state published to observers.
type Snapshot struct {
	Particles     []sim.Particle
	IsAnimating   bool
	ParticleCount int
}

// AutoTrigger describes an optional one-shot delayed burst, fired at
// most once per Start. Zero value means disabled.
type AutoTrigger struct {
	Enabled   bool
	Direction sim.Direction
	Count     int
	Delay     time.Duration
}

// Options configures a Driver. Zero values fall back to sensible
// defaults (800×600 viewport, DefaultCount, wall clock).
type Options struct {
	ViewportWidth  float64
	ViewportHeight float64

	// Count used by Burst; DefaultCount when 0.
	Count int

	AutoTrigger AutoTrigger

	// Simulator to generate bursts with. A fresh time-seeded one is
	// created when nil; tests pass a seeded simulator instead.
	Simulator *sim.Simulator

	// Now is the clock used for the auto-trigger deadline. Defaults to
	// time.Now; tests substitute a fake.
	Now func() time.Time

	// OnSnapshot, when set, is invoked with every snapshot Tick
	// produces while a burst is running.
	OnSnapshot func(Snapshot)
}

// Driver owns the live particle set and the single in-progress flag.
// Exactly two states exist: Idle (no live particles) and Running.
// Burst moves Idle → Running, a tick that drains the set moves
// Running → Idle, and a Burst while Running is silently dropped.
type Driver struct {
	simulator *sim.Simulator
	now       func() time.Time

	viewportW float64
	viewportH float64
	count     int

	particles   []sim.Particle
	inProgress  bool
	onSnapshot  func(Snapshot)
	autoTrigger AutoTrigger

	// armed auto-trigger; zero deadline means nothing pending.
	triggerDeadline time.Time
	triggerFired    bool
}

// NewDriver creates a Driver in the Idle state. Call Start to arm the
// auto-trigger, then Tick once per frame.
func NewDriver(opts Options) *Driver {
	if opts.ViewportWidth <= 0 {
		opts.ViewportWidth = 800
	}
	if opts.ViewportHeight <= 0 {
		opts.ViewportHeight = 600
	}
	if opts.Count <= 0 {
		opts.Count = DefaultCount
	}
	if opts.Simulator == nil {
		opts.Simulator = sim.NewSimulator()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Driver{
		simulator:   opts.Simulator,
		now:         opts.Now,
		viewportW:   opts.ViewportWidth,
		viewportH:   opts.ViewportHeight,
		count:       opts.Count,
		onSnapshot:  opts.OnSnapshot,
		autoTrigger: opts.AutoTrigger,
	}
}

// SetViewport updates the dimensions passed to the integrator and used
// as the default burst origin. The host calls this when its window is
// resized.
func (d *Driver) SetViewport(width, height float64) {
	if width > 0 {
		d.viewportW = width
	}
	if height > 0 {
		d.viewportH = height
	}
}

// Burst starts a burst with the configured count, originating at the
// viewport center. See BurstAt for the admission rules.
func (d *Driver) Burst(dir sim.Direction) error {
	return d.BurstAt(dir, d.count, d.viewportW/2, d.viewportH/2)
}

// BurstAt starts a burst of count particles at the given origin.
//
// While a burst is in progress the call is a silent no-op: it returns
// nil and the running burst is unaffected (bursts are dropped, never
// queued). An invalid direction is reported synchronously as
// *sim.InvalidDirectionError. A count of 0 produces an empty burst and
// the driver stays Idle.
func (d *Driver) BurstAt(dir sim.Direction, count int, originX, originY float64) error {
	if d.inProgress {
		return nil
	}

	particles, err := d.simulator.Generate(count, dir, originX, originY)
	if err != nil {
		return err
	}
	if len(particles) == 0 {
		return nil
	}

	d.particles = particles
	d.inProgress = true
	log.Printf("[Driver] burst: %d particles, direction=%s origin=(%.0f, %.0f)",
		len(particles), dir, originX, originY)
	return nil
}

// Tick advances the animation by one frame and returns the resulting
// snapshot. While Idle it only checks the armed auto-trigger deadline;
// the integrator is not called again until the next burst.
func (d *Driver) Tick() Snapshot {
	// The deadline check runs every tick regardless of state; a trigger
	// that expires mid-burst fires into the admission control and is
	// dropped, exactly like any other burst attempt.
	d.fireAutoTrigger()
	if !d.inProgress {
		return Snapshot{Particles: nil, IsAnimating: false, ParticleCount: 0}
	}

	d.particles = sim.Advance(d.particles, d.viewportW, d.viewportH)
	if len(d.particles) == 0 {
		d.particles = nil
		d.inProgress = false
		log.Printf("[Driver] burst complete")
	}

	snap := Snapshot{
		Particles:     d.particles,
		IsAnimating:   d.inProgress,
		ParticleCount: len(d.particles),
	}
	if d.onSnapshot != nil {
		d.onSnapshot(snap)
	}
	return snap
}

// fireAutoTrigger fires the armed one-shot burst once its deadline has
// passed. Invalid auto-trigger directions are logged and dropped; they
// must not wedge the frame loop.
func (d *Driver) fireAutoTrigger() {
	if d.triggerFired || d.triggerDeadline.IsZero() {
		return
	}
	if d.now().Before(d.triggerDeadline) {
		return
	}
	d.triggerFired = true

	count := d.autoTrigger.Count
	if count <= 0 {
		count = d.count
	}
	if err := d.BurstAt(d.autoTrigger.Direction, count, d.viewportW/2, d.viewportH/2); err != nil {
		log.Printf("[Driver] auto-trigger dropped: %v", err)
	}
}

// Start arms the auto-trigger, if one is configured. Safe to call when
// no auto-trigger is set; it is then a no-op. Calling Start again
// re-arms the one-shot.
func (d *Driver) Start() {
	d.triggerFired = false
	d.triggerDeadline = time.Time{}
	if d.autoTrigger.Enabled {
		d.triggerDeadline = d.now().Add(d.autoTrigger.Delay)
	}
}

// Stop tears the driver down: the pending auto-trigger is cancelled,
// the live set is discarded and the driver returns to Idle. No callback
// fires after Stop until the host bursts or Starts again.
func (d *Driver) Stop() {
	d.triggerDeadline = time.Time{}
	d.triggerFired = false
	d.particles = nil
	d.inProgress = false
}

// IsAnimating reports whether a burst is in progress.
func (d *Driver) IsAnimating() bool {
	return d.inProgress
}

// ParticleCount returns the size of the live particle set.
func (d *Driver) ParticleCount() int {
	return len(d.particles)
}
