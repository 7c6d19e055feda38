package anim

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/LynchzDEV/lynchz-confetti/internal/sim"
)

// fakeClock is a manually advanced clock for auto-trigger tests.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// TestBurstStartsAnimation verifies Idle → Running on a valid burst.
func TestBurstStartsAnimation(t *testing.T) {
	d := NewDriver(Options{Simulator: sim.NewSimulatorSeed(1)})

	if d.IsAnimating() {
		t.Fatal("fresh driver should be idle")
	}
	if err := d.Burst(sim.DirectionCenter); err != nil {
		t.Fatalf("Burst error: %v", err)
	}
	if !d.IsAnimating() {
		t.Error("IsAnimating: got false after burst, want true")
	}
	if d.ParticleCount() != DefaultCount {
		t.Errorf("ParticleCount: got %d, want %d", d.ParticleCount(), DefaultCount)
	}
}

// TestBurstAdmissionControl verifies the second burst is silently
// dropped while one is in progress: no error, and the live set still
// comes from the first call.
func TestBurstAdmissionControl(t *testing.T) {
	d := NewDriver(Options{Simulator: sim.NewSimulatorSeed(1)})

	if err := d.Burst(sim.DirectionCenter); err != nil {
		t.Fatalf("first Burst error: %v", err)
	}
	if err := d.BurstAt(sim.DirectionRight, 10, 0, 0); err != nil {
		t.Fatalf("second Burst should be a silent no-op, got error: %v", err)
	}
	if d.ParticleCount() != DefaultCount {
		t.Errorf("ParticleCount after dropped burst: got %d, want %d", d.ParticleCount(), DefaultCount)
	}

	// Even a burst with an invalid direction is dropped without being
	// validated while running; the contract is "ignored, not queued".
	if err := d.Burst("bogus"); err != nil {
		t.Errorf("burst while running returned error: %v", err)
	}
}

// TestBurstDefaultOrigin verifies Burst launches from the viewport
// center with the configured count, by replaying the same seed through
// a bare simulator.
func TestBurstDefaultOrigin(t *testing.T) {
	const seed = 23
	d := NewDriver(Options{
		ViewportWidth:  800,
		ViewportHeight: 600,
		Simulator:      sim.NewSimulatorSeed(seed),
	})

	want, err := sim.NewSimulatorSeed(seed).Generate(DefaultCount, sim.DirectionTop, 400, 300)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if err := d.Burst(sim.DirectionTop); err != nil {
		t.Fatalf("Burst error: %v", err)
	}
	snap := d.Tick()

	if !reflect.DeepEqual(snap.Particles, sim.Advance(want, 800, 600)) {
		t.Error("driver burst does not match Generate at viewport center")
	}
}

// TestBurstInvalidDirection verifies the error is propagated
// synchronously and the driver stays idle.
func TestBurstInvalidDirection(t *testing.T) {
	d := NewDriver(Options{Simulator: sim.NewSimulatorSeed(1)})

	err := d.Burst("everywhere")
	if err == nil {
		t.Fatal("Burst with bad direction: expected error, got nil")
	}
	var dirErr *sim.InvalidDirectionError
	if !errors.As(err, &dirErr) {
		t.Fatalf("error type: got %T, want *sim.InvalidDirectionError", err)
	}
	if d.IsAnimating() {
		t.Error("driver should stay idle after failed burst")
	}
}

// TestBurstZeroCount verifies count 0 is not an error; it is an
// immediately complete burst and the driver stays idle.
func TestBurstZeroCount(t *testing.T) {
	d := NewDriver(Options{Simulator: sim.NewSimulatorSeed(1)})

	if err := d.BurstAt(sim.DirectionCenter, 0, 100, 100); err != nil {
		t.Fatalf("BurstAt(count=0) error: %v", err)
	}
	if d.IsAnimating() {
		t.Error("zero-count burst should leave the driver idle")
	}

	// The driver must admit the next burst right away.
	if err := d.Burst(sim.DirectionCenter); err != nil {
		t.Fatalf("Burst after zero-count burst error: %v", err)
	}
	if !d.IsAnimating() {
		t.Error("burst after zero-count burst should run")
	}
}

// TestTickIdle verifies ticking an idle driver is a cheap no-op that
// reports an empty snapshot.
func TestTickIdle(t *testing.T) {
	d := NewDriver(Options{Simulator: sim.NewSimulatorSeed(1)})

	snap := d.Tick()
	if snap.IsAnimating {
		t.Error("idle snapshot IsAnimating: got true, want false")
	}
	if snap.ParticleCount != 0 || len(snap.Particles) != 0 {
		t.Errorf("idle snapshot: got %d particles, want 0", snap.ParticleCount)
	}
}

// TestTickRunsToCompletion drives a burst through its whole lifetime:
// Running while particles survive, then back to Idle when the set
// drains, with a consistent final snapshot.
func TestTickRunsToCompletion(t *testing.T) {
	d := NewDriver(Options{Simulator: sim.NewSimulatorSeed(2)})

	if err := d.Burst(sim.DirectionCenter); err != nil {
		t.Fatalf("Burst error: %v", err)
	}

	const maxTicks = 5000
	var last Snapshot
	ticks := 0
	for d.IsAnimating() {
		last = d.Tick()
		ticks++
		if ticks > maxTicks {
			t.Fatalf("burst still running after %d ticks", maxTicks)
		}
		if last.ParticleCount != len(last.Particles) {
			t.Fatalf("snapshot count %d disagrees with particle list length %d",
				last.ParticleCount, len(last.Particles))
		}
		if last.IsAnimating != (last.ParticleCount > 0) {
			t.Fatal("snapshot IsAnimating disagrees with particle count")
		}
	}

	if last.ParticleCount != 0 {
		t.Errorf("final snapshot: got %d particles, want 0", last.ParticleCount)
	}
	if d.ParticleCount() != 0 {
		t.Errorf("driver ParticleCount after completion: got %d, want 0", d.ParticleCount())
	}

	// The state machine is back at Idle: a new burst is admitted.
	if err := d.Burst(sim.DirectionLeft); err != nil {
		t.Fatalf("Burst after completion error: %v", err)
	}
	if !d.IsAnimating() {
		t.Error("driver should run again after a completed burst")
	}
}

// TestOnSnapshot verifies the observer callback fires once per running
// tick with the same snapshot Tick returns.
func TestOnSnapshot(t *testing.T) {
	var seen []Snapshot
	d := NewDriver(Options{
		Simulator:  sim.NewSimulatorSeed(3),
		OnSnapshot: func(s Snapshot) { seen = append(seen, s) },
	})

	if err := d.Burst(sim.DirectionTop); err != nil {
		t.Fatalf("Burst error: %v", err)
	}

	first := d.Tick()
	second := d.Tick()
	for d.IsAnimating() {
		d.Tick()
	}

	// Idle ticks after completion must not call back.
	running := len(seen)
	d.Tick()
	d.Tick()

	if len(seen) != running {
		t.Errorf("callback fired on idle ticks: %d extra calls", len(seen)-running)
	}
	if len(seen) < 2 {
		t.Fatalf("callback calls: got %d, want at least 2", len(seen))
	}
	if !reflect.DeepEqual(seen[0], first) || !reflect.DeepEqual(seen[1], second) {
		t.Error("callback snapshots disagree with Tick return values")
	}
}

// TestStopClearsState verifies Stop discards the live set and returns
// the driver to Idle immediately.
func TestStopClearsState(t *testing.T) {
	d := NewDriver(Options{Simulator: sim.NewSimulatorSeed(4)})

	if err := d.Burst(sim.DirectionCenter); err != nil {
		t.Fatalf("Burst error: %v", err)
	}
	d.Stop()

	if d.IsAnimating() {
		t.Error("IsAnimating after Stop: got true, want false")
	}
	if d.ParticleCount() != 0 {
		t.Errorf("ParticleCount after Stop: got %d, want 0", d.ParticleCount())
	}
}

// TestAutoTriggerFiresOnce verifies the delayed burst does not fire
// before its deadline and fires exactly once after it.
func TestAutoTriggerFiresOnce(t *testing.T) {
	clock := newFakeClock()
	d := NewDriver(Options{
		Simulator: sim.NewSimulatorSeed(5),
		Now:       clock.Now,
		AutoTrigger: AutoTrigger{
			Enabled:   true,
			Direction: sim.DirectionCenter,
			Count:     20,
			Delay:     time.Second,
		},
	})
	d.Start()

	d.Tick()
	if d.IsAnimating() {
		t.Fatal("auto-trigger fired immediately, want after delay")
	}

	clock.Advance(999 * time.Millisecond)
	d.Tick()
	if d.IsAnimating() {
		t.Fatal("auto-trigger fired before the full delay elapsed")
	}

	clock.Advance(2 * time.Millisecond)
	d.Tick()
	if !d.IsAnimating() {
		t.Fatal("auto-trigger did not fire after the delay")
	}
	if d.ParticleCount() != 20 {
		t.Errorf("auto-trigger count: got %d, want 20", d.ParticleCount())
	}

	// Run the burst out, then make sure it never fires again.
	for d.IsAnimating() {
		d.Tick()
	}
	clock.Advance(time.Hour)
	d.Tick()
	if d.IsAnimating() {
		t.Error("auto-trigger fired a second time")
	}
}

// TestAutoTriggerDroppedWhileRunning verifies a trigger whose deadline
// expires during a manual burst is consumed by the admission control:
// it neither interrupts the running burst nor fires later.
func TestAutoTriggerDroppedWhileRunning(t *testing.T) {
	clock := newFakeClock()
	d := NewDriver(Options{
		Simulator: sim.NewSimulatorSeed(8),
		Now:       clock.Now,
		AutoTrigger: AutoTrigger{
			Enabled:   true,
			Direction: sim.DirectionCenter,
			Count:     20,
			Delay:     time.Second,
		},
	})
	d.Start()

	if err := d.Burst(sim.DirectionLeft); err != nil {
		t.Fatalf("Burst error: %v", err)
	}
	manualCount := d.ParticleCount()

	clock.Advance(2 * time.Second)
	d.Tick()
	if d.ParticleCount() > manualCount {
		t.Error("expired trigger replaced the running burst")
	}

	for d.IsAnimating() {
		d.Tick()
	}
	d.Tick()
	if d.IsAnimating() {
		t.Error("consumed trigger fired again after the manual burst ended")
	}
}

// TestAutoTriggerCancelledByStop verifies a Stop before the delay
// elapses cancels the pending burst for good.
func TestAutoTriggerCancelledByStop(t *testing.T) {
	clock := newFakeClock()
	d := NewDriver(Options{
		Simulator: sim.NewSimulatorSeed(6),
		Now:       clock.Now,
		AutoTrigger: AutoTrigger{
			Enabled:   true,
			Direction: sim.DirectionTop,
			Delay:     time.Second,
		},
	})
	d.Start()

	clock.Advance(500 * time.Millisecond)
	d.Stop()

	clock.Advance(time.Hour)
	d.Tick()
	if d.IsAnimating() {
		t.Error("cancelled auto-trigger still fired")
	}
}

// TestAutoTriggerDisabled verifies Start without an auto-trigger never
// fires anything.
func TestAutoTriggerDisabled(t *testing.T) {
	clock := newFakeClock()
	d := NewDriver(Options{
		Simulator: sim.NewSimulatorSeed(7),
		Now:       clock.Now,
	})
	d.Start()

	clock.Advance(time.Hour)
	d.Tick()
	if d.IsAnimating() {
		t.Error("driver with no auto-trigger burst on its own")
	}
}
