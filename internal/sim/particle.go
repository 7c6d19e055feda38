// Package sim implements the confetti particle simulation core.
//
// The package is a pure simulation engine: it generates a burst of
// particles from a direction profile and integrates simple projectile
// physics one tick at a time. It has no dependency on any rendering or
// scheduling host; viewport dimensions are passed in explicitly so the
// same code runs under a real display loop or a headless test.
package sim

import "image/color"

// Physics and generation constants. These are fixed by design; the
// simulation does not expose knobs for them.
const (
	// Gravity is added to a particle's vertical velocity every tick,
	// in units/tick². Positive y points down in screen coordinates.
	Gravity = 0.5

	// PruneMargin extends the viewport on the left, right and bottom
	// edges. Particles are only removed once they are this far outside
	// the visible area, so they never visibly pop out near an edge.
	PruneMargin = 100

	// Launch speed range, units per tick.
	MinSpeed = 10.0
	MaxSpeed = 25.0

	// Particle edge length range, units.
	MinSize = 8.0
	MaxSize = 18.0

	// Rotation speed range, degrees per tick.
	MaxRotationSpeed = 7.5
)

// Particle is one ephemeral simulation unit: a colored square launched
// from the burst origin. Position, velocity and rotation angle mutate
// every tick; everything else is fixed at generation time.
type Particle struct {
	// ID is unique within one burst (monotonic from 0).
	ID int

	// Position in screen coordinates.
	X, Y float64

	// Velocity in units per tick. VX stays constant for the particle's
	// life; VY grows by Gravity each tick.
	VX, VY float64

	// RotationAngle is the current orientation in degrees.
	RotationAngle float64

	// RotationSpeed is added to RotationAngle each tick, degrees/tick.
	RotationSpeed float64

	// Color is one entry of Palette.
	Color color.RGBA

	// Size is the square's edge length, units.
	Size float64
}

// Palette is the fixed set of confetti colors. Generation picks one
// entry uniformly at random per particle.
var Palette = [7]color.RGBA{
	{R: 0xE7, G: 0x4C, B: 0x3C, A: 0xFF}, // red
	{R: 0xE6, G: 0x7E, B: 0x22, A: 0xFF}, // orange
	{R: 0xF1, G: 0xC4, B: 0x0F, A: 0xFF}, // yellow
	{R: 0x2E, G: 0xCC, B: 0x71, A: 0xFF}, // green
	{R: 0x34, G: 0x98, B: 0xDB, A: 0xFF}, // blue
	{R: 0x9B, G: 0x59, B: 0xB6, A: 0xFF}, // purple
	{R: 0xFD, G: 0x79, B: 0xA8, A: 0xFF}, // pink
}
