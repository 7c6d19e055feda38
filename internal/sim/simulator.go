package sim

import (
	"math"
	"math/rand"
	"time"
)

// Simulator generates particle bursts. It owns a private random source
// so tests can inject a fixed seed and replay a burst exactly; the
// integration step (Advance) is a pure package-level function and needs
// no Simulator state.
type Simulator struct {
	rng *rand.Rand
}

// NewSimulator returns a Simulator seeded from the current time.
func NewSimulator() *Simulator {
	return NewSimulatorSeed(time.Now().UnixNano())
}

// NewSimulatorSeed returns a Simulator with a fixed seed. Two
// simulators built from the same seed generate identical bursts.
func NewSimulatorSeed(seed int64) *Simulator {
	return &Simulator{rng: rand.New(rand.NewSource(seed))}
}

// Generate creates count particles at the given origin, launched along
// the direction's cone. A count <= 0 yields an empty list, which the
// driver treats as an already-complete burst. An unrecognized direction
// fails with *InvalidDirectionError; generation itself is infallible.
//
// Per particle, independently:
//   - spread offset uniform in [-Spread/2, +Spread/2] (radians)
//   - speed uniform in [MinSpeed, MaxSpeed)
//   - rotation angle uniform in [0, 360)
//   - rotation speed uniform in [-MaxRotationSpeed, +MaxRotationSpeed)
//   - color uniform over Palette, size uniform in [MinSize, MaxSize)
func (s *Simulator) Generate(count int, dir Direction, originX, originY float64) ([]Particle, error) {
	profile, err := ProfileFor(dir)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		return []Particle{}, nil
	}

	baseAngle := profile.BaseAngle * math.Pi / 180
	spread := profile.Spread * math.Pi / 180

	particles := make([]Particle, count)
	for i := range particles {
		angle := baseAngle + (s.rng.Float64()-0.5)*spread
		speed := MinSpeed + s.rng.Float64()*(MaxSpeed-MinSpeed)

		particles[i] = Particle{
			ID:            i,
			X:             originX,
			Y:             originY,
			VX:            math.Cos(angle) * speed,
			VY:            math.Sin(angle) * speed,
			RotationAngle: s.rng.Float64() * 360,
			RotationSpeed: (s.rng.Float64() - 0.5) * 2 * MaxRotationSpeed,
			Color:         Palette[s.rng.Intn(len(Palette))],
			Size:          MinSize + s.rng.Float64()*(MaxSize-MinSize),
		}
	}
	return particles, nil
}

// Advance integrates one tick of projectile physics and prunes
// particles that left the viewport. It is pure: the input slice is
// never mutated and the result is freshly allocated. A particle is
// pruned once it falls below the viewport or drifts past either side,
// each bound extended by PruneMargin. There is no upper bound: a
// particle above the screen always comes back down.
func Advance(particles []Particle, viewportWidth, viewportHeight float64) []Particle {
	alive := make([]Particle, 0, len(particles))
	for _, p := range particles {
		p.X += p.VX
		p.Y += p.VY
		p.VY += Gravity
		p.RotationAngle += p.RotationSpeed

		if p.Y >= viewportHeight+PruneMargin {
			continue
		}
		if p.X <= -PruneMargin || p.X >= viewportWidth+PruneMargin {
			continue
		}
		alive = append(alive, p)
	}
	return alive
}
