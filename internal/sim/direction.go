package sim

import "fmt"

// Direction names the burst cone. Four variants are defined; anything
// else is rejected with *InvalidDirectionError.
type Direction string

const (
	DirectionLeft   Direction = "left"
	DirectionRight  Direction = "right"
	DirectionTop    Direction = "top"
	DirectionCenter Direction = "center"
)

// Profile is the immutable (base angle, spread) pair for a direction.
// Both values are in degrees; the launch angle of a particle is the
// base angle plus a uniform offset from [-Spread/2, +Spread/2].
// Angles follow screen coordinates: 0° points right, -90° points up.
type Profile struct {
	BaseAngle float64
	Spread    float64
}

// profiles is the static direction lookup table. Never mutated.
var profiles = map[Direction]Profile{
	DirectionLeft:   {BaseAngle: 180, Spread: 45},
	DirectionRight:  {BaseAngle: 0, Spread: 45},
	DirectionTop:    {BaseAngle: -90, Spread: 45},
	DirectionCenter: {BaseAngle: -90, Spread: 360},
}

// ProfileFor returns the launch profile for dir, or an
// *InvalidDirectionError if dir is not one of the four variants.
func ProfileFor(dir Direction) (Profile, error) {
	p, ok := profiles[dir]
	if !ok {
		return Profile{}, &InvalidDirectionError{Direction: string(dir)}
	}
	return p, nil
}

// ParseDirection converts a raw token (e.g. from flags or YAML) into a
// Direction, validating it against the profile table.
func ParseDirection(s string) (Direction, error) {
	dir := Direction(s)
	if _, ok := profiles[dir]; !ok {
		return "", &InvalidDirectionError{Direction: s}
	}
	return dir, nil
}

// InvalidDirectionError reports an unrecognized direction token. It is
// the only error the simulation core produces.
type InvalidDirectionError struct {
	Direction string
}

func (e *InvalidDirectionError) Error() string {
	return fmt.Sprintf("invalid direction %q (want left, right, top or center)", e.Direction)
}
