// Package components defines ECS components for the simulation.
package components

import "github.com/pthm-cable/blobs/palette"

// Position is the top-left corner of an entity, in world units.
type Position struct {
	X, Y float64
}

// Velocity is the displacement applied per step, in world units.
type Velocity struct {
	X, Y float64
}

// Body holds the side length of an entity's square, in world units.
type Body struct {
	Size float64
}

// Tint is the colour a blob is drawn with. Assigned once at birth.
type Tint struct {
	Color palette.Color
}

// Food marks an entity as a food pellet.
type Food struct{}

// Overlaps reports whether the squares at a and b overlap.
func Overlaps(a Position, as Body, b Position, bs Body) bool {
	return a.X < b.X+bs.Size && b.X < a.X+as.Size &&
		a.Y < b.Y+bs.Size && b.Y < a.Y+as.Size
}
