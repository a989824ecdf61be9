// Package viewport maps the simulation's logical space onto window pixels.
package viewport

import "math"

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	X, Y, W, H int32
}

// Line is a pixel segment from (X1, Y1) to (X2, Y2).
type Line struct {
	X1, Y1, X2, Y2 int32
}

// Viewport is the letterboxed area the world is drawn into.
// It is computed once and never changes (the window is not resizable).
type Viewport struct {
	// Window covers the whole window.
	Window Rect

	// Rect is the area inside the window holding the world, in pixels.
	Rect

	// Scale is pixels per world unit, identical on both axes.
	Scale float64
}

// Fit computes the largest uniform scale that fits a boundsW x boundsH world
// inside the window minus padding on every side, and centres the result.
// Bounds must be positive.
func Fit(boundsW, boundsH float64, winW, winH, padding int32) Viewport {
	availW := float64(winW - 2*padding)
	availH := float64(winH - 2*padding)
	scale := math.Min(availW/boundsW, availH/boundsH)

	w := int32(math.Round(boundsW * scale))
	h := int32(math.Round(boundsH * scale))

	return Viewport{
		Window: Rect{X: 0, Y: 0, W: winW, H: winH},
		Rect: Rect{
			X: (winW - w) / 2,
			Y: (winH - h) / 2,
			W: w,
			H: h,
		},
		Scale: scale,
	}
}

// Cell converts a world-space square at (x, y) with the given side length
// into a rectangle local to the viewport. The side is never below one pixel,
// so zero-sized entities stay visible.
func (v Viewport) Cell(x, y, size float64) Rect {
	side := max(int32(1), int32(math.Round(size*v.Scale)))
	return Rect{
		X: int32(x * v.Scale),
		Y: int32(y * v.Scale),
		W: side,
		H: side,
	}
}

// Border returns the four segments framing the viewport: left, right, top,
// bottom. They start one pixel up and left of the viewport origin and end at
// its bottom-right corner minus one.
func (v Viewport) Border() [4]Line {
	left := v.X - 1
	top := v.Y - 1
	right := v.X + v.W - 1
	bottom := v.Y + v.H - 1
	return [4]Line{
		{X1: left, Y1: top, X2: left, Y2: bottom},
		{X1: right, Y1: top, X2: right, Y2: bottom},
		{X1: left, Y1: top, X2: right, Y2: top},
		{X1: left, Y1: bottom, X2: right, Y2: bottom},
	}
}

// Contains reports whether the pixel (x, y) lies inside r.
func (r Rect) Contains(x, y int32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
