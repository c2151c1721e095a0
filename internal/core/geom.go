// Package core provides the fundamental types shared by the experience and
// the platform layer. It has no external dependencies (especially no Bubble
// Tea) so the scene logic stays pure and testable.
package core

// Rect is an axis-aligned rectangle in screen cells, used for laying out
// controls and hit-testing pointer events against them.
type Rect struct {
	X, Y int // Top-left corner
	W, H int // Width and height
}

// NewRect creates a rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether the cell (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center cell of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Percent is a normalized 2D coordinate where both axes run 0..100,
// independent of the actual screen size. Script positions and the evasive
// control use this so layouts survive terminal resizes.
type Percent struct {
	X, Y float64
}

// Cell maps the percent coordinate onto a w×h cell grid, rounding to the
// nearest cell.
func (p Percent) Cell(w, h int) (int, int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	x := int(p.X/100*float64(w-1) + 0.5)
	y := int(p.Y/100*float64(h-1) + 0.5)
	return Clamp(x, 0, w-1), Clamp(y, 0, h-1)
}

// Clamp restricts a value to [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
