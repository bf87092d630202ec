// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Vec2 is a 2D vector in world units. World space is y-up with the origin at
// the center of the visible field.
type Vec2 struct {
	X, Y float64
}

// V2 is shorthand for Vec2{X: x, Y: y}.
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Half returns v / 2.
func (v Vec2) Half() Vec2 {
	return v.Scale(0.5)
}

// Box is an axis-aligned bounding box described by its center and full size,
// matching how sprites are anchored in world space.
type Box struct {
	Center Vec2
	Size   Vec2
}

// NewBox creates a box centered at c with the given size.
func NewBox(c, size Vec2) Box {
	return Box{Center: c, Size: size}
}

// Min returns the bottom-left corner.
func (b Box) Min() Vec2 {
	return b.Center.Sub(b.Size.Half())
}

// Max returns the top-right corner.
func (b Box) Max() Vec2 {
	return b.Center.Add(b.Size.Half())
}

// Overlaps reports whether the two boxes overlap on both axes.
// Boxes that only touch along an edge do not overlap.
func (b Box) Overlaps(o Box) bool {
	bMin, bMax := b.Min(), b.Max()
	oMin, oMax := o.Min(), o.Max()

	if bMin.X >= oMax.X || oMin.X >= bMax.X {
		return false
	}
	if bMin.Y >= oMax.Y || oMin.Y >= bMax.Y {
		return false
	}
	return true
}

// Rect is an integer axis-aligned rectangle in screen cell space.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
