// Package core provides fundamental types and utilities shared by the game
// engine and its front ends. It contains no external dependencies (especially
// no Bubble Tea) to keep game logic pure and testable.
package core

import "math"

// Vec2 is a point or direction in world units. The y axis grows downward.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Len()
}

// IsFinite reports whether both components are real numbers.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Viewport is the visible world area. Words travel toward its center.
type Viewport struct {
	Width  float64
	Height float64
}

// Valid reports whether the viewport has a positive area.
func (vp Viewport) Valid() bool {
	return vp.Width > 0 && vp.Height > 0 && !math.IsNaN(vp.Width) && !math.IsNaN(vp.Height)
}

// Center returns the target point words travel toward.
func (vp Viewport) Center() Vec2 {
	return Vec2{X: vp.Width / 2, Y: vp.Height / 2}
}

// HalfDiagonal returns the distance from the center to any corner.
// A circle of this radius around the center encloses the whole viewport.
func (vp Viewport) HalfDiagonal() float64 {
	return math.Hypot(vp.Width, vp.Height) / 2
}

// Rect represents an axis-aligned box in screen cells.
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

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
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
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
