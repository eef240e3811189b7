// Package gamemath provides the small amount of vector math shared by the
// netcode, physics, and rendering packages. It must stay free of ebiten
// imports so the headless netcode tests do not pull in graphics code.
package gamemath

import "math"

// Vector2 is a 2D vector used for both position and velocity.
// The JSON tags match the server's wire format.
type Vector2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// Length returns the magnitude of v.
func (v Vector2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalized returns v scaled to length 1, or the zero vector if v is zero.
func (v Vector2) Normalized() Vector2 {
	length := v.Length()
	if length == 0 {
		return Vector2{}
	}
	return Vector2{X: v.X / length, Y: v.Y / length}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vector2) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b Vector2, t float64) Vector2 {
	return Vector2{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// Sanitize replaces NaN or Inf components with zero. The server sanitizes
// outbound state the same way; a bad component must never reach the step
// function or it poisons every later prediction.
func Sanitize(v Vector2) Vector2 {
	if math.IsNaN(v.X) || math.IsInf(v.X, 0) {
		v.X = 0
	}
	if math.IsNaN(v.Y) || math.IsInf(v.Y, 0) {
		v.Y = 0
	}
	return v
}
