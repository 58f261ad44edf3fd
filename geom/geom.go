// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom provides the geometric primitives shared by the layout
// engine and container tree: points, rectangles, axes, directions and
// the absolute-or-percent [Size] used by config-driven min/max limits.
package geom

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is an absolute pixel coordinate.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in absolute pixel coordinates,
// anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Area returns the rectangle's area.
func (r Rect) Area() float64 { return r.W * r.H }

// Right returns the x coordinate of the rectangle's right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the rectangle's bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the rectangle's center point.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Inset shrinks r by d on every side. A negative d grows it.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// Clamp moves and shrinks r so that it lies entirely within bounds,
// preserving r's size where bounds is large enough to hold it.
func (r Rect) Clamp(bounds Rect) Rect {
	out := r
	if out.W > bounds.W {
		out.W = bounds.W
	}
	if out.H > bounds.H {
		out.H = bounds.H
	}
	if out.X < bounds.X {
		out.X = bounds.X
	}
	if out.Y < bounds.Y {
		out.Y = bounds.Y
	}
	if out.Right() > bounds.Right() {
		out.X = bounds.Right() - out.W
	}
	if out.Bottom() > bounds.Bottom() {
		out.Y = bounds.Bottom() - out.H
	}
	return out
}

// CenteredIn returns a rect of size w×h centered within r.
func CenteredIn(r Rect, w, h float64) Rect {
	return Rect{X: r.X + (r.W-w)/2, Y: r.Y + (r.H-h)/2, W: w, H: h}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%.0f,%.0f %.0fx%.0f)", r.X, r.Y, r.W, r.H)
}

// Axis is the orientation of a split container.
type Axis int

const (
	AxisHorizontal Axis = iota // children arranged left-to-right
	AxisVertical               // children arranged top-to-bottom
)

func (a Axis) String() string {
	if a == AxisVertical {
		return "vertical"
	}
	return "horizontal"
}

// Direction is a spatial or focus-movement direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection parses the four direction tokens used throughout the
// command grammar (§6).
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	default:
		return 0, false
	}
}

// Axis returns the split axis a movement in d would traverse: moving
// left/right traverses a horizontal split, up/down a vertical one.
func (d Direction) Axis() Axis {
	if d == DirLeft || d == DirRight {
		return AxisHorizontal
	}
	return AxisVertical
}

// Forward reports whether d moves toward increasing coordinates along
// its axis (right or down).
func (d Direction) Forward() bool {
	return d == DirRight || d == DirDown
}

// Opposite returns the reverse of d.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return d
	}
}

// Size is a length that is either an absolute pixel value or a
// percentage of some reference extent (config's min/max width/height,
// per spec.md §6).
type Size struct {
	Percent bool
	Value   float64 // pixels, or 0-100 when Percent
}

// Resolve returns the concrete pixel value of s against reference.
func (s Size) Resolve(reference float64) float64 {
	if s.Percent {
		return reference * s.Value / 100
	}
	return s.Value
}

// IsZero reports whether s is the unset zero value.
func (s Size) IsZero() bool { return !s.Percent && s.Value == 0 }

// UnmarshalText implements encoding.TextUnmarshaler, the interface
// go-toml/v2 uses to decode a config value into a Size (this package
// does not import the toml library). go-toml passes the raw text of a
// bare number (absolute pixels) or the contents of a string like
// "50%" (spec.md §6: "float | \"N%\"").
func (s *Size) UnmarshalText(text []byte) error {
	return s.parsePercent(string(text))
}

// UnmarshalTOML accepts an already-decoded value: a float64 or int64
// (absolute pixels) or a string like "50%".
func (s *Size) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case float64:
		*s = Size{Value: v}
		return nil
	case int64:
		*s = Size{Value: float64(v)}
		return nil
	case string:
		return s.parsePercent(v)
	default:
		return fmt.Errorf("geom: cannot parse size from %T", value)
	}
}

func (s *Size) parsePercent(v string) error {
	trimmed := strings.TrimSpace(v)
	if !strings.HasSuffix(trimmed, "%") {
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return fmt.Errorf("geom: invalid size %q: %w", v, err)
		}
		*s = Size{Value: f}
		return nil
	}
	num := strings.TrimSuffix(trimmed, "%")
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return fmt.Errorf("geom: invalid percent size %q: %w", v, err)
	}
	*s = Size{Percent: true, Value: f}
	return nil
}
