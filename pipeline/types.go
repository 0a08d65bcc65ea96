// This file is part of Scalebench.
//
// Scalebench is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Scalebench is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Scalebench.  If not, see <https://www.gnu.org/licenses/>.

package pipeline

import "fmt"

// Size of a render target or the presentable surface, in pixels.
type Size struct {
	W, H int
}

func (sz Size) String() string {
	return fmt.Sprintf("%dx%d", sz.W, sz.H)
}

// IsZero returns true if either dimension is zero or less. A zero size can
// never be used to create a target.
func (sz Size) IsZero() bool {
	return sz.W <= 0 || sz.H <= 0
}

// Aspect returns the ratio of width to height. Returns 1 for a zero size.
func (sz Size) Aspect() float32 {
	if sz.IsZero() {
		return 1
	}
	return float32(sz.W) / float32(sz.H)
}

// Scale returns the size multiplied by f, rounded to the nearest pixel. The
// result is never smaller than 1x1.
func (sz Size) Scale(f float64) Size {
	s := Size{
		W: int(float64(sz.W)*f + 0.5),
		H: int(float64(sz.H)*f + 0.5),
	}
	if s.W < 1 {
		s.W = 1
	}
	if s.H < 1 {
		s.H = 1
	}
	return s
}

// ParseSize parses a string of the form "WxH".
func ParseSize(s string) (Size, error) {
	var sz Size
	if _, err := fmt.Sscanf(s, "%dx%d", &sz.W, &sz.H); err != nil {
		return Size{}, fmt.Errorf("size: %q is not of the form WxH", s)
	}
	if sz.IsZero() {
		return Size{}, fmt.Errorf("size: %q is not a valid size", s)
	}
	return sz, nil
}

// Filter is the sampling mode of a render target.
type Filter int

// List of valid Filter values.
const (
	FilterPoint Filter = iota
	FilterLinear
)

func (f Filter) String() string {
	switch f {
	case FilterPoint:
		return "point"
	case FilterLinear:
		return "linear"
	}
	return "unknown filter"
}

// Format is the pixel storage format of a render target.
type Format int

// List of valid Format values. Targets that are read back or presented use
// FormatRGBA8. Intermediate targets between two reconstruction passes use
// FormatRGBA16F so that the second pass sees the unquantised output of the
// first pass.
const (
	FormatRGBA8 Format = iota
	FormatRGBA16F
)

func (f Format) String() string {
	switch f {
	case FormatRGBA8:
		return "RGBA8"
	case FormatRGBA16F:
		return "RGBA16F"
	}
	return "unknown format"
}
