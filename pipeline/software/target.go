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

package software

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/jetsetilly/scalebench/pipeline"
)

// target implements the pipeline.Target interface.
type target struct {
	dev *Device
	id  int

	size   pipeline.Size
	format pipeline.Format
	filter pipeline.Filter

	// four values per pixel, top row first
	pix []float32

	// nil if the target has no depth attachment
	depth []float32

	destroyed bool
}

func newTarget(dev *Device, id int, size pipeline.Size, format pipeline.Format, wantsDepth bool) *target {
	t := &target{
		dev:    dev,
		id:     id,
		size:   size,
		format: format,
		pix:    make([]float32, size.W*size.H*4),
	}
	if wantsDepth {
		t.depth = make([]float32, size.W*size.H)
	}
	return t
}

// Size implements the pipeline.Target interface.
func (t *target) Size() pipeline.Size {
	return t.size
}

// Format implements the pipeline.Target interface.
func (t *target) Format() pipeline.Format {
	return t.format
}

// HasDepth implements the pipeline.Target interface.
func (t *target) HasDepth() bool {
	return t.depth != nil
}

// Filter implements the pipeline.Target interface.
func (t *target) Filter() pipeline.Filter {
	return t.filter
}

type rgba [4]float32

// at returns the pixel at x, y. coordinates outside the target are clamped
// to the edge.
func (t *target) at(x, y int) rgba {
	if x < 0 {
		x = 0
	} else if x >= t.size.W {
		x = t.size.W - 1
	}
	if y < 0 {
		y = 0
	} else if y >= t.size.H {
		y = t.size.H - 1
	}
	i := (y*t.size.W + x) * 4
	return rgba{t.pix[i], t.pix[i+1], t.pix[i+2], t.pix[i+3]}
}

// set the pixel at x, y. RGBA8 targets clamp and quantise the value.
func (t *target) set(x, y int, c rgba) {
	i := (y*t.size.W + x) * 4
	if t.format == pipeline.FormatRGBA8 {
		for j := range c {
			c[j] = quantise(c[j])
		}
	}
	copy(t.pix[i:i+4], c[:])
}

// quantise a value to 8 bits.
func quantise(v float32) float32 {
	return float32(toByte(v)) / 255
}

// toByte converts a value in the range 0 to 1 to a byte. NaN is zero.
func toByte(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math32.Round(v * 255))
}

// centre maps the centre of destination pixel d in a row or column of length
// dst to a continuous coordinate in a row or column of length src. the
// calculation is done in float64 so that a 1:1 mapping is exact.
func centre(d, dst, src int) float64 {
	return (float64(d) + 0.5) * float64(src) / float64(dst)
}

// pointAt returns the texel that contains the continuous coordinate.
func (t *target) pointAt(u, v float64) rgba {
	return t.at(int(math.Floor(u)), int(math.Floor(v)))
}

// linearAt returns the bilinear interpolation of the four texels around the
// continuous coordinate.
func (t *target) linearAt(u, v float64) rgba {
	u -= 0.5
	v -= 0.5
	x0 := math.Floor(u)
	y0 := math.Floor(v)
	fx := float32(u - x0)
	fy := float32(v - y0)

	ix := int(x0)
	iy := int(y0)
	a := t.at(ix, iy)
	b := t.at(ix+1, iy)
	c := t.at(ix, iy+1)
	d := t.at(ix+1, iy+1)

	var o rgba
	for i := range o {
		top := a[i]*(1-fx) + b[i]*fx
		bot := c[i]*(1-fx) + d[i]*fx
		o[i] = top*(1-fy) + bot*fy
	}
	return o
}

// sample the target with its current filter mode.
func (t *target) sample(u, v float64) rgba {
	if t.filter == pipeline.FilterLinear {
		return t.linearAt(u, v)
	}
	return t.pointAt(u, v)
}
