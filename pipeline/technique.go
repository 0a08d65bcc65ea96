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

import (
	"fmt"
	"strings"
)

// Technique is the reconstruction technique used to turn the internal
// resolution image into the display resolution image. It is a closed
// enumeration and Reconstructor.Reconstruct() is the only place that switches
// over it.
type Technique int

// List of valid Technique values.
const (
	// nearest neighbour sampling
	Point Technique = iota

	// hardware style bilinear filtering
	Bilinear

	// bilinear into an intermediate target followed by an unsharp mask
	BilinearSharpen

	// edge adaptive spatial upscale into an intermediate target followed by
	// robust contrast adaptive sharpening
	EASU

	numTechniques
)

// DefaultTechnique is the technique selected on startup.
const DefaultTechnique = Bilinear

// Techniques lists every valid technique in order.
var Techniques = []Technique{Point, Bilinear, BilinearSharpen, EASU}

func (t Technique) String() string {
	switch t {
	case Point:
		return "Point"
	case Bilinear:
		return "Bilinear"
	case BilinearSharpen:
		return "Bilinear+Sharpen"
	case EASU:
		return "EASU+RCAS"
	}
	return fmt.Sprintf("unknown technique (%d)", int(t))
}

// Valid returns true if the value is one of the listed techniques.
func (t Technique) Valid() bool {
	return t >= 0 && t < numTechniques
}

// Passes returns the number of passes needed by the technique. Techniques
// with two passes need an intermediate target.
func (t Technique) Passes() int {
	switch t {
	case BilinearSharpen, EASU:
		return 2
	}
	return 1
}

// InputFilter returns the filter mode the source target must have when it is
// read by the first pass of the technique.
func (t Technique) InputFilter() Filter {
	switch t {
	case Bilinear, BilinearSharpen:
		return FilterLinear
	}
	return FilterPoint
}

// Sharpens returns true if the sharpness parameter affects the technique.
func (t Technique) Sharpens() bool {
	return t.Passes() == 2
}

// Next returns the technique that follows in the list, wrapping around to
// the first.
func (t Technique) Next() Technique {
	if !t.Valid() {
		return DefaultTechnique
	}
	return (t + 1) % numTechniques
}

// ParseTechnique converts a name to a Technique. Names are case insensitive
// and can be the String() value or one of the short names: point, nearest,
// bilinear, linear, sharpen, easu, fsr.
func ParseTechnique(s string) (Technique, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "point", "nearest":
		return Point, nil
	case "bilinear", "linear":
		return Bilinear, nil
	case "sharpen", "bilinearsharpen", "bilinear+sharpen":
		return BilinearSharpen, nil
	case "easu", "fsr", "easu+rcas":
		return EASU, nil
	}
	return DefaultTechnique, fmt.Errorf("technique: unrecognised name (%s)", s)
}
