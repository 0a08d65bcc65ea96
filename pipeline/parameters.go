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
	"math"
	"time"
)

// Sharpness range. Zero means no sharpening.
const (
	MinSharpness     = 0.0
	MaxSharpness     = 1.0
	DefaultSharpness = 0.2
)

// Parameters are the values used by a single frame. A copy is taken by the
// Driver at the start of every frame so the values never change during the
// passes of a frame.
//
// InternalSize is expected to be smaller than or equal to DisplaySize but
// equal and larger sizes are both supported.
type Parameters struct {
	InternalSize Size
	DisplaySize  Size
	Sharpness    float64
	Technique    Technique

	// render the dynamic scene directly at the display resolution with no
	// reconstruction. has no effect for static content
	Native bool
}

// validSharpness returns true if the value is in the sharpness range.
func validSharpness(s float64) bool {
	return !math.IsNaN(s) && s >= MinSharpness && s <= MaxSharpness
}

// FrameStats is produced by the Driver every frame and is consumed by the
// overlay.
type FrameStats struct {
	// frames per second, measured over one second windows
	FPS float64

	// duration of the most recent frame
	FrameTime time.Duration

	// number of frames since the driver was created
	Frames int

	Technique    Technique
	Native       bool
	Sharpness    float64
	InternalSize Size
	DisplaySize  Size

	// the error from the most recent frame or nil
	LastError error
}
