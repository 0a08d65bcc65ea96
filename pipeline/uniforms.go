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

// Names of the programs used by the pipeline. Devices that do not compile
// shader text (the software device) use the name to select the equivalent
// kernel.
const (
	ProgramBlit    = "blit"
	ProgramSharpen = "sharpen"
	ProgramEASU    = "easu"
	ProgramRCAS    = "rcas"
	ProgramScene   = "scene"
)

// BlitUniforms are the uniforms of the blit program. The blit program
// samples the source with the source's filter mode at the centre of every
// destination pixel.
type BlitUniforms struct{}

// SharpenUniforms are the uniforms of the unsharp mask program.
type SharpenUniforms struct {
	Sharpness float32
}

// EASUUniforms are the uniforms of the edge adaptive upscale program. The
// sizes are given explicitly because the sample footprint depends on the
// ratio between them and not on the size of the source target.
type EASUUniforms struct {
	InputSize  Size
	OutputSize Size
}

// RCASUniforms are the uniforms of the contrast adaptive sharpening
// program.
type RCASUniforms struct {
	Sharpness float32
}

// names of the uniforms that each program must expose. these are checked at
// compile time
var (
	blitUniforms    = []string{"Texture"}
	sharpenUniforms = []string{"Texture", "Sharpness"}
	easuUniforms    = []string{"Texture", "InputSize", "OutputSize"}
	rcasUniforms    = []string{"Texture", "Sharpness"}
	sceneUniforms   = []string{"MVP"}
)
