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
	"image"

	"github.com/jetsetilly/scalebench/scene"
)

// Target is an offscreen render target: a colour attachment and an optional
// depth attachment. Targets are created and owned by a Device and must only
// be passed back to the Device that created them.
//
// The filter mode can be changed independently of the contents with
// Device.SetFilter().
type Target interface {
	Size() Size
	Format() Format
	HasDepth() bool
	Filter() Filter
}

// Program is a compiled shader program. Uniform locations are resolved when
// the program is compiled, not when it is drawn.
type Program interface {
	Name() string
}

// ProgramSource is the input to Device.Compile(). Uniforms lists the uniform
// names that the program must expose. A name that cannot be resolved is a
// compile error.
type ProgramSource struct {
	Name     string
	Vertex   string
	Fragment string
	Uniforms []string
}

// DeviceStats are counters maintained by a Device.
type DeviceStats struct {
	// number of targets that have been created and not destroyed
	LiveTargets int

	// total number of draw calls submitted
	Draws int

	// number of successfully compiled programs
	Programs int
}

// Device is the graphics device used by the pipeline. Implementations are
// not safe for concurrent use and must only be used from the goroutine that
// owns the graphics context.
type Device interface {
	// CreateTarget allocates a new render target and checks that it is
	// complete. On failure any partial resources are released and the
	// returned error wraps ErrTargetCreation.
	CreateTarget(size Size, format Format, wantsDepth bool) (Target, error)

	// Upload copies the image into the colour attachment of the target. The
	// image must be the same size as the target.
	Upload(t Target, img *image.RGBA) error

	// DestroyTarget releases the target. Destroying a target more than once
	// is harmless.
	DestroyTarget(t Target)

	// Bind the target as the write surface for all following draw and clear
	// calls. The viewport is set to the size of the target. A nil target
	// binds the presentable surface.
	Bind(t Target) error

	// SetFilter changes the sampling mode of the target.
	SetFilter(t Target, f Filter)

	// Clear the bound write surface. The depth attachment is cleared too if
	// depth is true and the surface has one.
	Clear(color [4]float32, depth bool)

	// Surface returns the size of the presentable surface.
	Surface() Size

	// ResizeSurface is called when the size of the presentable surface
	// changes.
	ResizeSurface(size Size)

	// Compile a program. On failure the error is a *CompileError.
	Compile(src ProgramSource) (Program, error)

	// Draw a full screen pass into the bound write surface, sampling from
	// src. The uniforms argument must be the uniform record for the program
	// (see uniforms.go) or nil if the program has no uniforms.
	Draw(p Program, src Target, uniforms any) error

	// DrawMesh draws a mesh into the bound write surface with depth testing.
	DrawMesh(p Program, m *scene.Mesh, mvp scene.Mat4) error

	// ReadPixels returns a copy of the colour attachment of the target. A nil
	// target reads the presentable surface. The image is top row first.
	ReadPixels(t Target) (*image.RGBA, error)

	// Stats returns the current device counters.
	Stats() DeviceStats
}
