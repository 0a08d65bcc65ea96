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
	"image"

	"github.com/jetsetilly/scalebench/scene"
)

// Scene is the source content of the pipeline.
type Scene interface {
	// Dynamic returns true if the content changes every frame and must be
	// rendered into the internal target.
	Dynamic() bool

	// Render the scene into the target after elapsed seconds. A nil target
	// is the presentable surface. Static content does nothing.
	Render(dev Device, into Target, elapsed float64) error
}

// StaticScene is a texture decoded from an image. The texture is the source
// of the reconstruction pass and the scene pass is a no-op.
type StaticScene struct {
	dev     Device
	texture Target
}

// NewStaticScene uploads the image to a new texture. A nil image is allowed
// and results in a scene with no texture, in which case Texture() returns nil
// and reconstruction fails with ErrInvalidParameters.
func NewStaticScene(dev Device, img *image.RGBA) (*StaticScene, error) {
	scn := &StaticScene{dev: dev}
	if img == nil {
		return scn, nil
	}
	if err := scn.Replace(img); err != nil {
		return nil, err
	}
	return scn, nil
}

// Dynamic implements the Scene interface.
func (scn *StaticScene) Dynamic() bool {
	return false
}

// Render implements the Scene interface.
func (scn *StaticScene) Render(_ Device, _ Target, _ float64) error {
	return nil
}

// Texture returns the texture or nil if there is no texture.
func (scn *StaticScene) Texture() Target {
	return scn.texture
}

// Replace the image. The existing texture is reused if the new image is the
// same size. Used when the source file is reloaded.
func (scn *StaticScene) Replace(img *image.RGBA) error {
	sz := Size{W: img.Rect.Dx(), H: img.Rect.Dy()}

	if scn.texture == nil || scn.texture.Size() != sz {
		t, err := scn.dev.CreateTarget(sz, FormatRGBA8, false)
		if err != nil {
			return fmt.Errorf("static scene: %w", err)
		}
		if scn.texture != nil {
			scn.dev.DestroyTarget(scn.texture)
		}
		scn.texture = t
	}

	if err := scn.dev.Upload(scn.texture, img); err != nil {
		return fmt.Errorf("static scene: %w", err)
	}

	return nil
}

// Destroy releases the texture.
func (scn *StaticScene) Destroy() {
	if scn.texture != nil {
		scn.dev.DestroyTarget(scn.texture)
		scn.texture = nil
	}
}

// CubeScene is the animated cube. The transform is derived from the elapsed
// time every frame and is not stored.
type CubeScene struct {
	program Program
	mesh    *scene.Mesh
}

// NewCubeScene compiles the scene program. A compile error is returned as a
// *CompileError.
func NewCubeScene(dev Device) (*CubeScene, error) {
	p, err := dev.Compile(Sources()[ProgramScene])
	if err != nil {
		return nil, fmt.Errorf("cube scene: %w", err)
	}
	return &CubeScene{
		program: p,
		mesh:    scene.Cube(),
	}, nil
}

// Dynamic implements the Scene interface.
func (scn *CubeScene) Dynamic() bool {
	return true
}

// Render implements the Scene interface. The colour and depth of the target
// are cleared before the cube is drawn. The projection uses the aspect ratio
// of the target so the viewport and the projection always agree.
func (scn *CubeScene) Render(dev Device, into Target, elapsed float64) error {
	sz := dev.Surface()
	if into != nil {
		sz = into.Size()
	}

	return WithTarget(dev, into, func() error {
		dev.Clear(scene.ClearColor, true)
		return dev.DrawMesh(scn.program, scn.mesh, scene.MVP(elapsed, sz.Aspect()))
	})
}
