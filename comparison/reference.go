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

package comparison

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/transform"

	"github.com/jetsetilly/scalebench/pipeline"
	"github.com/jetsetilly/scalebench/pipeline/software"
)

// Resize an image with a Lanczos filter. The image is returned unchanged if
// it is already the requested size.
func Resize(img *image.RGBA, size pipeline.Size) *image.RGBA {
	if img.Rect.Dx() == size.W && img.Rect.Dy() == size.H {
		return img
	}
	return transform.Resize(img, size.W, size.H, transform.Lanczos)
}

// cubeReference renders the cube directly at the display size.
func cubeReference(p plan) (*image.RGBA, error) {
	dev := software.NewDevice(p.display)

	scn, err := pipeline.NewCubeScene(dev)
	if err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}

	state := pipeline.NewState(p.internal, p.display)
	state.SetNative(true)

	drv, err := pipeline.NewDriver(dev, state, scn, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}
	defer drv.Destroy()

	err = drv.RunFrame(p.lastFrame())
	if err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}

	return drv.Screenshot()
}
