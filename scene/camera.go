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

package scene

// Camera parameters for the animated cube.
const (
	FieldOfView = 45.0
	NearPlane   = 0.1
	FarPlane    = 100.0
	Distance    = 3.0

	// rotation speed in radians per second
	SpinY = 0.9
	SpinX = 0.5
)

// ClearColor is the background colour of the animated scene.
var ClearColor = [4]float32{0.1, 0.1, 0.1, 1.0}

// Model returns the model transform of the cube after elapsed seconds.
func Model(elapsed float64) Mat4 {
	t := float32(elapsed)
	return RotateY(t * SpinY).Mul(RotateX(t * SpinX))
}

// View returns the fixed view transform.
func View() Mat4 {
	return Translate(0, 0, -Distance)
}

// Projection returns the perspective projection for a viewport with the
// given aspect ratio.
func Projection(aspect float32) Mat4 {
	return Perspective(Radians(FieldOfView), aspect, NearPlane, FarPlane)
}

// MVP returns the combined model, view and projection transform for the
// cube after elapsed seconds, viewed through a viewport of the given aspect
// ratio.
func MVP(elapsed float64, aspect float32) Mat4 {
	return Projection(aspect).Mul(View()).Mul(Model(elapsed))
}
