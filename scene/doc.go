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

// Package scene contains the minimal 3-D content used to exercise the render
// pipeline with motion: a unit cube with coloured faces and the small amount
// of matrix math needed to animate and project it.
//
// Matrices are column-major, matching the layout expected by OpenGL uniform
// uploads, so a Mat4 can be passed directly to gl.UniformMatrix4fv() without
// transposition.
package scene
