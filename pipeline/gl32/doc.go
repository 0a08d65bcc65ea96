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

// Package gl32 implements the pipeline.Device interface with OpenGL 3.2 core
// profile. A GL context must be current on the calling goroutine before
// NewDevice() is called and for every subsequent call to the Device.
//
// Images are uploaded to textures with the bottom row first, which is the
// native orientation of OpenGL. ReadPixels() flips the image back so that
// the top row is first, which is the orientation expected by the image
// package.
package gl32
