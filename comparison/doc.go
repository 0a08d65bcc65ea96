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

// Package comparison measures the quality of the reconstruction techniques.
//
// A scenario file lists the content to render, the internal and display
// sizes, the techniques and the sharpness. For every technique the scenario
// is rendered with the software device and the output is compared against a
// reference image:
//
//   - for the cube the reference is the cube rendered natively at the display
//     size
//   - for an image the reference is the original image resized to the
//     display size with a Lanczos filter
//
// The result of each comparison is the peak signal to noise ratio, the
// largest absolute channel error and the mean absolute channel error, along
// with a digest of the rendered frames. Optionally, the rendered image, the
// reference and a difference image are written as PNG files.
//
// Scenario files are TOML:
//
//	[[scenario]]
//	name = "cube-2x"
//	content = "cube"
//	internal = "640x360"
//	display = "1280x720"
//	techniques = ["point", "bilinear", "sharpen", "easu"]
//	sharpness = 0.2
//	time = 1.5
//
// or YAML with the same fields and a top level "scenarios" list.
package comparison
