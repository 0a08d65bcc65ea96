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

// Package software is a CPU implementation of the pipeline.Device interface.
// It is used by the tests, the headless mode and the compare mode, and gives
// results that are independent of the graphics driver.
//
// Every pixel is stored as four float32 values. Targets with the RGBA8 format
// quantise values to 8 bits when they are written, exactly as a GPU would.
// Targets with the RGBA16F format store the full float32 value.
//
// Programs are "compiled" by selecting the CPU kernel with the same name as
// the program. The kernels mirror the GLSL source in the shaders package.
// Sampling outside a target is clamped to the edge.
package software
