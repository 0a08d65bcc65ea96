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

// Package pipeline implements the resolution-decoupled render pipeline. The
// scene is rendered into an offscreen target at the internal resolution and
// then reconstructed at the display resolution by one of the reconstruction
// techniques.
//
// The package does not talk to a graphics API directly. All rendering goes
// through the Device interface, which is implemented by the software package
// (a CPU implementation used by tests, the headless mode and the compare
// mode) and by the gl32 package (OpenGL 3.2 core, used in the interactive
// mode).
//
// The components are, in dependency order:
//
//	Targets        owns the offscreen render targets
//	Scene          renders the source content into the internal target
//	Reconstructor  the single dispatch point over the Technique enumeration
//	State          the parameters mutated by the input and overlay
//	Driver         orders the passes every frame
//
// Device state is changed explicitly. Render targets are bound for the
// duration of a function with WithTarget(), which always restores the
// presentable surface afterwards.
package pipeline
