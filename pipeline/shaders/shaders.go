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

// Package shaders contains the GLSL source of the pipeline's programs. The
// source is written for GLSL 1.50 (OpenGL 3.2 core profile).
package shaders

import (
	_ "embed"
)

// FullscreenVertex draws a single triangle covering the viewport. It needs no
// vertex attributes, only an empty vertex array object.
//
//go:embed fullscreen.vert
var FullscreenVertex string

//go:embed blit.frag
var Blit string

//go:embed sharpen.frag
var Sharpen string

//go:embed easu.frag
var EASU string

//go:embed rcas.frag
var RCAS string

//go:embed scene.vert
var SceneVertex string

//go:embed scene.frag
var SceneFragment string
