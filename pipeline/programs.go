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
	"github.com/jetsetilly/scalebench/pipeline/shaders"
)

// Sources returns the source of every program used by the pipeline, keyed by
// program name.
func Sources() map[string]ProgramSource {
	return map[string]ProgramSource{
		ProgramBlit: {
			Name:     ProgramBlit,
			Vertex:   shaders.FullscreenVertex,
			Fragment: shaders.Blit,
			Uniforms: blitUniforms,
		},
		ProgramSharpen: {
			Name:     ProgramSharpen,
			Vertex:   shaders.FullscreenVertex,
			Fragment: shaders.Sharpen,
			Uniforms: sharpenUniforms,
		},
		ProgramEASU: {
			Name:     ProgramEASU,
			Vertex:   shaders.FullscreenVertex,
			Fragment: shaders.EASU,
			Uniforms: easuUniforms,
		},
		ProgramRCAS: {
			Name:     ProgramRCAS,
			Vertex:   shaders.FullscreenVertex,
			Fragment: shaders.RCAS,
			Uniforms: rcasUniforms,
		},
		ProgramScene: {
			Name:     ProgramScene,
			Vertex:   shaders.SceneVertex,
			Fragment: shaders.SceneFragment,
			Uniforms: sceneUniforms,
		},
	}
}

// programs returns the names of the programs needed by the technique, in
// the order they are run.
func (t Technique) programs() []string {
	switch t {
	case Point, Bilinear:
		return []string{ProgramBlit}
	case BilinearSharpen:
		return []string{ProgramBlit, ProgramSharpen}
	case EASU:
		return []string{ProgramEASU, ProgramRCAS}
	}
	return nil
}
