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

package gl32

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.2-core/gl"

	"github.com/jetsetilly/scalebench/pipeline"
	"github.com/jetsetilly/scalebench/scene"
)

// program implements the pipeline.Program interface.
type program struct {
	name   string
	handle uint32

	// uniform locations keyed by name. every name is resolved when the
	// program is compiled
	uniforms map[string]int32

	// attribute locations. only used by mesh programs
	position int32
	color    int32
}

// Name implements the pipeline.Program interface.
func (p *program) Name() string {
	return p.name
}

// failureLog returns the text for a failed compile or link. a driver is not
// required to write anything to the info log when compilation fails.
func failureLog(stage string, log string) string {
	log = strings.TrimSpace(strings.TrimRight(log, "\x00"))
	if log == "" {
		log = "failed with no log"
	}
	return fmt.Sprintf("%s: %s", stage, log)
}

// compileShader returns the shader handle. ok is false if the compile status
// of the shader is false, in which case the shader has been deleted and the
// compiler log is returned.
func compileShader(typ uint32, source string) (handle uint32, log string, ok bool) {
	handle = gl.CreateShader(typ)

	csource, free := gl.Strs(source + "\x00")
	defer free()
	gl.ShaderSource(handle, 1, csource, nil)
	gl.CompileShader(handle)

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	if status != gl.FALSE {
		return handle, "", true
	}

	var logLength int32
	gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)
	if logLength > 0 {
		buf := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(handle, logLength, nil, gl.Str(buf))
		log = buf
	}
	gl.DeleteShader(handle)
	return 0, log, false
}

// Compile implements the pipeline.Device interface.
func (dev *Device) Compile(src pipeline.ProgramSource) (pipeline.Program, error) {
	vert, log, ok := compileShader(gl.VERTEX_SHADER, src.Vertex)
	if !ok {
		return nil, &pipeline.CompileError{Program: src.Name, Log: failureLog("vertex", log)}
	}
	defer gl.DeleteShader(vert)

	frag, log, ok := compileShader(gl.FRAGMENT_SHADER, src.Fragment)
	if !ok {
		return nil, &pipeline.CompileError{Program: src.Name, Log: failureLog("fragment", log)}
	}
	defer gl.DeleteShader(frag)

	p := &program{
		name:     src.Name,
		handle:   gl.CreateProgram(),
		uniforms: make(map[string]int32),
	}

	gl.AttachShader(p.handle, vert)
	gl.AttachShader(p.handle, frag)
	gl.BindFragDataLocation(p.handle, 0, gl.Str("Out_Color\x00"))
	gl.LinkProgram(p.handle)

	var status int32
	gl.GetProgramiv(p.handle, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(p.handle, gl.INFO_LOG_LENGTH, &logLength)
		var log string
		if logLength > 0 {
			buf := strings.Repeat("\x00", int(logLength+1))
			gl.GetProgramInfoLog(p.handle, logLength, nil, gl.Str(buf))
			log = buf
		}
		gl.DeleteProgram(p.handle)
		return nil, &pipeline.CompileError{Program: src.Name, Log: failureLog("link", log)}
	}

	// a uniform that is declared but unused is removed by the compiler. this
	// is treated as an error because the pass would silently ignore the value
	for _, name := range src.Uniforms {
		loc := gl.GetUniformLocation(p.handle, gl.Str(name+"\x00"))
		if loc < 0 {
			gl.DeleteProgram(p.handle)
			return nil, &pipeline.CompileError{Program: src.Name, Log: fmt.Sprintf("uniform %s not found", name)}
		}
		p.uniforms[name] = loc
	}

	p.position = gl.GetAttribLocation(p.handle, gl.Str("Position\x00"))
	p.color = gl.GetAttribLocation(p.handle, gl.Str("Color\x00"))

	dev.programs++
	dev.compiled = append(dev.compiled, p)

	return p, nil
}

func (p *program) set1f(name string, v float32) {
	gl.Uniform1f(p.uniforms[name], v)
}

func (p *program) set2f(name string, sz pipeline.Size) {
	gl.Uniform2f(p.uniforms[name], float32(sz.W), float32(sz.H))
}

// setUniforms sets the uniforms of the program from the uniform record.
func (p *program) setUniforms(uniforms any) error {
	switch u := uniforms.(type) {
	case nil, pipeline.BlitUniforms, *pipeline.BlitUniforms:
	case pipeline.SharpenUniforms:
		p.set1f("Sharpness", u.Sharpness)
	case *pipeline.SharpenUniforms:
		p.set1f("Sharpness", u.Sharpness)
	case pipeline.EASUUniforms:
		p.set2f("InputSize", u.InputSize)
		p.set2f("OutputSize", u.OutputSize)
	case *pipeline.EASUUniforms:
		p.set2f("InputSize", u.InputSize)
		p.set2f("OutputSize", u.OutputSize)
	case pipeline.RCASUniforms:
		p.set1f("Sharpness", u.Sharpness)
	case *pipeline.RCASUniforms:
		p.set1f("Sharpness", u.Sharpness)
	default:
		return fmt.Errorf("%w: unsupported uniforms %T", pipeline.ErrInvalidParameters, uniforms)
	}

	// every uniform record must supply the uniforms the program declares
	for name := range p.uniforms {
		switch name {
		case "Texture":
		case "Sharpness":
			switch uniforms.(type) {
			case pipeline.SharpenUniforms, *pipeline.SharpenUniforms, pipeline.RCASUniforms, *pipeline.RCASUniforms:
			default:
				return fmt.Errorf("%w: %s needs Sharpness", pipeline.ErrInvalidParameters, p.name)
			}
		case "InputSize", "OutputSize":
			switch uniforms.(type) {
			case pipeline.EASUUniforms, *pipeline.EASUUniforms:
			default:
				return fmt.Errorf("%w: %s needs %s", pipeline.ErrInvalidParameters, p.name, name)
			}
		}
	}

	return nil
}

// Draw implements the pipeline.Device interface.
func (dev *Device) Draw(p pipeline.Program, src pipeline.Target, uniforms any) error {
	prog, ok := p.(*program)
	if !ok {
		return fmt.Errorf("gl32: draw: not a gl32 program")
	}
	if _, ok := prog.uniforms["Texture"]; !ok {
		return fmt.Errorf("gl32: draw: %s is not a full screen program", prog.name)
	}

	s, err := dev.own(src)
	if err != nil {
		return fmt.Errorf("gl32: draw: %w", err)
	}
	if s == nil {
		return fmt.Errorf("gl32: draw: the presentable surface can not be sampled")
	}
	if s == dev.bound {
		return fmt.Errorf("gl32: draw: source is also the write surface")
	}

	gl.UseProgram(prog.handle)
	if err := prog.setUniforms(uniforms); err != nil {
		return fmt.Errorf("gl32: draw: %s: %w", prog.name, err)
	}

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, s.texture)
	gl.Uniform1i(prog.uniforms["Texture"], 0)

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.SCISSOR_TEST)

	gl.BindVertexArray(dev.emptyVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)

	dev.draws++
	return nil
}

// uploadMesh copies the mesh into the vertex buffers if it is not the mesh
// that was most recently uploaded.
func (dev *Device) uploadMesh(prog *program, m *scene.Mesh) {
	if dev.mesh == m {
		return
	}
	dev.mesh = m
	dev.meshElements = int32(len(m.Indices))

	gl.BindVertexArray(dev.meshVAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, dev.meshVBO[0])
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Positions)*4, gl.Ptr(m.Positions), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(uint32(prog.position))
	gl.VertexAttribPointerWithOffset(uint32(prog.position), 3, gl.FLOAT, false, 0, 0)

	gl.BindBuffer(gl.ARRAY_BUFFER, dev.meshVBO[1])
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Colors)*4, gl.Ptr(m.Colors), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(uint32(prog.color))
	gl.VertexAttribPointerWithOffset(uint32(prog.color), 3, gl.FLOAT, false, 0, 0)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, dev.meshEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*2, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
}

// DrawMesh implements the pipeline.Device interface.
func (dev *Device) DrawMesh(p pipeline.Program, m *scene.Mesh, mvp scene.Mat4) error {
	prog, ok := p.(*program)
	if !ok {
		return fmt.Errorf("gl32: draw mesh: not a gl32 program")
	}
	loc, ok := prog.uniforms["MVP"]
	if !ok || prog.position < 0 || prog.color < 0 {
		return fmt.Errorf("gl32: draw mesh: %s is not a mesh program", prog.name)
	}
	if len(m.Indices) == 0 {
		return nil
	}

	gl.UseProgram(prog.handle)
	dev.uploadMesh(prog, m)
	gl.UniformMatrix4fv(loc, 1, false, &mvp[0])

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)

	gl.BindVertexArray(dev.meshVAO)
	gl.DrawElementsWithOffset(gl.TRIANGLES, dev.meshElements, gl.UNSIGNED_SHORT, 0)
	gl.BindVertexArray(0)

	gl.Disable(gl.DEPTH_TEST)

	dev.draws++
	return nil
}
