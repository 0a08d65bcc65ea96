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
	"image"
	"strings"

	"github.com/go-gl/gl/v3.2-core/gl"

	"github.com/jetsetilly/scalebench/assets"
	"github.com/jetsetilly/scalebench/logger"
	"github.com/jetsetilly/scalebench/pipeline"
	"github.com/jetsetilly/scalebench/scene"
)

// target implements the pipeline.Target interface.
type target struct {
	id     int
	size   pipeline.Size
	format pipeline.Format
	filter pipeline.Filter

	texture uint32
	fbo     uint32

	// zero if the target has no depth attachment
	rbo uint32
}

// Size implements the pipeline.Target interface.
func (t *target) Size() pipeline.Size {
	return t.size
}

// Format implements the pipeline.Target interface.
func (t *target) Format() pipeline.Format {
	return t.format
}

// HasDepth implements the pipeline.Target interface.
func (t *target) HasDepth() bool {
	return t.rbo != 0
}

// Filter implements the pipeline.Target interface.
func (t *target) Filter() pipeline.Filter {
	return t.filter
}

var _ pipeline.Device = (*Device)(nil)

// Device implements the pipeline.Device interface.
type Device struct {
	surface pipeline.Size

	// nil if the default framebuffer is bound
	bound *target

	live   map[*target]bool
	nextID int

	maxTextureSize int32

	// full screen passes generate their vertices from gl_VertexID but a
	// vertex array must still be bound
	emptyVAO uint32

	// the most recently uploaded mesh
	mesh         *scene.Mesh
	meshVAO      uint32
	meshVBO      [2]uint32
	meshEBO      uint32
	meshElements int32

	draws    int
	programs int

	// every program successfully compiled. deleted by Destroy()
	compiled []*program
}

// NewDevice is the preferred method of initialisation for the Device type.
func NewDevice(surface pipeline.Size) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl32: %w", err)
	}

	dev := &Device{
		surface: surface,
		live:    make(map[*target]bool),
	}

	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &dev.maxTextureSize)
	gl.GenVertexArrays(1, &dev.emptyVAO)
	gl.GenVertexArrays(1, &dev.meshVAO)
	gl.GenBuffers(2, &dev.meshVBO[0])
	gl.GenBuffers(1, &dev.meshEBO)

	logger.Logf(logger.Allow, "gl32", "vendor: %s", gl.GoStr(gl.GetString(gl.VENDOR)))
	logger.Logf(logger.Allow, "gl32", "renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))
	logger.Logf(logger.Allow, "gl32", "driver: %s", gl.GoStr(gl.GetString(gl.VERSION)))
	logger.Logf(logger.Allow, "gl32", "max texture size: %d", dev.maxTextureSize)

	return dev, nil
}

// Destroy releases every GL object owned by the device except for targets.
func (dev *Device) Destroy() {
	gl.UseProgram(0)
	for _, p := range dev.compiled {
		gl.DeleteProgram(p.handle)
		p.handle = 0
	}
	dev.compiled = dev.compiled[:0]

	gl.DeleteVertexArrays(1, &dev.emptyVAO)
	gl.DeleteVertexArrays(1, &dev.meshVAO)
	gl.DeleteBuffers(2, &dev.meshVBO[0])
	gl.DeleteBuffers(1, &dev.meshEBO)
	dev.mesh = nil
}

func (dev *Device) own(t pipeline.Target) (*target, error) {
	if t == nil {
		return nil, nil
	}
	tt, ok := t.(*target)
	if !ok || !dev.live[tt] {
		return nil, fmt.Errorf("gl32: target is not live")
	}
	return tt, nil
}

// rebind the currently bound write surface. used after an operation that
// had to bind a different framebuffer.
func (dev *Device) rebind() {
	if dev.bound == nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, int32(dev.surface.W), int32(dev.surface.H))
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, dev.bound.fbo)
	gl.Viewport(0, 0, int32(dev.bound.size.W), int32(dev.bound.size.H))
}

func filterParam(f pipeline.Filter) int32 {
	if f == pipeline.FilterLinear {
		return gl.LINEAR
	}
	return gl.NEAREST
}

// CreateTarget implements the pipeline.Device interface.
func (dev *Device) CreateTarget(size pipeline.Size, format pipeline.Format, wantsDepth bool) (pipeline.Target, error) {
	if size.IsZero() {
		return nil, fmt.Errorf("gl32: %w: size is %s", pipeline.ErrTargetCreation, size)
	}
	if int32(size.W) > dev.maxTextureSize || int32(size.H) > dev.maxTextureSize {
		return nil, fmt.Errorf("gl32: %w: %s exceeds maximum of %d", pipeline.ErrTargetCreation, size, dev.maxTextureSize)
	}

	var internal int32
	var typ uint32
	switch format {
	case pipeline.FormatRGBA8:
		internal = gl.RGBA8
		typ = gl.UNSIGNED_BYTE
	case pipeline.FormatRGBA16F:
		internal = gl.RGBA16F
		typ = gl.HALF_FLOAT
	default:
		return nil, fmt.Errorf("gl32: %w: %s", pipeline.ErrTargetCreation, format)
	}

	t := &target{
		size:   size,
		format: format,
	}

	gl.GenTextures(1, &t.texture)
	gl.BindTexture(gl.TEXTURE_2D, t.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(size.W), int32(size.H), 0, gl.RGBA, typ, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.GenFramebuffers(1, &t.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.texture, 0)

	if wantsDepth {
		gl.GenRenderbuffers(1, &t.rbo)
		gl.BindRenderbuffer(gl.RENDERBUFFER, t.rbo)
		gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(size.W), int32(size.H))
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, t.rbo)
	}

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	dev.rebind()

	if status != gl.FRAMEBUFFER_COMPLETE {
		dev.release(t)
		return nil, fmt.Errorf("gl32: %w: %s %s framebuffer incomplete (%#x)", pipeline.ErrTargetCreation, size, format, status)
	}

	dev.nextID++
	t.id = dev.nextID
	dev.live[t] = true

	return t, nil
}

func (dev *Device) release(t *target) {
	if t.rbo != 0 {
		gl.DeleteRenderbuffers(1, &t.rbo)
		t.rbo = 0
	}
	gl.DeleteFramebuffers(1, &t.fbo)
	gl.DeleteTextures(1, &t.texture)
}

// Upload implements the pipeline.Device interface.
func (dev *Device) Upload(t pipeline.Target, img *image.RGBA) error {
	tt, err := dev.own(t)
	if err != nil {
		return err
	}
	if tt == nil {
		return fmt.Errorf("gl32: cannot upload to the presentable surface")
	}

	b := img.Bounds()
	if b.Dx() != tt.size.W || b.Dy() != tt.size.H {
		return fmt.Errorf("gl32: image size %dx%d does not match target size %s", b.Dx(), b.Dy(), tt.size)
	}

	pix := assets.FlipVertical(img)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(pix.Stride)/4)
	defer gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	gl.BindTexture(gl.TEXTURE_2D, tt.texture)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(b.Dx()), int32(b.Dy()), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix.Pix))

	return nil
}

// DestroyTarget implements the pipeline.Device interface.
func (dev *Device) DestroyTarget(t pipeline.Target) {
	tt, ok := t.(*target)
	if !ok || !dev.live[tt] {
		return
	}
	delete(dev.live, tt)
	if dev.bound == tt {
		dev.bound = nil
		dev.rebind()
	}
	dev.release(tt)
}

// Bind implements the pipeline.Device interface.
func (dev *Device) Bind(t pipeline.Target) error {
	tt, err := dev.own(t)
	if err != nil {
		return err
	}
	dev.bound = tt
	dev.rebind()
	return nil
}

// SetFilter implements the pipeline.Device interface.
func (dev *Device) SetFilter(t pipeline.Target, f pipeline.Filter) {
	tt, err := dev.own(t)
	if err != nil || tt == nil {
		return
	}
	tt.filter = f
	gl.BindTexture(gl.TEXTURE_2D, tt.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filterParam(f))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filterParam(f))
}

// Clear implements the pipeline.Device interface.
func (dev *Device) Clear(color [4]float32, depth bool) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	mask := uint32(gl.COLOR_BUFFER_BIT)
	if depth && (dev.bound == nil || dev.bound.rbo != 0) {
		gl.DepthMask(true)
		gl.ClearDepth(1.0)
		mask |= gl.DEPTH_BUFFER_BIT
	}
	gl.Disable(gl.SCISSOR_TEST)
	gl.Clear(mask)
}

// Surface implements the pipeline.Device interface.
func (dev *Device) Surface() pipeline.Size {
	return dev.surface
}

// ResizeSurface implements the pipeline.Device interface. The default
// framebuffer is resized by the window system so only the viewport changes.
func (dev *Device) ResizeSurface(size pipeline.Size) {
	if size.IsZero() {
		return
	}
	dev.surface = size
	if dev.bound == nil {
		dev.rebind()
	}
}

// ReadPixels implements the pipeline.Device interface.
func (dev *Device) ReadPixels(t pipeline.Target) (*image.RGBA, error) {
	tt, err := dev.own(t)
	if err != nil {
		return nil, err
	}

	size := dev.surface
	var fbo uint32
	if tt != nil {
		size = tt.size
		fbo = tt.fbo
	}

	img := image.NewRGBA(image.Rect(0, 0, size.W, size.H))
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(size.W), int32(size.H), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	dev.rebind()

	// top row first
	return assets.FlipVertical(img), nil
}

// Stats implements the pipeline.Device interface.
func (dev *Device) Stats() pipeline.DeviceStats {
	return pipeline.DeviceStats{
		LiveTargets: len(dev.live),
		Draws:       dev.draws,
		Programs:    dev.programs,
	}
}

// String returns the GL version information.
func (dev *Device) String() string {
	s := strings.Builder{}
	s.WriteString(gl.GoStr(gl.GetString(gl.RENDERER)))
	s.WriteString(" ")
	s.WriteString(gl.GoStr(gl.GetString(gl.VERSION)))
	return s.String()
}
