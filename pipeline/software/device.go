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

package software

import (
	"fmt"
	"image"

	"github.com/jetsetilly/scalebench/logger"
	"github.com/jetsetilly/scalebench/pipeline"
	"github.com/jetsetilly/scalebench/scene"
)

// DefaultMaxTargetSize is the largest width or height of a target.
const DefaultMaxTargetSize = 8192

var _ pipeline.Device = (*Device)(nil)

// Device implements the pipeline.Device interface.
type Device struct {
	// targets larger than this in either dimension fail with
	// ErrTargetCreation
	MaxTargetSize int

	// whether RGBA16F targets can be created
	FloatTargets bool

	surface *target
	bound   *target

	live   map[*target]bool
	nextID int

	draws    int
	programs int
}

// NewDevice is the preferred method of initialisation for the Device type.
// The presentable surface has a depth attachment.
func NewDevice(surface pipeline.Size) *Device {
	dev := &Device{
		MaxTargetSize: DefaultMaxTargetSize,
		FloatTargets:  true,
		live:          make(map[*target]bool),
	}
	dev.surface = newTarget(dev, 0, surface, pipeline.FormatRGBA8, true)
	dev.bound = dev.surface
	return dev
}

// own returns the device's target or an error if the target was created by
// a different device or has been destroyed. a nil target is the presentable
// surface.
func (dev *Device) own(t pipeline.Target) (*target, error) {
	if t == nil {
		return dev.surface, nil
	}
	tt, ok := t.(*target)
	if !ok || tt.dev != dev {
		return nil, fmt.Errorf("software: target not created by this device")
	}
	if tt.destroyed {
		return nil, fmt.Errorf("software: target %d has been destroyed", tt.id)
	}
	return tt, nil
}

// CreateTarget implements the pipeline.Device interface.
func (dev *Device) CreateTarget(size pipeline.Size, format pipeline.Format, wantsDepth bool) (pipeline.Target, error) {
	if size.IsZero() {
		return nil, fmt.Errorf("software: %w: size is %s", pipeline.ErrTargetCreation, size)
	}
	if size.W > dev.MaxTargetSize || size.H > dev.MaxTargetSize {
		return nil, fmt.Errorf("software: %w: %s exceeds maximum of %d", pipeline.ErrTargetCreation, size, dev.MaxTargetSize)
	}
	switch format {
	case pipeline.FormatRGBA8:
	case pipeline.FormatRGBA16F:
		if !dev.FloatTargets {
			return nil, fmt.Errorf("software: %w: %s not supported", pipeline.ErrTargetCreation, format)
		}
	default:
		return nil, fmt.Errorf("software: %w: %s", pipeline.ErrTargetCreation, format)
	}

	dev.nextID++
	t := newTarget(dev, dev.nextID, size, format, wantsDepth)
	dev.live[t] = true
	return t, nil
}

// Upload implements the pipeline.Device interface.
func (dev *Device) Upload(t pipeline.Target, img *image.RGBA) error {
	tt, err := dev.own(t)
	if err != nil {
		return err
	}
	if tt == dev.surface {
		return fmt.Errorf("software: cannot upload to the presentable surface")
	}

	b := img.Bounds()
	if b.Dx() != tt.size.W || b.Dy() != tt.size.H {
		return fmt.Errorf("software: image size %dx%d does not match target size %s", b.Dx(), b.Dy(), tt.size)
	}

	for y := 0; y < tt.size.H; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < tt.size.W; x++ {
			i := x * 4
			tt.set(x, y, rgba{
				float32(row[i]) / 255,
				float32(row[i+1]) / 255,
				float32(row[i+2]) / 255,
				float32(row[i+3]) / 255,
			})
		}
	}

	return nil
}

// DestroyTarget implements the pipeline.Device interface.
func (dev *Device) DestroyTarget(t pipeline.Target) {
	tt, ok := t.(*target)
	if !ok || tt.dev != dev || tt.destroyed || tt == dev.surface {
		return
	}
	tt.destroyed = true
	tt.pix = nil
	tt.depth = nil
	delete(dev.live, tt)
	if dev.bound == tt {
		dev.bound = dev.surface
	}
}

// Bind implements the pipeline.Device interface.
func (dev *Device) Bind(t pipeline.Target) error {
	tt, err := dev.own(t)
	if err != nil {
		return err
	}
	dev.bound = tt
	return nil
}

// SetFilter implements the pipeline.Device interface.
func (dev *Device) SetFilter(t pipeline.Target, f pipeline.Filter) {
	if tt, err := dev.own(t); err == nil {
		tt.filter = f
	}
}

// Clear implements the pipeline.Device interface.
func (dev *Device) Clear(color [4]float32, depth bool) {
	t := dev.bound
	for y := 0; y < t.size.H; y++ {
		for x := 0; x < t.size.W; x++ {
			t.set(x, y, color)
		}
	}
	if depth && t.depth != nil {
		for i := range t.depth {
			t.depth[i] = 1.0
		}
	}
}

// Surface implements the pipeline.Device interface.
func (dev *Device) Surface() pipeline.Size {
	return dev.surface.size
}

// ResizeSurface implements the pipeline.Device interface. The contents of
// the surface are lost.
func (dev *Device) ResizeSurface(size pipeline.Size) {
	if size.IsZero() || size == dev.surface.size {
		return
	}
	rebind := dev.bound == dev.surface
	dev.surface = newTarget(dev, 0, size, pipeline.FormatRGBA8, true)
	if rebind {
		dev.bound = dev.surface
	}
	logger.Logf(logger.Allow, "software", "surface resized to %s", size)
}

// Compile implements the pipeline.Device interface.
func (dev *Device) Compile(src pipeline.ProgramSource) (pipeline.Program, error) {
	k, ok := kernels[src.Name]
	if !ok {
		return nil, &pipeline.CompileError{Program: src.Name, Log: "no kernel for program"}
	}
	if src.Vertex == "" || src.Fragment == "" {
		return nil, &pipeline.CompileError{Program: src.Name, Log: "empty shader source"}
	}
	dev.programs++
	return &program{name: src.Name, kernel: k}, nil
}

// Draw implements the pipeline.Device interface.
func (dev *Device) Draw(p pipeline.Program, src pipeline.Target, uniforms any) error {
	prog, ok := p.(*program)
	if !ok || prog.kernel.pass == nil {
		return fmt.Errorf("software: draw: not a full screen program")
	}

	s, err := dev.own(src)
	if err != nil {
		return fmt.Errorf("software: draw: %w", err)
	}
	if s == dev.bound {
		return fmt.Errorf("software: draw: source is also the write surface")
	}

	f, err := prog.kernel.pass(s, dev.bound.size, uniforms)
	if err != nil {
		return fmt.Errorf("software: draw: %s: %w", prog.name, err)
	}

	dest := dev.bound
	for y := 0; y < dest.size.H; y++ {
		for x := 0; x < dest.size.W; x++ {
			dest.set(x, y, f(x, y))
		}
	}

	dev.draws++
	return nil
}

// DrawMesh implements the pipeline.Device interface.
func (dev *Device) DrawMesh(p pipeline.Program, m *scene.Mesh, mvp scene.Mat4) error {
	prog, ok := p.(*program)
	if !ok || !prog.kernel.mesh {
		return fmt.Errorf("software: draw mesh: not a mesh program")
	}
	rasterise(dev.bound, m, mvp)
	dev.draws++
	return nil
}

// ReadPixels implements the pipeline.Device interface.
func (dev *Device) ReadPixels(t pipeline.Target) (*image.RGBA, error) {
	tt, err := dev.own(t)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, tt.size.W, tt.size.H))
	for y := 0; y < tt.size.H; y++ {
		for x := 0; x < tt.size.W; x++ {
			c := tt.at(x, y)
			i := img.PixOffset(x, y)
			img.Pix[i] = toByte(c[0])
			img.Pix[i+1] = toByte(c[1])
			img.Pix[i+2] = toByte(c[2])
			img.Pix[i+3] = toByte(c[3])
		}
	}
	return img, nil
}

// Stats implements the pipeline.Device interface.
func (dev *Device) Stats() pipeline.DeviceStats {
	return pipeline.DeviceStats{
		LiveTargets: len(dev.live),
		Draws:       dev.draws,
		Programs:    dev.programs,
	}
}

// Pixel returns the unquantised value of a pixel in the target. A nil target
// is the presentable surface. Useful for inspecting RGBA16F targets.
func (dev *Device) Pixel(t pipeline.Target, x, y int) ([4]float32, error) {
	tt, err := dev.own(t)
	if err != nil {
		return [4]float32{}, err
	}
	return tt.at(x, y), nil
}
