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

package software_test

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/jetsetilly/scalebench/pipeline"
	"github.com/jetsetilly/scalebench/pipeline/software"
	"github.com/jetsetilly/scalebench/scene"
	"github.com/jetsetilly/scalebench/test"
)

func compile(t *testing.T, dev *software.Device, name string) pipeline.Program {
	t.Helper()
	p, err := dev.Compile(pipeline.Sources()[name])
	test.DemandSuccess(t, err)
	return p
}

// gradient returns an image where every pixel is different.
func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: uint8((x + y) * 7), A: 255})
		}
	}
	return img
}

func flat(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func upload(t *testing.T, dev *software.Device, img *image.RGBA) pipeline.Target {
	t.Helper()
	b := img.Bounds()
	tgt, err := dev.CreateTarget(pipeline.Size{W: b.Dx(), H: b.Dy()}, pipeline.FormatRGBA8, false)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, dev.Upload(tgt, img))
	return tgt
}

func samePixels(t *testing.T, a, b *image.RGBA) {
	t.Helper()
	test.DemandEquality(t, a.Bounds(), b.Bounds())
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("pixel data differs at byte %d: %d != %d", i, a.Pix[i], b.Pix[i])
		}
	}
}

func TestCreateTarget(t *testing.T) {
	dev := software.NewDevice(pipeline.Size{W: 32, H: 32})

	_, err := dev.CreateTarget(pipeline.Size{W: 0, H: 10}, pipeline.FormatRGBA8, false)
	test.ExpectEquality(t, errors.Is(err, pipeline.ErrTargetCreation), true)

	dev.MaxTargetSize = 64
	_, err = dev.CreateTarget(pipeline.Size{W: 65, H: 10}, pipeline.FormatRGBA8, false)
	test.ExpectEquality(t, errors.Is(err, pipeline.ErrTargetCreation), true)

	dev.FloatTargets = false
	_, err = dev.CreateTarget(pipeline.Size{W: 8, H: 8}, pipeline.FormatRGBA16F, false)
	test.ExpectEquality(t, errors.Is(err, pipeline.ErrTargetCreation), true)
	test.ExpectEquality(t, dev.Stats().LiveTargets, 0)

	a, err := dev.CreateTarget(pipeline.Size{W: 8, H: 8}, pipeline.FormatRGBA8, true)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, a.HasDepth(), true)
	b, err := dev.CreateTarget(pipeline.Size{W: 4, H: 2}, pipeline.FormatRGBA8, false)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, b.Size(), pipeline.Size{W: 4, H: 2})
	test.ExpectEquality(t, dev.Stats().LiveTargets, 2)

	dev.DestroyTarget(a)
	dev.DestroyTarget(a)
	test.ExpectEquality(t, dev.Stats().LiveTargets, 1)

	// a destroyed target can not be bound
	test.ExpectFailure(t, dev.Bind(a))
	test.ExpectSuccess(t, dev.Bind(b))
	test.ExpectSuccess(t, dev.Bind(nil))
}

func TestUploadReadPixels(t *testing.T) {
	dev := software.NewDevice(pipeline.Size{W: 32, H: 32})
	img := gradient(5, 3)
	tgt := upload(t, dev, img)

	out, err := dev.ReadPixels(tgt)
	test.DemandSuccess(t, err)
	samePixels(t, out, img)

	// wrong size
	test.ExpectFailure(t, dev.Upload(tgt, gradient(4, 3)))
}

func TestCompile(t *testing.T) {
	dev := software.NewDevice(pipeline.Size{W: 32, H: 32})
	for name := range pipeline.Sources() {
		compile(t, dev, name)
	}
	test.ExpectEquality(t, dev.Stats().Programs, len(pipeline.Sources()))

	_, err := dev.Compile(pipeline.ProgramSource{Name: "unknown", Vertex: "x", Fragment: "x"})
	var cerr *pipeline.CompileError
	test.ExpectEquality(t, errors.As(err, &cerr), true)
	test.ExpectEquality(t, errors.Is(err, pipeline.ErrCompile), true)
	test.ExpectEquality(t, dev.Stats().Programs, len(pipeline.Sources()))
}

func TestBlitIdentity(t *testing.T) {
	dev := software.NewDevice(pipeline.Size{W: 7, H: 5})
	blit := compile(t, dev, pipeline.ProgramBlit)
	img := gradient(7, 5)
	src := upload(t, dev, img)

	for _, f := range []pipeline.Filter{pipeline.FilterPoint, pipeline.FilterLinear} {
		dev.SetFilter(src, f)
		test.DemandSuccess(t, dev.Bind(nil))
		test.DemandSuccess(t, dev.Draw(blit, src, pipeline.BlitUniforms{}))
		out, err := dev.ReadPixels(nil)
		test.DemandSuccess(t, err)
		samePixels(t, out, img)
	}
}

func TestBlitPoint(t *testing.T) {
	dev := software.NewDevice(pipeline.Size{W: 4, H: 2})
	blit := compile(t, dev, pipeline.ProgramBlit)
	img := gradient(2, 1)
	src := upload(t, dev, img)
	dev.SetFilter(src, pipeline.FilterPoint)

	test.DemandSuccess(t, dev.Draw(blit, src, nil))
	out, err := dev.ReadPixels(nil)
	test.DemandSuccess(t, err)

	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			test.ExpectEquality(t, out.RGBAAt(x, y), img.RGBAAt(x/2, 0), x, y)
		}
	}
}

func TestDrawErrors(t *testing.T) {
	dev := software.NewDevice(pipeline.Size{W: 8, H: 8})
	blit := compile(t, dev, pipeline.ProgramBlit)
	rcas := compile(t, dev, pipeline.ProgramRCAS)
	scn := compile(t, dev, pipeline.ProgramScene)
	src := upload(t, dev, gradient(8, 8))

	// source can not be the write surface
	test.DemandSuccess(t, dev.Bind(src))
	test.ExpectFailure(t, dev.Draw(blit, src, nil))
	test.DemandSuccess(t, dev.Bind(nil))

	// wrong uniform record
	err := dev.Draw(rcas, src, pipeline.SharpenUniforms{})
	test.ExpectEquality(t, errors.Is(err, pipeline.ErrInvalidParameters), true)

	// mesh program used for full screen pass
	test.ExpectFailure(t, dev.Draw(scn, src, nil))

	// full screen program used for mesh
	test.ExpectFailure(t, dev.DrawMesh(blit, scene.Cube(), scene.Identity()))

	test.ExpectEquality(t, dev.Stats().Draws, 0)
}

func TestRCASZeroSharpness(t *testing.T) {
	dev := software.NewDevice(pipeline.Size{W: 9, H: 6})
	rcas := compile(t, dev, pipeline.ProgramRCAS)
	img := gradient(9, 6)
	src := upload(t, dev, img)

	test.DemandSuccess(t, dev.Draw(rcas, src, pipeline.RCASUniforms{Sharpness: 0}))
	out, err := dev.ReadPixels(nil)
	test.DemandSuccess(t, err)
	samePixels(t, out, img)
}

func TestRCASSharpens(t *testing.T) {
	dev := software.NewDevice(pipeline.Size{W: 8, H: 1})
	rcas := compile(t, dev, pipeline.ProgramRCAS)

	// a soft step from dark to light
	img := image.NewRGBA(image.Rect(0, 0, 8, 1))
	levels := []uint8{50, 50, 50, 100, 150, 200, 200, 200}
	for x, l := range levels {
		img.SetRGBA(x, 0, color.RGBA{R: l, G: l, B: l, A: 255})
	}
	src := upload(t, dev, img)

	test.DemandSuccess(t, dev.Draw(rcas, src, pipeline.RCASUniforms{Sharpness: 1}))
	out, err := dev.ReadPixels(nil)
	test.DemandSuccess(t, err)

	// the dark side of the step gets darker and the light side gets lighter
	test.ExpectEquality(t, out.RGBAAt(2, 0).R < 50, true)
	test.ExpectEquality(t, out.RGBAAt(5, 0).R > 200, true)
	test.ExpectEquality(t, out.RGBAAt(0, 0).R, uint8(50))
}

func TestSharpenZero(t *testing.T) {
	dev := software.NewDevice(pipeline.Size{W: 6, H: 6})
	sharpen := compile(t, dev, pipeline.ProgramSharpen)
	img := gradient(6, 6)
	src := upload(t, dev, img)

	test.DemandSuccess(t, dev.Draw(sharpen, src, pipeline.SharpenUniforms{Sharpness: 0}))
	out, err := dev.ReadPixels(nil)
	test.DemandSuccess(t, err)
	samePixels(t, out, img)

	// sharpening a flat image changes nothing
	flatImg := flat(6, 6, color.RGBA{R: 10, G: 120, B: 240, A: 255})
	test.DemandSuccess(t, dev.Upload(src, flatImg))
	test.DemandSuccess(t, dev.Draw(sharpen, src, &pipeline.SharpenUniforms{Sharpness: 1}))
	out, err = dev.ReadPixels(nil)
	test.DemandSuccess(t, err)
	samePixels(t, out, flatImg)
}

func TestEASUFlat(t *testing.T) {
	dev := software.NewDevice(pipeline.Size{W: 20, H: 12})
	easu := compile(t, dev, pipeline.ProgramEASU)
	img := flat(10, 6, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	src := upload(t, dev, img)

	test.DemandSuccess(t, dev.Draw(easu, src, pipeline.EASUUniforms{
		InputSize:  pipeline.Size{W: 10, H: 6},
		OutputSize: pipeline.Size{W: 20, H: 12},
	}))
	out, err := dev.ReadPixels(nil)
	test.DemandSuccess(t, err)
	samePixels(t, out, flat(20, 12, color.RGBA{R: 200, G: 100, B: 50, A: 255}))

	err = dev.Draw(easu, src, pipeline.EASUUniforms{InputSize: pipeline.Size{W: 10, H: 6}})
	test.ExpectEquality(t, errors.Is(err, pipeline.ErrInvalidParameters), true)
}

func TestEASUWithinNeighbourhood(t *testing.T) {
	dev := software.NewDevice(pipeline.Size{W: 24, H: 24})
	easu := compile(t, dev, pipeline.ProgramEASU)
	img := gradient(8, 8)
	src := upload(t, dev, img)

	test.DemandSuccess(t, dev.Draw(easu, src, pipeline.EASUUniforms{
		InputSize:  pipeline.Size{W: 8, H: 8},
		OutputSize: pipeline.Size{W: 24, H: 24},
	}))
	out, err := dev.ReadPixels(nil)
	test.DemandSuccess(t, err)

	// every output channel lies within the range of the source image
	var lo, hi [3]uint8
	lo = [3]uint8{255, 255, 255}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := img.RGBAAt(x, y)
			for i, v := range []uint8{c.R, c.G, c.B} {
				lo[i] = min(lo[i], v)
				hi[i] = max(hi[i], v)
			}
		}
	}
	for y := 0; y < 24; y++ {
		for x := 0; x < 24; x++ {
			c := out.RGBAAt(x, y)
			test.ExpectEquality(t, c.A, uint8(255))
			for i, v := range []uint8{c.R, c.G, c.B} {
				if v < lo[i] || v > hi[i] {
					t.Fatalf("pixel %d,%d channel %d out of range: %d", x, y, i, v)
				}
			}
		}
	}
}

func TestFloatTarget(t *testing.T) {
	dev := software.NewDevice(pipeline.Size{W: 4, H: 4})
	f, err := dev.CreateTarget(pipeline.Size{W: 4, H: 4}, pipeline.FormatRGBA16F, false)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, dev.Bind(f))
	dev.Clear([4]float32{0.3, 0.0, 0.0, 1.0}, false)

	px, err := dev.Pixel(f, 2, 2)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, px[0], float32(0.3))

	// RGBA8 targets quantise
	test.DemandSuccess(t, dev.Bind(nil))
	dev.Clear([4]float32{0.3, 0.0, 0.0, 1.0}, false)
	px, err = dev.Pixel(nil, 2, 2)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, px[0], float32(77)/255)
}

func TestRasteriseCube(t *testing.T) {
	dev := software.NewDevice(pipeline.Size{W: 64, H: 48})
	prog := compile(t, dev, pipeline.ProgramScene)

	dev.Clear(scene.ClearColor, true)
	test.DemandSuccess(t, dev.DrawMesh(prog, scene.Cube(), scene.MVP(0.0, 64.0/48.0)))
	test.ExpectEquality(t, dev.Stats().Draws, 1)

	out, err := dev.ReadPixels(nil)
	test.DemandSuccess(t, err)

	bg := color.RGBA{R: 26, G: 26, B: 26, A: 255}
	test.ExpectInequality(t, out.RGBAAt(32, 24), bg)
	test.ExpectEquality(t, out.RGBAAt(0, 0), bg)
	test.ExpectEquality(t, out.RGBAAt(63, 47), bg)

	// with no rotation the cube is viewed face on and the centre pixel is the
	// colour of the front face
	c := out.RGBAAt(32, 24)
	test.ExpectEquality(t, c.R > c.G && c.R > c.B, true)
}

func TestResizeSurface(t *testing.T) {
	dev := software.NewDevice(pipeline.Size{W: 4, H: 4})
	dev.ResizeSurface(pipeline.Size{W: 10, H: 3})
	test.ExpectEquality(t, dev.Surface(), pipeline.Size{W: 10, H: 3})

	// zero sizes are ignored
	dev.ResizeSurface(pipeline.Size{})
	test.ExpectEquality(t, dev.Surface(), pipeline.Size{W: 10, H: 3})

	out, err := dev.ReadPixels(nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, out.Bounds().Dx(), 10)
	test.ExpectEquality(t, dev.Stats().LiveTargets, 0)
}
