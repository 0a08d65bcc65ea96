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

package pipeline_test

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/jetsetilly/scalebench/pipeline"
	"github.com/jetsetilly/scalebench/pipeline/software"
	"github.com/jetsetilly/scalebench/test"
)

// checkerboard returns an image of black and white squares.
func checkerboard(w, h, cell int) *image.RGBA {
	return tones(w, h, cell, 0, 255)
}

// tones returns a checkerboard of two grey levels.
func tones(w, h, cell int, dark, light uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{R: dark, G: dark, B: dark, A: 255}
			if (x/cell+y/cell)%2 == 0 {
				c = color.RGBA{R: light, G: light, B: light, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: uint8(x ^ y), A: 255})
		}
	}
	return img
}

func samePixels(t *testing.T, a, b *image.RGBA, tags ...any) {
	t.Helper()
	test.DemandEquality(t, a.Bounds(), b.Bounds(), tags...)
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("%v: pixel data differs at byte %d: %d != %d", tags, i, a.Pix[i], b.Pix[i])
		}
	}
}

// staticDriver creates a driver for a static image shown at the display size.
func staticDriver(t *testing.T, img *image.RGBA, display pipeline.Size) (*software.Device, *pipeline.State, *pipeline.Driver) {
	t.Helper()
	dev := software.NewDevice(display)
	scn, err := pipeline.NewStaticScene(dev, img)
	test.DemandSuccess(t, err)
	state := pipeline.NewState(pipeline.Size{}, display)
	drv, err := pipeline.NewDriver(dev, state, scn, nil, nil)
	test.DemandSuccess(t, err)
	return dev, state, drv
}

// dynamicDriver creates a driver for the animated cube.
func dynamicDriver(t *testing.T, internal, display pipeline.Size) (*software.Device, *pipeline.State, *pipeline.Driver) {
	t.Helper()
	dev := software.NewDevice(display)
	scn, err := pipeline.NewCubeScene(dev)
	test.DemandSuccess(t, err)
	state := pipeline.NewState(internal, display)
	drv, err := pipeline.NewDriver(dev, state, scn, nil, nil)
	test.DemandSuccess(t, err)
	return dev, state, drv
}

func TestOneToOneIsIdentity(t *testing.T) {
	img := gradient(32, 24)
	_, state, drv := staticDriver(t, img, pipeline.Size{W: 32, H: 24})
	state.SetSharpness(0)

	for _, tech := range []pipeline.Technique{pipeline.Point, pipeline.Bilinear, pipeline.BilinearSharpen} {
		state.SetTechnique(tech)
		test.DemandSuccess(t, drv.RunFrame(0))
		out, err := drv.Screenshot()
		test.DemandSuccess(t, err)
		samePixels(t, out, img, tech)
	}
}

func TestSwitchingDoesNotLeak(t *testing.T) {
	dev, state, drv := dynamicDriver(t, pipeline.Size{W: 40, H: 30}, pipeline.Size{W: 80, H: 60})

	for i := 0; i < 100; i++ {
		state.CycleTechnique()
		test.DemandSuccess(t, drv.RunFrame(float64(i)/60))

		// the internal target and at most one intermediate target
		if dev.Stats().LiveTargets > 2 {
			t.Fatalf("live targets after %d switches: %d", i+1, dev.Stats().LiveTargets)
		}
	}

	drv.Destroy()
	test.ExpectEquality(t, dev.Stats().LiveTargets, 0)
}

func TestSharpnessZeroIsFirstPass(t *testing.T) {
	for _, tech := range []pipeline.Technique{pipeline.BilinearSharpen, pipeline.EASU} {
		dev := software.NewDevice(pipeline.Size{W: 48, H: 36})
		targets := pipeline.NewTargets(dev)
		rc := pipeline.NewReconstructor(dev, targets)

		src, err := dev.CreateTarget(pipeline.Size{W: 16, H: 12}, pipeline.FormatRGBA8, false)
		test.DemandSuccess(t, err)
		test.DemandSuccess(t, dev.Upload(src, gradient(16, 12)))

		params := pipeline.Parameters{
			InternalSize: pipeline.Size{W: 16, H: 12},
			DisplaySize:  pipeline.Size{W: 48, H: 36},
			Sharpness:    0,
			Technique:    tech,
		}
		test.DemandSuccess(t, rc.Reconstruct(src, tech, params, nil))

		inter, err := targets.Intermediate(params.DisplaySize)
		test.DemandSuccess(t, err)
		first, err := dev.ReadPixels(inter)
		test.DemandSuccess(t, err)
		out, err := dev.ReadPixels(nil)
		test.DemandSuccess(t, err)
		samePixels(t, out, first, tech)
	}
}

func TestZeroSizesAreRejected(t *testing.T) {
	dev, state, drv := dynamicDriver(t, pipeline.Size{W: 40, H: 30}, pipeline.Size{W: 80, H: 60})

	draws := dev.Stats().Draws
	state.SetInternalSize(pipeline.Size{W: 0, H: 30})
	err := drv.RunFrame(0)
	test.ExpectEquality(t, errors.Is(err, pipeline.ErrInvalidParameters), true)
	test.ExpectEquality(t, dev.Stats().Draws, draws)
	test.ExpectEquality(t, errors.Is(drv.Stats().LastError, pipeline.ErrInvalidParameters), true)

	// the frame following a failure succeeds once the parameters are good
	state.SetInternalSize(pipeline.Size{W: 40, H: 30})
	test.ExpectSuccess(t, drv.RunFrame(0))
	test.ExpectSuccess(t, drv.Stats().LastError)

	// zero display size passed directly to the reconstructor
	src := drv.Targets().Internal()
	draws = dev.Stats().Draws
	params := state.Get()
	params.DisplaySize = pipeline.Size{}
	err = drv.Reconstructor().Reconstruct(src, pipeline.EASU, params, nil)
	test.ExpectEquality(t, errors.Is(err, pipeline.ErrInvalidParameters), true)
	test.ExpectEquality(t, dev.Stats().Draws, draws)

	// out of range sharpness
	params = state.Get()
	params.Sharpness = 2.0
	err = drv.Reconstructor().Reconstruct(src, pipeline.EASU, params, nil)
	test.ExpectEquality(t, errors.Is(err, pipeline.ErrInvalidParameters), true)
	test.ExpectEquality(t, dev.Stats().Draws, draws)
}

func TestSourceSizeMismatchIsRejected(t *testing.T) {
	techniques := []pipeline.Technique{pipeline.Point, pipeline.Bilinear, pipeline.BilinearSharpen, pipeline.EASU}
	for _, tech := range techniques {
		dev := software.NewDevice(pipeline.Size{W: 32, H: 24})
		rc := pipeline.NewReconstructor(dev, pipeline.NewTargets(dev))

		src, err := dev.CreateTarget(pipeline.Size{W: 16, H: 12}, pipeline.FormatRGBA8, false)
		test.DemandSuccess(t, err)
		test.DemandSuccess(t, dev.Upload(src, gradient(16, 12)))

		// the source is larger than the internal size it is said to have
		params := pipeline.Parameters{
			InternalSize: pipeline.Size{W: 8, H: 6},
			DisplaySize:  pipeline.Size{W: 32, H: 24},
			Sharpness:    pipeline.DefaultSharpness,
			Technique:    tech,
		}
		err = rc.Reconstruct(src, tech, params, nil)
		test.ExpectEquality(t, errors.Is(err, pipeline.ErrInvalidParameters), true, tech)
		test.ExpectEquality(t, dev.Stats().Draws, 0, tech)
		test.ExpectEquality(t, dev.Stats().LiveTargets, 1, tech)

		// and smaller
		params.InternalSize = pipeline.Size{W: 32, H: 24}
		err = rc.Reconstruct(src, tech, params, nil)
		test.ExpectEquality(t, errors.Is(err, pipeline.ErrInvalidParameters), true, tech)
		test.ExpectEquality(t, dev.Stats().Draws, 0, tech)

		params.InternalSize = pipeline.Size{W: 16, H: 12}
		test.ExpectSuccess(t, rc.Reconstruct(src, tech, params, nil), tech)
		test.ExpectInequality(t, dev.Stats().Draws, 0, tech)
	}
}

func TestEASUCheckerboard(t *testing.T) {
	const (
		cell  = 8
		dark  = 64
		light = 192
	)
	img := tones(400, 300, cell, dark, light)
	_, state, drv := staticDriver(t, img, pipeline.Size{W: 800, H: 600})
	state.SetTechnique(pipeline.EASU)
	state.SetSharpness(0.2)

	test.DemandSuccess(t, drv.RunFrame(0))
	out, err := drv.Screenshot()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, out.Bounds().Dx(), 800)
	test.DemandEquality(t, out.Bounds().Dy(), 600)

	// neighbourhood returns the range of the nearest neighbour upscale in the
	// 3x3 pixels around x, y. this is the same set of texels that EASU limits
	// its result to
	neighbourhood := func(x, y int) (int, int) {
		lo, hi := 255, 0
		for j := y - 1; j <= y+1; j++ {
			for i := x - 1; i <= x+1; i++ {
				v := int(img.RGBAAt(max(0, min(i, 799))/2, max(0, min(j, 599))/2).R)
				lo = min(lo, v)
				hi = max(hi, v)
			}
		}
		return lo, hi
	}

	// RCAS can push a pixel beyond the range of its neighbourhood. the
	// amount is limited by the lobe, which for a sharpness of 0.2 is never
	// more than 0.0375
	const (
		edgeEpsilon = 24
		flatEpsilon = 8
	)

	var edge, flat, deviating int
	for y := 0; y < 600; y++ {
		for x := 0; x < 800; x++ {
			lo, hi := neighbourhood(x, y)
			got := out.RGBAAt(x, y)
			test.DemandEquality(t, got.A, uint8(255))

			for _, v := range []int{int(got.R), int(got.G), int(got.B)} {
				if v < lo-edgeEpsilon || v > hi+edgeEpsilon {
					t.Fatalf("pixel %d,%d is %v, outside the range %d to %d", x, y, got, lo, hi)
				}
			}

			if lo != hi {
				edge++
				continue
			}

			// more than one pixel from an edge the output should be the
			// source colour
			flat++
			for _, v := range []int{int(got.R), int(got.G), int(got.B)} {
				if v < lo-flatEpsilon || v > lo+flatEpsilon {
					deviating++
					break
				}
			}
		}
	}
	test.ExpectEquality(t, edge > 0, true)
	test.ExpectEquality(t, flat > edge, true)
	test.ExpectEquality(t, deviating, 0)
}

func TestPointAndBilinearDiffer(t *testing.T) {
	img := checkerboard(8, 8, 2)

	render := func(tech pipeline.Technique) *image.RGBA {
		_, state, drv := staticDriver(t, img, pipeline.Size{W: 32, H: 32})
		state.SetTechnique(tech)
		test.DemandSuccess(t, drv.RunFrame(0))
		out, err := drv.Screenshot()
		test.DemandSuccess(t, err)
		return out
	}

	values := func(out *image.RGBA) map[uint8]bool {
		v := make(map[uint8]bool)
		for y := 0; y < 32; y++ {
			for x := 0; x < 32; x++ {
				v[out.RGBAAt(x, y).R] = true
			}
		}
		return v
	}

	point := values(render(pipeline.Point))
	test.ExpectEquality(t, len(point), 2)
	test.ExpectEquality(t, point[0], true)
	test.ExpectEquality(t, point[255], true)

	out := render(pipeline.Bilinear)
	test.ExpectEquality(t, len(values(out)) > 2, true)

	// row 2 of the output samples source rows 0 and 1, which are the same.
	// the boundary between the white block and the black block at source
	// column 2 is a falling ramp between the texel centres
	const row = 2
	test.ExpectEquality(t, out.RGBAAt(5, row).R, uint8(255))
	test.ExpectEquality(t, out.RGBAAt(10, row).R, uint8(0))
	for x := 6; x <= 10; x++ {
		prev := out.RGBAAt(x-1, row).R
		cur := out.RGBAAt(x, row).R
		if cur >= prev {
			t.Errorf("pixel %d,%d is %d and is not less than the pixel to its left %d", x, row, cur, prev)
		}
	}
}

func TestResizeReallocatesIntermediate(t *testing.T) {
	for _, tech := range []pipeline.Technique{pipeline.BilinearSharpen, pipeline.EASU} {
		dev, state, drv := dynamicDriver(t, pipeline.Size{W: 40, H: 30}, pipeline.Size{W: 80, H: 60})
		state.SetTechnique(tech)
		test.DemandSuccess(t, drv.RunFrame(0), tech)

		internal := drv.Targets().Internal()
		test.ExpectEquality(t, drv.Targets().HasIntermediate(), true, tech)

		state.SetDisplaySize(pipeline.Size{W: 120, H: 90})
		test.DemandSuccess(t, drv.RunFrame(0.1), tech)
		test.ExpectEquality(t, dev.Surface(), pipeline.Size{W: 120, H: 90}, tech)
		test.ExpectEquality(t, drv.Targets().Internal() == internal, true, tech)
		test.ExpectEquality(t, dev.Stats().LiveTargets, 2, tech)

		inter, err := drv.Targets().Intermediate(pipeline.Size{W: 120, H: 90})
		test.DemandSuccess(t, err, tech)
		test.ExpectEquality(t, inter.Size(), pipeline.Size{W: 120, H: 90}, tech)
		test.ExpectEquality(t, dev.Stats().LiveTargets, 2, tech)

		// changing the internal size reallocates the internal target
		state.SetInternalSize(pipeline.Size{W: 60, H: 45})
		test.DemandSuccess(t, drv.RunFrame(0.2), tech)
		test.ExpectEquality(t, drv.Targets().Internal() != internal, true, tech)
		test.ExpectEquality(t, dev.Stats().LiveTargets, 2, tech)
	}
}

func TestAlphaIsCarried(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 12))
	for y := 0; y < 12; y++ {
		for x := 0; x < 16; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 8), G: uint8(y * 10), B: 20, A: 128})
		}
	}

	techniques := []pipeline.Technique{pipeline.Point, pipeline.Bilinear, pipeline.BilinearSharpen, pipeline.EASU}
	for _, tech := range techniques {
		_, state, drv := staticDriver(t, img, pipeline.Size{W: 32, H: 24})
		state.SetTechnique(tech)
		test.DemandSuccess(t, drv.RunFrame(0), tech)
		out, err := drv.Screenshot()
		test.DemandSuccess(t, err, tech)
		for y := 0; y < 24; y++ {
			for x := 0; x < 32; x++ {
				if a := out.RGBAAt(x, y).A; a != 128 {
					t.Fatalf("%v: alpha of pixel %d,%d is %d", tech, x, y, a)
				}
			}
		}
	}
}

// failingDevice fails to compile one program.
type failingDevice struct {
	*software.Device
	fail string
}

func (dev *failingDevice) Compile(src pipeline.ProgramSource) (pipeline.Program, error) {
	if src.Name == dev.fail {
		return nil, &pipeline.CompileError{Program: src.Name, Log: "0:1(1): error: syntax error"}
	}
	return dev.Device.Compile(src)
}

func TestCompileFailureDisablesTechnique(t *testing.T) {
	dev := &failingDevice{Device: software.NewDevice(pipeline.Size{W: 64, H: 48}), fail: pipeline.ProgramEASU}
	targets := pipeline.NewTargets(dev)
	rc := pipeline.NewReconstructor(dev, targets)

	test.ExpectEquality(t, rc.IsDisabled(pipeline.EASU), true)
	test.ExpectEquality(t, rc.IsDisabled(pipeline.Point), false)
	test.ExpectEquality(t, rc.IsDisabled(pipeline.Bilinear), false)
	test.ExpectEquality(t, rc.IsDisabled(pipeline.BilinearSharpen), false)
	test.DemandEquality(t, len(rc.Disabled()), 1)
	test.ExpectEquality(t, rc.Disabled()[0].Technique, pipeline.EASU)

	src, err := dev.CreateTarget(pipeline.Size{W: 32, H: 24}, pipeline.FormatRGBA8, false)
	test.DemandSuccess(t, err)
	params := pipeline.Parameters{
		InternalSize: pipeline.Size{W: 32, H: 24},
		DisplaySize:  pipeline.Size{W: 64, H: 48},
		Sharpness:    pipeline.DefaultSharpness,
	}

	err = rc.Reconstruct(src, pipeline.EASU, params, nil)
	var cerr *pipeline.CompileError
	test.ExpectEquality(t, errors.As(err, &cerr), true)
	test.ExpectEquality(t, errors.Is(err, pipeline.ErrCompile), true)
	test.ExpectEquality(t, dev.Stats().Draws, 0)

	// other techniques still work
	test.ExpectSuccess(t, rc.Reconstruct(src, pipeline.Bilinear, params, nil))
	test.ExpectEquality(t, dev.Stats().Draws, 1)
}

func TestNative(t *testing.T) {
	dev, state, drv := dynamicDriver(t, pipeline.Size{W: 40, H: 30}, pipeline.Size{W: 80, H: 60})
	state.SetNative(true)
	state.SetTechnique(pipeline.EASU)

	test.DemandSuccess(t, drv.RunFrame(0))
	test.ExpectEquality(t, drv.Stats().Native, true)
	test.ExpectEquality(t, drv.Targets().HasIntermediate(), false)
	test.ExpectEquality(t, dev.Stats().Draws, 1)

	// the cube covers the centre of the surface
	out, err := drv.Screenshot()
	test.DemandSuccess(t, err)
	test.ExpectInequality(t, out.RGBAAt(40, 30), color.RGBA{R: 26, G: 26, B: 26, A: 255})

	// native has no effect on static content
	img := gradient(16, 16)
	_, sstate, sdrv := staticDriver(t, img, pipeline.Size{W: 16, H: 16})
	sstate.SetNative(true)
	sstate.SetTechnique(pipeline.Point)
	test.DemandSuccess(t, sdrv.RunFrame(0))
	test.ExpectEquality(t, sdrv.Stats().Native, false)
	out, err = sdrv.Screenshot()
	test.DemandSuccess(t, err)
	samePixels(t, out, img)
}

type recorder struct {
	frames   int
	presents int
	last     pipeline.FrameStats
}

func (r *recorder) Render(stats pipeline.FrameStats) {
	r.frames++
	r.last = stats
}

func (r *recorder) Present() error {
	r.presents++
	return nil
}

func TestOverlayAndPresentOnFailure(t *testing.T) {
	dev := software.NewDevice(pipeline.Size{W: 16, H: 16})
	scn, err := pipeline.NewStaticScene(dev, nil)
	test.DemandSuccess(t, err)

	rec := &recorder{}
	drv, err := pipeline.NewDriver(dev, pipeline.NewState(pipeline.Size{}, pipeline.Size{W: 16, H: 16}), scn, rec, rec)
	test.DemandSuccess(t, err)

	err = drv.RunFrame(0)
	test.ExpectEquality(t, errors.Is(err, pipeline.ErrInvalidParameters), true)
	test.ExpectEquality(t, rec.frames, 1)
	test.ExpectEquality(t, rec.presents, 1)
	test.ExpectEquality(t, errors.Is(rec.last.LastError, pipeline.ErrInvalidParameters), true)

	// surface is cleared to black
	out, err := drv.Screenshot()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, out.RGBAAt(8, 8), color.RGBA{A: 255})
}

func TestFrameStats(t *testing.T) {
	_, state, drv := dynamicDriver(t, pipeline.Size{W: 20, H: 15}, pipeline.Size{W: 40, H: 30})
	state.SetTechnique(pipeline.Point)

	for _, e := range []float64{0.0, 0.5, 1.0} {
		test.DemandSuccess(t, drv.RunFrame(e))
	}

	s := drv.Stats()
	test.ExpectEquality(t, s.Frames, 3)
	test.ExpectApproximate(t, s.FPS, 3.0, 0.001)
	test.ExpectEquality(t, s.Technique, pipeline.Point)
	test.ExpectEquality(t, s.InternalSize, pipeline.Size{W: 20, H: 15})
	test.ExpectEquality(t, s.DisplaySize, pipeline.Size{W: 40, H: 30})
	test.ExpectApproximate(t, s.FrameTime.Seconds(), 0.5, 0.001)
}

func TestTargetCreationFailure(t *testing.T) {
	dev := software.NewDevice(pipeline.Size{W: 64, H: 64})
	dev.MaxTargetSize = 32
	scn, err := pipeline.NewCubeScene(dev)
	test.DemandSuccess(t, err)

	_, err = pipeline.NewDriver(dev, pipeline.NewState(pipeline.Size{W: 48, H: 48}, pipeline.Size{W: 64, H: 64}), scn, nil, nil)
	test.ExpectEquality(t, errors.Is(err, pipeline.ErrTargetCreation), true)
	test.ExpectEquality(t, dev.Stats().LiveTargets, 0)
}

func TestIntermediateFallback(t *testing.T) {
	dev := software.NewDevice(pipeline.Size{W: 64, H: 64})
	dev.FloatTargets = false
	targets := pipeline.NewTargets(dev)

	inter, err := targets.Intermediate(pipeline.Size{W: 64, H: 64})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, inter.Format(), pipeline.FormatRGBA8)

	// same size returns the same target
	again, err := targets.Intermediate(pipeline.Size{W: 64, H: 64})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, again == inter, true)
	test.ExpectEquality(t, dev.Stats().LiveTargets, 1)
}

func TestStaticReplace(t *testing.T) {
	dev := software.NewDevice(pipeline.Size{W: 16, H: 16})
	scn, err := pipeline.NewStaticScene(dev, gradient(8, 8))
	test.DemandSuccess(t, err)
	first := scn.Texture()

	test.DemandSuccess(t, scn.Replace(checkerboard(8, 8, 1)))
	test.ExpectEquality(t, scn.Texture() == first, true)

	test.DemandSuccess(t, scn.Replace(checkerboard(4, 4, 1)))
	test.ExpectEquality(t, scn.Texture().Size(), pipeline.Size{W: 4, H: 4})
	test.ExpectEquality(t, dev.Stats().LiveTargets, 1)

	scn.Destroy()
	test.ExpectEquality(t, dev.Stats().LiveTargets, 0)
}

func TestDumpState(t *testing.T) {
	_, _, drv := dynamicDriver(t, pipeline.Size{W: 20, H: 15}, pipeline.Size{W: 40, H: 30})
	test.DemandSuccess(t, drv.RunFrame(0))

	s := &strings.Builder{}
	drv.DumpState(s)
	test.ExpectEquality(t, strings.Contains(s.String(), "digraph"), true)
}
