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

package gui_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/scalebench/assets"
	"github.com/jetsetilly/scalebench/gui"
	"github.com/jetsetilly/scalebench/pipeline"
	"github.com/jetsetilly/scalebench/pipeline/software"
	"github.com/jetsetilly/scalebench/test"
)

func TestActionForRune(t *testing.T) {
	test.ExpectEquality(t, gui.ActionForRune('1'), gui.ActionPoint)
	test.ExpectEquality(t, gui.ActionForRune('2'), gui.ActionBilinear)
	test.ExpectEquality(t, gui.ActionForRune('3'), gui.ActionBilinearSharpen)
	test.ExpectEquality(t, gui.ActionForRune('4'), gui.ActionEASU)
	test.ExpectEquality(t, gui.ActionForRune('5'), gui.ActionToggleNative)
	test.ExpectEquality(t, gui.ActionForRune('+'), gui.ActionSharpnessUp)
	test.ExpectEquality(t, gui.ActionForRune('-'), gui.ActionSharpnessDown)
	test.ExpectEquality(t, gui.ActionForRune('q'), gui.ActionQuit)
	test.ExpectEquality(t, gui.ActionForRune('x'), gui.ActionNone)
}

func TestApply(t *testing.T) {
	state := pipeline.NewState(pipeline.Size{W: 320, H: 180}, pipeline.Size{W: 640, H: 360})

	test.ExpectSuccess(t, gui.ActionEASU.Apply(state))
	test.ExpectEquality(t, state.Get().Technique, pipeline.EASU)

	test.ExpectSuccess(t, gui.ActionPoint.Apply(state))
	test.ExpectEquality(t, state.Get().Technique, pipeline.Point)

	test.ExpectSuccess(t, gui.ActionCycleTechnique.Apply(state))
	test.ExpectEquality(t, state.Get().Technique, pipeline.Bilinear)

	test.ExpectSuccess(t, gui.ActionToggleNative.Apply(state))
	test.ExpectSuccess(t, state.Get().Native)

	s := state.Get().Sharpness
	test.ExpectSuccess(t, gui.ActionSharpnessUp.Apply(state))
	test.ExpectApproximate(t, state.Get().Sharpness, s+gui.SharpnessStep, 0.001)
	test.ExpectSuccess(t, gui.ActionSharpnessDown.Apply(state))
	test.ExpectApproximate(t, state.Get().Sharpness, s, 0.001)

	// actions that must be handled by the front end
	test.ExpectFailure(t, gui.ActionQuit.Apply(state))
	test.ExpectFailure(t, gui.ActionScreenshot.Apply(state))
	test.ExpectFailure(t, gui.ActionNone.Apply(state))
}

// host is a gui.Host that runs for a fixed number of frames.
type host struct {
	dev      *software.Device
	drv      *pipeline.Driver
	frames   int
	rendered int
	presents int
}

func (h *host) Device() pipeline.Device { return h.dev }
func (h *host) Attach(drv *pipeline.Driver) { h.drv = drv }
func (h *host) Render(_ pipeline.FrameStats) { h.rendered++ }
func (h *host) Present() error { h.presents++; return nil }
func (h *host) Destroy() error { return nil }
func (h *host) Service() bool {
	h.frames--
	return h.frames >= 0
}

func TestRun(t *testing.T) {
	display := pipeline.Size{W: 64, H: 36}
	h := &host{dev: software.NewDevice(display), frames: 5}
	test.DemandImplements[gui.Host](t, h)

	state := pipeline.NewState(pipeline.Size{W: 32, H: 18}, display)
	scn, err := pipeline.NewCubeScene(h.dev)
	test.DemandSuccess(t, err)
	drv, err := pipeline.NewDriver(h.dev, state, scn, h, h)
	test.DemandSuccess(t, err)
	defer drv.Destroy()

	gui.Run(h, drv, nil)
	test.ExpectEquality(t, h.drv, drv)
	test.ExpectEquality(t, h.rendered, 5)
	test.ExpectEquality(t, h.presents, 5)
	test.ExpectEquality(t, drv.Stats().Frames, 5)
}

func TestScreenshot(t *testing.T) {
	display := pipeline.Size{W: 16, H: 8}
	dev := software.NewDevice(display)
	state := pipeline.NewState(pipeline.Size{W: 8, H: 4}, display)
	state.SetTechnique(pipeline.BilinearSharpen)
	scn, err := pipeline.NewCubeScene(dev)
	test.DemandSuccess(t, err)
	drv, err := pipeline.NewDriver(dev, state, scn, nil, nil)
	test.DemandSuccess(t, err)
	defer drv.Destroy()

	test.DemandSuccess(t, drv.RunFrame(0))

	dir := t.TempDir()
	filename, err := gui.Screenshot(drv, dir)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, filepath.Dir(filename), dir)
	test.ExpectSuccess(t, strings.Contains(filepath.Base(filename), "bilinear_sharpen"))

	_, err = os.Stat(filename)
	test.ExpectSuccess(t, err)

	img, err := assets.Load(filename)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.Rect.Dx(), display.W)
	test.ExpectEquality(t, img.Rect.Dy(), display.H)
}
