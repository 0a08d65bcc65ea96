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

package display_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/scalebench/gui/display"
	"github.com/jetsetilly/scalebench/pipeline"
	"github.com/jetsetilly/scalebench/prefs"
	"github.com/jetsetilly/scalebench/test"
)

func TestDefaults(t *testing.T) {
	state := pipeline.NewState(pipeline.Size{W: 1, H: 1}, pipeline.Size{W: 1, H: 1})
	p, err := display.NewPreferences(state, filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, p.InternalSize(), pipeline.Size{W: 640, H: 360})
	test.ExpectEquality(t, p.DisplaySize(), pipeline.Size{W: 1280, H: 720})

	params := state.Get()
	test.ExpectEquality(t, params.InternalSize, pipeline.Size{W: 640, H: 360})
	test.ExpectEquality(t, params.Technique, pipeline.DefaultTechnique)
	test.ExpectEquality(t, params.Sharpness, pipeline.DefaultSharpness)
}

func TestHooks(t *testing.T) {
	state := pipeline.NewState(pipeline.Size{W: 1, H: 1}, pipeline.Size{W: 1, H: 1})
	p, err := display.NewPreferences(state, filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, p.Technique.Set("easu"))
	test.ExpectEquality(t, state.Get().Technique, pipeline.EASU)
	test.ExpectFailure(t, p.Technique.Set("bicubic"))
	test.ExpectEquality(t, state.Get().Technique, pipeline.EASU)

	test.ExpectSuccess(t, p.Sharpness.Set(0.8))
	test.ExpectEquality(t, state.Get().Sharpness, 0.8)

	test.ExpectSuccess(t, p.Native.Set(true))
	test.ExpectEquality(t, state.Get().Native, true)

	test.ExpectSuccess(t, p.InternalWidth.Set(320))
	test.ExpectSuccess(t, p.InternalHeight.Set(200))
	test.ExpectEquality(t, state.Get().InternalSize, pipeline.Size{W: 320, H: 200})
	test.ExpectFailure(t, p.InternalWidth.Set(0))
	test.ExpectEquality(t, state.Get().InternalSize, pipeline.Size{W: 320, H: 200})

	test.ExpectFailure(t, p.Content.Set("teapot"))
	test.ExpectSuccess(t, p.Content.Set(display.ContentImage))
	test.ExpectFailure(t, p.SwapInterval.Set(2))
	test.ExpectFailure(t, p.FPSCap.Set(-1))
}

func TestSaveAndLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	state := pipeline.NewState(pipeline.Size{W: 1, H: 1}, pipeline.Size{W: 1, H: 1})
	p, err := display.NewPreferences(state, fn)
	test.DemandSuccess(t, err)

	// changes made directly to the state are captured before saving
	state.SetTechnique(pipeline.Point)
	state.SetSharpness(0.5)
	p.Capture()
	test.DemandSuccess(t, p.Save())

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectInequality(t, len(data), 0)

	other := pipeline.NewState(pipeline.Size{W: 1, H: 1}, pipeline.Size{W: 1, H: 1})
	_, err = display.NewPreferences(other, fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, other.Get().Technique, pipeline.Point)
	test.ExpectEquality(t, other.Get().Sharpness, 0.5)
}

func TestCommandLine(t *testing.T) {
	prefs.PushCommandLineStack("pipeline.technique::sharpen; pipeline.internalWidth::100")
	defer prefs.PopCommandLineStack()

	state := pipeline.NewState(pipeline.Size{W: 1, H: 1}, pipeline.Size{W: 1, H: 1})
	p, err := display.NewPreferences(state, filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, state.Get().Technique, pipeline.BilinearSharpen)
	test.ExpectEquality(t, p.InternalSize(), pipeline.Size{W: 100, H: 360})
}
