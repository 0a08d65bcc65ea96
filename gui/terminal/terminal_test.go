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

package terminal_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/scalebench/gui"
	"github.com/jetsetilly/scalebench/gui/terminal"
	"github.com/jetsetilly/scalebench/pipeline"
	"github.com/jetsetilly/scalebench/test"
)

// run the terminal over the input until it is exhausted.
func run(t *testing.T, input string) (*pipeline.State, *terminal.Terminal, *test.CompareWriter) {
	t.Helper()

	state := pipeline.NewState(pipeline.Size{W: 320, H: 180}, pipeline.Size{W: 640, H: 360})
	output := &test.CompareWriter{}

	trm := terminal.NewTerminal(strings.NewReader(input), output, state)
	test.ExpectFailure(t, trm.IsTerminal())

	trm.Start()
	<-trm.Done()
	trm.Stop()

	return state, trm, output
}

func TestTechniqueKeys(t *testing.T) {
	state, _, output := run(t, "4")
	test.ExpectEquality(t, state.Get().Technique, pipeline.EASU)
	test.ExpectSuccess(t, strings.Contains(output.String(), "EASU"))

	state, _, _ = run(t, "3251")
	test.ExpectEquality(t, state.Get().Technique, pipeline.Point)
	test.ExpectSuccess(t, state.Get().Native)
}

func TestSharpnessKeys(t *testing.T) {
	state, _, _ := run(t, "++")
	test.ExpectApproximate(t, state.Get().Sharpness, pipeline.DefaultSharpness+2*gui.SharpnessStep, 0.001)

	// cursor keys
	state, _, _ = run(t, "\x1b[A\x1b[A\x1b[B")
	test.ExpectApproximate(t, state.Get().Sharpness, pipeline.DefaultSharpness+gui.SharpnessStep, 0.001)

	// unknown escape sequences are ignored
	state, _, _ = run(t, "\x1b[C\x1bx")
	test.ExpectApproximate(t, state.Get().Sharpness, pipeline.DefaultSharpness, 0.001)
	test.ExpectEquality(t, state.Get().Technique, pipeline.DefaultTechnique)
}

func TestForwardedActions(t *testing.T) {
	state, trm, _ := run(t, "sxq")
	test.ExpectEquality(t, state.Get().Technique, pipeline.DefaultTechnique)

	test.DemandEquality(t, len(trm.Actions()), 2)
	test.ExpectEquality(t, <-trm.Actions(), gui.ActionScreenshot)
	test.ExpectEquality(t, <-trm.Actions(), gui.ActionQuit)

	_, trm, _ = run(t, "\x03")
	test.DemandEquality(t, len(trm.Actions()), 1)
	test.ExpectEquality(t, <-trm.Actions(), gui.ActionQuit)
}
