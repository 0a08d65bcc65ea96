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
	"math"
	"testing"

	"github.com/jetsetilly/scalebench/pipeline"
	"github.com/jetsetilly/scalebench/test"
)

func TestTechnique(t *testing.T) {
	test.ExpectEquality(t, pipeline.Point.String(), "Point")
	test.ExpectEquality(t, pipeline.EASU.String(), "EASU+RCAS")
	test.ExpectEquality(t, pipeline.Point.Passes(), 1)
	test.ExpectEquality(t, pipeline.BilinearSharpen.Passes(), 2)
	test.ExpectEquality(t, pipeline.Bilinear.InputFilter(), pipeline.FilterLinear)
	test.ExpectEquality(t, pipeline.EASU.InputFilter(), pipeline.FilterPoint)
	test.ExpectEquality(t, pipeline.Bilinear.Sharpens(), false)
	test.ExpectEquality(t, pipeline.EASU.Sharpens(), true)

	test.ExpectEquality(t, pipeline.EASU.Next(), pipeline.Point)
	test.ExpectEquality(t, pipeline.Technique(99).Next(), pipeline.DefaultTechnique)
	test.ExpectEquality(t, pipeline.Technique(-1).Valid(), false)

	for _, tc := range []struct {
		name string
		tech pipeline.Technique
	}{
		{"point", pipeline.Point},
		{"Nearest", pipeline.Point},
		{"bilinear", pipeline.Bilinear},
		{" sharpen ", pipeline.BilinearSharpen},
		{"EASU+RCAS", pipeline.EASU},
		{"fsr", pipeline.EASU},
	} {
		tech, err := pipeline.ParseTechnique(tc.name)
		test.ExpectSuccess(t, err, tc.name)
		test.ExpectEquality(t, tech, tc.tech, tc.name)
	}

	// every technique can be parsed from its own name
	for _, tech := range pipeline.Techniques {
		p, err := pipeline.ParseTechnique(tech.String())
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, p, tech)
	}

	_, err := pipeline.ParseTechnique("bicubic")
	test.ExpectFailure(t, err)
}

func TestSize(t *testing.T) {
	sz, err := pipeline.ParseSize("640x360")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, sz, pipeline.Size{W: 640, H: 360})
	test.ExpectEquality(t, sz.String(), "640x360")
	test.ExpectApproximate(t, sz.Aspect(), 16.0/9.0, 0.0001)
	test.ExpectEquality(t, sz.Scale(2), pipeline.Size{W: 1280, H: 720})
	test.ExpectEquality(t, sz.Scale(0), pipeline.Size{W: 1, H: 1})

	_, err = pipeline.ParseSize("640")
	test.ExpectFailure(t, err)
	_, err = pipeline.ParseSize("0x360")
	test.ExpectFailure(t, err)

	test.ExpectEquality(t, pipeline.Size{W: 0, H: 10}.IsZero(), true)
	test.ExpectEquality(t, pipeline.Size{W: -1, H: 10}.IsZero(), true)
	test.ExpectEquality(t, pipeline.Size{}.Aspect(), float32(1))
}

func TestState(t *testing.T) {
	st := pipeline.NewState(pipeline.Size{W: 640, H: 360}, pipeline.Size{W: 1280, H: 720})
	p := st.Get()
	test.ExpectEquality(t, p.Technique, pipeline.DefaultTechnique)
	test.ExpectEquality(t, p.Sharpness, pipeline.DefaultSharpness)
	test.ExpectEquality(t, p.Native, false)

	st.SetTechnique(pipeline.EASU)
	test.ExpectEquality(t, st.Get().Technique, pipeline.EASU)
	st.SetTechnique(pipeline.Technique(42))
	test.ExpectEquality(t, st.Get().Technique, pipeline.EASU)
	st.CycleTechnique()
	test.ExpectEquality(t, st.Get().Technique, pipeline.Point)

	st.SetSharpness(2.0)
	test.ExpectEquality(t, st.Get().Sharpness, pipeline.MaxSharpness)
	st.SetSharpness(-1.0)
	test.ExpectEquality(t, st.Get().Sharpness, pipeline.MinSharpness)
	st.SetSharpness(math.NaN())
	test.ExpectEquality(t, st.Get().Sharpness, pipeline.MinSharpness)

	// repeated small steps do not accumulate error
	for i := 0; i < 30; i++ {
		st.AdjustSharpness(0.05)
	}
	test.ExpectEquality(t, st.Get().Sharpness, pipeline.MaxSharpness)
	for i := 0; i < 5; i++ {
		st.AdjustSharpness(-0.05)
	}
	test.ExpectEquality(t, st.Get().Sharpness, 0.75)

	st.ToggleNative()
	test.ExpectEquality(t, st.Get().Native, true)
	st.SetNative(false)
	test.ExpectEquality(t, st.Get().Native, false)

	st.SetInternalSize(pipeline.Size{W: 320, H: 180})
	st.SetDisplaySize(pipeline.Size{W: 1920, H: 1080})
	p = st.Get()
	test.ExpectEquality(t, p.InternalSize, pipeline.Size{W: 320, H: 180})
	test.ExpectEquality(t, p.DisplaySize, pipeline.Size{W: 1920, H: 1080})
}
