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

package performance_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/jetsetilly/scalebench/performance"
	"github.com/jetsetilly/scalebench/test"
)

func TestProfileString(t *testing.T) {
	p, err := performance.ParseProfileString("cpu, trace")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileTrace)
	test.ExpectEquality(t, p.String(), "cpu,trace")

	p, err = performance.ParseProfileString("none")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)

	p, err = performance.ParseProfileString("all")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileAll)

	_, err = performance.ParseProfileString("cpu,foo")
	test.ExpectFailure(t, err)
}

func TestCalcFPS(t *testing.T) {
	fps, acc := performance.CalcFPS(120, 2.0, 60)
	test.ExpectEquality(t, fps, 60.0)
	test.ExpectEquality(t, acc, 100.0)

	fps, acc = performance.CalcFPS(120, 2.0, 0)
	test.ExpectEquality(t, fps, 60.0)
	test.ExpectEquality(t, acc, 0.0)

	fps, _ = performance.CalcFPS(10, 0, 60)
	test.ExpectEquality(t, fps, 0.0)
}

func TestCheck(t *testing.T) {
	tw := &test.CompareWriter{}

	var frames int
	err := performance.Check(tw, performance.ProfileNone, func(_ float64) error {
		frames++
		return nil
	}, "10ms", 0)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, frames > 0)
	test.ExpectSuccess(t, strings.Contains(tw.String(), "fps"))

	// errors from the frame function stop the check
	frameErr := errors.New("frame failed")
	err = performance.Check(tw, performance.ProfileNone, func(_ float64) error {
		return frameErr
	}, "1s", 0)
	test.ExpectSuccess(t, errors.Is(err, frameErr))

	err = performance.Check(tw, performance.ProfileNone, nil, "foo", 0)
	test.ExpectFailure(t, err)
}
