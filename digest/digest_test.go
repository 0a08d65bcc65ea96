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

package digest_test

import (
	"testing"

	"github.com/jetsetilly/scalebench/digest"
	"github.com/jetsetilly/scalebench/pipeline"
	"github.com/jetsetilly/scalebench/pipeline/software"
	"github.com/jetsetilly/scalebench/test"
)

type presenter struct {
	count int
}

func (p *presenter) Present() error {
	p.count++
	return nil
}

// run the cube scene for a number of frames and return the digest.
func run(t *testing.T, technique pipeline.Technique, frames int) *digest.Video {
	t.Helper()

	display := pipeline.Size{W: 48, H: 32}
	dev := software.NewDevice(display)
	next := &presenter{}
	dig := digest.NewVideo(dev, next)

	scn, err := pipeline.NewCubeScene(dev)
	test.DemandSuccess(t, err)
	state := pipeline.NewState(pipeline.Size{W: 24, H: 16}, display)
	state.SetTechnique(technique)
	drv, err := pipeline.NewDriver(dev, state, scn, nil, dig)
	test.DemandSuccess(t, err)
	defer drv.Destroy()

	for i := 0; i < frames; i++ {
		test.DemandSuccess(t, drv.RunFrame(float64(i)/60))
	}

	test.ExpectEquality(t, next.count, frames)
	test.ExpectEquality(t, dig.Frames(), frames)

	return dig
}

func TestRepeatable(t *testing.T) {
	a := run(t, pipeline.EASU, 3)
	b := run(t, pipeline.EASU, 3)
	test.ExpectEquality(t, a.Hash(), b.Hash())
	test.ExpectEquality(t, len(a.Hash()), 40)
}

func TestDiffers(t *testing.T) {
	a := run(t, pipeline.Point, 2)
	b := run(t, pipeline.Bilinear, 2)
	test.ExpectInequality(t, a.Hash(), b.Hash())

	// the hash is chained so the number of frames matters
	c := run(t, pipeline.Point, 3)
	test.ExpectInequality(t, a.Hash(), c.Hash())
}

func TestReset(t *testing.T) {
	dig := run(t, pipeline.Point, 2)
	dig.ResetDigest()
	test.ExpectEquality(t, dig.Frames(), 0)
	test.ExpectEquality(t, dig.Hash(), "0000000000000000000000000000000000000000")
}
