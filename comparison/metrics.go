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

package comparison

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blend"
)

// ErrSizeMismatch is returned when two images being compared are not the same
// size.
var ErrSizeMismatch = errors.New("images are not the same size")

// Metrics is the result of comparing an image with a reference. Only the
// colour channels are compared.
type Metrics struct {
	// peak signal to noise ratio in decibels. positive infinity if the images
	// are identical
	PSNR float64

	// largest absolute difference of any channel
	MaxError int

	// mean absolute difference over all channels
	MeanError float64
}

func (m Metrics) String() string {
	return fmt.Sprintf("psnr %s  max %d  mean %.3f", m.PSNRString(), m.MaxError, m.MeanError)
}

// PSNRString formats the PSNR value.
func (m Metrics) PSNRString() string {
	if math.IsInf(m.PSNR, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.2fdB", m.PSNR)
}

// Identical is true if the images had no differences.
func (m Metrics) Identical() bool {
	return m.MaxError == 0
}

// Measure compares the image with the reference.
func Measure(img *image.RGBA, ref *image.RGBA) (Metrics, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w != ref.Rect.Dx() || h != ref.Rect.Dy() {
		return Metrics{}, fmt.Errorf("comparison: %w: %v and %v", ErrSizeMismatch, img.Rect.Size(), ref.Rect.Size())
	}

	var m Metrics
	if w == 0 || h == 0 {
		m.PSNR = math.Inf(1)
		return m, nil
	}

	var sumSq, sumAbs float64
	for y := 0; y < h; y++ {
		a := img.Pix[y*img.Stride:]
		b := ref.Pix[y*ref.Stride:]
		for x := 0; x < w*4; x += 4 {
			for c := 0; c < 3; c++ {
				d := int(a[x+c]) - int(b[x+c])
				if d < 0 {
					d = -d
				}
				m.MaxError = max(m.MaxError, d)
				sumAbs += float64(d)
				sumSq += float64(d * d)
			}
		}
	}

	n := float64(w * h * 3)
	m.MeanError = sumAbs / n

	mse := sumSq / n
	if mse == 0 {
		m.PSNR = math.Inf(1)
	} else {
		m.PSNR = 10 * math.Log10(255*255/mse)
	}

	return m, nil
}

// amount the difference image is amplified by so that small errors are
// visible
const differenceGain = 4

// Difference returns an image showing the absolute difference between the
// two images for each channel. The differences are amplified and the alpha
// channel is always opaque.
func Difference(img *image.RGBA, ref *image.RGBA) *image.RGBA {
	diff := blend.Difference(ref, img)
	return adjust.Apply(diff, func(c color.RGBA) color.RGBA {
		gain := func(v uint8) uint8 {
			return uint8(min(255, int(v)*differenceGain))
		}
		return color.RGBA{R: gain(c.R), G: gain(c.G), B: gain(c.B), A: 255}
	})
}
