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

package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/jetsetilly/scalebench/pipeline"
)

// Video is an implementation of the pipeline.Presenter interface. It
// generates a sha1 value of the presentable surface every frame and then
// calls the next Presenter, if there is one.
//
// Note that the use of sha1 is fine for this application because this is not
// a cryptographic task.
type Video struct {
	dev  pipeline.Device
	next pipeline.Presenter

	digest [sha1.Size]byte
	pixels []byte
	frames int
}

var _ Digest = (*Video)(nil)
var _ pipeline.Presenter = (*Video)(nil)

// only the colour channels are hashed
const pixelDepth = 3

// NewVideo is the preferred method of initialisation for the Video type. The
// next argument can be nil.
func NewVideo(dev pipeline.Device, next pipeline.Presenter) *Video {
	return &Video{dev: dev, next: next}
}

// Hash implements the Digest interface.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Video) ResetDigest() {
	clear(dig.digest[:])
	dig.frames = 0
}

// Frames returns the number of frames included in the hash.
func (dig *Video) Frames() int {
	return dig.frames
}

// Present implements the pipeline.Presenter interface.
func (dig *Video) Present() error {
	img, err := dig.dev.ReadPixels(nil)
	if err != nil {
		return fmt.Errorf("digest: %w", err)
	}

	w, h := img.Rect.Dx(), img.Rect.Dy()

	// room for the previous digest value at the head of the pixel data
	l := len(dig.digest) + w*h*pixelDepth
	if len(dig.pixels) != l {
		dig.pixels = make([]byte, l)
	}

	// chain fingerprints by copying the value of the last fingerprint to the
	// head of the video data
	i := copy(dig.pixels, dig.digest[:])
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			i += copy(dig.pixels[i:], row[x:x+pixelDepth])
		}
	}

	dig.digest = sha1.Sum(dig.pixels)
	dig.frames++

	if dig.next != nil {
		return dig.next.Present()
	}
	return nil
}
