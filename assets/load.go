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

package assets

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	"github.com/mitchellh/go-homedir"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/jetsetilly/scalebench/pipeline"
)

// number of bytes needed to identify a file type
const sniffLen = 261

// Decode an image from the reader. The returned string is the name of the
// format. Errors wrap pipeline.ErrAssetLoad.
//
// Data that is recognisably not an image (an archive or a document for
// example) is rejected before decoding is attempted so that the error is more
// helpful.
func Decode(r io.Reader) (*image.RGBA, string, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(sniffLen)
	if kind, _ := filetype.Match(head); kind != filetype.Unknown && kind.MIME.Type != "image" {
		return nil, "", fmt.Errorf("assets: %w: data is %s not an image", pipeline.ErrAssetLoad, kind.MIME.Value)
	}

	img, format, err := image.Decode(br)
	if err != nil {
		return nil, "", fmt.Errorf("assets: %w: %w", pipeline.ErrAssetLoad, err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, "", fmt.Errorf("assets: %w: empty %s image", pipeline.ErrAssetLoad, format)
	}
	return ToRGBA(img), format, nil
}

// Load decodes the image file. A leading tilde in the path is expanded to the
// user's home directory. Errors wrap pipeline.ErrAssetLoad.
func Load(path string) (*image.RGBA, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("assets: %w: %w", pipeline.ErrAssetLoad, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: %w: %w", pipeline.ErrAssetLoad, err)
	}
	defer f.Close()

	img, _, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return img, nil
}

// ToRGBA returns the image as an *image.RGBA with the origin at 0,0. If the
// image is already of that type and origin it is returned unchanged.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(rgba, image.Point{}, img, b, draw.Src, nil)
	return rgba
}

// FlipVertical returns a copy of the image with the rows in reverse order.
// Textures in OpenGL have the bottom row first.
func FlipVertical(img *image.RGBA) *image.RGBA {
	return transform.FlipV(img)
}

// SavePNG writes the image to a new PNG file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("assets: %w", err)
	}

	w := bufio.NewWriter(f)
	err = png.Encode(w, img)
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("assets: %w", err)
	}
	return nil
}
