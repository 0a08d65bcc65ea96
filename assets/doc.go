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

// Package assets loads the images used as static content. PNG, JPEG, GIF,
// BMP, TIFF and WebP files are supported. Decoded images are always
// converted to *image.RGBA.
//
// The Watcher type reports when an image file has changed so that the
// static content can be reloaded without restarting.
package assets
