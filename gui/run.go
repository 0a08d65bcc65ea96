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

package gui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jetsetilly/scalebench/assets"
	"github.com/jetsetilly/scalebench/logger"
	"github.com/jetsetilly/scalebench/pipeline"
)

// Reload replaces the texture of a static scene when the watched image file
// changes.
type Reload struct {
	Watcher *assets.Watcher
	Scene   *pipeline.StaticScene
}

// poll the watcher and replace the scene texture if a new image is ready.
// failures are logged and the previous image is kept.
func (r *Reload) poll() {
	if r == nil || r.Watcher == nil || r.Scene == nil {
		return
	}

	img, err := r.Watcher.Poll()
	if err != nil {
		logger.Log(logger.Allow, "gui", err)
		return
	}
	if img == nil {
		return
	}

	err = r.Scene.Replace(img)
	if err != nil {
		logger.Log(logger.Allow, "gui", err)
		return
	}
	logger.Logf(logger.Allow, "gui", "reloaded image (%dx%d)", img.Rect.Dx(), img.Rect.Dy())
}

// Run is the frame loop for a Host. It returns when the Host reports that the
// user has quit. Frame errors are logged by the driver and do not end the
// loop.
func Run(host Host, drv *pipeline.Driver, reload *Reload) {
	host.Attach(drv)

	start := time.Now()
	for host.Service() {
		reload.poll()
		_ = drv.RunFrame(time.Since(start).Seconds())
	}
}

// ScreenshotFilename returns a filename in the directory that includes the
// technique and a timestamp.
func ScreenshotFilename(dir string, technique pipeline.Technique) string {
	name := strings.ToLower(technique.String())
	name = strings.ReplaceAll(name, "+", "_")
	return filepath.Join(dir, fmt.Sprintf("scalebench_%s_%s.png", name, time.Now().Format("20060102_150405.000")))
}

// Screenshot saves the presented frame to a PNG file in the directory and
// returns the filename.
func Screenshot(drv *pipeline.Driver, dir string) (string, error) {
	img, err := drv.Screenshot()
	if err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}

	filename := ScreenshotFilename(dir, drv.Stats().Technique)
	err = assets.SavePNG(filename, img)
	if err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}

	logger.Logf(logger.Allow, "gui", "screenshot saved to %s", filename)
	return filename, nil
}
