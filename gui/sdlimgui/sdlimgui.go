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

// Package sdlimgui is the interactive front end. It opens an SDL window with
// an OpenGL 3.2 core context, creates the GL device for the pipeline and
// draws a Dear ImGui overlay on top of the reconstructed image.
package sdlimgui

import (
	"errors"
	"fmt"
	"time"

	"github.com/inkyblackness/imgui-go/v4"

	"github.com/jetsetilly/scalebench/gui"
	"github.com/jetsetilly/scalebench/gui/display"
	"github.com/jetsetilly/scalebench/logger"
	"github.com/jetsetilly/scalebench/pipeline"
	"github.com/jetsetilly/scalebench/pipeline/gl32"
	"github.com/jetsetilly/scalebench/resources"
)

// imguiIniFile is where imgui will store the coordinates of the imgui windows
const imguiIniFile = "overlay_imgui.ini"

var _ gui.Host = (*SdlImgui)(nil)

// SdlImgui is an sdl based host using imgui for the overlay.
type SdlImgui struct {
	// the mechanical requirements for the gui
	io      imgui.IO
	context *imgui.Context
	plt     *platform
	glsl    *glsl

	dev   *gl32.Device
	state *pipeline.State
	prefs *display.Preferences

	// set by Attach()
	drv *pipeline.Driver

	// directory for screenshots
	screenshotDir string

	// a screenshot has been requested and will be taken at the next call to
	// Render()
	screenshotPending bool

	// overlay window can be hidden
	showOverlay bool

	lastFrame time.Time
	quit      bool
}

// NewSdlImgui is the preferred method of initialisation for type SdlImgui.
// The window is sized according to the display size in the preferences.
//
// MUST ONLY be called from the main thread.
func NewSdlImgui(prefs *display.Preferences, state *pipeline.State, screenshotDir string) (*SdlImgui, error) {
	img := &SdlImgui{
		context:       imgui.CreateContext(nil),
		io:            imgui.CurrentIO(),
		state:         state,
		prefs:         prefs,
		screenshotDir: screenshotDir,
		showOverlay:   true,
	}

	// path to dear imgui ini file
	iniPath, err := resources.JoinPath(imguiIniFile)
	if err != nil {
		img.context.Destroy()
		return nil, fmt.Errorf("sdlimgui: %w", err)
	}
	img.io.SetIniFilename(iniPath)

	img.plt, err = newPlatform(prefs.DisplaySize())
	if err != nil {
		img.context.Destroy()
		return nil, fmt.Errorf("sdlimgui: %w", err)
	}

	// the display size of the pipeline is the size of the drawable area in
	// pixels, which is not the same as the window size on high DPI displays
	surface := img.plt.surfaceSize()
	state.SetDisplaySize(surface)

	img.dev, err = gl32.NewDevice(surface)
	if err != nil {
		_ = img.plt.destroy()
		img.context.Destroy()
		return nil, fmt.Errorf("sdlimgui: %w", err)
	}

	img.glsl, err = newGlsl()
	if err != nil {
		img.dev.Destroy()
		_ = img.plt.destroy()
		img.context.Destroy()
		return nil, fmt.Errorf("sdlimgui: %w", err)
	}

	img.plt.setSwapInterval(prefs.SwapInterval.Get().(int))

	return img, nil
}

// Device implements the gui.Host interface.
func (img *SdlImgui) Device() pipeline.Device {
	return img.dev
}

// Attach implements the gui.Host interface.
func (img *SdlImgui) Attach(drv *pipeline.Driver) {
	img.drv = drv
}

// Destroy implements the gui.Host interface.
//
// MUST ONLY be called from the main thread.
func (img *SdlImgui) Destroy() error {
	img.glsl.destroy()
	img.dev.Destroy()
	err := img.plt.destroy()
	img.context.Destroy()
	return err
}

// Present implements the pipeline.Presenter interface.
func (img *SdlImgui) Present() error {
	img.plt.postRender()
	return nil
}

// takeScreenshot is called by Render() before the overlay is drawn so that
// the overlay is not included in the image.
func (img *SdlImgui) takeScreenshot() {
	img.screenshotPending = false
	if img.drv == nil {
		return
	}
	_, err := gui.Screenshot(img.drv, img.screenshotDir)
	if err != nil {
		logger.Log(logger.Allow, "sdlimgui", err)
	}
}

// the list of techniques that cannot be used. empty if no driver is
// attached.
func (img *SdlImgui) disabled() []pipeline.DisabledTechnique {
	if img.drv == nil {
		return nil
	}
	return img.drv.Reconstructor().Disabled()
}

// errorString returns the first line of a frame error, which is enough for
// the overlay. the full error is in the log.
func errorString(err error) string {
	var cerr *pipeline.CompileError
	if errors.As(err, &cerr) {
		return fmt.Sprintf("%s failed to compile", cerr.Program)
	}
	return err.Error()
}
