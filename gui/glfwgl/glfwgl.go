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

// Package glfwgl is a minimal interactive front end using GLFW. It has the
// same keyboard mapping as the sdlimgui front end but no overlay window. The
// frame statistics are shown in the window title instead.
//
// It is useful on systems where SDL is not available and as a check that the
// pipeline makes no assumptions about the windowing library.
package glfwgl

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/jetsetilly/scalebench/gui"
	"github.com/jetsetilly/scalebench/gui/display"
	"github.com/jetsetilly/scalebench/logger"
	"github.com/jetsetilly/scalebench/pipeline"
	"github.com/jetsetilly/scalebench/pipeline/gl32"
	"github.com/jetsetilly/scalebench/version"
)

// how often the window title is updated
const titleUpdate = time.Second

var _ gui.Host = (*Window)(nil)

// Window implements the gui.Host interface.
type Window struct {
	window *glfw.Window
	dev    *gl32.Device
	state  *pipeline.State
	prefs  *display.Preferences
	drv    *pipeline.Driver

	screenshotDir     string
	screenshotPending bool

	lastTitle time.Time
}

// NewWindow is the preferred method of initialisation for the Window type.
//
// MUST ONLY be called from the main thread.
func NewWindow(prefs *display.Preferences, state *pipeline.State, screenshotDir string) (*Window, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	sz := prefs.DisplaySize()
	win, err := glfw.CreateWindow(sz.W, sz.H, version.String(), nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw: %w", err)
	}
	win.MakeContextCurrent()

	w := &Window{
		window:        win,
		state:         state,
		prefs:         prefs,
		screenshotDir: screenshotDir,
	}

	glfw.SwapInterval(prefs.SwapInterval.Get().(int))

	// the framebuffer size differs from the window size on high DPI displays
	fbw, fbh := win.GetFramebufferSize()
	surface := pipeline.Size{W: fbw, H: fbh}
	state.SetDisplaySize(surface)

	w.dev, err = gl32.NewDevice(surface)
	if err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("glfw: %w", err)
	}

	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.state.SetDisplaySize(pipeline.Size{W: width, H: height})
	})
	win.SetKeyCallback(w.key)

	logger.Logf(logger.Allow, "glfw", "version %s", glfw.GetVersionString())

	return w, nil
}

// actionForKey is the keyboard mapping for the window.
func actionForKey(key glfw.Key) gui.Action {
	switch key {
	case glfw.Key1, glfw.KeyKP1:
		return gui.ActionPoint
	case glfw.Key2, glfw.KeyKP2:
		return gui.ActionBilinear
	case glfw.Key3, glfw.KeyKP3:
		return gui.ActionBilinearSharpen
	case glfw.Key4, glfw.KeyKP4:
		return gui.ActionEASU
	case glfw.Key5, glfw.KeyKP5:
		return gui.ActionToggleNative
	case glfw.KeyUp, glfw.KeyEqual, glfw.KeyKPAdd:
		return gui.ActionSharpnessUp
	case glfw.KeyDown, glfw.KeyMinus, glfw.KeyKPSubtract:
		return gui.ActionSharpnessDown
	case glfw.KeyTab:
		return gui.ActionCycleTechnique
	case glfw.KeyF12:
		return gui.ActionScreenshot
	case glfw.KeyEscape:
		return gui.ActionQuit
	}
	return gui.ActionNone
}

func (w *Window) key(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action == glfw.Release {
		return
	}

	a := actionForKey(key)
	switch a {
	case gui.ActionNone:
	case gui.ActionQuit:
		w.window.SetShouldClose(true)
	case gui.ActionScreenshot:
		if action == glfw.Press {
			w.screenshotPending = true
		}
	case gui.ActionSharpnessUp, gui.ActionSharpnessDown:
		a.Apply(w.state)
		w.prefs.Capture()
	default:
		if action == glfw.Press {
			a.Apply(w.state)
			w.prefs.Capture()
		}
	}
}

// Device implements the gui.Host interface.
func (w *Window) Device() pipeline.Device {
	return w.dev
}

// Attach implements the gui.Host interface.
func (w *Window) Attach(drv *pipeline.Driver) {
	w.drv = drv
}

// Service implements the gui.Host interface.
func (w *Window) Service() bool {
	glfw.PollEvents()
	return !w.window.ShouldClose()
}

// Render implements the pipeline.Overlay interface.
func (w *Window) Render(stats pipeline.FrameStats) {
	if w.screenshotPending && w.drv != nil {
		w.screenshotPending = false
		if _, err := gui.Screenshot(w.drv, w.screenshotDir); err != nil {
			logger.Log(logger.Allow, "glfw", err)
		}
	}

	if time.Since(w.lastTitle) < titleUpdate {
		return
	}
	w.lastTitle = time.Now()

	title := fmt.Sprintf("%s  %.1f fps  %s  sharpness %.2f", version.ApplicationName, stats.FPS, stats.Technique, stats.Sharpness)
	if stats.Native {
		title = fmt.Sprintf("%s  native", title)
	}
	if stats.LastError != nil {
		title = fmt.Sprintf("%s  [error]", title)
	}
	w.window.SetTitle(title)
}

// Present implements the pipeline.Presenter interface.
func (w *Window) Present() error {
	w.window.SwapBuffers()
	return nil
}

// Destroy implements the gui.Host interface.
func (w *Window) Destroy() error {
	w.dev.Destroy()
	w.window.Destroy()
	glfw.Terminate()
	return nil
}
