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

package sdlimgui

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/scalebench/gui"
	"github.com/jetsetilly/scalebench/pipeline"
)

// Service implements the gui.Host interface.
func (img *SdlImgui) Service() bool {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			img.quit = true

		case *sdl.WindowEvent:
			img.serviceWindowEvent(ev)

		case *sdl.TextInputEvent:
			img.io.AddInputCharacters(string(ev.Text[:]))

		case *sdl.KeyboardEvent:
			img.serviceKeyboard(ev)

		case *sdl.MouseWheelEvent:
			var deltaX, deltaY float32
			if ev.X > 0 {
				deltaX++
			} else if ev.X < 0 {
				deltaX--
			}
			if ev.Y > 0 {
				deltaY++
			} else if ev.Y < 0 {
				deltaY--
			}
			img.io.AddMouseWheelDelta(-deltaX/4, deltaY/4)
		}
	}

	return !img.quit
}

func (img *SdlImgui) serviceWindowEvent(ev *sdl.WindowEvent) {
	switch ev.Event {
	case sdl.WINDOWEVENT_SIZE_CHANGED:
		// only the display size changes. the internal size is a preference
		img.state.SetDisplaySize(img.plt.surfaceSize())
	}
}

// actionForScancode is the keyboard mapping for the window.
func actionForScancode(scancode sdl.Scancode) gui.Action {
	switch scancode {
	case sdl.SCANCODE_1, sdl.SCANCODE_KP_1:
		return gui.ActionPoint
	case sdl.SCANCODE_2, sdl.SCANCODE_KP_2:
		return gui.ActionBilinear
	case sdl.SCANCODE_3, sdl.SCANCODE_KP_3:
		return gui.ActionBilinearSharpen
	case sdl.SCANCODE_4, sdl.SCANCODE_KP_4:
		return gui.ActionEASU
	case sdl.SCANCODE_5, sdl.SCANCODE_KP_5:
		return gui.ActionToggleNative
	case sdl.SCANCODE_UP, sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
		return gui.ActionSharpnessUp
	case sdl.SCANCODE_DOWN, sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
		return gui.ActionSharpnessDown
	case sdl.SCANCODE_TAB:
		return gui.ActionCycleTechnique
	case sdl.SCANCODE_F12:
		return gui.ActionScreenshot
	case sdl.SCANCODE_ESCAPE:
		return gui.ActionQuit
	}
	return gui.ActionNone
}

func (img *SdlImgui) serviceKeyboard(ev *sdl.KeyboardEvent) {
	// keypresses are always forwarded to the imgui io system
	switch ev.Type {
	case sdl.KEYDOWN:
		img.io.KeyPress(int(ev.Keysym.Scancode))
	case sdl.KEYUP:
		img.io.KeyRelease(int(ev.Keysym.Scancode))
	}
	img.updateKeyModifier()

	if ev.Type != sdl.KEYDOWN {
		return
	}

	// widgets that accept text input take priority
	if img.io.WantTextInput() {
		return
	}

	switch ev.Keysym.Scancode {
	case sdl.SCANCODE_F1:
		if ev.Repeat == 0 {
			img.showOverlay = !img.showOverlay
		}
		return
	}

	action := actionForScancode(ev.Keysym.Scancode)
	switch action {
	case gui.ActionNone:
	case gui.ActionQuit:
		img.quit = true
	case gui.ActionScreenshot:
		if ev.Repeat == 0 {
			img.screenshotPending = true
		}
	case gui.ActionSharpnessUp, gui.ActionSharpnessDown:
		// sharpness changes repeat while the key is held
		action.Apply(img.state)
		img.changed()
	default:
		if ev.Repeat == 0 {
			action.Apply(img.state)
			img.changed()
		}
	}
}

// changed copies the state into the preferences so that the values are
// saved when the program ends.
func (img *SdlImgui) changed() {
	img.prefs.Capture()
}

func (img *SdlImgui) updateKeyModifier() {
	img.io.KeyShift(int(sdl.SCANCODE_LSHIFT), int(sdl.SCANCODE_RSHIFT))
	img.io.KeyCtrl(int(sdl.SCANCODE_LCTRL), int(sdl.SCANCODE_RCTRL))
	img.io.KeyAlt(int(sdl.SCANCODE_LALT), int(sdl.SCANCODE_RALT))
}

// the technique for each number key. the order is the same as the
// reconstruction techniques.
var numberKeys = map[pipeline.Technique]string{
	pipeline.Point:           "1",
	pipeline.Bilinear:        "2",
	pipeline.BilinearSharpen: "3",
	pipeline.EASU:            "4",
}
