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
	"github.com/jetsetilly/scalebench/pipeline"
)

// SharpnessStep is the amount the sharpness changes with each key press.
const SharpnessStep = 0.05

// Action is the result of a key press. Front ends translate their own key
// events into an Action and then call Apply().
type Action int

// List of valid Action values.
const (
	ActionNone Action = iota
	ActionPoint
	ActionBilinear
	ActionBilinearSharpen
	ActionEASU
	ActionCycleTechnique
	ActionToggleNative
	ActionSharpnessUp
	ActionSharpnessDown

	// the following actions are not applied to the state and must be handled
	// by the front end
	ActionScreenshot
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionPoint:
		return "point"
	case ActionBilinear:
		return "bilinear"
	case ActionBilinearSharpen:
		return "bilinear+sharpen"
	case ActionEASU:
		return "easu+rcas"
	case ActionCycleTechnique:
		return "cycle technique"
	case ActionToggleNative:
		return "toggle native"
	case ActionSharpnessUp:
		return "sharpness up"
	case ActionSharpnessDown:
		return "sharpness down"
	case ActionScreenshot:
		return "screenshot"
	case ActionQuit:
		return "quit"
	}
	return "unknown action"
}

// ActionForRune translates a printable key into an Action. The number keys
// select the techniques in the order of pipeline.Techniques and the five key
// toggles native rendering.
func ActionForRune(r rune) Action {
	switch r {
	case '1':
		return ActionPoint
	case '2':
		return ActionBilinear
	case '3':
		return ActionBilinearSharpen
	case '4':
		return ActionEASU
	case '5':
		return ActionToggleNative
	case '+', '=':
		return ActionSharpnessUp
	case '-', '_':
		return ActionSharpnessDown
	case '\t':
		return ActionCycleTechnique
	case 's', 'S':
		return ActionScreenshot
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}

// Apply the action to the state. Returns false if the action is not one that
// changes the state.
func (a Action) Apply(state *pipeline.State) bool {
	switch a {
	case ActionPoint:
		state.SetTechnique(pipeline.Point)
	case ActionBilinear:
		state.SetTechnique(pipeline.Bilinear)
	case ActionBilinearSharpen:
		state.SetTechnique(pipeline.BilinearSharpen)
	case ActionEASU:
		state.SetTechnique(pipeline.EASU)
	case ActionCycleTechnique:
		state.CycleTechnique()
	case ActionToggleNative:
		state.ToggleNative()
	case ActionSharpnessUp:
		state.AdjustSharpness(SharpnessStep)
	case ActionSharpnessDown:
		state.AdjustSharpness(-SharpnessStep)
	default:
		return false
	}
	return true
}
