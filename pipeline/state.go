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

package pipeline

import (
	"math"
	"sync"
)

// State holds the current Parameters. It is written by the input and overlay
// collaborators between frames and read once per frame by the Driver.
//
// The setters do no validation beyond range clamping. Structurally invalid
// combinations, such as a zero internal size, are rejected when the frame is
// rendered.
type State struct {
	crit   sync.Mutex
	params Parameters
}

// NewState is the preferred method of initialisation for the State type.
func NewState(internal Size, display Size) *State {
	return &State{
		params: Parameters{
			InternalSize: internal,
			DisplaySize:  display,
			Sharpness:    DefaultSharpness,
			Technique:    DefaultTechnique,
		},
	}
}

// Get returns a snapshot of the current parameters.
func (st *State) Get() Parameters {
	st.crit.Lock()
	defer st.crit.Unlock()
	return st.params
}

// SetTechnique changes the active technique. Invalid values are ignored.
func (st *State) SetTechnique(t Technique) {
	if !t.Valid() {
		return
	}
	st.crit.Lock()
	defer st.crit.Unlock()
	st.params.Technique = t
}

// CycleTechnique selects the next technique in the list.
func (st *State) CycleTechnique() {
	st.crit.Lock()
	defer st.crit.Unlock()
	st.params.Technique = st.params.Technique.Next()
}

// SetSharpness changes the sharpness. The value is clamped to the sharpness
// range. NaN is ignored.
func (st *State) SetSharpness(s float64) {
	if math.IsNaN(s) {
		return
	}
	s = math.Max(MinSharpness, math.Min(MaxSharpness, s))
	st.crit.Lock()
	defer st.crit.Unlock()
	st.params.Sharpness = s
}

// AdjustSharpness adds delta to the current sharpness. The result is clamped
// to the sharpness range.
func (st *State) AdjustSharpness(delta float64) {
	if math.IsNaN(delta) {
		return
	}
	st.crit.Lock()
	defer st.crit.Unlock()

	// rounding to two decimal places prevents accumulated error when the
	// sharpness is stepped repeatedly
	s := math.Round((st.params.Sharpness+delta)*100) / 100
	st.params.Sharpness = math.Max(MinSharpness, math.Min(MaxSharpness, s))
}

// SetNative turns native rendering on or off.
func (st *State) SetNative(native bool) {
	st.crit.Lock()
	defer st.crit.Unlock()
	st.params.Native = native
}

// ToggleNative flips the native rendering flag.
func (st *State) ToggleNative() {
	st.crit.Lock()
	defer st.crit.Unlock()
	st.params.Native = !st.params.Native
}

// SetInternalSize changes the internal resolution.
func (st *State) SetInternalSize(sz Size) {
	st.crit.Lock()
	defer st.crit.Unlock()
	st.params.InternalSize = sz
}

// SetDisplaySize changes the display resolution. Called by the host when
// the presentable surface is resized.
func (st *State) SetDisplaySize(sz Size) {
	st.crit.Lock()
	defer st.crit.Unlock()
	st.params.DisplaySize = sz
}
