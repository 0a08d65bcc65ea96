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

// Package gui contains the parts of the interactive and terminal front ends
// that do not depend on a particular windowing library. The SDL window and
// overlay are in the sdlimgui sub-package and the raw terminal key reader is
// in the terminal sub-package.
package gui

import (
	"github.com/jetsetilly/scalebench/pipeline"
)

// Host is a window with a graphics context that the pipeline draws into. The
// Host is also the Overlay and the Presenter given to the pipeline.Driver.
//
// All methods must be called from the thread that created the Host.
type Host interface {
	pipeline.Overlay
	pipeline.Presenter

	// the device created for the host's graphics context
	Device() pipeline.Device

	// Attach the driver once it has been created. The driver needs the Host
	// as its overlay and presenter so it can't be an argument to the Host's
	// constructor.
	Attach(drv *pipeline.Driver)

	// Service handles pending input events. It returns false once the user
	// has asked to quit.
	Service() bool

	Destroy() error
}
