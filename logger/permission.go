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

package logger

// Permission implementations indicate whether the environment making a log
// request is allowed to create new log entries. Good for controlling when or if
// log entries are to be made. For example, a pass that runs every frame can
// use a Permission that only allows logging when the frame is being inspected.
type Permission interface {
	AllowLogging() bool
}

type allow struct{}

func (_ allow) AllowLogging() bool {
	return true
}

// Allow indicates that the logging request should be allowed. A good default to
// use if a log entry should always be made.
var Allow Permission = allow{}

// Once is a Permission that allows a single log entry and then refuses all
// further requests until Reset() is called. The zero value is ready to use.
type Once struct {
	done bool
}

// AllowLogging implements the Permission interface.
func (o *Once) AllowLogging() bool {
	if o.done {
		return false
	}
	o.done = true
	return true
}

// Reset allows the next log request.
func (o *Once) Reset() {
	o.done = false
}
