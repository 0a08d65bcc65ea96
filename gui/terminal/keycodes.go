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

package terminal

// list of ASCII codes for non-alphanumeric characters
const (
	keyCtrlC = 3
	keyEsc   = 27
)

// list of ASCII code for characters that can follow keyEsc
const (
	escCursor = 91
)

// list of ASCII code for characters that can follow escCursor
const (
	cursorUp   = 'A'
	cursorDown = 'B'
)
