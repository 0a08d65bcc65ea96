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

// Package digest produces a cryptographic hash of the frames presented by the
// pipeline. The hash can be used to compare the output of subsequent runs. If
// a new hash differs from a previously recorded value then something has
// changed in the rendering. The HEADLESS and COMPARE modes print the hash for
// this reason.
package digest

// Digest implementations return a cryptographic hash of everything they have
// seen since the last call to ResetDigest().
type Digest interface {
	Hash() string
	ResetDigest()
}
