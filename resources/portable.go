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

package resources

import (
	"os"
	"path/filepath"
)

// name of the portable resource folder. if a folder of this name exists
// alongside the executable then it is used in preference to any other base
// path.
const portableFolder = "scalebench_resources"

// override for the location of the executable. only used by tests.
var executable = os.Executable

func portablePath() (string, bool) {
	ex, err := executable()
	if err != nil {
		return "", false
	}
	p := filepath.Join(filepath.Dir(ex), portableFolder)
	if info, err := os.Stat(p); err == nil && info.IsDir() {
		return p, true
	}
	return "", false
}
