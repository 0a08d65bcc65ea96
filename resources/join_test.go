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
	"testing"

	"github.com/jetsetilly/scalebench/test"
)

func TestPortable(t *testing.T) {
	dir := t.TempDir()
	executable = func() (string, error) {
		return filepath.Join(dir, "scalebench"), nil
	}
	defer func() { executable = os.Executable }()

	// portable folder does not exist yet
	_, ok := portablePath()
	test.ExpectFailure(t, ok)

	test.DemandSuccess(t, os.Mkdir(filepath.Join(dir, portableFolder), 0o700))

	p, err := JoinPath("screenshots", "shot.png")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, filepath.Join(dir, portableFolder, "screenshots", "shot.png"))

	// intermediate folder has been created but not the file
	info, err := os.Stat(filepath.Join(dir, portableFolder, "screenshots"))
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, info.IsDir())
	_, err = os.Stat(p)
	test.ExpectFailure(t, err)

	// base path is not prepended twice
	q, err := JoinPath(p)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, q, p)
}
