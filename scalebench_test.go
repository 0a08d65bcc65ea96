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

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/scalebench/assets"
	"github.com/jetsetilly/scalebench/test"
)

func TestVersionMode(t *testing.T) {
	test.ExpectEquality(t, launch(context.Background(), []string{"VERSION"}), 0)
	test.ExpectEquality(t, launch(context.Background(), []string{"VERSION", "-revision"}), 0)
}

func TestHeadlessMode(t *testing.T) {
	final := filepath.Join(t.TempDir(), "final.png")

	status := launch(context.Background(), []string{
		"HEADLESS",
		"-frames", "3",
		"-fps", "0",
		"-display", "64x36",
		"-prefs", "pipeline.internalWidth::32; pipeline.internalHeight::18; pipeline.technique::EASU+RCAS; content.type::cube",
		"-screenshot", final,
	})
	test.DemandEquality(t, status, 0)

	img, err := assets.Load(final)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.Rect.Dx(), 64)
	test.ExpectEquality(t, img.Rect.Dy(), 36)
}

func TestCompareMode(t *testing.T) {
	dir := t.TempDir()
	scenarios := filepath.Join(dir, "scenarios.toml")
	err := os.WriteFile(scenarios, []byte(`
[[scenario]]
name = "small"
internal = "16x9"
display = "32x18"
techniques = ["bilinear"]
`), 0o644)
	test.DemandSuccess(t, err)

	out := filepath.Join(dir, "out")
	test.DemandEquality(t, launch(context.Background(), []string{"COMPARE", "-out", out, scenarios}), 0)

	_, err = os.Stat(filepath.Join(out, "small_bilinear.png"))
	test.ExpectSuccess(t, err)

	// missing scenario file
	test.ExpectEquality(t, launch(context.Background(), []string{"COMPARE"}), 20)
	test.ExpectEquality(t, launch(context.Background(), []string{"COMPARE", filepath.Join(dir, "missing.toml")}), 20)
}
