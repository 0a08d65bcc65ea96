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
	"fmt"
	"os"

	"github.com/jetsetilly/scalebench/comparison"
	"github.com/jetsetilly/scalebench/modalflag"
)

func compare(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()

	out := md.AddString("out", "", "directory for rendered, reference and difference images")
	parallel := md.AddInt("parallel", 0, "number of scenarios rendered at the same time. zero is the number of CPUs")
	log := md.AddBool("log", false, "echo log to stdout")

	md.AdditionalHelp(`The argument is a scenario file in TOML (or YAML for .yaml and .yml files):

	[[scenario]]
	name = "cube-2x"
	internal = "640x360"
	display = "1280x720"
	techniques = ["point", "bilinear", "sharpen", "easu"]
	sharpness = 0.2

	[[scenario]]
	image = "photo.png"
	internal = "320x240"
	display = "1280x960"

Each technique is compared to the cube rendered at the display size or to the
image resized with a Lanczos filter.`)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setLogEcho(*log, os.Stdout)

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("scenario file required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	scenarios, err := comparison.Load(md.GetArg(0))
	if err != nil {
		return err
	}

	results, err := comparison.Run(ctx, scenarios, comparison.Options{
		OutputDir: *out,
		Parallel:  *parallel,
	})
	if err != nil {
		return err
	}

	if err := comparison.WriteTable(md.Output, results); err != nil {
		return err
	}

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d comparisons failed", failed, len(results))
	}

	return nil
}
