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

package comparison

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jetsetilly/scalebench/assets"
	"github.com/jetsetilly/scalebench/digest"
	"github.com/jetsetilly/scalebench/gui/display"
	"github.com/jetsetilly/scalebench/logger"
	"github.com/jetsetilly/scalebench/pipeline"
	"github.com/jetsetilly/scalebench/pipeline/software"
)

// Result of rendering one technique of one scenario.
type Result struct {
	Scenario  string
	Technique pipeline.Technique
	Metrics   Metrics

	// hash of the rendered frames
	Digest string

	// the error that prevented the technique from being rendered. the
	// Metrics and Digest fields are not valid if this is not nil
	Err error
}

// Options for Run().
type Options struct {
	// directory for the rendered, reference and difference images. no images
	// are written if this is empty
	OutputDir string

	// maximum number of scenarios rendered at the same time. zero means the
	// number of CPUs
	Parallel int
}

// Run every scenario and return the results in the order of the scenarios
// and their techniques.
//
// Errors in the scenario definition or loading the image stop the run and
// are returned. Errors rendering a technique are recorded in the Result.
func Run(ctx context.Context, scenarios []Scenario, opts Options) ([]Result, error) {
	plans := make([]plan, len(scenarios))
	for i, s := range scenarios {
		p, err := s.resolve(i)
		if err != nil {
			return nil, err
		}
		plans[i] = p
	}

	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("comparison: %w", err)
		}
	}

	results := make([][]Result, len(plans))

	g, ctx := errgroup.WithContext(ctx)
	if opts.Parallel > 0 {
		g.SetLimit(opts.Parallel)
	} else {
		g.SetLimit(runtime.NumCPU())
	}

	for i, p := range plans {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := runPlan(ctx, p, opts.OutputDir)
			results[i] = r
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Result
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

// source is the content of a scenario shared by all techniques.
type source struct {
	image     *image.RGBA
	reference *image.RGBA
}

func loadSource(p plan) (source, error) {
	switch p.content {
	case display.ContentImage:
		original, err := assets.Load(p.image)
		if err != nil {
			return source{}, fmt.Errorf("comparison: %s: %w", p.name, err)
		}
		src := original
		if !p.internal.IsZero() {
			src = Resize(original, p.internal)
		}
		return source{image: src, reference: Resize(original, p.display)}, nil
	}

	ref, err := cubeReference(p)
	if err != nil {
		return source{}, fmt.Errorf("comparison: %s: %w", p.name, err)
	}
	return source{reference: ref}, nil
}

func runPlan(ctx context.Context, p plan, outputDir string) ([]Result, error) {
	src, err := loadSource(p)
	if err != nil {
		return nil, err
	}

	if outputDir != "" {
		save(filepath.Join(outputDir, fmt.Sprintf("%s_reference.png", p.name)), src.reference)
	}

	results := make([]Result, 0, len(p.techniques))

	for _, t := range p.techniques {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res := Result{Scenario: p.name, Technique: t}

		img, hash, err := render(p, src, t)
		if err != nil {
			res.Err = err
			logger.Logf(logger.Allow, "comparison", "%s: %s: %v", p.name, t, err)
			results = append(results, res)
			continue
		}
		res.Digest = hash

		res.Metrics, err = Measure(img, src.reference)
		if err != nil {
			res.Err = err
		}

		if outputDir != "" {
			base := filepath.Join(outputDir, fmt.Sprintf("%s_%s", p.name, techniqueFilename(t)))
			save(base+".png", img)
			if res.Err == nil {
				save(base+"_diff.png", Difference(img, src.reference))
			}
		}

		results = append(results, res)
	}

	return results, nil
}

// render the scenario with the technique using a new software device.
func render(p plan, src source, t pipeline.Technique) (*image.RGBA, string, error) {
	dev := software.NewDevice(p.display)

	var scn pipeline.Scene
	switch p.content {
	case display.ContentImage:
		static, err := pipeline.NewStaticScene(dev, src.image)
		if err != nil {
			return nil, "", err
		}
		defer static.Destroy()
		scn = static
	default:
		cube, err := pipeline.NewCubeScene(dev)
		if err != nil {
			return nil, "", err
		}
		scn = cube
	}

	state := pipeline.NewState(p.internal, p.display)
	state.SetTechnique(t)
	state.SetSharpness(p.sharpness)

	dig := digest.NewVideo(dev, nil)

	drv, err := pipeline.NewDriver(dev, state, scn, nil, dig)
	if err != nil {
		return nil, "", err
	}
	defer drv.Destroy()

	for i := 0; i < p.frames; i++ {
		err = drv.RunFrame(p.time + float64(i)/60.0)
		if err != nil {
			return nil, "", err
		}
	}

	img, err := drv.Screenshot()
	if err != nil {
		return nil, "", err
	}

	return img, dig.Hash(), nil
}

func techniqueFilename(t pipeline.Technique) string {
	return strings.ReplaceAll(strings.ToLower(t.String()), "+", "_")
}

// save failures are logged but do not stop the comparison.
func save(path string, img *image.RGBA) {
	if err := assets.SavePNG(path, img); err != nil {
		logger.Log(logger.Allow, "comparison", err)
	}
}
