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
	"fmt"
	"image"
	"io"
	"time"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/scalebench/logger"
)

// Overlay is called by the Driver every frame after the reconstruction pass
// and before presentation. The presentable surface is bound when it is
// called.
type Overlay interface {
	Render(stats FrameStats)
}

// Presenter is called at the end of every frame to present the surface.
type Presenter interface {
	Present() error
}

// static content exposes the texture that is used as the reconstruction
// source.
type texturedScene interface {
	Texture() Target
}

// Driver runs the passes of the pipeline in order, once per frame.
type Driver struct {
	dev     Device
	state   *State
	targets *Targets
	recon   *Reconstructor
	scene   Scene

	overlay   Overlay
	presenter Presenter

	stats FrameStats

	// fps measurement window
	windowStart  float64
	windowFrames int
	prevElapsed  float64
	started      bool
}

// NewDriver is the preferred method of initialisation for the Driver type.
// The overlay and presenter arguments can be nil.
//
// For dynamic scenes the internal target is created immediately. Failure to
// create it is returned and should be treated as fatal. Compile errors are
// not returned, they disable the affected techniques (see
// Reconstructor.Disabled()).
func NewDriver(dev Device, state *State, scn Scene, overlay Overlay, presenter Presenter) (*Driver, error) {
	drv := &Driver{
		dev:       dev,
		state:     state,
		targets:   NewTargets(dev),
		scene:     scn,
		overlay:   overlay,
		presenter: presenter,
	}

	if scn.Dynamic() {
		if _, err := drv.targets.EnsureInternal(state.Get().InternalSize); err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
	}

	drv.recon = NewReconstructor(dev, drv.targets)

	return drv, nil
}

// Targets returns the render target manager.
func (drv *Driver) Targets() *Targets {
	return drv.targets
}

// Reconstructor returns the reconstructor used by the driver.
func (drv *Driver) Reconstructor() *Reconstructor {
	return drv.recon
}

// Stats returns the statistics of the most recent frame.
func (drv *Driver) Stats() FrameStats {
	return drv.stats
}

// RunFrame renders a single frame. The elapsed argument is the time in
// seconds since the start of the program and drives the animation of
// dynamic content.
//
// Errors are logged and returned but are never fatal. If the frame could not
// be rendered the presentable surface is cleared and the overlay and
// presentation steps still run.
func (drv *Driver) RunFrame(elapsed float64) error {
	params := drv.state.Get()

	if !params.DisplaySize.IsZero() && drv.dev.Surface() != params.DisplaySize {
		drv.dev.ResizeSurface(params.DisplaySize)
	}

	err := drv.render(&params, elapsed)
	if err != nil {
		err = fmt.Errorf("pipeline: %w", err)
		logger.Log(logger.Allow, "pipeline", err)
		_ = WithTarget(drv.dev, nil, func() error {
			drv.dev.Clear([4]float32{0, 0, 0, 1}, false)
			return nil
		})
	}

	drv.updateStats(params, elapsed, err)

	if drv.overlay != nil {
		_ = WithTarget(drv.dev, nil, func() error {
			drv.overlay.Render(drv.stats)
			return nil
		})
	}

	if drv.presenter != nil {
		if perr := drv.presenter.Present(); perr != nil {
			perr = fmt.Errorf("pipeline: present: %w", perr)
			logger.Log(logger.Allow, "pipeline", perr)
			if err == nil {
				err = perr
			}
		}
	}

	return err
}

// render the scene pass and the reconstruction pass. the params argument is
// updated with the internal size of static content.
func (drv *Driver) render(params *Parameters, elapsed float64) error {
	if ts, ok := drv.scene.(texturedScene); ok {
		src := ts.Texture()
		if src != nil {
			params.InternalSize = src.Size()
		}
		return drv.recon.Reconstruct(src, params.Technique, *params, nil)
	}

	if params.Native {
		return drv.scene.Render(drv.dev, nil, elapsed)
	}

	// a zero internal size is passed on to the reconstructor so that it can
	// be rejected without any draw being submitted
	var src Target
	if !params.InternalSize.IsZero() {
		var err error
		src, err = drv.targets.EnsureInternal(params.InternalSize)
		if err != nil {
			return err
		}
		if err := drv.scene.Render(drv.dev, src, elapsed); err != nil {
			return err
		}
	}

	return drv.recon.Reconstruct(src, params.Technique, *params, nil)
}

func (drv *Driver) updateStats(params Parameters, elapsed float64, err error) {
	if !drv.started {
		drv.started = true
		drv.windowStart = elapsed
		drv.prevElapsed = elapsed
	}

	drv.stats.Frames++
	drv.stats.FrameTime = time.Duration((elapsed - drv.prevElapsed) * float64(time.Second))
	drv.prevElapsed = elapsed

	drv.windowFrames++
	if w := elapsed - drv.windowStart; w >= 1.0 {
		drv.stats.FPS = float64(drv.windowFrames) / w
		drv.windowStart = elapsed
		drv.windowFrames = 0
	}

	drv.stats.Technique = params.Technique
	drv.stats.Native = params.Native && drv.scene.Dynamic()
	drv.stats.Sharpness = params.Sharpness
	drv.stats.InternalSize = params.InternalSize
	drv.stats.DisplaySize = params.DisplaySize
	drv.stats.LastError = err
}

// Screenshot returns a copy of the presentable surface.
func (drv *Driver) Screenshot() (*image.RGBA, error) {
	img, err := drv.dev.ReadPixels(nil)
	if err != nil {
		return nil, fmt.Errorf("pipeline: screenshot: %w", err)
	}
	return img, nil
}

// Destroy releases all targets owned by the pipeline. Static content is not
// owned by the pipeline and is not released.
func (drv *Driver) Destroy() {
	drv.targets.Destroy()
}

// pipelineState is the structure written by DumpState().
type pipelineState struct {
	Parameters   Parameters
	Stats        FrameStats
	Device       DeviceStats
	Internal     *Size
	Intermediate *Size
	Disabled     []DisabledTechnique
}

// DumpState writes a graphviz representation of the pipeline state to w.
func (drv *Driver) DumpState(w io.Writer) {
	s := pipelineState{
		Parameters: drv.state.Get(),
		Stats:      drv.stats,
		Device:     drv.dev.Stats(),
		Disabled:   drv.recon.Disabled(),
	}
	if t := drv.targets.internal; t != nil {
		sz := t.Size()
		s.Internal = &sz
	}
	if t := drv.targets.intermediate; t != nil {
		sz := t.Size()
		s.Intermediate = &sz
	}
	memviz.Map(w, &s)
}
