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
	"time"

	"github.com/jetsetilly/scalebench/assets"
	"github.com/jetsetilly/scalebench/digest"
	"github.com/jetsetilly/scalebench/gui"
	"github.com/jetsetilly/scalebench/gui/terminal"
	"github.com/jetsetilly/scalebench/logger"
	"github.com/jetsetilly/scalebench/modalflag"
	"github.com/jetsetilly/scalebench/performance"
	"github.com/jetsetilly/scalebench/performance/limiter"
	"github.com/jetsetilly/scalebench/pipeline"
	"github.com/jetsetilly/scalebench/pipeline/software"
)

// statusLog is the overlay of the headless driver. it logs the frame
// statistics once a second.
type statusLog struct {
	last time.Time
}

func (s *statusLog) Render(stats pipeline.FrameStats) {
	if time.Since(s.last) < time.Second {
		return
	}
	s.last = time.Now()
	logger.Logf(logger.Allow, "headless", "%.1f fps  %s  %s -> %s", stats.FPS, stats.Technique, stats.InternalSize, stats.DisplaySize)
}

func headless(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()

	override := md.AddString("prefs", "", "preferences to set before starting (key::value; key::value)")
	size := md.AddString("display", "", "display size (WxH). defaults to the internal size multiplied by the scale preference")
	frames := md.AddInt("frames", 0, "number of frames to render. zero renders until quit")
	fpsCap := md.AddInt("fps", -1, "frame rate limit. zero is unlimited and -1 uses the fpsCap preference")
	check := md.AddString("check", "", "measure frame rate for a duration (eg. 10s) and exit")
	profile := md.AddString("profile", "none", "profile types to create: cpu, mem, trace, all, none")
	screenshot := md.AddString("screenshot", "scalebench_headless.png", "file for the final frame. empty for no file")
	screenshots := md.AddString("screenshots", ".", "directory for screenshots requested from the terminal")
	memvizFile := md.AddString("memviz", "", "write a graphviz dump of the pipeline state to file on exit")
	log := md.AddBool("log", false, "echo log to stdout")

	md.AdditionalHelp(`Renders with the software device without opening a window. The optional
argument is the path of an image to display.

If stdin is a terminal then keys change the technique while running:
1-4 technique, 5 native, +/- or Up/Down sharpness, s screenshot, q quit.`)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setLogEcho(*log, os.Stdout)

	if len(md.RemainingArgs()) > 1 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	prof, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	state := pipeline.NewState(pipeline.Size{}, pipeline.Size{})

	pref, err := newPreferences(state, *override, md.GetArg(0))
	if err != nil {
		return err
	}

	displaySize := pref.DisplaySize()
	if *size != "" {
		displaySize, err = pipeline.ParseSize(*size)
		if err != nil {
			return err
		}
	}
	state.SetDisplaySize(displaySize)

	if *fpsCap < 0 {
		*fpsCap = pref.FPSCap.Get().(int)
	}

	dev := software.NewDevice(displaySize)

	scn, static, err := newScene(dev, pref)
	if err != nil {
		return err
	}
	if static != nil {
		defer static.Destroy()
	}

	dig := digest.NewVideo(dev, nil)

	drv, err := pipeline.NewDriver(dev, state, scn, &statusLog{}, dig)
	if err != nil {
		return err
	}
	defer drv.Destroy()

	if *check != "" {
		return performance.Check(md.Output, prof, drv.RunFrame, *check, float64(*fpsCap))
	}

	lim, err := limiter.NewFPSLimiter(*fpsCap)
	if err != nil {
		return err
	}
	defer lim.Stop()

	// keys are only read from an interactive terminal. reading from a pipe
	// would consume input meant for something else
	var keys <-chan gui.Action
	trm := terminal.NewTerminal(os.Stdin, md.Output, state)
	if trm.IsTerminal() {
		trm.Start()
		defer trm.Stop()
		keys = trm.Actions()
	}

	err = performance.RunProfiler(prof, "headless", func() error {
		start := time.Now()
		for n := 0; *frames == 0 || n < *frames; n++ {
			select {
			case <-ctx.Done():
				return nil
			case <-trm.Done():
				return nil
			case action := <-keys:
				switch action {
				case gui.ActionQuit:
					return nil
				case gui.ActionScreenshot:
					if _, err := gui.Screenshot(drv, *screenshots); err != nil {
						logger.Log(logger.Allow, "headless", err)
					}
				}
			default:
			}

			lim.Wait()

			// frame errors are recorded by the driver and shown in the status
			// log. the loop continues so that a different technique can be
			// chosen
			_ = drv.RunFrame(time.Since(start).Seconds())
		}
		return nil
	})
	if err != nil {
		return err
	}

	stats := drv.Stats()
	fmt.Fprintf(md.Output, "%d frames  %s  sharpness %.2f  digest %s\n", dig.Frames(), stats.Technique, stats.Sharpness, dig.Hash())
	if stats.LastError != nil {
		fmt.Fprintf(md.Output, "last error: %v\n", stats.LastError)
	}

	if *screenshot != "" {
		img, err := drv.Screenshot()
		if err != nil {
			return err
		}
		if err := assets.SavePNG(*screenshot, img); err != nil {
			return err
		}
		fmt.Fprintf(md.Output, "final frame saved to %s\n", *screenshot)
	}

	if *memvizFile != "" {
		return dumpState(drv, *memvizFile)
	}

	return nil
}
