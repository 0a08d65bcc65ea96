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
	"io"
	"os"
	"os/signal"
	"runtime"

	"github.com/jetsetilly/scalebench/assets"
	"github.com/jetsetilly/scalebench/gui"
	"github.com/jetsetilly/scalebench/gui/display"
	"github.com/jetsetilly/scalebench/gui/glfwgl"
	"github.com/jetsetilly/scalebench/gui/sdlimgui"
	"github.com/jetsetilly/scalebench/logger"
	"github.com/jetsetilly/scalebench/modalflag"
	"github.com/jetsetilly/scalebench/pipeline"
	"github.com/jetsetilly/scalebench/prefs"
	"github.com/jetsetilly/scalebench/statsview"
	"github.com/jetsetilly/scalebench/version"
)

// the window hosts and the GL device must be used from the main thread
func init() {
	runtime.LockOSThread()
}

// #mainthread
func main() {
	// ctrl-c cancels the context. the RUN mode ignores it because the window
	// hosts receive their own quit event
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(launch(ctx, os.Args[1:]))
}

// launch parses the command line and runs the selected mode. the return
// value is the exit status of the program.
func launch(ctx context.Context, args []string) int {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "HEADLESS", "COMPARE", "VERSION")

	var stats *bool
	if statsview.Available() {
		stats = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		return 10
	}

	if stats != nil && *stats {
		statsview.Launch(os.Stdout)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "HEADLESS":
		err = headless(ctx, md)
	case "COMPARE":
		err = compare(ctx, md)
	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		return 20
	}

	return 0
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()
	revision := md.AddBool("revision", false, "display revision information from version control")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *revision {
		v, r, _ := version.Version()
		fmt.Fprintf(md.Output, "%s\n%s\n", v, r)
		return nil
	}

	fmt.Fprintln(md.Output, version.String())
	return nil
}

// setLogEcho mirrors the central log to the writer if echo is true.
func setLogEcho(echo bool, w io.Writer) {
	if echo {
		logger.SetEcho(w, true)
	} else {
		logger.SetEcho(nil, false)
	}
}

// newPreferences creates the display preferences with any preference values
// given on the command line taking priority over the values on disk. The
// image argument, if not empty, selects image content.
func newPreferences(state *pipeline.State, override string, image string) (*display.Preferences, error) {
	if override != "" {
		prefs.PushCommandLineStack(override)
		defer func() {
			if unused := prefs.PopCommandLineStack(); unused != "" {
				logger.Logf(logger.Allow, "prefs", "unused command line preferences: %s", unused)
			}
		}()
	}

	p, err := display.NewPreferences(state, "")
	if err != nil {
		return nil, err
	}

	if image != "" {
		if err := p.Content.Set(display.ContentImage); err != nil {
			return nil, err
		}
		if err := p.Image.Set(image); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// newScene creates the scene named by the content preference. A static scene
// is also returned for image content so that it can be reloaded. An image
// that can't be loaded is logged and the scene is left empty.
func newScene(dev pipeline.Device, p *display.Preferences) (pipeline.Scene, *pipeline.StaticScene, error) {
	if p.Content.Get().(string) == display.ContentCube {
		scn, err := pipeline.NewCubeScene(dev)
		return scn, nil, err
	}

	img, err := assets.Load(p.Image.Get().(string))
	if err != nil {
		logger.Log(logger.Allow, "scalebench", err)
		img = nil
	}

	static, err := pipeline.NewStaticScene(dev, img)
	if err != nil {
		return nil, nil, err
	}
	return static, static, nil
}

// newReload watches the image of a static scene. Returns nil if there is
// nothing to watch.
func newReload(static *pipeline.StaticScene, p *display.Preferences) *gui.Reload {
	if static == nil {
		return nil
	}
	w, err := assets.NewWatcher(p.Image.Get().(string))
	if err != nil {
		logger.Log(logger.Allow, "scalebench", err)
		return nil
	}
	return &gui.Reload{Watcher: w, Scene: static}
}

// dumpState writes the graphviz dump of the pipeline state to the file.
func dumpState(drv *pipeline.Driver, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	drv.DumpState(f)
	return f.Close()
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	host := md.AddString("host", "sdl", "window host: sdl, glfw")
	override := md.AddString("prefs", "", "preferences to set before starting (key::value; key::value)")
	screenshots := md.AddString("screenshots", ".", "directory for screenshots")
	memvizFile := md.AddString("memviz", "", "write a graphviz dump of the pipeline state to file on exit")
	watch := md.AddBool("watch", true, "reload the image when the file changes")
	log := md.AddBool("log", false, "echo log to stdout")

	md.AdditionalHelp(`The optional argument is the path of an image to display. Without an image
the rotating cube is rendered at the internal size.

Keys: 1 Point, 2 Bilinear, 3 Bilinear+Sharpen, 4 EASU+RCAS, 5 native,
Up/Down sharpness, Tab next technique, F1 overlay, F12 screenshot, Esc quit.`)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setLogEcho(*log, os.Stdout)

	if len(md.RemainingArgs()) > 1 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	state := pipeline.NewState(pipeline.Size{}, pipeline.Size{})

	pref, err := newPreferences(state, *override, md.GetArg(0))
	if err != nil {
		return err
	}
	state.SetDisplaySize(pref.DisplaySize())

	var hst gui.Host
	switch *host {
	case "sdl":
		hst, err = sdlimgui.NewSdlImgui(pref, state, *screenshots)
	case "glfw":
		hst, err = glfwgl.NewWindow(pref, state, *screenshots)
	default:
		return fmt.Errorf("unknown host (%s)", *host)
	}
	if err != nil {
		return err
	}
	defer func() {
		if err := hst.Destroy(); err != nil {
			logger.Log(logger.Allow, "scalebench", err)
		}
	}()

	scn, static, err := newScene(hst.Device(), pref)
	if err != nil {
		return err
	}
	if static != nil {
		defer static.Destroy()
	}

	var reload *gui.Reload
	if *watch {
		reload = newReload(static, pref)
		if reload != nil {
			defer reload.Watcher.Close()
		}
	}

	drv, err := pipeline.NewDriver(hst.Device(), state, scn, hst, hst)
	if err != nil {
		return err
	}
	defer drv.Destroy()

	gui.Run(hst, drv, reload)

	if *memvizFile != "" {
		if err := dumpState(drv, *memvizFile); err != nil {
			return err
		}
	}

	pref.Capture()
	return pref.Save()
}
