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

package display

import (
	"fmt"

	"github.com/jetsetilly/scalebench/pipeline"
	"github.com/jetsetilly/scalebench/prefs"
	"github.com/jetsetilly/scalebench/resources"
)

// Content names accepted by the Content preference.
const (
	ContentCube  = "cube"
	ContentImage = "image"
)

// Preferences for the pipeline and the window that displays it. Changes to
// the technique, sharpness, native and internal size values are pushed into
// the pipeline.State as soon as they are made.
type Preferences struct {
	dsk   *prefs.Disk
	state *pipeline.State

	Technique      prefs.String
	Sharpness      prefs.Float
	Native         prefs.Bool
	InternalWidth  prefs.Int
	InternalHeight prefs.Int

	// display size is the internal size multiplied by the scale. only used
	// for the initial size of the window
	Scale prefs.Float

	Content prefs.String
	Image   prefs.String

	// frame rate limit of the headless loop. zero is unlimited
	FPSCap prefs.Int

	// zero disables vsync, one enables it and minus one requests adaptive
	// vsync
	SwapInterval prefs.Int
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. If path is empty the default preferences file is used.
// Values are loaded from disk before the function returns.
func NewPreferences(state *pipeline.State, path string) (*Preferences, error) {
	p := &Preferences{state: state}

	p.Technique.SetHookPre(func(v prefs.Value) error {
		_, err := pipeline.ParseTechnique(v.(string))
		return err
	})
	p.Technique.SetHookPost(func(v prefs.Value) error {
		t, _ := pipeline.ParseTechnique(v.(string))
		p.state.SetTechnique(t)
		return nil
	})

	p.Sharpness.SetRange(pipeline.MinSharpness, pipeline.MaxSharpness)
	p.Sharpness.SetHookPost(func(v prefs.Value) error {
		p.state.SetSharpness(v.(float64))
		return nil
	})

	p.Native.SetHookPost(func(v prefs.Value) error {
		p.state.SetNative(v.(bool))
		return nil
	})

	positive := func(v prefs.Value) error {
		if v.(int) <= 0 {
			return fmt.Errorf("display: size must be positive")
		}
		return nil
	}
	p.InternalWidth.SetHookPre(positive)
	p.InternalHeight.SetHookPre(positive)
	p.InternalWidth.SetHookPost(func(v prefs.Value) error {
		p.state.SetInternalSize(pipeline.Size{W: v.(int), H: p.InternalHeight.Get().(int)})
		return nil
	})
	p.InternalHeight.SetHookPost(func(v prefs.Value) error {
		p.state.SetInternalSize(pipeline.Size{W: p.InternalWidth.Get().(int), H: v.(int)})
		return nil
	})

	p.Scale.SetRange(0.25, 8.0)

	p.Content.SetHookPre(func(v prefs.Value) error {
		switch v.(string) {
		case ContentCube, ContentImage:
			return nil
		}
		return fmt.Errorf("display: unknown content (%v)", v)
	})

	p.FPSCap.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 0 {
			return fmt.Errorf("display: fps cap must not be negative")
		}
		return nil
	})

	p.SwapInterval.SetHookPre(func(v prefs.Value) error {
		if v.(int) < -1 || v.(int) > 1 {
			return fmt.Errorf("display: swap interval must be -1, 0 or 1")
		}
		return nil
	})

	p.SetDefaults()

	if path == "" {
		var err error
		path, err = resources.JoinPath(prefs.DefaultPrefsFile)
		if err != nil {
			return nil, err
		}
	}

	var err error
	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("pipeline.technique", &p.Technique)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("pipeline.sharpness", &p.Sharpness)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("pipeline.native", &p.Native)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("pipeline.internalWidth", &p.InternalWidth)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("pipeline.internalHeight", &p.InternalHeight)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("display.scale", &p.Scale)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("display.fpsCap", &p.FPSCap)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("display.swapInterval", &p.SwapInterval)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("content.type", &p.Content)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("content.image", &p.Image)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load()
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all values to their defaults.
func (p *Preferences) SetDefaults() {
	p.Technique.Set(pipeline.DefaultTechnique.String())
	p.Sharpness.Set(pipeline.DefaultSharpness)
	p.Native.Set(false)
	p.InternalWidth.Set(640)
	p.InternalHeight.Set(360)
	p.Scale.Set(2.0)
	p.Content.Set(ContentCube)
	p.Image.Set("")
	p.FPSCap.Set(60)
	p.SwapInterval.Set(1)
}

// InternalSize returns the internal size.
func (p *Preferences) InternalSize() pipeline.Size {
	return pipeline.Size{W: p.InternalWidth.Get().(int), H: p.InternalHeight.Get().(int)}
}

// DisplaySize returns the internal size multiplied by the scale.
func (p *Preferences) DisplaySize() pipeline.Size {
	return p.InternalSize().Scale(p.Scale.Get().(float64))
}

// Capture copies the current pipeline state into the preference values so
// that changes made with the keyboard or the overlay are saved.
func (p *Preferences) Capture() {
	params := p.state.Get()
	p.Technique.Set(params.Technique.String())
	p.Sharpness.Set(params.Sharpness)
	p.Native.Set(params.Native)
}

// Load values from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save current values to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
