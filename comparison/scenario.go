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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/jetsetilly/scalebench/gui/display"
	"github.com/jetsetilly/scalebench/pipeline"
)

// ErrScenario is wrapped by all errors caused by the contents of a scenario
// file.
var ErrScenario = errors.New("scenario error")

// Scenario is a single entry in a scenario file.
type Scenario struct {
	Name string `toml:"name" yaml:"name"`

	// "cube" or "image". defaults to "image" if the Image field is set and to
	// "cube" otherwise
	Content string `toml:"content" yaml:"content"`

	// path to the image. relative paths are relative to the scenario file
	Image string `toml:"image" yaml:"image"`

	// sizes in WxH form. for the cube the internal size is the size of the
	// internal render target. for an image the original is first resized to
	// the internal size, if it is given
	Internal string `toml:"internal" yaml:"internal"`
	Display  string `toml:"display" yaml:"display"`

	// empty means all techniques
	Techniques []string `toml:"techniques" yaml:"techniques"`

	// nil means the default sharpness
	Sharpness *float64 `toml:"sharpness" yaml:"sharpness"`

	// elapsed time of the first frame. determines the pose of the cube
	Time float64 `toml:"time" yaml:"time"`

	// number of frames rendered. zero means one frame
	Frames int `toml:"frames" yaml:"frames"`
}

// scenarioFile is the structure of a TOML or YAML scenario file.
type scenarioFile struct {
	TOML []Scenario `toml:"scenario" yaml:"-"`
	YAML []Scenario `toml:"-" yaml:"scenarios"`
}

// Format of a scenario file.
type Format int

// List of valid Format values.
const (
	FormatTOML Format = iota
	FormatYAML
)

// FormatFromPath returns the format implied by the filename extension.
// Anything other than .yaml or .yml is TOML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatTOML
}

// Parse scenarios from the reader. Unknown fields are an error.
func Parse(r io.Reader, format Format) ([]Scenario, error) {
	var f scenarioFile

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("comparison: %w: %w", ErrScenario, err)
		}
		return f.YAML, nil
	default:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("comparison: %w: %w", ErrScenario, err)
		}
		return f.TOML, nil
	}
}

// Load scenarios from a file. Relative image paths are made relative to the
// directory containing the file.
func Load(path string) ([]Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("comparison: %w", err)
	}
	defer f.Close()

	scenarios, err := Parse(f, FormatFromPath(path))
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	for i := range scenarios {
		if scenarios[i].Image != "" && !filepath.IsAbs(scenarios[i].Image) && !strings.HasPrefix(scenarios[i].Image, "~") {
			scenarios[i].Image = filepath.Join(dir, scenarios[i].Image)
		}
	}

	return scenarios, nil
}

// plan is a Scenario with every field resolved and checked.
type plan struct {
	name       string
	content    string
	image      string
	internal   pipeline.Size
	display    pipeline.Size
	techniques []pipeline.Technique
	sharpness  float64
	time       float64
	frames     int
}

func (s Scenario) resolve(index int) (plan, error) {
	p := plan{
		name:      s.Name,
		content:   strings.ToLower(strings.TrimSpace(s.Content)),
		image:     s.Image,
		sharpness: pipeline.DefaultSharpness,
		time:      s.Time,
		frames:    s.Frames,
	}

	if p.name == "" {
		p.name = fmt.Sprintf("scenario%d", index+1)
	}

	fail := func(format string, args ...any) (plan, error) {
		return plan{}, fmt.Errorf("comparison: %w: %s: %s", ErrScenario, p.name, fmt.Sprintf(format, args...))
	}

	if p.content == "" {
		if p.image != "" {
			p.content = display.ContentImage
		} else {
			p.content = display.ContentCube
		}
	}

	switch p.content {
	case display.ContentCube:
	case display.ContentImage:
		if p.image == "" {
			return fail("image content needs an image path")
		}
	default:
		return fail("unknown content (%s)", p.content)
	}

	var err error

	p.display, err = pipeline.ParseSize(s.Display)
	if err != nil {
		return fail("display: %v", err)
	}

	if s.Internal != "" {
		p.internal, err = pipeline.ParseSize(s.Internal)
		if err != nil {
			return fail("internal: %v", err)
		}
	} else if p.content == display.ContentCube {
		return fail("cube content needs an internal size")
	}

	if len(s.Techniques) == 0 {
		p.techniques = append(p.techniques, pipeline.Techniques...)
	}
	for _, n := range s.Techniques {
		t, err := pipeline.ParseTechnique(n)
		if err != nil {
			return fail("%v", err)
		}
		p.techniques = append(p.techniques, t)
	}

	if s.Sharpness != nil {
		p.sharpness = *s.Sharpness
		if p.sharpness < pipeline.MinSharpness || p.sharpness > pipeline.MaxSharpness {
			return fail("sharpness out of range (%v)", p.sharpness)
		}
	}

	if p.frames < 0 {
		return fail("frames must not be negative")
	}
	if p.frames == 0 {
		p.frames = 1
	}

	return p, nil
}

// elapsed time of the final frame.
func (p plan) lastFrame() float64 {
	return p.time + float64(p.frames-1)/60.0
}
