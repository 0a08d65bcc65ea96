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
	"errors"
	"fmt"
	"sort"

	"github.com/jetsetilly/scalebench/logger"
)

// Reconstructor turns the internal resolution source into the display
// resolution image using one of the reconstruction techniques.
//
// Programs are compiled when the Reconstructor is created. A technique that
// needs a program that failed to compile is disabled: Reconstruct() returns
// the *CompileError for that technique and draws nothing.
type Reconstructor struct {
	dev     Device
	targets *Targets

	programs map[string]Program

	// compile errors for each disabled technique
	disabled map[Technique]*CompileError
}

// NewReconstructor is the preferred method of initialisation for the
// Reconstructor type. Compile errors are logged and disable the affected
// techniques but are not returned.
func NewReconstructor(dev Device, targets *Targets) *Reconstructor {
	rc := &Reconstructor{
		dev:      dev,
		targets:  targets,
		programs: make(map[string]Program),
		disabled: make(map[Technique]*CompileError),
	}

	sources := Sources()

	failed := make(map[string]*CompileError)
	for _, t := range Techniques {
		for _, name := range t.programs() {
			if _, ok := rc.programs[name]; ok {
				continue
			}
			if _, ok := failed[name]; ok {
				continue
			}

			p, err := dev.Compile(sources[name])
			if err != nil {
				var cerr *CompileError
				if !errors.As(err, &cerr) {
					cerr = &CompileError{Program: name, Log: err.Error()}
				}
				failed[name] = cerr
				logger.Logf(logger.Allow, "pipeline", "program %s: %s", name, cerr.Log)
				continue
			}
			rc.programs[name] = p
		}
	}

	for _, t := range Techniques {
		for _, name := range t.programs() {
			if cerr, ok := failed[name]; ok {
				rc.disabled[t] = cerr
				logger.Logf(logger.Allow, "pipeline", "%s disabled", t)
				break // for loop
			}
		}
	}

	return rc
}

// Disabled returns the techniques that cannot be used because one of their
// programs failed to compile, along with the compile error.
func (rc *Reconstructor) Disabled() []DisabledTechnique {
	d := make([]DisabledTechnique, 0, len(rc.disabled))
	for t, err := range rc.disabled {
		d = append(d, DisabledTechnique{Technique: t, Err: err})
	}
	sort.Slice(d, func(i, j int) bool {
		return d[i].Technique < d[j].Technique
	})
	return d
}

// IsDisabled returns true if the technique cannot be used.
func (rc *Reconstructor) IsDisabled(t Technique) bool {
	_, ok := rc.disabled[t]
	return ok
}

// DisabledTechnique is an entry in the list returned by Disabled().
type DisabledTechnique struct {
	Technique Technique
	Err       *CompileError
}

// validate the arguments to Reconstruct(). no draw calls are made if this
// returns an error.
func validate(source Target, technique Technique, params Parameters) error {
	if source == nil {
		return invalid("no source")
	}
	if source.Size().IsZero() {
		return invalid("source size is %s", source.Size())
	}
	if params.InternalSize.IsZero() {
		return invalid("internal size is %s", params.InternalSize)
	}
	if source.Size() != params.InternalSize {
		return invalid("source size %s does not match internal size %s", source.Size(), params.InternalSize)
	}
	if params.DisplaySize.IsZero() {
		return invalid("display size is %s", params.DisplaySize)
	}
	if !validSharpness(params.Sharpness) {
		return invalid("sharpness %v is outside the range %v to %v", params.Sharpness, MinSharpness, MaxSharpness)
	}
	if !technique.Valid() {
		return invalid("%s", technique)
	}
	return nil
}

// Reconstruct the source at the display size, writing the result to
// presentTo. A nil presentTo is the presentable surface.
//
// Point and Bilinear are a single pass from the source to presentTo. The two
// pass techniques render the first pass into the intermediate target, which
// is never the same target as source or presentTo, and the second pass from
// the intermediate target to presentTo.
//
// The source target is never reallocated. The filter mode of the source is
// changed to the InputFilter() of the technique.
func (rc *Reconstructor) Reconstruct(source Target, technique Technique, params Parameters, presentTo Target) error {
	if err := validate(source, technique, params); err != nil {
		return fmt.Errorf("reconstruct: %w", err)
	}

	if cerr, ok := rc.disabled[technique]; ok {
		return fmt.Errorf("reconstruct: %s: %w", technique, cerr)
	}

	rc.dev.SetFilter(source, technique.InputFilter())

	var err error

	switch technique {
	case Point, Bilinear:
		err = rc.pass(ProgramBlit, source, BlitUniforms{}, presentTo)

	case BilinearSharpen:
		err = rc.twoPass(source, params, presentTo,
			ProgramBlit, BlitUniforms{},
			ProgramSharpen, SharpenUniforms{Sharpness: float32(params.Sharpness)})

	case EASU:
		err = rc.twoPass(source, params, presentTo,
			ProgramEASU, EASUUniforms{InputSize: params.InternalSize, OutputSize: params.DisplaySize},
			ProgramRCAS, RCASUniforms{Sharpness: float32(params.Sharpness)})
	}

	if err != nil {
		return fmt.Errorf("reconstruct: %s: %w", technique, err)
	}

	return nil
}

// pass draws the named program into dest, sampling from src.
func (rc *Reconstructor) pass(program string, src Target, uniforms any, dest Target) error {
	return WithTarget(rc.dev, dest, func() error {
		return rc.dev.Draw(rc.programs[program], src, uniforms)
	})
}

// twoPass runs the first program from source into the intermediate target and
// then the second program from the intermediate target into presentTo.
func (rc *Reconstructor) twoPass(source Target, params Parameters, presentTo Target,
	first string, firstUniforms any, second string, secondUniforms any) error {

	inter, err := rc.targets.Intermediate(params.DisplaySize)
	if err != nil {
		return err
	}

	if inter == source || inter == presentTo {
		return invalid("intermediate target is also an input or output")
	}

	if err := rc.pass(first, source, firstUniforms, inter); err != nil {
		return err
	}

	// the second pass reads the intermediate target texel by texel
	rc.dev.SetFilter(inter, FilterPoint)

	return rc.pass(second, inter, secondUniforms, presentTo)
}
