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

	"github.com/jetsetilly/scalebench/logger"
)

// WithTarget binds the target as the write surface for the duration of the
// function. The presentable surface is always bound again afterwards, even if
// the function returns an error. A nil target binds the presentable surface.
func WithTarget(dev Device, t Target, f func() error) error {
	if err := dev.Bind(t); err != nil {
		return err
	}
	defer dev.Bind(nil)
	return f()
}

// Targets owns the offscreen render targets of the pipeline: the internal
// resolution target that the dynamic scene is rendered into and the display
// resolution intermediate target used by the two pass techniques.
//
// Static content owns its own texture (see StaticScene) and does not use the
// internal target.
type Targets struct {
	dev Device

	internal     Target
	intermediate Target

	// the format used for intermediate targets. falls back to RGBA8 if the
	// device cannot create RGBA16F targets
	intermediateFormat Format
}

// NewTargets is the preferred method of initialisation for the Targets type.
func NewTargets(dev Device) *Targets {
	return &Targets{
		dev:                dev,
		intermediateFormat: FormatRGBA16F,
	}
}

// Internal returns the internal resolution target. It will be nil if
// EnsureInternal() has not been called successfully.
func (tg *Targets) Internal() Target {
	return tg.internal
}

// EnsureInternal makes sure that the internal target exists and is of the
// given size, reallocating it if necessary. The internal target always has a
// depth attachment.
func (tg *Targets) EnsureInternal(size Size) (Target, error) {
	if size.IsZero() {
		return nil, fmt.Errorf("%w: internal size is %s", ErrTargetCreation, size)
	}

	if tg.internal != nil && tg.internal.Size() == size {
		return tg.internal, nil
	}

	t, err := tg.dev.CreateTarget(size, FormatRGBA8, true)
	if err != nil {
		return nil, err
	}

	// the old target is only released once the new one has been created
	if tg.internal != nil {
		tg.dev.DestroyTarget(tg.internal)
	}
	tg.internal = t

	logger.Logf(logger.Allow, "pipeline", "internal target: %s", size)

	return tg.internal, nil
}

// Intermediate returns the intermediate target for the display size. The
// intermediate target is created lazily and is reallocated only if the
// display size has changed. There is never more than one intermediate target.
func (tg *Targets) Intermediate(size Size) (Target, error) {
	if tg.intermediate != nil && tg.intermediate.Size() == size {
		return tg.intermediate, nil
	}

	if tg.intermediate != nil {
		tg.dev.DestroyTarget(tg.intermediate)
		tg.intermediate = nil
	}

	t, err := tg.dev.CreateTarget(size, tg.intermediateFormat, false)
	if err != nil && tg.intermediateFormat != FormatRGBA8 && errors.Is(err, ErrTargetCreation) {
		logger.Logf(logger.Allow, "pipeline", "%s intermediate target unavailable, using %s: %v",
			tg.intermediateFormat, FormatRGBA8, err)
		tg.intermediateFormat = FormatRGBA8
		t, err = tg.dev.CreateTarget(size, tg.intermediateFormat, false)
	}
	if err != nil {
		return nil, err
	}
	tg.intermediate = t

	logger.Logf(logger.Allow, "pipeline", "intermediate target: %s %s", size, tg.intermediateFormat)

	return tg.intermediate, nil
}

// HasIntermediate returns true if an intermediate target is currently
// allocated.
func (tg *Targets) HasIntermediate() bool {
	return tg.intermediate != nil
}

// Destroy releases all targets.
func (tg *Targets) Destroy() {
	if tg.internal != nil {
		tg.dev.DestroyTarget(tg.internal)
		tg.internal = nil
	}
	if tg.intermediate != nil {
		tg.dev.DestroyTarget(tg.intermediate)
		tg.intermediate = nil
	}
}
