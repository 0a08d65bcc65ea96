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
)

// Sentinel errors. Errors returned by the pipeline wrap one of these (or are a
// *CompileError) and should be tested with errors.Is().
var (
	// an offscreen target could not be created or was incomplete
	ErrTargetCreation = errors.New("target creation failed")

	// zero sized or out of range input to a pass
	ErrInvalidParameters = errors.New("invalid parameters")

	// the source image could not be decoded
	ErrAssetLoad = errors.New("asset load failed")

	// a shader program failed to compile or link
	ErrCompile = errors.New("compile error")
)

// CompileError is returned by Device.Compile() when a program cannot be
// built. The Log field contains the compiler output.
type CompileError struct {
	Program string
	Log     string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrCompile, e.Program, e.Log)
}

// Unwrap allows errors.Is(err, ErrCompile) to succeed.
func (e *CompileError) Unwrap() error {
	return ErrCompile
}

// invalid returns an error wrapping ErrInvalidParameters.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameters, fmt.Sprintf(format, args...))
}
