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

// Package terminal reads single key presses from the terminal while the
// headless frame loop is running. Keys are translated with the same mapping
// as the interactive window and applied to the pipeline.State. The terminal
// never touches the device.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	"github.com/jetsetilly/scalebench/gui"
	"github.com/jetsetilly/scalebench/logger"
	"github.com/jetsetilly/scalebench/pipeline"
)

// Terminal reads keys from the input on its own goroutine.
type Terminal struct {
	input  io.Reader
	output io.Writer
	state  *pipeline.State

	// the file descriptor of the input if it is a terminal. the terminal
	// attributes are only changed if this is true
	isTerminal bool
	fd         uintptr
	canAttr    unix.Termios
	cbreakAttr unix.Termios

	// actions that can't be applied to the state are forwarded to the frame
	// loop
	actions chan gui.Action

	// closed when the input reaches EOF or fails
	done chan struct{}

	stopOnce sync.Once
}

// NewTerminal is the preferred method of initialisation for the Terminal
// type. If input is an *os.File connected to a terminal then the terminal is
// put into cbreak mode by Start() and restored by Stop().
func NewTerminal(input io.Reader, output io.Writer, state *pipeline.State) *Terminal {
	trm := &Terminal{
		input:   input,
		output:  output,
		state:   state,
		actions: make(chan gui.Action, 8),
		done:    make(chan struct{}),
	}

	if f, ok := input.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		trm.fd = f.Fd()
		if err := termios.Tcgetattr(trm.fd, &trm.canAttr); err == nil {
			trm.isTerminal = true
			trm.cbreakAttr = trm.canAttr
			termios.Cfmakecbreak(&trm.cbreakAttr)
		} else {
			logger.Logf(logger.Allow, "terminal", "terminal attributes: %v", err)
		}
	}

	return trm
}

// IsTerminal returns true if the input is a terminal.
func (trm *Terminal) IsTerminal() bool {
	return trm.isTerminal
}

// Actions returns the channel of actions that must be handled by the frame
// loop. Only gui.ActionQuit and gui.ActionScreenshot are sent.
func (trm *Terminal) Actions() <-chan gui.Action {
	return trm.actions
}

// Done is closed when no more keys will be read.
func (trm *Terminal) Done() <-chan struct{} {
	return trm.done
}

// Start reading keys.
func (trm *Terminal) Start() {
	if trm.isTerminal {
		err := termios.Tcsetattr(trm.fd, termios.TCIFLUSH, &trm.cbreakAttr)
		if err != nil {
			logger.Logf(logger.Allow, "terminal", "cbreak mode: %v", err)
		}
	}

	fmt.Fprintln(trm.output, "keys: 1-4 technique, 5 native, +/- sharpness, s screenshot, q quit")

	go trm.read()
}

// Stop restores the terminal to canonical mode. The reading goroutine ends
// when the input does.
func (trm *Terminal) Stop() {
	trm.stopOnce.Do(func() {
		if trm.isTerminal {
			err := termios.Tcsetattr(trm.fd, termios.TCIFLUSH, &trm.canAttr)
			if err != nil {
				logger.Logf(logger.Allow, "terminal", "canonical mode: %v", err)
			}
		}
	})
}

func (trm *Terminal) read() {
	defer close(trm.done)

	r := bufio.NewReader(trm.input)
	for {
		b, err := r.ReadByte()
		if err != nil {
			if err != io.EOF {
				logger.Log(logger.Allow, "terminal", err)
			}
			return
		}

		var action gui.Action

		switch b {
		case keyCtrlC:
			action = gui.ActionQuit
		case keyEsc:
			action = trm.escape(r)
		default:
			action = gui.ActionForRune(rune(b))
		}

		trm.act(action)
	}
}

// escape decodes the cursor keys. all other escape sequences are ignored.
func (trm *Terminal) escape(r *bufio.Reader) gui.Action {
	b, err := r.ReadByte()
	if err != nil || b != escCursor {
		return gui.ActionNone
	}
	b, err = r.ReadByte()
	if err != nil {
		return gui.ActionNone
	}
	switch b {
	case cursorUp:
		return gui.ActionSharpnessUp
	case cursorDown:
		return gui.ActionSharpnessDown
	}
	return gui.ActionNone
}

func (trm *Terminal) act(action gui.Action) {
	if action == gui.ActionNone {
		return
	}

	if action.Apply(trm.state) {
		params := trm.state.Get()
		fmt.Fprintf(trm.output, "%s  sharpness %.2f  native %v\n", params.Technique, params.Sharpness, params.Native)
		return
	}

	select {
	case trm.actions <- action:
	default:
		logger.Logf(logger.Allow, "terminal", "dropped %s action", action)
	}
}
