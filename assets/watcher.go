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

package assets

import (
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jetsetilly/scalebench/logger"
)

// editors often write a file in several steps. a change is reported once
// there have been no events for this long
const settle = 100 * time.Millisecond

// Watcher reports changes to an image file. The directory containing the
// file is watched rather than the file itself so that files replaced by a
// rename are still seen.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher

	// a value is sent when the file has changed. buffered with a length of
	// one so that many changes between calls to Poll() are reported once
	changed chan bool

	quit chan bool
	done chan bool
}

// NewWatcher starts watching the image file.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("assets: watcher: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("assets: watcher: %w", err)
	}

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("assets: watcher: %w", err)
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		changed: make(chan bool, 1),
		quit:    make(chan bool),
		done:    make(chan bool),
	}

	go w.run()

	return w, nil
}

func (w *Watcher) run() {
	defer close(w.done)

	timer := time.NewTimer(settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.quit:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(settle)

		case <-timer.C:
			select {
			case w.changed <- true:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Logf(logger.Allow, "assets", "watcher: %v", err)
		}
	}
}

// Poll returns the reloaded image if the file has changed since the last
// call to Poll(). Returns nil and no error if there has been no change. Poll
// never blocks.
func (w *Watcher) Poll() (*image.RGBA, error) {
	select {
	case <-w.changed:
	default:
		return nil, nil
	}

	img, err := Load(w.path)
	if err != nil {
		return nil, err
	}
	logger.Logf(logger.Allow, "assets", "reloaded %s", w.path)
	return img, nil
}

// Close stops watching the file.
func (w *Watcher) Close() error {
	close(w.quit)
	err := w.watcher.Close()
	<-w.done
	return err
}
