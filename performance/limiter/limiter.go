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

// Package limiter provides a rough and ready way of limiting the frame driver
// to a fixed rate.
//
// A new FpsLimiter can be created with (error handling removed for clarity):
//
//	fps, _ := limiter.NewFPSLimiter(60)
//	defer fps.Stop()
//
// Frames can then be stalled with the Wait() function. For example:
//
//	for {
//		fps.Wait()
//		driver.RunFrame(elapsed)
//	}
//
// A limit of zero or less means that Wait() never blocks. This is useful
// when the presentable surface is already synchronised with the vertical
// blank or when measuring raw throughput.
package limiter

import (
	"fmt"
	"sync/atomic"
	"time"
)

// FpsLimiter will trigger every frames per second.
type FpsLimiter struct {
	secondsPerFrame atomic.Int64
	framesPerSecond atomic.Int64

	tick chan bool
	quit chan bool
}

// NewFPSLimiter is the preferred method of initialisation for FpsLimiter type.
func NewFPSLimiter(framesPerSecond int) (*FpsLimiter, error) {
	if framesPerSecond > 1000 {
		return nil, fmt.Errorf("limiter: %d fps is too high", framesPerSecond)
	}

	lim := &FpsLimiter{
		tick: make(chan bool),
		quit: make(chan bool),
	}
	lim.SetLimit(framesPerSecond)

	// run ticker concurrently. the sleep duration is adjusted every frame to
	// account for the time taken by the receiver
	go func() {
		adjusted := time.Duration(lim.secondsPerFrame.Load())
		t := time.Now()
		for {
			select {
			case lim.tick <- true:
			case <-lim.quit:
				return
			}

			spf := time.Duration(lim.secondsPerFrame.Load())
			if spf == 0 {
				adjusted = 0
				t = time.Now()
				continue
			}

			time.Sleep(adjusted)
			nt := time.Now()
			adjusted -= nt.Sub(t) - spf

			// don't let a long stall result in a burst of frames
			if adjusted < 0 {
				adjusted = 0
			} else if adjusted > spf {
				adjusted = spf
			}
			t = nt
		}
	}()

	return lim, nil
}

// SetLimit changes the limit at which the FpsLimiter waits. A value of zero
// or less removes the limit.
func (lim *FpsLimiter) SetLimit(framesPerSecond int) {
	if framesPerSecond <= 0 {
		lim.framesPerSecond.Store(0)
		lim.secondsPerFrame.Store(0)
		return
	}
	lim.framesPerSecond.Store(int64(framesPerSecond))
	lim.secondsPerFrame.Store(int64(time.Second / time.Duration(framesPerSecond)))
}

// Limit returns the current limit. Zero means there is no limit.
func (lim *FpsLimiter) Limit() int {
	return int(lim.framesPerSecond.Load())
}

// Wait will block until trigger.
func (lim *FpsLimiter) Wait() {
	if lim.secondsPerFrame.Load() == 0 {
		return
	}
	<-lim.tick
}

// HasWaited will return true if time has already elapsed and false if it is
// still yet to happen.
func (lim *FpsLimiter) HasWaited() bool {
	if lim.secondsPerFrame.Load() == 0 {
		return true
	}
	select {
	case <-lim.tick:
		return true
	default:
		return false
	}
}

// Stop the ticker goroutine. The FpsLimiter should not be used afterwards.
func (lim *FpsLimiter) Stop() {
	close(lim.quit)
}
