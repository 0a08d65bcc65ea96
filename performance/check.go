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

package performance

import (
	"fmt"
	"io"
	"time"
)

// Check the performance of the frame driver by calling the frame function
// repeatedly for the specified duration. The frame function is given the time
// elapsed since the start of the check.
//
// The check will create a cpu, memory and/or trace profile as defined by the
// Profile argument. Results are written to output.
func Check(output io.Writer, profile Profile, frame func(elapsed float64) error, duration string, target float64) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}
	if dur <= 0 {
		return fmt.Errorf("performance: duration must be positive")
	}

	var numFrames int
	var measured time.Duration

	err = RunProfiler(profile, "performance", func() error {
		start := time.Now()
		for {
			elapsed := time.Since(start)
			if elapsed >= dur {
				measured = elapsed
				return nil
			}
			if err := frame(elapsed.Seconds()); err != nil {
				return err
			}
			numFrames++
		}
	})
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	fps, accuracy := CalcFPS(numFrames, measured.Seconds(), target)
	if target > 0 {
		fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, measured.Seconds(), accuracy)
	} else {
		fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds)\n", fps, numFrames, measured.Seconds())
	}

	return nil
}
