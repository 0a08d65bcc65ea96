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

package limiter_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/scalebench/performance/limiter"
	"github.com/jetsetilly/scalebench/test"
)

func TestLimiter(t *testing.T) {
	lim, err := limiter.NewFPSLimiter(100)
	test.DemandSuccess(t, err)
	defer lim.Stop()

	test.ExpectEquality(t, lim.Limit(), 100)

	start := time.Now()
	for i := 0; i < 10; i++ {
		lim.Wait()
	}

	// ten frames at 100fps should take at least 80ms. the first tick is
	// immediate so we allow one frame of slack
	test.ExpectSuccess(t, time.Since(start) >= 80*time.Millisecond)
}

func TestUnlimited(t *testing.T) {
	lim, err := limiter.NewFPSLimiter(0)
	test.DemandSuccess(t, err)
	defer lim.Stop()

	test.ExpectEquality(t, lim.Limit(), 0)
	test.ExpectSuccess(t, lim.HasWaited())

	start := time.Now()
	for i := 0; i < 1000; i++ {
		lim.Wait()
	}
	test.ExpectSuccess(t, time.Since(start) < time.Second)
}

func TestTooHigh(t *testing.T) {
	_, err := limiter.NewFPSLimiter(10000)
	test.ExpectFailure(t, err)
}
