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
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/muesli/termenv"
)

// WriteTable writes the results as a table. The best technique of each
// scenario is marked, in colour if the output is a terminal that supports it.
func WriteTable(w io.Writer, results []Result) error {
	out := termenv.NewOutput(w)

	// best PSNR for each scenario
	best := make(map[string]float64)
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if b, ok := best[r.Scenario]; !ok || r.Metrics.PSNR > b {
			best[r.Scenario] = r.Metrics.PSNR
		}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "scenario\ttechnique\tpsnr\tmax\tmean\tdigest\t")

	var lastScenario string
	for _, r := range results {
		name := r.Scenario
		if name == lastScenario {
			name = ""
		}
		lastScenario = r.Scenario

		// styled text is only ever written after the last column because the
		// escape sequences would upset the column widths
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\t%s\t\t\t\t\t%s\n", name, r.Technique,
				out.String(fmt.Sprintf("failed: %v", r.Err)).Foreground(termenv.ANSIRed))
			continue
		}

		var mark string
		if r.Metrics.PSNR == best[r.Scenario] {
			mark = out.String("best").Bold().Foreground(termenv.ANSIGreen).String()
		}

		hash := r.Digest
		if len(hash) > 8 {
			hash = hash[:8]
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.3f\t%s\t%s\n", name, r.Technique, r.Metrics.PSNRString(),
			r.Metrics.MaxError, r.Metrics.MeanError, hash, mark)
	}

	return tw.Flush()
}
