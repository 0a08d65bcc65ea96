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

package prefs_test

import (
	"testing"

	"github.com/jetsetilly/scalebench/prefs"
	"github.com/jetsetilly/scalebench/test"
)

func TestCommandLineParsing(t *testing.T) {
	cases := []struct {
		prefs  string
		unused string
	}{
		{prefs: "", unused: ""},
		{prefs: "pipeline.technique::easu", unused: "pipeline.technique::easu"},
		{prefs: "  pipeline.technique ::  easu ", unused: "pipeline.technique::easu"},
		{prefs: "pipeline.technique::easu; pipeline.sharpness::0.5", unused: "pipeline.sharpness::0.5; pipeline.technique::easu"},
		{prefs: "pipeline.technique::easu;;; ", unused: "pipeline.technique::easu"},
		{prefs: "pipeline.technique", unused: ""},
		{prefs: "::easu", unused: ""},
		{prefs: "pipeline technique::easu", unused: ""},
		{prefs: "pipeline.technique::easu::point", unused: ""},
		{prefs: "pipeline.technique::easu; nonsense", unused: "pipeline.technique::easu"},

		// an empty value is still a value
		{prefs: "pipeline.technique::", unused: "pipeline.technique::"},

		// the last of a repeated key wins
		{prefs: "pipeline.technique::easu; pipeline.technique::point", unused: "pipeline.technique::point"},
	}

	for _, c := range cases {
		prefs.PushCommandLineStack(c.prefs)
		test.ExpectEquality(t, prefs.SizeCommandLineStack(), 1, c.prefs)
		test.ExpectEquality(t, prefs.PopCommandLineStack(), c.unused, c.prefs)
		test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0, c.prefs)
	}
}

func TestCommandLineClaim(t *testing.T) {
	ok, _ := prefs.GetCommandLinePref("pipeline.technique")
	test.ExpectFailure(t, ok)

	prefs.PushCommandLineStack("pipeline.technique::easu; pipeline.sharpness::0.5")

	ok, v := prefs.GetCommandLinePref("pipeline.technique")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, prefs.Value("easu"))

	// a value can be claimed once only
	ok, _ = prefs.GetCommandLinePref("pipeline.technique")
	test.ExpectFailure(t, ok)

	ok, _ = prefs.GetCommandLinePref("pipeline.internalWidth")
	test.ExpectFailure(t, ok)

	test.ExpectEquality(t, prefs.PopCommandLineStack(), "pipeline.sharpness::0.5")
}

func TestCommandLineGroups(t *testing.T) {
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	prefs.PushCommandLineStack("pipeline.technique::easu")
	prefs.PushCommandLineStack("pipeline.technique::point; pipeline.sharpness::0.1")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 2)

	// only the most recent group is consulted
	ok, v := prefs.GetCommandLinePref("pipeline.technique")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, prefs.Value("point"))
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "pipeline.sharpness::0.1")

	// the earlier group is untouched
	ok, v = prefs.GetCommandLinePref("pipeline.technique")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, prefs.Value("easu"))
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)
}
