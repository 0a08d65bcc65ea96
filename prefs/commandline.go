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

package prefs

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// the separators used in a command line preferences string. for example:
//
//	pipeline.technique::easu; pipeline.sharpness::0.5
const (
	entrySeparator = ";"
	valueSeparator = "::"
)

// commandLineGroup is one set of preference values given on the command line.
// values are removed from the group as they are claimed.
type commandLineGroup map[string]Value

func parseCommandLineGroup(s string) commandLineGroup {
	grp := make(commandLineGroup)
	for _, entry := range strings.Split(s, entrySeparator) {
		key, value, found := strings.Cut(entry, valueSeparator)
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		// a key is a single word and a value must not contain a separator
		if key == "" || strings.ContainsAny(key, " \t") || strings.Contains(value, valueSeparator) {
			continue
		}
		grp[key] = value
	}
	return grp
}

// String returns the unclaimed values in the group, sorted by key, in the
// same form that the group was parsed from.
func (grp commandLineGroup) String() string {
	entries := make([]string, 0, len(grp))
	for _, key := range slices.Sorted(maps.Keys(grp)) {
		entries = append(entries, fmt.Sprintf("%s%s%v", key, valueSeparator, grp[key]))
	}
	return strings.Join(entries, entrySeparator+" ")
}

var commandLine struct {
	crit  sync.Mutex
	stack []commandLineGroup
}

// SizeCommandLineStack returns the number of groups that have been added with
// PushCommandLineStack().
func SizeCommandLineStack() int {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()
	return len(commandLine.stack)
}

// PushCommandLineStack parses a preferences string and adds it as a new
// group. Entries that can not be parsed are ignored.
func PushCommandLineStack(prefs string) {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()
	commandLine.stack = append(commandLine.stack, parseCommandLineGroup(prefs))
}

// PopCommandLineStack forgets the most recent group and returns the values in
// it that were never claimed by GetCommandLinePref().
func PopCommandLineStack() string {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()

	n := len(commandLine.stack)
	if n == 0 {
		return ""
	}
	grp := commandLine.stack[n-1]
	commandLine.stack = commandLine.stack[:n-1]
	return grp.String()
}

// GetCommandLinePref claims the value for key from the most recent group. A
// value can only be claimed once.
func GetCommandLinePref(key string) (bool, Value) {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()

	n := len(commandLine.stack)
	if n == 0 {
		return false, nil
	}
	grp := commandLine.stack[n-1]
	v, ok := grp[key]
	if !ok {
		return false, nil
	}
	delete(grp, key)
	return true, v
}
