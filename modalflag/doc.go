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

// Package modalflag wraps the flag package in the Go standard library and adds
// program modes. Each mode can have its own set of flags and its own
// sub-modes. Scalebench uses it to select between the RUN, HEADLESS, COMPARE
// and VERSION modes.
//
// Unlike flag.FlagSet.Parse(), the arguments are given to NewArgs() and
// Parse() takes no arguments. This allows the same argument list to be parsed
// in layers, one mode at a time:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "HEADLESS")
//	verbose := md.AddBool("verbose", false, "echo log entries")
//
//	switch p, err := md.Parse(); p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		scale := md.AddFloat64("sharpness", 0.2, "initial sharpness")
//		md.Parse()
//		...
//	}
//
// The first sub-mode in the list is the default and is selected if the next
// argument is not one of the listed sub-modes. Sub-mode comparisons are case
// insensitive and the result of Mode() is always upper case.
//
// Flags with values that are not one of the simple types can be added with
// AddVar() and an implementation of the flag.Value interface.
package modalflag
