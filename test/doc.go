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

// Package test bundles a bunch of useful functions useful for testing
// purposes, particular useful in conjunction with the standard go test
// harness.
//
// The Expect*() functions log a test failure but allow the test to continue.
// The Demand*() functions are fatal to the test.
//
// ExpectSuccess() and ExpectFailure() test for success and failure under
// generic conditions. Currently supported types are:
//
//	bool -> success if true
//	error -> success if nil
//
// It is worth describing how the nil type is handled because it is not
// obvious. The nil type is considered a success and consequently will cause
// ExpectFailure() to fail and ExpectSuccess() to succeed. Because of how
// errors usually work (nil to indicate no error) we *need* to interpret nil in
// this way.
//
// All functions accept optional tags. Tags are printed as part of the failure
// message and are useful when the test is being run in a loop.
//
// The CompareWriter type implements the io.Writer interface and should be used
// to capture output. The CompareWriter.Compare() function can then be used to
// test for equality.
package test
