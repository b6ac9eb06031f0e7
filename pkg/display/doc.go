// Package display renders runs in a terminal.
//
// A Console is a tick observer that prints a frame per change: a summary line
// followed by one marker per test.
//
//	Tests passed: 3 of 5 (1 failed, 1 running) 60%
//	  greeting/hello  PASS
//	  greeting/user   FAIL (unmet equality: expected "Hello, Sam!", got "Hi")
//	  greeting/after  WAIT (deferred)
//
// In redraw mode the previous frame is erased with ANSI cursor movement, so a
// run reads as a live view; otherwise frames are appended.
//
// One-call usage:
//
//	result, err := display.RunTestsOnConsole(ctx, os.Stdout, suite)
//
// For the exported report of a finished run, use the pkg/output package.
package display
