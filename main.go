// Package main is the entry point for the subtest CLI application.
//
// All command parsing and execution is delegated to the cmd package.
package main

import "github.com/ajxudir/subtest/cmd"

func main() {
	cmd.Execute()
}
