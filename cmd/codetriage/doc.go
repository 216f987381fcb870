// Package codetriage provides the command-line interface for the codetriage
// tool. It configures subcommands (scan, deps, prompt, serve, etc.), parses
// flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/codetriage/codetriage/cmd/codetriage"
//	func main() { codetriage.Execute() }
package codetriage
