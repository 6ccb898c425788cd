// Package tisearch provides the command-line interface for tisearch.
// It wires flags and config files into the search engine and renders or
// exports the results.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/tisearch/tisearch/cmd/tisearch"
//	func main() { tisearch.Execute() }
package tisearch
