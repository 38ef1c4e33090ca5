// Package main provides the entry point for the gwflow CLI.
//
// gwflow fits local conic potential models to well head observations across
// a grid covering a named venue, and reports flow-direction and gradient
// statistics with directional confidence at every grid node.
//
// Usage:
//
//	gwflow import wells.csv
//	gwflow analyze <venue-name>
//
// See --help for all available options.
package main

// main is the entry point for gwflow.
func main() {
	Execute()
}
