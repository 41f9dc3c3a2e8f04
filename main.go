// Package main is the entry point for the crickmetrics CLI tool, which loads
// ball-by-ball cricket data and computes batter performance metrics.
package main

import "github.com/pable/go-cricket-metrics/cmd"

func main() {
	cmd.Execute()
}
