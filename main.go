// Package main is the entry point for the mcstats CLI tool, which aggregates
// Minecraft per-player stats files into leaderboards and an HTML report.
package main

import "github.com/pable/go-mc-stats/cmd"

func main() {
	cmd.Execute()
}
