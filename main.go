package main

import "github.com/agentic-research/bidsmap/cmd"

func main() {
	cmd.Execute()
}
