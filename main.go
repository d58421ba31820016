package main

import "github.com/pdaderko/stepsync/cmd"

func main() {
	cmd.Execute()
}
