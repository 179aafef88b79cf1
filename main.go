package main

import (
	"os"

	"toyc/cmd"
)

func main() {
	if !cmd.Execute() {
		os.Exit(1)
	}
}
