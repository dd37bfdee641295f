package main

import (
	"os"

	"github.com/abhisek/gallop/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
