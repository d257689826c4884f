package main

import (
	"os"

	"github.com/sinkii09/workplan/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
