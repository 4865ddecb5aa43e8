package main

import (
	"os"

	"github.com/taneba/rome/cmd"
)

// version is stamped with -ldflags on release builds.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}
