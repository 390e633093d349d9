package main

import (
	"os"

	"github.com/rcliao/breed-vibe/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
