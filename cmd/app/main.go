package main

import (
	"os"

	"github.com/mufaddal-lashkar/safirah-server/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
