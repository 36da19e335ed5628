package main

import (
	"os"

	"github.com/netatlas/netatlas/cmd/netatlas/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
