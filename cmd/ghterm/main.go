package main

import (
	"os"

	"github.com/ghterm/ghterm/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
