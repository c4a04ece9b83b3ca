package main

import (
	"os"

	"github.com/trknhr/cardlog/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
