package main

import (
	"os"

	"github.com/codescanhq/codescan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
