package main

import (
	"os"

	"github.com/txgo/txgo/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
