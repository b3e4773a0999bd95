package main

import (
	"os"

	"github.com/go-sif/tabrec/cmd/tabrec/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
