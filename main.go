package main

import (
	"os"

	"github.com/spigell/smartjob/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
