package main

import (
	"os"

	"github.com/yardops/idlereport/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
