package main

import (
	"os"

	"github.com/veldtec/talentctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
