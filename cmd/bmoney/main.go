package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/fernandobatels/blitz-money/cli"
	"github.com/fernandobatels/blitz-money/configuration"
)

func main() {

	c, err := configuration.Load()
	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(2)
	}

	err = cli.NewRootCommand(&c).Execute()
	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}
