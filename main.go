package main

import (
	"os"

	"github.com/grovetools/core/cli"

	"github.com/grovetools/dreamsearch/cmd"
	"github.com/grovetools/dreamsearch/internal/search"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	if err := cli.Execute(rootCmd); err != nil {
		if search.IsUsage(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
