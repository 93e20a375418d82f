package main

import (
	"fmt"
	"os"

	"github.com/harrison/nblbatch/internal/cmd"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
