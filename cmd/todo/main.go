package main

import (
	"fmt"
	"os"

	"todo-store/internal/cli"
	"todo-store/internal/config"
)

func main() {
	root := cli.NewRootCommand(config.NewLoader(), cli.DefaultServiceFactory)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
