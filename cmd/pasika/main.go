package main

import (
	"context"
	"fmt"
	"os"

	"pasika/internal/cli"
)

func main() {
	cli.LoadEnvFile()

	if err := cli.RootCommand(os.Stdout).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
