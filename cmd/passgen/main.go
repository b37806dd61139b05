package main

import (
	"context"
	"fmt"
	"os"

	"github.com/vaultpass/passgen/internal/cli"
)

func main() {
	root := cli.NewRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := root.ExecuteContext(context.Background()); err != nil {
		if !cli.Reported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
