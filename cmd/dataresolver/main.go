package main

import (
	"errors"
	"os"

	"github.com/erraggy/dataresolver/cmd/dataresolver/commands"
	"github.com/erraggy/dataresolver/internal/cliutil"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.ResolveCmd())
	rootCmd.AddCommand(commands.ValidateCmd())
	rootCmd.AddCommand(commands.PathsCmd())
	rootCmd.AddCommand(commands.MCPCmd())
	rootCmd.AddCommand(commands.VersionCmd())

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, commands.ErrInvalid) {
			cliutil.Writef(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
