// Package main implements the entry point for the Book API server, which
// serves a book catalogue with categories, JWT authentication and role based
// access control.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the binary without a
// subcommand starts the server.
func newRootCmd() *cobra.Command {
	var configPath string

	serve := newServeCmd(&configPath)
	rootCmd := &cobra.Command{
		Use:   "book-api",
		Short: "Book catalogue HTTP API",
		Long: `book-api serves books and categories over HTTP, with user registration,
JWT access tokens and refresh tokens.`,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to a config file (defaults to ./config.yaml when present)")

	rootCmd.AddCommand(serve)
	rootCmd.AddCommand(newMigrateCmd(&configPath))
	rootCmd.AddCommand(newHashPasswordCmd())

	return rootCmd
}
