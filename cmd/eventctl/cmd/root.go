// Package cmd implements the eventctl command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// newRootCommand builds a fresh command tree. Tests build their own so flag
// state never leaks between cases.
func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "eventctl",
		Short: "Operator tool for the event booking API",
		Long: `eventctl performs operator tasks against an event booking deployment.

It reads the same environment variables as the server (JWT_SECRET,
DATABASE_URL, TOKEN_TTL, ...). Flags override them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newTokenCommand())
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newVersionCommand())
	return root
}

// Execute runs eventctl with os.Args. Called by main.main().
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
