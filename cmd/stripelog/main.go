// Command stripelog is the administrative CLI for the payment event log.
// The destructive schema reset lives here, and only here: nothing on the
// write path can reach it.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "stripelog",
		Short:         "Administer and query the payment event log",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// A missing .env is fine; the environment may already be set.
			_ = godotenv.Load()
		},
	}

	root.AddCommand(newInitCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newLookupCmd())
	return root
}
