// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "manajemen-ud",
	Short: "Manajemen UD is the REST backend for the UD management system",
	Long: `Manajemen UD is the REST backend for the UD management system.
It serves the transaksi, user, UD and settings APIs and seeds the
initial superuser account and settings on startup.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
