package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bookshelfctl",
	Short: "Manage the bookshelf application server",
	Long: `bookshelfctl manages the bookshelf application server.

Use it to run the server, migrate the database schema and administer
user accounts.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
