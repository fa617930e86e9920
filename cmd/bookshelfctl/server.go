package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"bookshelf/pkg/config"
	"bookshelf/pkg/db"
	"bookshelf/pkg/server"
	"bookshelf/pkg/server/endpoints"
	"bookshelf/pkg/token"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the bookshelf application server",
	Long: `Run the bookshelf application server.

To run the server requires the environment variables BOOKSHELF_TOKEN_KEY
and DATABASE_URL.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		tokenKey, ok := os.LookupEnv("BOOKSHELF_TOKEN_KEY")
		if !ok || tokenKey == "" {
			fmt.Fprintln(os.Stderr, "BOOKSHELF_TOKEN_KEY environment variable is required")
			os.Exit(1)
		}

		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		cfg := config.Get()

		stopWatch, err := config.Watch()
		if err != nil {
			log.Printf("Config file watch disabled: %v", err)
		} else {
			defer stopWatch()
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		issuer := token.NewIssuer([]byte(tokenKey), cfg.TokenLifetime())

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(database, issuer, cfg, host, port)

		endpoints.RegisterAll(s)

		log.Printf("Running server at http://%s:%s...\n", host, port)
		log.Fatal(s.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
