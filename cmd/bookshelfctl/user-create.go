package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bookshelf/pkg/db"
	"bookshelf/pkg/model"
	gormstore "bookshelf/pkg/server/store/gorm"
)

// userCreateCmd represents the user create command
var userCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a user account",
	Long: `Create a user account.

The account is created with the member role unless --role is given. When
no --password is given a random password is generated and printed to
STDOUT.

Example:
  bookshelfctl user create alice
  bookshelfctl user create admin --role admin
  bookshelfctl user create bob --email bob@example.com --password s3cretpass`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		username := args[0]
		email, _ := cmd.Flags().GetString("email")
		roleName, _ := cmd.Flags().GetString("role")
		password, _ := cmd.Flags().GetString("password")

		generated := password == ""

		created, password, err := createUser(username, email, roleName, password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create user: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Created user '%s' (id %d) with role %s\n", created.Username, created.ID, created.Role())
		if generated {
			fmt.Printf("Password for %s: %s\n", created.Username, password)
		}
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	userCreateCmd.Flags().StringP("email", "e", "", "Email address")
	userCreateCmd.Flags().StringP("role", "r", "member", "Role (member, librarian or admin)")
	userCreateCmd.Flags().StringP("password", "w", "", "Password (generated when omitted)")
}

func createUser(username, email, roleName, password string) (*model.User, string, error) {
	role, err := model.RoleString(roleName)
	if err != nil {
		return nil, "", fmt.Errorf("invalid role %q: must be one of member, librarian, admin", roleName)
	}

	if password == "" {
		passwordBytes := make([]byte, 24)
		if _, err := rand.Read(passwordBytes); err != nil {
			return nil, "", fmt.Errorf("failed to generate password: %w", err)
		}
		password = base64.URLEncoding.EncodeToString(passwordBytes)
	}

	database, err := db.Connect(db.Config{})
	if err != nil {
		return nil, "", err
	}

	user := model.User{
		Username: username,
		Email:    email,
		IsActive: true,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, "", err
	}

	usersStore := gormstore.NewUsersStore(database)
	if err := usersStore.CreateUser(&user, role); err != nil {
		return nil, "", err
	}

	return &user, password, nil
}
