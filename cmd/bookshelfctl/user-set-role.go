package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bookshelf/pkg/db"
	"bookshelf/pkg/model"
	gormstore "bookshelf/pkg/server/store/gorm"
)

// userSetRoleCmd represents the user set-role command
var userSetRoleCmd = &cobra.Command{
	Use:   "set-role <username> <role>",
	Short: "Change a user's role",
	Long: `Change a user's role.

Example:
  bookshelfctl user set-role alice librarian
  bookshelfctl user set-role bob admin`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		username := args[0]
		roleName := args[1]

		if err := setUserRole(username, roleName); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to set role: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("User '%s' is now a %s\n", username, roleName)
	},
}

func init() {
	userCmd.AddCommand(userSetRoleCmd)
}

func setUserRole(username, roleName string) error {
	role, err := model.RoleString(roleName)
	if err != nil {
		return fmt.Errorf("invalid role %q: must be one of member, librarian, admin", roleName)
	}

	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	usersStore := gormstore.NewUsersStore(database)
	user, err := usersStore.FindUser(username)
	if err != nil {
		return fmt.Errorf("user %q not found", username)
	}

	return usersStore.SetRole(user.ID, role)
}
