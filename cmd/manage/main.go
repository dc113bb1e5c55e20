// Command manage performs staff account maintenance against the shop
// database.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"pceshop_back_end/internal/config"
	"pceshop_back_end/internal/database"
	"pceshop_back_end/internal/models"
	"pceshop_back_end/internal/repository"
	"pceshop_back_end/internal/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "manage",
		Short:         "Staff account maintenance for the PC e-shop",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newCreateStaffCmd(), newSetStaffCmd(), newAddGroupCmd())
	return root
}

// openUsers connects to the relational store named by the environment.
func openUsers() (*repository.UserRepository, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return repository.NewUserRepository(db), nil
}

func newCreateStaffCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "createstaff <username>",
		Short: "Create an active staff account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(password) < 8 {
				return errors.New("--password must be at least 8 characters")
			}
			users, err := openUsers()
			if err != nil {
				return err
			}

			hash, err := utils.HashPassword(password)
			if err != nil {
				return err
			}
			user := &models.User{
				Username: args[0],
				Email:    email,
				Password: hash,
				IsStaff:  true,
				IsActive: true,
			}
			if err := users.Create(cmd.Context(), user); err != nil {
				return fmt.Errorf("creating %s: %w", args[0], err)
			}
			log.Printf("✅ Staff account %q created (id %d)", user.Username, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newSetStaffCmd() *cobra.Command {
	var revoke bool
	cmd := &cobra.Command{
		Use:   "setstaff <username>",
		Short: "Grant or revoke the staff flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := openUsers()
			if err != nil {
				return err
			}
			user, err := lookup(cmd.Context(), users, args[0])
			if err != nil {
				return err
			}
			if err := users.SetStaff(cmd.Context(), user.ID, !revoke); err != nil {
				return err
			}
			log.Printf("✅ Staff flag of %q set to %t", user.Username, !revoke)
			return nil
		},
	}
	cmd.Flags().BoolVar(&revoke, "revoke", false, "remove the staff flag instead")
	return cmd
}

func newAddGroupCmd() *cobra.Command {
	var group string
	cmd := &cobra.Command{
		Use:   "addgroup <username>",
		Short: "Add a user to a group (Employee grants manager access)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := openUsers()
			if err != nil {
				return err
			}
			user, err := lookup(cmd.Context(), users, args[0])
			if err != nil {
				return err
			}
			if err := users.AddToGroup(cmd.Context(), user.ID, group); err != nil {
				return err
			}
			log.Printf("✅ %q added to group %q", user.Username, group)
			return nil
		},
	}
	cmd.Flags().StringVar(&group, "group", models.EmployeeGroup, "group name")
	return cmd
}

func lookup(ctx context.Context, users *repository.UserRepository, username string) (*models.User, error) {
	user, err := users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("no user named %q", username)
	}
	return user, err
}
