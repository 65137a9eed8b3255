package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/vibast-solutions/ms-go-skillbase/app/repository"
	"github.com/vibast-solutions/ms-go-skillbase/app/service"
	"github.com/vibast-solutions/ms-go-skillbase/config"

	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage accounts",
}

var accountCreateAdminCmd = &cobra.Command{
	Use:   "create-admin <email> <name>",
	Short: "Create a verified admin account",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		password, err := promptPassword()
		if err != nil {
			return err
		}

		accounts := service.NewAccountSecurityService(
			repository.NewAccountRepository(db),
			repository.NewProfileRepository(db),
			nil,
			service.NewTokenIssuer(cfg.JWT.Secret, nil),
			cfg,
		)

		result, err := accounts.CreateAdmin(context.Background(), args[0], args[1], password)
		if err != nil {
			if errors.Is(err, service.ErrEmailRegistered) {
				return fmt.Errorf("email %q is already registered", args[0])
			}
			return err
		}

		fmt.Printf("account_id: %s\n", result.Account.ID)
		fmt.Printf("admin_id: %s\n", result.Profile.ID)
		fmt.Printf("email: %s\n", result.Account.Email)
		return nil
	},
}

func init() {
	accountCmd.AddCommand(accountCreateAdminCmd)
	rootCmd.AddCommand(accountCmd)
}

func promptPassword() (string, error) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Password: ")
	password, _ := reader.ReadString('\n')
	fmt.Print("Confirm password: ")
	confirm, _ := reader.ReadString('\n')

	password = strings.TrimRight(password, "\r\n")
	if password != strings.TrimRight(confirm, "\r\n") {
		return "", service.ErrPasswordConfirmation
	}
	if password == "" {
		return "", errors.New("password is required")
	}
	return password, nil
}
