package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	loginCmd.Flags().StringVar(&authEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&authPassword, "password", "", "account password (prompted if omitted)")
	registerCmd.Flags().StringVar(&authEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&authPassword, "password", "", "account password (prompted if omitted)")
	registerCmd.Flags().StringVar(&authName, "name", "", "display name")
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}

var (
	authEmail    string
	authPassword string
	authName     string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session credential",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		scanner := bufio.NewScanner(os.Stdin)

		email := authEmail
		if email == "" {
			email = prompt(scanner, "Email", "")
		}
		password := authPassword
		if password == "" {
			password = prompt(scanner, "Password", "")
		}

		if err := a.store.Login(context.Background(), email, password); err != nil {
			return err
		}
		user, _ := a.store.Current()
		fmt.Printf("Logged in as %s <%s>\n", user.Name, user.Email)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		scanner := bufio.NewScanner(os.Stdin)

		name := authName
		if name == "" {
			name = prompt(scanner, "Name", "")
		}
		email := authEmail
		if email == "" {
			email = prompt(scanner, "Email", "")
		}
		password := authPassword
		if password == "" {
			password = prompt(scanner, "Password", "")
		}

		if err := a.store.Register(context.Background(), email, password, name); err != nil {
			return err
		}
		user, _ := a.store.Current()
		fmt.Printf("Account created, logged in as %s <%s>\n", user.Name, user.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session credential",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		a.store.Logout()
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		if err := a.admit(); err != nil {
			return err
		}
		user, _ := a.store.Current()
		fmt.Printf("%s <%s> (id %s)\n", user.Name, user.Email, user.ID)
		return nil
	},
}

// prompt reads one line from the scanner, returning def on empty input.
func prompt(scanner *bufio.Scanner, label, def string) string {
	if def != "" {
		fmt.Printf("%s [%s]: ", label, def)
	} else {
		fmt.Printf("%s: ", label)
	}
	if !scanner.Scan() {
		return def
	}
	text := strings.TrimSpace(scanner.Text())
	if text == "" {
		return def
	}
	return text
}
