package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/user/healthai/internal/config"
)

func init() {
	rootCmd.AddCommand(setupCmd)
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		scanner := bufio.NewScanner(os.Stdin)

		fmt.Println("HealthAI Setup Wizard")
		fmt.Println("Press Enter to accept the default value shown in brackets.")
		fmt.Println()

		cfg.ServerURL = prompt(scanner, "Backend API root", cfg.ServerURL)
		cfg.DataDir = prompt(scanner, "Data directory", cfg.DataDir)
		cfg.Notify.Schedule = prompt(scanner, "Reminder sweep schedule", cfg.Notify.Schedule)
		cfg.Notify.Telegram.Token = prompt(scanner, "Telegram bot token (optional)", cfg.Notify.Telegram.Token)

		chatIDStr := prompt(scanner, "Telegram chat ID (optional)", strconv.FormatInt(cfg.Notify.Telegram.ChatID, 10))
		if n, err := strconv.ParseInt(chatIDStr, 10, 64); err == nil {
			cfg.Notify.Telegram.ChatID = n
		}

		if err := config.Save(cfgPath, cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		fmt.Println()
		fmt.Println("Configuration saved to", cfgPath)
		return nil
	},
}
