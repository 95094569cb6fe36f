package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/user/healthai/internal/listctl"
	"github.com/user/healthai/internal/notify"
	"github.com/user/healthai/internal/notify/telegram"
	"github.com/user/healthai/internal/scheduler"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run in the foreground and deliver due reminders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		if err := a.admit(); err != nil {
			return err
		}

		registry := notify.NewRegistry()
		registry.Register("terminal", func(message string) error {
			_, err := fmt.Fprintln(os.Stdout, message)
			return err
		})

		if token := a.cfg.Notify.Telegram.Token; token != "" {
			notifier, err := telegram.New(token, a.cfg.Notify.Telegram.ChatID)
			if err != nil {
				return fmt.Errorf("telegram notifier: %w", err)
			}
			registry.Register("telegram", notifier.Send)
			slog.Info("telegram delivery enabled", "chat_id", a.cfg.Notify.Telegram.ChatID)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		reminders := listctl.Reminders(a.client)
		dispatcher := notify.NewDispatcher(reminders, registry)

		sweep := func() {
			if err := dispatcher.Sweep(ctx); err != nil {
				slog.Error("sweep failed", "error", err)
			}
		}

		sched := scheduler.New(a.cfg.Notify.Schedule, sweep)
		if err := sched.Start(); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
		defer sched.Stop()

		// First sweep immediately rather than waiting a full period.
		sweep()

		slog.Info("watching reminders", "schedule", a.cfg.Notify.Schedule)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		slog.Info("shutting down")
		reminders.Close()
		return nil
	},
}
