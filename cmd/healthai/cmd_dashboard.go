package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/user/healthai/internal/listctl"
	"github.com/user/healthai/pkg/api"
)

// Dashboard truncation is a view concern: the caches hold the full
// lists, the dashboard just slices them.
const (
	dashboardMetricLimit   = 5
	dashboardReminderLimit = 3
)

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Overview of recent metrics and upcoming reminders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		if err := a.admit(); err != nil {
			return err
		}

		metrics := listctl.Metrics(a.client)
		reminders := listctl.Reminders(a.client)

		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error { return metrics.Load(ctx, "") })
		g.Go(func() error { return reminders.Load(ctx, "") })
		if err := g.Wait(); err != nil {
			return a.surface(err)
		}

		user, _ := a.store.Current()
		fmt.Printf("Health dashboard for %s\n", user.Name)

		fmt.Println("\nRecent metrics:")
		recent := metrics.Items()
		if len(recent) > dashboardMetricLimit {
			recent = recent[:dashboardMetricLimit]
		}
		if err := printMetrics(recent); err != nil {
			return err
		}

		fmt.Println("\nUpcoming reminders:")
		upcoming := reminders.FilteredBy(func(r *api.Reminder) bool { return !r.Completed })
		if len(upcoming) > dashboardReminderLimit {
			upcoming = upcoming[:dashboardReminderLimit]
		}
		return printReminders(upcoming)
	},
}
