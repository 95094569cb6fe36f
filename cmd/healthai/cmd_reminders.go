package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/healthai/internal/listctl"
	"github.com/user/healthai/pkg/api"
)

func init() {
	remindersListCmd.Flags().BoolVar(&reminderShowDone, "all", false, "include completed reminders")
	remindersAddCmd.Flags().StringVar(&reminderDesc, "description", "", "optional description")
	remindersAddCmd.Flags().StringVar(&reminderRepeat, "repeat", "none", "none, daily, or weekly")
	remindersCmd.AddCommand(remindersListCmd, remindersAddCmd, remindersCompleteCmd, remindersRemoveCmd)
	rootCmd.AddCommand(remindersCmd)
}

var (
	reminderShowDone bool
	reminderDesc     string
	reminderRepeat   string
)

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Medication and appointment reminders",
}

var remindersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reminders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		if err := a.admit(); err != nil {
			return err
		}

		ctl := listctl.Reminders(a.client)
		if err := ctl.Load(context.Background(), ""); err != nil {
			return a.surface(err)
		}

		items := ctl.Items()
		if !reminderShowDone {
			items = ctl.FilteredBy(func(r *api.Reminder) bool { return !r.Completed })
		}
		return printReminders(items)
	},
}

var remindersAddCmd = &cobra.Command{
	Use:   "add <type> <title> <when>",
	Short: "Create a reminder (when is RFC 3339, e.g. 2026-09-01T08:00:00Z)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		if err := a.admit(); err != nil {
			return err
		}

		when, err := time.Parse(time.RFC3339, args[2])
		if err != nil {
			return &api.Error{Kind: api.Validation, Detail: "invalid time, expected RFC 3339: " + err.Error()}
		}

		ctl := listctl.Reminders(a.client)
		input := api.ReminderInput{
			ReminderType:  api.ReminderType(args[0]),
			Title:         args[1],
			Description:   reminderDesc,
			ScheduledTime: when,
			Repeat:        api.Repeat(reminderRepeat),
		}
		if err := ctl.Create(context.Background(), input); err != nil {
			return a.surface(err)
		}

		fmt.Println("Reminder created.")
		return printReminders(ctl.Items())
	},
}

var remindersCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a reminder done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		if err := a.admit(); err != nil {
			return err
		}

		ctx := context.Background()
		ctl := listctl.Reminders(a.client)
		if err := ctl.Load(ctx, ""); err != nil {
			return a.surface(err)
		}
		if err := ctl.Transition(ctx, args[0], listctl.ActionComplete); err != nil {
			return a.surface(err)
		}
		fmt.Println("Reminder completed.")
		return nil
	},
}

var remindersRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a reminder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		if err := a.admit(); err != nil {
			return err
		}

		ctx := context.Background()
		ctl := listctl.Reminders(a.client)
		if err := ctl.Load(ctx, ""); err != nil {
			return a.surface(err)
		}
		if err := ctl.Remove(ctx, args[0]); err != nil {
			return a.surface(err)
		}
		fmt.Println("Reminder deleted.")
		return nil
	},
}

func printReminders(reminders []*api.Reminder) error {
	if len(reminders) == 0 {
		fmt.Println("No reminders.")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tTITLE\tWHEN\tREPEAT\tDONE")
	for _, r := range reminders {
		done := ""
		if r.Completed {
			done = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.ReminderType, r.Title,
			r.ScheduledTime.Format("2006-01-02 15:04"), r.Repeat, done)
	}
	return w.Flush()
}
