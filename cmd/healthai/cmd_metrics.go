package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/healthai/internal/listctl"
	"github.com/user/healthai/pkg/api"
)

func init() {
	metricsListCmd.Flags().StringVar(&metricFilter, "type", "", "filter by metric type (weight, blood_pressure, glucose, heart_rate)")
	metricsAddCmd.Flags().StringVar(&metricNotes, "notes", "", "optional notes")
	metricsCmd.AddCommand(metricsListCmd, metricsAddCmd, metricsRemoveCmd)
	rootCmd.AddCommand(metricsCmd)
}

var (
	metricFilter string
	metricNotes  string
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Track health metrics",
}

var metricsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded metrics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		if err := a.admit(); err != nil {
			return err
		}

		ctl := listctl.Metrics(a.client)
		if err := ctl.Load(context.Background(), metricFilter); err != nil {
			return a.surface(err)
		}
		return printMetrics(ctl.Items())
	},
}

var metricsAddCmd = &cobra.Command{
	Use:   "add <type> <value> <unit>",
	Short: "Record a new metric",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		if err := a.admit(); err != nil {
			return err
		}

		ctl := listctl.Metrics(a.client)
		input := api.MetricInput{
			MetricType: api.MetricType(args[0]),
			Value:      args[1],
			Unit:       args[2],
			Notes:      metricNotes,
		}
		if err := ctl.Create(context.Background(), input); err != nil {
			return a.surface(err)
		}

		fmt.Println("Metric recorded.")
		return printMetrics(ctl.Items())
	},
}

var metricsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a metric",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		if err := a.admit(); err != nil {
			return err
		}

		ctl := listctl.Metrics(a.client)
		if err := ctl.Load(context.Background(), ""); err != nil {
			return a.surface(err)
		}
		if err := ctl.Remove(context.Background(), args[0]); err != nil {
			return a.surface(err)
		}
		fmt.Println("Metric deleted.")
		return nil
	},
}

func printMetrics(metrics []*api.Metric) error {
	if len(metrics) == 0 {
		fmt.Println("No metrics recorded.")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tVALUE\tUNIT\tDATE\tNOTES")
	for _, m := range metrics {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			m.ID, m.MetricType, m.Value, m.Unit,
			m.CreatedAt.Format("2006-01-02 15:04"), m.Notes)
	}
	return w.Flush()
}
