package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/healthai/internal/render"
	"github.com/user/healthai/pkg/api"
)

func init() {
	symptomsCheckCmd.Flags().StringVar(&symptomDuration, "duration", "", "how long the symptoms have lasted")
	symptomsCheckCmd.Flags().StringVar(&symptomSeverity, "severity", "", "mild, moderate, or severe")
	symptomsCmd.AddCommand(symptomsCheckCmd, symptomsHistoryCmd)
	rootCmd.AddCommand(symptomsCmd)
}

var (
	symptomDuration string
	symptomSeverity string
)

var symptomsCmd = &cobra.Command{
	Use:   "symptoms",
	Short: "AI symptom checker",
}

var symptomsCheckCmd = &cobra.Command{
	Use:   "check <description>",
	Short: "Analyze a symptom description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		if err := a.admit(); err != nil {
			return err
		}

		analysis, err := a.client.AnalyzeSymptoms(context.Background(), api.SymptomReport{
			Symptoms: args[0],
			Duration: symptomDuration,
			Severity: symptomSeverity,
		})
		if err != nil {
			return a.surface(err)
		}

		fmt.Println(render.Response(analysis.Analysis))
		return nil
	},
}

var symptomsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List past symptom analyses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		if err := a.admit(); err != nil {
			return err
		}

		analyses, err := a.client.SymptomHistory(context.Background())
		if err != nil {
			return a.surface(err)
		}
		if len(analyses) == 0 {
			fmt.Println("No symptom checks yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tSYMPTOMS")
		for _, s := range analyses {
			fmt.Fprintf(w, "%s\t%s\n", s.CreatedAt.Format("2006-01-02 15:04"), s.Symptoms)
		}
		return w.Flush()
	},
}
