// cmd/segmentctl/analyze.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sonalkolhe/customer-segmentation-webapp/internal/cluster"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/dataset"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/insight"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/service"
)

var (
	anaK        int
	anaFeatures string
	anaSeed     int64
	anaRestarts int
	anaFormat   string
	anaRules    string
	anaMaxRows  int
	anaOutput   string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.csv>",
	Short: "Cluster a customer CSV into marketing segments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if !dataset.AllowedFile(path) {
			return fmt.Errorf("%s is not a .csv file", path)
		}

		pair, err := cluster.ParseFeaturePair(anaFeatures)
		if err != nil {
			return err
		}

		rules := insight.DefaultRules()
		if anaRules != "" {
			rules, err = insight.LoadRules(anaRules)
			if err != nil {
				return err
			}
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		svc := &service.SegmentationService{
			Reader:     &dataset.CSVCustomerReader{MaxRows: anaMaxRows},
			Summarizer: insight.NewSummarizer(rules),
			DefaultK:   anaK,
			Restarts:   anaRestarts,
			Seed:       anaSeed,
		}

		report, err := svc.Analyze(f, service.AnalyzeOptions{K: anaK, Features: pair, Seed: anaSeed})
		if err != nil {
			return err
		}

		var out io.Writer = os.Stdout
		if anaOutput != "" {
			file, err := os.Create(anaOutput)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer file.Close()
			out = file
		}

		switch strings.ToLower(anaFormat) {
		case "table":
			if err := writeTable(out, report); err != nil {
				return err
			}
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
		case "csv":
			if err := svc.WriteClusteredCSV(out, report); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported --format %q (use table|json|csv)", anaFormat)
		}

		if anaOutput != "" {
			fmt.Printf("✓ Wrote %s report to %s\n", anaFormat, anaOutput)
		}
		return nil
	},
}

// writeTable prints the KPI block and one row per segment.
func writeTable(w io.Writer, report *service.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Customers:\t%d\n", report.KPIs.TotalCustomers)
	fmt.Fprintf(tw, "Avg income:\t%.2fk$\n", report.KPIs.AvgIncome)
	fmt.Fprintf(tw, "Avg spending:\t%.2f\n", report.KPIs.AvgSpending)
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "CLUSTER\tSIZE\tAVG AGE\tAVG INCOME\tAVG SPEND\tGENDER\tSEGMENT\tRECOMMENDATION")
	for _, s := range report.Insights {
		fmt.Fprintf(tw, "%d\t%d\t%.0f\t%.1f\t%.1f\t%s\t%s\t%s\n",
			s.ClusterID, s.Size, s.AvgAge, s.AvgIncome, s.AvgSpending, s.GenderProfile, s.Label, s.Recommendation)
	}
	return tw.Flush()
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().IntVar(&anaK, "k", cluster.DefaultK, "number of segments (2-10)")
	analyzeCmd.Flags().StringVar(&anaFeatures, "features", "income", "feature pair to cluster on: 'income' | 'age'")
	analyzeCmd.Flags().Int64Var(&anaSeed, "seed", 42, "random seed (0 = random each run)")
	analyzeCmd.Flags().IntVar(&anaRestarts, "restarts", cluster.DefaultRestarts, "k-means restarts, best inertia wins")
	analyzeCmd.Flags().StringVar(&anaFormat, "format", "table", "output format: 'table' | 'json' | 'csv'")
	analyzeCmd.Flags().StringVar(&anaRules, "rules", "", "YAML file overriding the segment thresholds")
	analyzeCmd.Flags().IntVar(&anaMaxRows, "max-rows", dataset.DefaultMaxRows, "maximum data rows to accept")
	analyzeCmd.Flags().StringVarP(&anaOutput, "output", "o", "", "write the report to a file instead of stdout")
}
