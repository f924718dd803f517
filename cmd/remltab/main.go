package main

import (
	"fmt"
	"os"

	"remltab/adapters/csvout"
	"remltab/adapters/excel"
	"remltab/domain/reml"
	"remltab/internal"
	"remltab/internal/config"
	"remltab/internal/report"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		internal.DefaultLogger.Debug("no .env file found, using system environment variables")
	}

	rootCmd := &cobra.Command{
		Use:   "remltab",
		Short: "Summarize REML heritability reports into an Excel workbook",
	}

	rootCmd.AddCommand(
		newReportCmd(),
		newInspectCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newReportCmd() *cobra.Command {
	var pattern string
	var output string
	var csvPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Parse matching report files and write the summary workbook",
		Long: `Parse every report file matching the glob pattern and write a
workbook with a merged-header summary sheet, a detail sheet, and a
per-category statistics sheet.

Example: remltab report --pattern "results/*.reml" --output heritability.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(pattern, output, csvPath)
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "", "Glob pattern for report files (e.g. \"dir/*.reml\")")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output workbook path (.xlsx)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Optional path for a CSV export of the detail table")
	_ = cmd.MarkFlagRequired("pattern")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runReport(pattern, output, csvPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	paths, err := report.Expand(pattern)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		// A valid (if unintended) query result, not an error.
		fmt.Printf("Warning: No files found matching pattern '%s'\n", pattern)
		return nil
	}
	fmt.Printf("Found %d report files\n", len(paths))

	builder := report.NewBuilder(cfg, internal.DefaultLogger)
	tables, err := builder.Build(paths)
	if err != nil {
		return err
	}

	writer := excel.NewWorkbookWriter(internal.DefaultLogger)
	counts, err := writer.Write(output, tables)
	if err != nil {
		return err
	}

	if csvPath != "" {
		if err := csvout.WriteDetails(csvPath, tables.Details); err != nil {
			return err
		}
		fmt.Printf("Wrote detail CSV to %s\n", csvPath)
	}

	fmt.Printf("Successfully wrote results to %s\n", output)
	fmt.Printf("  - Summary sheet: %d rows (with merged headers)\n", counts.SummaryRows)
	fmt.Printf("  - Detailed sheet: %d rows\n", counts.DetailRows)
	fmt.Printf("  - Statistics sheet: %d rows\n", counts.StatsRows)
	return nil
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [report-file]",
		Short: "Parse a single report file and print what was extracted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args[0])
		},
	}
	return cmd
}

func runInspect(path string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	decoded := reml.ParseFilename(path, cfg.Extension)
	parsed, err := reml.NewParser(cfg.NAMarker).ParseFile(path)
	if err != nil {
		return err
	}

	fmt.Printf("File:      %s\n", path)
	fmt.Printf("Phenotype: %s\n", decoded.Phenotype)
	fmt.Printf("Category:  %s\n", decoded.Category)
	converged := parsed.Converged
	if converged == "" {
		converged = "(absent)"
	}
	fmt.Printf("Converged: %s\n", converged)

	for _, label := range reml.ComponentOrder {
		row, ok := parsed.Components[label]
		if !ok {
			continue
		}
		fmt.Printf("%-8s", label)
		for _, v := range row.Values() {
			if v == nil {
				fmt.Printf("  %8s", cfg.NAMarker)
			} else {
				fmt.Printf("  %8g", *v)
			}
		}
		fmt.Println()
	}
	return nil
}
