package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/leave-analyzer/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-analyzer/internal/pkg/holiday"
	"github.com/cmlabs-hris/leave-analyzer/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/leave-analyzer/internal/pkg/validator"
	attendanceService "github.com/cmlabs-hris/leave-analyzer/internal/service/attendance"
	"github.com/spf13/cobra"
)

type analyzeOptions struct {
	holidaysFile string
	sheet        string
	today        string
	outputPath   string
	pretty       bool
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [input.xlsx]",
		Short: "Classify an attendance spreadsheet and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.holidaysFile, "holidays", os.Getenv("HOLIDAYS_FILE"), "Holiday calendar YAML (default: built-in calendar)")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "Sheet to read (default: first sheet)")
	cmd.Flags().StringVar(&opts.today, "today", "", "Evaluate upcoming days against this date, YYYY-MM-DD (default: current UTC date)")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Pretty-print JSON output")

	return cmd
}

func runAnalyze(cmd *cobra.Command, inputPath string, opts *analyzeOptions) error {
	now := time.Now
	if opts.today != "" {
		day, ok := validator.IsValidDate(opts.today)
		if !ok {
			return fmt.Errorf("invalid --today %q: want YYYY-MM-DD", opts.today)
		}
		now = func() time.Time { return day }
	}

	holidays, err := holiday.Load(opts.holidaysFile)
	if err != nil {
		return fmt.Errorf("failed to load holidays: %w", err)
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", inputPath, err)
	}
	defer f.Close()

	reader := spreadsheet.NewReader()
	reader.SheetName = opts.sheet

	rows, err := reader.ReadRows(f)
	if err != nil {
		return fmt.Errorf("%w: %w", attendance.ErrUnreadableSheet, err)
	}
	if len(rows) == 0 {
		return attendance.ErrNoRowsInSheet
	}

	batch := attendanceService.NewClassifier(holidays, now).Process(rows)
	report := attendanceService.BatchReport(batch)

	var data []byte
	if opts.pretty {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if opts.outputPath != "" {
		if err := os.WriteFile(opts.outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
