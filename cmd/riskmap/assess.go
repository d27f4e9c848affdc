package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lcalzada-xor/riskmap/internal/adapters/reporting"
	"github.com/lcalzada-xor/riskmap/internal/app"
	"github.com/lcalzada-xor/riskmap/internal/core/domain"
)

var (
	assessInput    string
	assessBaseline string
	assessOutput   string
	assessPDF      string
)

// assessInputFile is the on-disk shape of one assessment request.
type assessInputFile struct {
	Scan            domain.ScanResult      `json:"scan"`
	Vulnerabilities []domain.Vulnerability `json:"vulnerabilities"`
}

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Run one assessment over a scan file and print the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(assessInput)
		if err != nil {
			return fmt.Errorf("read input file: %w", err)
		}

		var input assessInputFile
		if err := json.Unmarshal(data, &input); err != nil {
			return fmt.Errorf("parse input file: %w", err)
		}

		application, err := app.New(cfg)
		if err != nil {
			return err
		}
		defer application.Shutdown(context.Background())

		if assessBaseline != "" {
			raw, err := os.ReadFile(assessBaseline)
			if err != nil {
				return fmt.Errorf("read baseline file: %w", err)
			}
			var scans []domain.ScanResult
			if err := json.Unmarshal(raw, &scans); err != nil {
				return fmt.Errorf("parse baseline file: %w", err)
			}
			application.Pipeline.EstablishBaseline(scans)
		}

		doc, err := application.Pipeline.Run(cmd.Context(), input.Scan, input.Vulnerabilities)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}

		if assessOutput != "" {
			if err := os.WriteFile(assessOutput, out, 0644); err != nil {
				return fmt.Errorf("write output file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Assessment %s written to %s\n", doc.ID, assessOutput)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
		}

		if assessPDF != "" {
			pdf, err := reporting.NewPDFExporter().ExportAssessment(doc)
			if err != nil {
				return fmt.Errorf("generate PDF report: %w", err)
			}
			if err := os.WriteFile(assessPDF, pdf, 0644); err != nil {
				return fmt.Errorf("write PDF report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "PDF report written to %s\n", assessPDF)
		}

		return nil
	},
}

func init() {
	assessCmd.Flags().StringVarP(&assessInput, "input", "i", "", "JSON file with scan results and vulnerabilities")
	assessCmd.Flags().StringVar(&assessBaseline, "baseline", "", "JSON file with historical scans to fit the anomaly baseline")
	assessCmd.Flags().StringVarP(&assessOutput, "output", "o", "", "Write the assessment document to this file instead of stdout")
	assessCmd.Flags().StringVar(&assessPDF, "pdf", "", "Also write a PDF report to this file")
	assessCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(assessCmd)
}
