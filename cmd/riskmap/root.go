package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lcalzada-xor/riskmap/internal/config"
)

const version = "1.0.0"

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:     "riskmap",
	Short:   "Risk evaluation and mitigation planning for network scan results",
	Long:    `riskmap scores network scan results for threats and anomalies, walks each finding through a risk lifecycle, and produces prioritized mitigation plans with a phased remediation program.`,
	Version: version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cfg = config.Load()

	rootCmd.PersistentFlags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "Path to YAML mitigation strategy catalog (empty for built-in)")
	rootCmd.PersistentFlags().Float64Var(&cfg.RiskAppetite, "appetite", cfg.RiskAppetite, "CVSS acceptance threshold")
	rootCmd.PersistentFlags().Float64Var(&cfg.Contamination, "contamination", cfg.Contamination, "Expected anomaly fraction for the baseline model")
	rootCmd.PersistentFlags().Float64Var(&cfg.HourlyRate, "hourly-rate", cfg.HourlyRate, "Labor rate for cost estimates (USD)")
	rootCmd.PersistentFlags().IntVar(&cfg.Workers, "workers", cfg.Workers, "Scoring worker count")
	rootCmd.PersistentFlags().BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable verbose debug logging")
}
