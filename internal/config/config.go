package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Addr          string
	DBPath        string
	CatalogPath   string
	RiskAppetite  float64
	Contamination float64
	HourlyRate    float64
	Workers       int
	Debug         bool
}

// Load populates Config from environment variables with sane defaults.
// Command line flags applied by the CLI override these values.
func Load() *Config {
	return &Config{
		Addr:          getEnv("RISKMAP_ADDR", ":8080"),
		DBPath:        getEnv("RISKMAP_DB", getDefaultDBPath()),
		CatalogPath:   getEnv("RISKMAP_CATALOG", ""),
		RiskAppetite:  getEnvFloat("RISKMAP_APPETITE", 5.0),
		Contamination: getEnvFloat("RISKMAP_CONTAMINATION", 0.1),
		HourlyRate:    getEnvFloat("RISKMAP_HOURLY_RATE", 150),
		Workers:       int(getEnvFloat("RISKMAP_WORKERS", 4)),
		Debug:         getEnvBool("RISKMAP_DEBUG", false),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getDefaultDBPath returns the default database path in user's home directory.
// Creates the directory if it doesn't exist.
func getDefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Warning: Could not get user home directory, using current dir: %v", err)
		return "riskmap.db"
	}

	riskmapDir := filepath.Join(home, ".riskmap")

	if err := os.MkdirAll(riskmapDir, 0755); err != nil {
		log.Printf("Warning: Could not create .riskmap directory, using current dir: %v", err)
		return "riskmap.db"
	}

	return filepath.Join(riskmapDir, "riskmap.db")
}
