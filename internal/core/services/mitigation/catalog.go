package mitigation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lcalzada-xor/riskmap/internal/core/domain"
)

// generalKey is the fallback catalog category; it always exists so no risk
// ever leaves the engine without at least one strategy.
const generalKey = "General"

// Catalog is the immutable strategy database, keyed by risk event or
// vulnerability type. Built once at startup and treated as configuration.
type Catalog struct {
	entries map[string][]domain.Strategy
}

// NewCatalog returns the built-in strategy catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: defaultEntries()}
}

// LoadCatalog reads a YAML catalog file and merges it over the built-in
// entries, so deployments can extend or replace strategies per category.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var loaded map[string][]domain.Strategy
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	entries := defaultEntries()
	for key, strategies := range loaded {
		if len(strategies) > 0 {
			entries[key] = strategies
		}
	}
	return &Catalog{entries: entries}, nil
}

// Lookup returns the strategies registered for the exact category key.
func (c *Catalog) Lookup(category string) ([]domain.Strategy, bool) {
	s, ok := c.entries[category]
	return s, ok
}

// GeneralEntry returns the generic fallback strategies.
func (c *Catalog) GeneralEntry() []domain.Strategy {
	return c.entries[generalKey]
}

func defaultEntries() map[string][]domain.Strategy {
	return map[string][]domain.Strategy{
		"Outdated Software": {
			{
				Name:        "Update to Latest Version",
				Description: "Apply latest security patches and updates",
				Steps: []string{
					"Backup current system configuration",
					"Test update in staging environment",
					"Schedule maintenance window",
					"Apply updates to production",
					"Verify system functionality",
					"Document changes",
				},
				EffortHours: 4,
				Resources:   []string{"System Administrator", "Patch Management Tools"},
				TimePerStep: "30-60 minutes",
			},
		},
		"Default Credentials": {
			{
				Name:        "Change Default Credentials",
				Description: "Implement strong authentication",
				Steps: []string{
					"Identify all accounts with default credentials",
					"Generate strong passwords per policy",
					"Update credentials in systems",
					"Update dependent systems and scripts",
					"Document new credentials securely",
					"Verify authentication works correctly",
				},
				EffortHours: 2,
				Resources:   []string{"Security Administrator", "Password Manager"},
				TimePerStep: "15-30 minutes",
			},
			{
				Name:        "Implement MFA",
				Description: "Add multi-factor authentication",
				Steps: []string{
					"Select MFA solution",
					"Configure MFA for critical systems",
					"Enroll users in MFA",
					"Test MFA functionality",
					"Document MFA procedures",
				},
				EffortHours: 8,
				Resources:   []string{"Security Team", "MFA Solution", "User Training"},
				TimePerStep: "1-2 hours",
				ToolCost:    500,
			},
		},
		"SSL/TLS Configuration": {
			{
				Name:        "Strengthen SSL/TLS Configuration",
				Description: "Implement secure cryptographic configuration",
				Steps: []string{
					"Disable SSLv2, SSLv3, TLS 1.0, TLS 1.1",
					"Enable TLS 1.2 and TLS 1.3",
					"Configure strong cipher suites",
					"Implement HSTS",
					"Update SSL certificates if needed",
					"Test configuration with SSL Labs",
				},
				EffortHours: 3,
				Resources:   []string{"Network Administrator", "SSL/TLS Tools"},
				TimePerStep: "30 minutes",
			},
		},
		"Weak Cipher Suites": {
			{
				Name:        "Update Cipher Configuration",
				Description: "Remove weak ciphers and implement strong ones",
				Steps: []string{
					"Audit current cipher configuration",
					"Disable weak ciphers (RC4, DES, 3DES)",
					"Enable strong ciphers (AES-256-GCM)",
					"Test compatibility with clients",
					"Monitor for connection issues",
					"Document configuration changes",
				},
				EffortHours: 2,
				Resources:   []string{"Security Administrator"},
				TimePerStep: "20 minutes",
			},
		},
		"Missing Security Patches": {
			{
				Name:        "Implement Patch Management",
				Description: "Establish systematic patching process",
				Steps: []string{
					"Inventory all systems and software",
					"Subscribe to security advisories",
					"Test patches in staging",
					"Deploy patches to production",
					"Verify patch installation",
					"Establish regular patching schedule",
				},
				EffortHours: 6,
				Resources:   []string{"IT Team", "Patch Management System", "Testing Environment"},
				TimePerStep: "1 hour",
			},
		},
		"Service Misconfiguration": {
			{
				Name:        "Harden Service Configuration",
				Description: "Apply security hardening best practices",
				Steps: []string{
					"Review current configuration",
					"Apply CIS benchmarks or hardening guides",
					"Disable unnecessary features",
					"Implement least privilege",
					"Enable security logging",
					"Test service functionality",
				},
				EffortHours: 4,
				Resources:   []string{"Security Team", "Configuration Management Tools"},
				TimePerStep: "40 minutes",
			},
		},
		generalKey: {
			{
				Name:        "General Security Enhancement",
				Description: "Apply general security best practices",
				Steps: []string{
					"Review security configurations",
					"Apply security updates",
					"Implement access controls",
					"Enable security monitoring",
					"Document changes",
				},
				EffortHours: 3,
				Resources:   []string{"Security Team"},
				TimePerStep: "30-45 minutes",
			},
		},
	}
}
