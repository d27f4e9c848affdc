package mitigation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogHasAllCategories(t *testing.T) {
	c := NewCatalog()

	for _, category := range []string{
		"Outdated Software",
		"Default Credentials",
		"SSL/TLS Configuration",
		"Weak Cipher Suites",
		"Missing Security Patches",
		"Service Misconfiguration",
	} {
		s, ok := c.Lookup(category)
		assert.True(t, ok, category)
		assert.NotEmpty(t, s, category)
	}
}

func TestLookupUnknownCategory(t *testing.T) {
	c := NewCatalog()
	s, ok := c.Lookup("Alien Invasion")
	assert.False(t, ok)
	assert.Empty(t, s)
}

func TestGeneralEntryAlwaysPresent(t *testing.T) {
	c := NewCatalog()
	general := c.GeneralEntry()
	require.NotEmpty(t, general)
	assert.Equal(t, "General Security Enhancement", general[0].Name)
}

func TestLoadCatalogMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")

	yaml := `
Outdated Software:
  - strategy: Containerize and Rebuild
    description: Replace patching with image rebuilds
    steps:
      - Build patched base image
      - Redeploy workloads
    effort_hours: 5
    resources:
      - Platform Team
    time_per_step: 1 hour
Legacy Protocol Exposure:
  - strategy: Disable Legacy Protocols
    description: Turn off SMBv1 and friends
    steps:
      - Inventory protocol usage
      - Disable legacy listeners
    effort_hours: 2
    resources:
      - Network Administrator
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)

	// Overridden category replaces the built-in entry.
	s, ok := c.Lookup("Outdated Software")
	require.True(t, ok)
	require.Len(t, s, 1)
	assert.Equal(t, "Containerize and Rebuild", s[0].Name)
	assert.Equal(t, 5.0, s[0].EffortHours)
	assert.Equal(t, []string{"Platform Team"}, s[0].Resources)

	// New category is added.
	s, ok = c.Lookup("Legacy Protocol Exposure")
	require.True(t, ok)
	assert.Equal(t, "Disable Legacy Protocols", s[0].Name)

	// Untouched built-ins survive the merge.
	_, ok = c.Lookup("Default Credentials")
	assert.True(t, ok)
	assert.NotEmpty(t, c.GeneralEntry())
}

func TestLoadCatalogMissingFile(t *testing.T) {
	_, err := LoadCatalog("/nonexistent/catalog.yaml")
	assert.Error(t, err)
}

func TestLoadCatalogInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml: ["), 0644))

	_, err := LoadCatalog(path)
	assert.Error(t, err)
}
