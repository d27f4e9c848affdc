package ports

import "github.com/lcalzada-xor/riskmap/internal/core/domain"

// StrategyCatalog resolves mitigation strategies for a risk category.
// Implementations must never return an empty result for GeneralEntry.
type StrategyCatalog interface {
	// Lookup returns the strategies registered for the exact category key.
	Lookup(category string) ([]domain.Strategy, bool)

	// GeneralEntry returns the fallback strategies applied when neither the
	// risk event nor the vulnerability type matches a catalog entry.
	GeneralEntry() []domain.Strategy
}
