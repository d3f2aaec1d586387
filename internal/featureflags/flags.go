// Package featureflags resolves mini year selector availability per feature
// area. Resolution layers compiled defaults under stored per-area overrides,
// with a global emergency kill switch that wins over both.
package featureflags

import "context"

// Storage keys for the two persisted flag values.
const (
	KeyEmergencyDisable = "EMERGENCY_DISABLE_MINI_YEAR_SELECTORS"
	KeyOverrides        = "MINI_YEAR_SELECTOR_OVERRIDES"
)

// Feature areas that render mini year selectors.
const (
	AreaClientDetails   = "client_details"
	AreaPortfolioReview = "portfolio_review"
	AreaAnnualSummary   = "annual_summary"
)

// Overrides maps a feature area to an explicit on/off decision that
// supersedes the compiled default for that area.
type Overrides map[string]bool

// Reader exposes the persisted flag layers.
type Reader interface {
	EmergencyDisabled(ctx context.Context) (bool, error)
	StoredOverrides(ctx context.Context) (Overrides, error)
}

// compiledDefaults is the bottom resolution layer. Areas not listed here
// resolve to enabled.
var compiledDefaults = map[string]bool{
	AreaClientDetails:   true,
	AreaPortfolioReview: true,
	AreaAnnualSummary:   false,
}

// Resolver answers whether mini year selectors are enabled for an area.
type Resolver struct {
	reader Reader
}

// NewResolver builds a resolver over the provided flag reader.
func NewResolver(reader Reader) *Resolver {
	return &Resolver{reader: reader}
}

// Enabled resolves the flag for a feature area. The emergency kill switch
// disables every area regardless of overrides or defaults.
func (r *Resolver) Enabled(ctx context.Context, area string) (bool, error) {
	if r == nil || r.reader == nil {
		return defaultFor(area), nil
	}

	disabled, err := r.reader.EmergencyDisabled(ctx)
	if err != nil {
		return false, err
	}
	if disabled {
		return false, nil
	}

	overrides, err := r.reader.StoredOverrides(ctx)
	if err != nil {
		return false, err
	}
	if enabled, ok := overrides[area]; ok {
		return enabled, nil
	}

	return defaultFor(area), nil
}

func defaultFor(area string) bool {
	if enabled, ok := compiledDefaults[area]; ok {
		return enabled
	}
	return true
}
