package featureflags

import (
	"context"
	"path/filepath"
	"testing"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "flags.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for blank path")
	}
}

func TestResolverCompiledDefaults(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(openTempStore(t))
	ctx := context.Background()

	enabled, err := resolver.Enabled(ctx, AreaClientDetails)
	if err != nil {
		t.Fatalf("resolve client details: %v", err)
	}
	if !enabled {
		t.Fatal("expected client details default enabled")
	}

	enabled, err = resolver.Enabled(ctx, AreaAnnualSummary)
	if err != nil {
		t.Fatalf("resolve annual summary: %v", err)
	}
	if enabled {
		t.Fatal("expected annual summary default disabled")
	}

	enabled, err = resolver.Enabled(ctx, "unknown_area")
	if err != nil {
		t.Fatalf("resolve unknown area: %v", err)
	}
	if !enabled {
		t.Fatal("expected unknown area to default enabled")
	}
}

func TestResolverStoredOverrides(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()

	overrides := Overrides{
		AreaClientDetails: false,
		AreaAnnualSummary: true,
	}
	if err := store.SetOverrides(ctx, overrides); err != nil {
		t.Fatalf("set overrides: %v", err)
	}

	resolver := NewResolver(store)

	enabled, err := resolver.Enabled(ctx, AreaClientDetails)
	if err != nil {
		t.Fatalf("resolve client details: %v", err)
	}
	if enabled {
		t.Fatal("expected override to disable client details")
	}

	enabled, err = resolver.Enabled(ctx, AreaAnnualSummary)
	if err != nil {
		t.Fatalf("resolve annual summary: %v", err)
	}
	if !enabled {
		t.Fatal("expected override to enable annual summary")
	}

	enabled, err = resolver.Enabled(ctx, AreaPortfolioReview)
	if err != nil {
		t.Fatalf("resolve portfolio review: %v", err)
	}
	if !enabled {
		t.Fatal("expected un-overridden area to keep its default")
	}
}

func TestResolverEmergencyDisableWins(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()

	if err := store.SetOverrides(ctx, Overrides{AreaClientDetails: true}); err != nil {
		t.Fatalf("set overrides: %v", err)
	}
	if err := store.SetEmergencyDisable(ctx, true); err != nil {
		t.Fatalf("set emergency disable: %v", err)
	}

	resolver := NewResolver(store)
	for _, area := range []string{AreaClientDetails, AreaPortfolioReview, "unknown_area"} {
		enabled, err := resolver.Enabled(ctx, area)
		if err != nil {
			t.Fatalf("resolve %s: %v", area, err)
		}
		if enabled {
			t.Fatalf("expected emergency disable to turn off %s", area)
		}
	}

	if err := store.SetEmergencyDisable(ctx, false); err != nil {
		t.Fatalf("clear emergency disable: %v", err)
	}
	enabled, err := resolver.Enabled(ctx, AreaClientDetails)
	if err != nil {
		t.Fatalf("resolve after clear: %v", err)
	}
	if !enabled {
		t.Fatal("expected flag to recover after emergency disable cleared")
	}
}

func TestStoreValuesPersistAcrossReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "flags.db")
	ctx := context.Background()

	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.SetEmergencyDisable(ctx, true); err != nil {
		t.Fatalf("set emergency disable: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	disabled, err := reopened.EmergencyDisabled(ctx)
	if err != nil {
		t.Fatalf("read emergency disable: %v", err)
	}
	if !disabled {
		t.Fatal("expected emergency disable to persist across reopen")
	}
}
