package domain

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	clients "github.com/kingstons-portal/backoffice/internal/clients/domain"
	portaldomain "github.com/kingstons-portal/backoffice/internal/services/portal/domain"
	"github.com/kingstons-portal/backoffice/internal/services/portal/storage/sqlite"
)

func newTestService(t *testing.T) *portaldomain.Service {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "portal.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	var counter int
	newID := func() (string, error) {
		counter++
		return fmt.Sprintf("owner-%03d", counter), nil
	}
	return portaldomain.NewService(store, func() time.Time { return now }, newID)
}

func seedOwners(t *testing.T, svc *portaldomain.Service, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		if _, err := svc.CreateProductOwner(context.Background(), clients.CreateProductOwnerInput{
			KnownAs: fmt.Sprintf("Client %d", i),
			Surname: "Example",
		}); err != nil {
			t.Fatalf("create owner %d: %v", i, err)
		}
	}
}

func TestLookupProductOwnerHandler(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	seedOwners(t, svc, 1)

	handler := LookupProductOwnerHandler(svc)
	_, result, err := handler(context.Background(), nil, LookupProductOwnerInput{OwnerID: "owner-001"})
	if err != nil {
		t.Fatalf("lookup owner: %v", err)
	}
	if result.ProductOwner.ID != "owner-001" {
		t.Fatalf("expected owner-001, got %q", result.ProductOwner.ID)
	}
	if result.ProductOwner.Status != "active" {
		t.Fatalf("expected active status, got %q", result.ProductOwner.Status)
	}
	if result.ProductOwner.CreatedAt != "2026-03-14T09:30:00Z" {
		t.Fatalf("expected RFC3339 created_at, got %q", result.ProductOwner.CreatedAt)
	}
}

func TestLookupProductOwnerHandlerRequiresID(t *testing.T) {
	t.Parallel()

	handler := LookupProductOwnerHandler(newTestService(t))
	if _, _, err := handler(context.Background(), nil, LookupProductOwnerInput{OwnerID: "  "}); err == nil {
		t.Fatal("expected error for blank owner id")
	}
}

func TestLookupProductOwnerHandlerUnknownOwner(t *testing.T) {
	t.Parallel()

	handler := LookupProductOwnerHandler(newTestService(t))
	if _, _, err := handler(context.Background(), nil, LookupProductOwnerInput{OwnerID: "missing"}); err == nil {
		t.Fatal("expected error for unknown owner")
	}
}

func TestListProductOwnersHandlerPages(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	seedOwners(t, svc, 3)

	handler := ListProductOwnersHandler(svc)
	_, first, err := handler(context.Background(), nil, ListProductOwnersInput{PageSize: 2})
	if err != nil {
		t.Fatalf("list first page: %v", err)
	}
	if len(first.ProductOwners) != 2 {
		t.Fatalf("expected 2 owners, got %d", len(first.ProductOwners))
	}
	if first.NextPageToken == "" {
		t.Fatal("expected next page token")
	}

	_, second, err := handler(context.Background(), nil, ListProductOwnersInput{PageSize: 2, PageToken: first.NextPageToken})
	if err != nil {
		t.Fatalf("list second page: %v", err)
	}
	if len(second.ProductOwners) != 1 {
		t.Fatalf("expected 1 owner on second page, got %d", len(second.ProductOwners))
	}
	if second.NextPageToken != "" {
		t.Fatalf("expected empty token on final page, got %q", second.NextPageToken)
	}
}

func TestListProductOwnersHandlerStatusFilter(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	seedOwners(t, svc, 2)
	if _, err := svc.SetProductOwnerStatus(context.Background(), "owner-002", "lapsed"); err != nil {
		t.Fatalf("lapse owner: %v", err)
	}

	handler := ListProductOwnersHandler(svc)
	_, result, err := handler(context.Background(), nil, ListProductOwnersInput{Status: "lapsed"})
	if err != nil {
		t.Fatalf("list lapsed owners: %v", err)
	}
	if len(result.ProductOwners) != 1 || result.ProductOwners[0].ID != "owner-002" {
		t.Fatalf("expected only owner-002, got %+v", result.ProductOwners)
	}

	if _, _, err := handler(context.Background(), nil, ListProductOwnersInput{Status: "retired"}); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
