// Package domain defines the advisor-assistant MCP tools over portal
// client data. All tools are read-only.
package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	clients "github.com/kingstons-portal/backoffice/internal/clients/domain"
	portaldomain "github.com/kingstons-portal/backoffice/internal/services/portal/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const lookupTimeout = 5 * time.Second

// LookupProductOwnerInput represents the MCP tool input for owner lookup.
type LookupProductOwnerInput struct {
	OwnerID string `json:"owner_id" jsonschema:"product owner identifier"`
}

// ProductOwnerEntry represents one product owner in tool output.
type ProductOwnerEntry struct {
	ID        string `json:"id" jsonschema:"product owner identifier"`
	KnownAs   string `json:"known_as" jsonschema:"preferred name"`
	Title     string `json:"title,omitempty" jsonschema:"salutation title"`
	Firstname string `json:"firstname,omitempty" jsonschema:"legal first name"`
	Surname   string `json:"surname,omitempty" jsonschema:"legal surname"`
	Status    string `json:"status" jsonschema:"lifecycle status (active, lapsed, deceased)"`
	CreatedAt string `json:"created_at" jsonschema:"RFC3339 timestamp when owner was created"`
	UpdatedAt string `json:"updated_at" jsonschema:"RFC3339 timestamp when owner was last updated"`
}

// LookupProductOwnerResult represents the MCP tool output for owner lookup.
type LookupProductOwnerResult struct {
	ProductOwner ProductOwnerEntry `json:"product_owner"`
}

// ListProductOwnersInput represents the MCP tool input for owner listings.
type ListProductOwnersInput struct {
	Status    string `json:"status,omitempty" jsonschema:"optional lifecycle status filter (active, lapsed, deceased)"`
	PageSize  int    `json:"page_size,omitempty" jsonschema:"maximum owners per page"`
	PageToken string `json:"page_token,omitempty" jsonschema:"token from a previous listing page"`
}

// ListProductOwnersResult represents the MCP tool output for owner listings.
type ListProductOwnersResult struct {
	ProductOwners []ProductOwnerEntry `json:"product_owners"`
	NextPageToken string              `json:"next_page_token,omitempty" jsonschema:"token for the next listing page"`
}

// LookupProductOwnerTool defines the MCP tool schema for owner lookup.
func LookupProductOwnerTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "lookup_product_owner",
		Description: "Fetches one product owner by identifier",
	}
}

// LookupProductOwnerHandler resolves one product owner via the portal service.
func LookupProductOwnerHandler(svc *portaldomain.Service) mcp.ToolHandlerFor[LookupProductOwnerInput, LookupProductOwnerResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LookupProductOwnerInput) (*mcp.CallToolResult, LookupProductOwnerResult, error) {
		ownerID := strings.TrimSpace(input.OwnerID)
		if ownerID == "" {
			return nil, LookupProductOwnerResult{}, fmt.Errorf("owner_id is required")
		}

		runCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
		defer cancel()

		owner, err := svc.GetProductOwner(runCtx, ownerID)
		if err != nil {
			return nil, LookupProductOwnerResult{}, fmt.Errorf("lookup product owner: %w", err)
		}
		return nil, LookupProductOwnerResult{ProductOwner: ownerEntry(owner)}, nil
	}
}

// ListProductOwnersTool defines the MCP tool schema for owner listings.
func ListProductOwnersTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_product_owners",
		Description: "Lists product owners, optionally filtered by lifecycle status",
	}
}

// ListProductOwnersHandler pages product owners via the portal service.
func ListProductOwnersHandler(svc *portaldomain.Service) mcp.ToolHandlerFor[ListProductOwnersInput, ListProductOwnersResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListProductOwnersInput) (*mcp.CallToolResult, ListProductOwnersResult, error) {
		query := portaldomain.ListOwnersQuery{
			PageSize:  input.PageSize,
			PageToken: strings.TrimSpace(input.PageToken),
		}
		if status := strings.TrimSpace(input.Status); status != "" {
			parsed, ok := clients.ParseOwnerStatus(status)
			if !ok {
				return nil, ListProductOwnersResult{}, fmt.Errorf("unknown status %q", status)
			}
			query.Filter = fmt.Sprintf("status = %q", string(parsed))
		}

		runCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
		defer cancel()

		page, err := svc.ListProductOwners(runCtx, query)
		if err != nil {
			return nil, ListProductOwnersResult{}, fmt.Errorf("list product owners: %w", err)
		}

		result := ListProductOwnersResult{
			ProductOwners: make([]ProductOwnerEntry, 0, len(page.Owners)),
			NextPageToken: page.NextPageToken,
		}
		for _, owner := range page.Owners {
			result.ProductOwners = append(result.ProductOwners, ownerEntry(owner))
		}
		return nil, result, nil
	}
}

func ownerEntry(owner clients.ProductOwner) ProductOwnerEntry {
	return ProductOwnerEntry{
		ID:        owner.ID,
		KnownAs:   owner.KnownAs,
		Title:     owner.Title,
		Firstname: owner.Firstname,
		Surname:   owner.Surname,
		Status:    string(owner.Status),
		CreatedAt: owner.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: owner.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
