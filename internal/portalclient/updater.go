package portalclient

import (
	"context"
	"errors"

	"github.com/kingstons-portal/backoffice/internal/clients/statusflow"
)

// OwnerStatusUpdater adapts the portal client to the statusflow controller's
// updater contract for product owners. Server-supplied error copy crosses the
// boundary verbatim; transport failures carry no message so the controller
// falls back to its generic one.
type OwnerStatusUpdater struct {
	client *Client
}

// NewOwnerStatusUpdater wraps a portal client for product owner status moves.
func NewOwnerStatusUpdater(client *Client) *OwnerStatusUpdater {
	return &OwnerStatusUpdater{client: client}
}

// SetStatus persists a product owner status change and reports the outcome.
func (u *OwnerStatusUpdater) SetStatus(ctx context.Context, entityID string, status statusflow.Status) statusflow.Result {
	if u == nil || u.client == nil {
		return statusflow.Failed("")
	}
	_, err := u.client.SetProductOwnerStatus(ctx, entityID, string(status))
	if err == nil {
		return statusflow.OK()
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return statusflow.Failed(apiErr.Message)
	}
	return statusflow.Failed("")
}

var _ statusflow.StatusUpdater = (*OwnerStatusUpdater)(nil)
