// Package portalclient is a typed HTTP client for the portal API. It mirrors
// the endpoints the portal UI consumes and adapts status updates to the
// statusflow controller's collaborator contract.
package portalclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// APIError is a decoded portal API error response. Its message carries the
// server's human-readable copy verbatim.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("portal api: status %d", e.StatusCode)
}

// Client calls the portal JSON API.
type Client struct {
	baseURL    string
	grant      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithGrant attaches an advisor session grant to every request.
func WithGrant(grant string) Option {
	return func(c *Client) {
		c.grant = strings.TrimSpace(grant)
	}
}

// New creates a portal API client for the given base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// ProductOwner is the client-side product owner representation.
type ProductOwner struct {
	ID        string `json:"id"`
	KnownAs   string `json:"known_as"`
	Title     string `json:"title,omitempty"`
	Firstname string `json:"firstname,omitempty"`
	Surname   string `json:"surname,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// SpecialRelationship is the client-side relationship representation.
type SpecialRelationship struct {
	ID        string `json:"id"`
	OwnerID   string `json:"owner_id"`
	Name      string `json:"name"`
	Relation  string `json:"relation,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// LegalDocument is the client-side legal document representation.
type LegalDocument struct {
	ID        string `json:"id"`
	OwnerID   string `json:"owner_id"`
	Kind      string `json:"kind"`
	Notes     string `json:"notes,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// HealthRecord is the client-side health record representation.
type HealthRecord struct {
	ID            string `json:"id"`
	OwnerID       string `json:"owner_id"`
	Title         string `json:"title"`
	Vulnerability string `json:"vulnerability,omitempty"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// ClientFile aggregates one product owner with their related records.
type ClientFile struct {
	Owner         ProductOwner          `json:"product_owner"`
	Relationships []SpecialRelationship `json:"relationships"`
	Documents     []LegalDocument       `json:"documents"`
	HealthRecords []HealthRecord        `json:"health_records"`
}

// OwnerPage is one page of a product owner listing.
type OwnerPage struct {
	ProductOwners []ProductOwner `json:"product_owners"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

// ListOwnersOptions configures a product owner listing call.
type ListOwnersOptions struct {
	Filter    string
	PageSize  int
	PageToken string
}

// CreateOwnerInput is the payload for creating a product owner.
type CreateOwnerInput struct {
	KnownAs   string `json:"known_as"`
	Title     string `json:"title,omitempty"`
	Firstname string `json:"firstname,omitempty"`
	Surname   string `json:"surname,omitempty"`
}

// CreateProductOwner creates a product owner.
func (c *Client) CreateProductOwner(ctx context.Context, input CreateOwnerInput) (ProductOwner, error) {
	var owner ProductOwner
	err := c.do(ctx, http.MethodPost, "/api/product_owners", input, &owner)
	return owner, err
}

// GetClientFile fetches the full client file for one product owner.
func (c *Client) GetClientFile(ctx context.Context, ownerID string) (ClientFile, error) {
	var file ClientFile
	err := c.do(ctx, http.MethodGet, "/api/product_owners/"+url.PathEscape(ownerID), nil, &file)
	return file, err
}

// ListProductOwners fetches one page of product owners.
func (c *Client) ListProductOwners(ctx context.Context, opts ListOwnersOptions) (OwnerPage, error) {
	values := url.Values{}
	if opts.Filter != "" {
		values.Set("filter", opts.Filter)
	}
	if opts.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(opts.PageSize))
	}
	if opts.PageToken != "" {
		values.Set("page_token", opts.PageToken)
	}
	path := "/api/product_owners"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var page OwnerPage
	err := c.do(ctx, http.MethodGet, path, nil, &page)
	return page, err
}

// SetProductOwnerStatus moves one product owner to the target status.
func (c *Client) SetProductOwnerStatus(ctx context.Context, ownerID, status string) (ProductOwner, error) {
	var owner ProductOwner
	path := "/api/product_owners/" + url.PathEscape(ownerID) + "/status"
	err := c.do(ctx, http.MethodPut, path, map[string]string{"status": status}, &owner)
	return owner, err
}

// SetSpecialRelationshipStatus moves one relationship to the target status.
func (c *Client) SetSpecialRelationshipStatus(ctx context.Context, relationshipID, status string) (SpecialRelationship, error) {
	var rel SpecialRelationship
	path := "/api/relationships/" + url.PathEscape(relationshipID) + "/status"
	err := c.do(ctx, http.MethodPut, path, map[string]string{"status": status}, &rel)
	return rel, err
}

// SetLegalDocumentStatus moves one legal document to the target status.
func (c *Client) SetLegalDocumentStatus(ctx context.Context, documentID, status string) (LegalDocument, error) {
	var doc LegalDocument
	path := "/api/documents/" + url.PathEscape(documentID) + "/status"
	err := c.do(ctx, http.MethodPut, path, map[string]string{"status": status}, &doc)
	return doc, err
}

// SetHealthRecordStatus moves one health record to the target status.
func (c *Client) SetHealthRecordStatus(ctx context.Context, recordID, status string) (HealthRecord, error) {
	var record HealthRecord
	path := "/api/health_records/" + url.PathEscape(recordID) + "/status"
	err := c.do(ctx, http.MethodPut, path, map[string]string{"status": status}, &record)
	return record, err
}

func (c *Client) do(ctx context.Context, method, path string, body any, target any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.grant != "" {
		req.Header.Set("Authorization", "Bearer "+c.grant)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call portal api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		apiErr.Code = payload.Code
		apiErr.Message = payload.Message
	}
	return apiErr
}
