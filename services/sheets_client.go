package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/houseofcoffee/US-Chamber/directory"
	"github.com/houseofcoffee/US-Chamber/models"
	"github.com/houseofcoffee/US-Chamber/pkg/monitoring"
)

// SheetsClient is the contract with the spreadsheet-backed persistence
// endpoint: GET returns every raw member record, POST appends one. The
// endpoint defines no update or delete verbs.
type SheetsClient interface {
	FetchMembers(ctx context.Context) ([]directory.RawMember, error)
	AddMember(ctx context.Context, form models.MemberFormData) (models.CreateMemberResponse, error)
}

// HTTPSheetsClient talks to the live endpoint over HTTP.
type HTTPSheetsClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPSheetsClient creates a client for the given endpoint URL. The
// timeout bounds every call; a hung request can no longer wedge the caller's
// loading state forever.
func NewHTTPSheetsClient(endpoint string, timeout time.Duration) *HTTPSheetsClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPSheetsClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchMembers retrieves the full raw member list.
func (c *HTTPSheetsClient) FetchMembers(ctx context.Context) ([]directory.RawMember, error) {
	start := time.Now()
	raw, err := c.fetchMembers(ctx)
	monitoring.RecordExternalCall(ctx, "sheets", "fetch_members", time.Since(start), err)
	return raw, err
}

func (c *HTTPSheetsClient) fetchMembers(ctx context.Context) ([]directory.RawMember, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create fetch request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch members: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch members failed with status %d: %s", resp.StatusCode, string(body))
	}

	var raw []directory.RawMember
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse members response: %w", err)
	}
	return raw, nil
}

// AddMember posts one new member for the endpoint to assign an id and
// persist. The response is not trusted to contain the full record; callers
// reload the collection afterwards.
func (c *HTTPSheetsClient) AddMember(ctx context.Context, form models.MemberFormData) (models.CreateMemberResponse, error) {
	start := time.Now()
	result, err := c.addMember(ctx, form)
	monitoring.RecordExternalCall(ctx, "sheets", "add_member", time.Since(start), err)
	return result, err
}

func (c *HTTPSheetsClient) addMember(ctx context.Context, form models.MemberFormData) (models.CreateMemberResponse, error) {
	body, err := json.Marshal(form)
	if err != nil {
		return models.CreateMemberResponse{}, fmt.Errorf("failed to marshal member: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return models.CreateMemberResponse{}, fmt.Errorf("failed to create add request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.CreateMemberResponse{}, fmt.Errorf("failed to add member: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return models.CreateMemberResponse{}, fmt.Errorf("add member failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var result models.CreateMemberResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.CreateMemberResponse{}, fmt.Errorf("failed to parse add member response: %w", err)
	}
	if !result.Success {
		return result, fmt.Errorf("endpoint rejected the new member")
	}
	return result, nil
}
