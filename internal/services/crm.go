// CRM implementation of [CRM]
//
// Contact-list catalog, list creation, and membership attachment against
// the CRM's v3 JSON API. Requests authenticate with a static bearer token
// injected by the [oauth2] transport.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/desertthunder/cvx/internal/models"
	"github.com/desertthunder/cvx/internal/shared"
	"golang.org/x/oauth2"
)

const (
	defaultCRMURL = "http://localhost:9000"

	// DefaultListPageSize caps the catalog fetch; the client reads the
	// first page only.
	DefaultListPageSize = 100
)

// listPayload is the wire form of one catalog entry.
type listPayload struct {
	ListID string `json:"list_id"`
	Name   string `json:"name"`
}

// listCatalogResponse is the catalog page returned by the CRM. The paging
// cursor is decoded but deliberately unused.
type listCatalogResponse struct {
	Lists  []listPayload `json:"lists"`
	Paging *struct {
		After string `json:"after"`
	} `json:"paging"`
}

type createListRequest struct {
	Name           string `json:"name"`
	ProcessingType string `json:"processing_type"`
}

type createListResponse struct {
	ListID string `json:"list_id"`
	Name   string `json:"name"`
}

type attachRequest struct {
	ContactIDs []string `json:"contact_ids"`
}

type attachResponse struct {
	Added int `json:"added"`
}

// CRMService implements [CRM] over HTTP.
type CRMService struct {
	baseURL    string
	httpClient *http.Client
}

// NewCRMService creates a CRM client authenticated with the given API
// token. A nil client gets an [oauth2.NewClient] transport wrapping
// [oauth2.StaticTokenSource] with a bounded timeout.
func NewCRMService(baseURL, apiToken string, client *http.Client) *CRMService {
	if baseURL == "" {
		baseURL = defaultCRMURL
	}
	if client == nil {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiToken})
		client = oauth2.NewClient(context.Background(), src)
		client.Timeout = 10 * time.Second
	}

	return &CRMService{
		baseURL:    baseURL,
		httpClient: client,
	}
}

func (c *CRMService) Name() string {
	return "CRM"
}

// Lists retrieves the first page of the contact-list catalog.
func (c *CRMService) Lists(ctx context.Context, limit int) ([]models.ExternalList, error) {
	if limit <= 0 || limit > DefaultListPageSize {
		limit = DefaultListPageSize
	}

	endpoint := "/v3/lists?" + url.Values{"count": []string{strconv.Itoa(limit)}}.Encode()

	var response listCatalogResponse
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, err
	}

	lists := make([]models.ExternalList, 0, len(response.Lists))
	for _, entry := range response.Lists {
		lists = append(lists, models.ExternalList{ID: entry.ListID, Name: entry.Name})
	}

	return lists, nil
}

// CreateList creates a manually curated list and returns it with the
// server-assigned identifier.
func (c *CRMService) CreateList(ctx context.Context, name string) (*models.ExternalList, error) {
	payload := createListRequest{Name: name, ProcessingType: "MANUAL"}

	var response createListResponse
	if err := c.doRequest(ctx, http.MethodPost, "/v3/lists", payload, &response); err != nil {
		return nil, err
	}

	created := models.ExternalList{ID: response.ListID, Name: response.Name}
	if created.Name == "" {
		created.Name = name
	}

	return &created, nil
}

// AttachContacts adds contacts to a list and returns the count the backend
// reports as actually added.
func (c *CRMService) AttachContacts(ctx context.Context, listID string, contactIDs []string) (int, error) {
	endpoint := fmt.Sprintf("/v3/lists/%s/contacts/add", url.PathEscape(listID))
	payload := attachRequest{ContactIDs: contactIDs}

	var response attachResponse
	if err := c.doRequest(ctx, http.MethodPost, endpoint, payload, &response); err != nil {
		return 0, err
	}

	return response.Added, nil
}

// doRequest performs an authenticated JSON request against the CRM API.
func (c *CRMService) doRequest(ctx context.Context, method, endpoint string, body any, result any) error {
	apiURL := c.baseURL + endpoint

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return shared.ClassifyTransport(err, apiURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return rejectionError(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: unparsable response body: %v", shared.ErrServerRejected, err)
		}
	}

	return nil
}
