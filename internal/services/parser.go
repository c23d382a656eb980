// Parser service implementation of [Parser]
//
// The parser ingests resumes via multipart upload and answers keyword
// searches over everything it has parsed.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/desertthunder/cvx/internal/models"
	"github.com/desertthunder/cvx/internal/search"
	"github.com/desertthunder/cvx/internal/shared"
)

const defaultParserURL = "http://localhost:8000"

// searchRequest is the wire form of a keyword search.
type searchRequest struct {
	Keywords []string `json:"keywords"`
	Mode     string   `json:"mode"`
}

// searchResponse wraps the result list returned by the parser.
type searchResponse struct {
	Results []models.SearchResult `json:"results"`
}

// serverDetail is the error payload the parser and CRM both emit on
// non-success statuses.
type serverDetail struct {
	Detail string `json:"detail"`
}

// ParserService implements [Parser] against the resume parser's JSON API.
type ParserService struct {
	baseURL    string
	httpClient *http.Client
}

// NewParserService creates a parser client. The base URL defaults to the
// local development server and the client carries a bounded timeout.
func NewParserService(baseURL string, client *http.Client) *ParserService {
	if baseURL == "" {
		baseURL = defaultParserURL
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	return &ParserService{
		baseURL:    baseURL,
		httpClient: client,
	}
}

func (p *ParserService) Name() string {
	return "Parser"
}

// UploadResume submits one file as a multipart payload and returns the
// parsed candidate record. Progress percentages are derived from how much
// of the encoded payload the transport has consumed.
func (p *ParserService) UploadResume(ctx context.Context, path string, onProgress func(pct int)) (*models.Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart payload: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write multipart payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart payload: %w", err)
	}

	endpoint := p.baseURL + "/api/resumes"
	body := newProgressReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()), onProgress)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.ContentLength = int64(buf.Len())

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, shared.ClassifyTransport(err, endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, rejectionError(resp)
	}

	var candidate models.Candidate
	if err := json.NewDecoder(resp.Body).Decode(&candidate); err != nil {
		return nil, fmt.Errorf("%w: unparsable response body: %v", shared.ErrServerRejected, err)
	}

	return &candidate, nil
}

// Search posts the ordered term list and match mode and returns the parsed
// result collection. An empty result list is a successful outcome.
func (p *ParserService) Search(ctx context.Context, terms []string, mode models.SearchMode) ([]models.SearchResult, error) {
	if !mode.Valid() {
		mode = models.MatchAny
	}

	payload := searchRequest{Keywords: terms, Mode: string(mode)}

	var response searchResponse
	if err := p.doRequest(ctx, http.MethodPost, "/api/search", payload, &response); err != nil {
		return nil, err
	}

	// Older backend builds omit matched_keywords; recover them from the
	// excerpt so selection views always show why a hit matched.
	for i := range response.Results {
		if len(response.Results[i].MatchedTerms) == 0 {
			response.Results[i].MatchedTerms = search.MatchedTerms(response.Results[i].Excerpt, terms)
		}
	}

	return response.Results, nil
}

// Health checks the parser's health endpoint.
func (p *ParserService) Health(ctx context.Context) error {
	return p.doRequest(ctx, http.MethodGet, "/health", nil, nil)
}

// doRequest performs a JSON request against the parser API.
func (p *ParserService) doRequest(ctx context.Context, method, endpoint string, body any, result any) error {
	apiURL := p.baseURL + endpoint

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

	resp, err := p.httpClient.Do(req)
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

// rejectionError classifies a non-success response, preferring the server's
// detail message over the bare status text.
func rejectionError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var detail serverDetail
	if err := json.Unmarshal(raw, &detail); err == nil && detail.Detail != "" {
		return fmt.Errorf("%w: %s", shared.ErrServerRejected, detail.Detail)
	}

	return fmt.Errorf("%w: %s", shared.ErrServerRejected, http.StatusText(resp.StatusCode))
}

// progressReader reports consumption of the request payload as percentages.
// It never reports 100; the caller owns the final tick once the response
// has been parsed.
type progressReader struct {
	r          io.Reader
	total      int64
	read       int64
	lastPct    int
	onProgress func(pct int)
}

func newProgressReader(r io.Reader, total int64, onProgress func(pct int)) *progressReader {
	return &progressReader{r: r, total: total, onProgress: onProgress, lastPct: -1}
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	pr.read += int64(n)

	if pr.onProgress != nil && pr.total > 0 {
		pct := int(pr.read * 100 / pr.total)
		if pct > 99 {
			pct = 99
		}
		if pct != pr.lastPct {
			pr.lastPct = pct
			pr.onProgress(pct)
		}
	}

	return n, err
}
