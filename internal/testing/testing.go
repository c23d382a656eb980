// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/cvx/internal/models"
)

// MockParser is a test double for the services.Parser interface
type MockParser struct {
	UploadFunc func(ctx context.Context, path string, onProgress func(pct int)) (*models.Candidate, error)
	SearchFunc func(ctx context.Context, terms []string, mode models.SearchMode) ([]models.SearchResult, error)
}

func (m *MockParser) UploadResume(ctx context.Context, path string, onProgress func(pct int)) (*models.Candidate, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, path, onProgress)
	}
	return &models.Candidate{RemoteID: "cand_mock"}, nil
}

func (m *MockParser) Search(ctx context.Context, terms []string, mode models.SearchMode) ([]models.SearchResult, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, terms, mode)
	}
	return []models.SearchResult{}, nil
}

func (m *MockParser) Health(ctx context.Context) error { return nil }
func (m *MockParser) Name() string                     { return "mock parser" }

// MockCRM is a test double for the services.CRM interface
type MockCRM struct {
	ListsFunc      func(ctx context.Context, limit int) ([]models.ExternalList, error)
	CreateListFunc func(ctx context.Context, name string) (*models.ExternalList, error)
	AttachFunc     func(ctx context.Context, listID string, contactIDs []string) (int, error)
}

func (m *MockCRM) Lists(ctx context.Context, limit int) ([]models.ExternalList, error) {
	if m.ListsFunc != nil {
		return m.ListsFunc(ctx, limit)
	}
	return []models.ExternalList{}, nil
}

func (m *MockCRM) CreateList(ctx context.Context, name string) (*models.ExternalList, error) {
	if m.CreateListFunc != nil {
		return m.CreateListFunc(ctx, name)
	}
	return &models.ExternalList{ID: "list_mock", Name: name}, nil
}

func (m *MockCRM) AttachContacts(ctx context.Context, listID string, contactIDs []string) (int, error) {
	if m.AttachFunc != nil {
		return m.AttachFunc(ctx, listID, contactIDs)
	}
	return len(contactIDs), nil
}

func (m *MockCRM) Name() string { return "mock crm" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
