package formatter

import (
	"strings"
	"testing"

	"github.com/desertthunder/cvx/internal/models"
	th "github.com/desertthunder/cvx/internal/testing"
)

func sampleExport() *models.SelectionExport {
	return &models.SelectionExport{
		Terms: []string{"golang", "postgres"},
		Mode:  "and",
		Results: []models.SearchResult{
			{
				ContactID:    "cand_001",
				Name:         "Jane Doe",
				Email:        "jane@example.com",
				JobTitle:     "Backend Engineer",
				Excerpt:      "...built golang services backed by postgres...",
				MatchedTerms: []string{"golang", "postgres"},
			},
			{
				ContactID:    "cand_002",
				Name:         "John Smith",
				Email:        "",
				JobTitle:     "",
				Excerpt:      "...migrated golang workloads...",
				MatchedTerms: []string{"golang"},
			},
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleExport())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Contact ID,Name,Email,Job Title,Matched Keywords,Excerpt") {
			t.Errorf("CSV missing headers, got: %s", output)
		}

		if !strings.Contains(output, "cand_001") {
			t.Errorf("CSV missing first contact ID")
		}
		if !strings.Contains(output, "Jane Doe") {
			t.Errorf("CSV missing first candidate name")
		}
		if !strings.Contains(output, "golang; postgres") {
			t.Errorf("CSV missing matched keywords")
		}
	})

	t.Run("ExportToCSVFallbacks", func(t *testing.T) {
		data, err := ExportToCSV(sampleExport())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
		}

		if !strings.Contains(lines[2], "N/A") {
			t.Errorf("expected N/A fallback for missing email and job title, got: %s", lines[2])
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleExport())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "# Search: golang, postgres") {
			t.Errorf("Markdown missing title")
		}
		if !strings.Contains(output, "**Mode**: and") {
			t.Errorf("Markdown missing mode")
		}
		if !strings.Contains(output, "**Results**: 2") {
			t.Errorf("Markdown missing result count")
		}

		if !strings.Contains(output, "## Candidates") {
			t.Errorf("Markdown missing candidates section")
		}
		if !strings.Contains(output, "1. Jane Doe (Backend Engineer) - jane@example.com") {
			t.Errorf("Markdown missing first candidate, got: %s", output)
		}
		if !strings.Contains(output, "2. John Smith - N/A") {
			t.Errorf("Markdown missing second candidate (no title, no email)")
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleExport())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Search: golang, postgres") {
			t.Errorf("Text missing search terms")
		}
		if !strings.Contains(output, "Mode: and") {
			t.Errorf("Text missing mode")
		}
		if !strings.Contains(output, "Results: 2") {
			t.Errorf("Text missing result count")
		}

		if !strings.Contains(output, "1. Jane Doe - jane@example.com") {
			t.Errorf("Text missing first candidate")
		}
		if !strings.Contains(output, "2. John Smith - N/A") {
			t.Errorf("Text missing second candidate")
		}
	})

	t.Run("ToQueryJSON", func(t *testing.T) {
		data, err := ToQueryJSON(sampleExport())
		if err != nil {
			t.Fatalf("ToQueryJSON failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, `"golang"`) {
			t.Errorf("JSON missing keywords")
		}
		if !strings.Contains(output, `"mode": "and"`) && !strings.Contains(output, `"mode":"and"`) {
			t.Errorf("JSON missing mode")
		}
		if !strings.Contains(output, `"result_count": 2`) && !strings.Contains(output, `"result_count":2`) {
			t.Errorf("JSON missing result count")
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(sampleExport())
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, `"cand_001"`) {
			t.Errorf("JSON missing first contact ID")
		}
		if !strings.Contains(output, `"Jane Doe"`) {
			t.Errorf("JSON missing first candidate name")
		}
		if !strings.Contains(output, `"matched_keywords"`) {
			t.Errorf("JSON missing matched keywords field")
		}
	})
}

func TestWriters(t *testing.T) {
	t.Run("WriteCSVExport", func(t *testing.T) {
		export := sampleExport()

		t.Run("WithDefaultPath", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			result, err := WriteCSVExport(export, "")
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}

			if result.ResultsFile != "search_results.csv" {
				t.Errorf("Expected results file 'search_results.csv', got '%s'", result.ResultsFile)
			}
			if result.QueryFile != "search_query.json" {
				t.Errorf("Expected query file 'search_query.json', got '%s'", result.QueryFile)
			}

			th.AssertFileExists(t, result.ResultsFile)
			th.AssertFileExists(t, result.QueryFile)

			csvContent := th.MustReadFile(t, result.ResultsFile)
			if !strings.Contains(csvContent, "Contact ID,Name,Email,Job Title,Matched Keywords,Excerpt") {
				t.Errorf("CSV missing headers")
			}
			if !strings.Contains(csvContent, "cand_001") || !strings.Contains(csvContent, "Jane Doe") {
				t.Errorf("CSV missing candidate data")
			}
		})

		t.Run("WithCustomPath", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			result, err := WriteCSVExport(export, "backend_q3")
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}

			if result.ResultsFile != "backend_q3_results.csv" {
				t.Errorf("Expected results file 'backend_q3_results.csv', got '%s'", result.ResultsFile)
			}

			th.AssertFileExists(t, result.ResultsFile)
			th.AssertFileExists(t, result.QueryFile)
		})
	})

	t.Run("WriteMarkdownExport", func(t *testing.T) {
		export := sampleExport()

		tempDir := t.TempDir()
		originalDir := th.MustGetwd(t)
		th.MustChdir(t, tempDir)
		defer th.MustChdir(t, originalDir)

		result, err := WriteMarkdownExport(export, "backend_q3")
		if err != nil {
			t.Fatalf("WriteMarkdownExport failed: %v", err)
		}

		if result.Directory != "backend_q3" {
			t.Errorf("Expected directory 'backend_q3', got '%s'", result.Directory)
		}

		th.AssertDirExists(t, result.Directory)
		th.AssertFileExists(t, "backend_q3/README.md")

		mdContent := th.MustReadFile(t, "backend_q3/README.md")
		if !strings.Contains(mdContent, "# Search: golang, postgres") {
			t.Errorf("Markdown missing title")
		}
	})

	t.Run("WriteTextExport", func(t *testing.T) {
		export := sampleExport()

		tempDir := t.TempDir()
		originalDir := th.MustGetwd(t)
		th.MustChdir(t, tempDir)
		defer th.MustChdir(t, originalDir)

		path, err := WriteTextExport(export, "")
		if err != nil {
			t.Fatalf("WriteTextExport failed: %v", err)
		}

		if path != "search_results.txt" {
			t.Errorf("Expected path 'search_results.txt', got '%s'", path)
		}

		th.AssertFileExists(t, path)
	})
}
