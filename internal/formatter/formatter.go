// package formatter provides functions to export candidate search results to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/cvx/internal/models"
	"github.com/desertthunder/cvx/internal/shared"
)

// ExportToCSV converts a SelectionExport to CSV format with columns: Contact ID, Name, Email, Job Title, Matched Keywords, Excerpt
func ExportToCSV(export *models.SelectionExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Contact ID", "Name", "Email", "Job Title", "Matched Keywords", "Excerpt"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, result := range export.Results {
		record := []string{
			result.ContactID,
			models.Fallback(result.Name),
			models.Fallback(result.Email),
			models.Fallback(result.JobTitle),
			strings.Join(result.MatchedTerms, "; "),
			result.Excerpt,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a SelectionExport to Markdown format
func ExportToMarkdown(export *models.SelectionExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Search: %s\n\n", strings.Join(export.Terms, ", ")))

	if export.Mode != "" {
		buf.WriteString(fmt.Sprintf("**Mode**: %s\n", export.Mode))
	}
	buf.WriteString(fmt.Sprintf("**Results**: %d\n\n", len(export.Results)))

	buf.WriteString("## Candidates\n\n")
	for i, result := range export.Results {
		titlePart := ""
		if result.JobTitle != "" {
			titlePart = fmt.Sprintf(" (%s)", result.JobTitle)
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s - %s\n", i+1, models.Fallback(result.Name), titlePart, models.Fallback(result.Email)))
		if result.Excerpt != "" {
			buf.WriteString(fmt.Sprintf("   > %s\n", result.Excerpt))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a SelectionExport to plain text format
func ExportToText(export *models.SelectionExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Search: %s\n", strings.Join(export.Terms, ", ")))
	if export.Mode != "" {
		buf.WriteString(fmt.Sprintf("Mode: %s\n", export.Mode))
	}
	buf.WriteString(fmt.Sprintf("Results: %d\n\n", len(export.Results)))

	for i, result := range export.Results {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, models.Fallback(result.Name), models.Fallback(result.Email)))
	}

	return buf.Bytes(), nil
}

// ToQueryJSON generates a JSON representation of the query that produced an
// export (without the result rows)
func ToQueryJSON(export *models.SelectionExport) ([]byte, error) {
	query := struct {
		Terms []string `json:"keywords"`
		Mode  string   `json:"mode"`
		Count int      `json:"result_count"`
	}{Terms: export.Terms, Mode: export.Mode, Count: len(export.Results)}

	return shared.MarshalJSON(query, true)
}

// ExportToJSON converts a SelectionExport to indented JSON
func ExportToJSON(export *models.SelectionExport) ([]byte, error) {
	return shared.MarshalJSON(export, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	ResultsFile string
	QueryFile   string
}

// WriteCSVExport exports search results to CSV format with an accompanying query JSON file.
//
// Defaults to "search" as the base filename & creates {base}_results.csv and {base}_query.json
func WriteCSVExport(export *models.SelectionExport, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = "search"
	}

	csvData, err := ExportToCSV(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	resultsFile := baseFilepath + "_results.csv"
	if err := os.WriteFile(resultsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	queryJSON, err := ToQueryJSON(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query JSON: %w", err)
	}

	queryFile := baseFilepath + "_query.json"
	if err := os.WriteFile(queryFile, queryJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write query file: %w", err)
	}

	return &CSVExportResult{
		ResultsFile: resultsFile,
		QueryFile:   queryFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory string
	Files     []string
}

// WriteMarkdownExport exports search results to Markdown format in a dedicated directory.
//
// Directory name defaults to "search". Creates {dir}/README.md.
func WriteMarkdownExport(export *models.SelectionExport, outputDir string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = "search"
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	mdData, err := ExportToMarkdown(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteTextExport exports search results to plain text format.
//
// Defaults to search_results.txt as the filename.
func WriteTextExport(export *models.SelectionExport, filepath string) (string, error) {
	if filepath == "" {
		filepath = "search_results.txt"
	}

	textData, err := ExportToText(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
