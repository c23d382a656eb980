package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/cvx/internal/formatter"
	"github.com/desertthunder/cvx/internal/models"
	"github.com/desertthunder/cvx/internal/search"
	"github.com/desertthunder/cvx/internal/shared"
	"github.com/urfave/cli/v3"
)

// SearchRun runs a one-shot keyword search against the parser backend.
func (r *Runner) SearchRun(ctx context.Context, cmd *cli.Command) error {
	keywords := cmd.StringSlice("keyword")
	modeFlag := cmd.String("mode")
	useJSON := cmd.Bool("json")
	exportFormat := cmd.String("export")
	outputPath := cmd.String("output")

	mode, err := parseMode(modeFlag)
	if err != nil {
		return err
	}

	terms := search.NewTermSet()
	for _, keyword := range keywords {
		terms.Add(keyword)
	}
	if terms.Len() == 0 {
		return fmt.Errorf("%w: at least one non-blank keyword is required", shared.ErrEmptyQuery)
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := r.requireSession(db); err != nil {
		return err
	}

	r.logger.Info("searching candidates", "keywords", terms.Terms(), "mode", mode)

	results, err := r.parser.Search(ctx, terms.Terms(), mode)
	if err != nil {
		return err
	}

	export := &models.SelectionExport{Terms: terms.Terms(), Mode: string(mode), Results: results}

	if exportFormat != "" {
		if err := r.exportResults(export, exportFormat, outputPath); err != nil {
			return err
		}
	}

	if useJSON {
		return r.writeJSON(export, true)
	}

	r.writePlainHeader(fmt.Sprintf("Results for: %s", strings.Join(terms.Terms(), ", ")))
	if len(results) == 0 {
		r.writePlain("No candidates matched.\n")
		return nil
	}

	for i, result := range results {
		r.writePlain("%d. %s - %s (%s)\n", i+1,
			models.Fallback(result.Name), models.Fallback(result.Email), models.Fallback(result.JobTitle))
		if len(result.MatchedTerms) > 0 {
			r.writePlain("   matched: %s\n", strings.Join(result.MatchedTerms, ", "))
		}
		if result.Excerpt != "" {
			excerpt := search.Highlight(result.Excerpt, terms.Terms(), func(s string) string {
				return "«" + s + "»"
			})
			r.writePlain("   %s\n", excerpt)
		}
	}
	r.writePlain("\n%d candidates\n", len(results))

	return nil
}

// exportResults writes search results to disk in the requested format.
func (r *Runner) exportResults(export *models.SelectionExport, format, outputPath string) error {
	switch format {
	case "csv":
		result, err := formatter.WriteCSVExport(export, outputPath)
		if err != nil {
			return err
		}
		r.writePlain("✓ Results exported to %s\n", result.ResultsFile)
		r.writePlain("✓ Query metadata exported to %s\n", result.QueryFile)
	case "markdown", "md":
		result, err := formatter.WriteMarkdownExport(export, outputPath)
		if err != nil {
			return err
		}
		r.writePlain("✓ Results exported to %s\n", result.Files[len(result.Files)-1])
	case "text", "txt":
		path, err := formatter.WriteTextExport(export, outputPath)
		if err != nil {
			return err
		}
		r.writePlain("✓ Results exported to %s\n", path)
	default:
		return fmt.Errorf("%w: unknown export format %q (csv, markdown, text)", shared.ErrInvalidFlag, format)
	}
	return nil
}

// parseMode maps the --mode flag onto a wire search mode.
func parseMode(flag string) (models.SearchMode, error) {
	switch flag {
	case "any", "or", "":
		return models.MatchAny, nil
	case "all", "and":
		return models.MatchAll, nil
	default:
		return "", fmt.Errorf("%w: mode must be 'any' or 'all', got %q", shared.ErrInvalidFlag, flag)
	}
}
