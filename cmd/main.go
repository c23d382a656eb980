package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/desertthunder/cvx/internal/services"
	"github.com/desertthunder/cvx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	parserClient := &http.Client{Timeout: config.Parser.Timeout()}
	parserService := services.NewParserService(config.Parser.BaseURL, parserClient)
	crmService := services.NewCRMService(config.CRM.BaseURL, config.CRM.APIToken, nil)
	apiService := services.NewAPIService(config.Parser.BaseURL, parserClient)

	runner := NewRunner(RunnerOpts{
		Config: config,
		Parser: parserService,
		CRM:    crmService,
		API:    apiService,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "cvx",
		Usage:    "Upload resumes, search candidates & sync selections to CRM lists",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
