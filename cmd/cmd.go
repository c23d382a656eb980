// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// uploadCommand handles resume upload operations
func uploadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "upload",
		Aliases: []string{"up"},
		Usage:   "Upload resume files for parsing",
		Arguments: []cli.Argument{
			&cli.StringArgs{
				Name: "files",
				Min:  0,
				Max:  -1,
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output batch summary as JSON",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Skip caching parsed candidates locally",
			},
		},
		Action: r.UploadRun,
	}
}

// searchCommand handles candidate search operations
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search parsed candidates by keyword",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "keyword",
				Aliases:  []string{"k"},
				Usage:    "Search keyword (repeatable)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "Match mode: any or all",
				Value: "any",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.StringFlag{
				Name:  "export",
				Usage: "Export results (csv, markdown, text)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Export base path or directory",
			},
		},
		Action: r.SearchRun,
	}
}

// listsCommand handles CRM contact list operations
func listsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "lists",
		Aliases: []string{"ls"},
		Usage:   "CRM contact list operations",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Fetch and display the CRM list catalog (first page)",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of lists to return",
						Value: 100,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ListsShow,
			},
			{
				Name:  "create",
				Usage: "Create a new CRM contact list",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Action: r.ListsCreate,
			},
			{
				Name:  "sync",
				Usage: "Attach contacts to a CRM list, creating it when --name is given",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "list-id",
						Usage: "Existing list to attach to",
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Name for a new list",
					},
					&cli.StringSliceFlag{
						Name:     "contact",
						Usage:    "Contact ID to attach (repeatable)",
						Required: true,
					},
				},
				Action: r.ListsSync,
			},
			{
				Name:  "history",
				Usage: "Show recorded sync operations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "status",
						Usage: "Filter by status (succeeded, partial, failed)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ListsHistory,
			},
		},
	}
}

// apiCommand handles direct API calls to the parser backend
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the parser backend",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the parser backend, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
			{
				Name:   "health",
				Usage:  "Check parser backend health",
				Action: r.APIHealth,
			},
		},
	}
}

// setupCommand handles setup operations for the database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles the local session gate
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the operator session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Start a session with the configured credentials",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "username",
						Aliases: []string{"u"},
						Usage:   "Operator username",
					},
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "Operator password",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "End the current session",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show session state and parser backend health",
				Action: r.AuthStatus,
			},
		},
	}
}

// cacheCommand inspects locally cached candidates and lists
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect locally cached candidates and CRM lists",
		Commands: []*cli.Command{
			{
				Name:  "candidates",
				Usage: "Show cached parsed candidates",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CacheCandidates,
			},
			{
				Name:  "lists",
				Usage: "Show the cached CRM list catalog",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CacheLists,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for the interactive workflow.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive upload/search/sync workflow",
		Arguments: []cli.Argument{
			&cli.StringArgs{
				Name: "files",
				Min:  0,
				Max:  -1,
			},
		},
		Action: r.TUI,
	}
}
