package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/laguz/internal"
	"github.com/starford/laguz/internal/chat"
	"github.com/starford/laguz/internal/mcpserver"
	"github.com/starford/laguz/internal/settings"
)

// loadSettings opens the settings store and applies the --vault
// override, completing first-run setup when a vault is given.
func loadSettings(cmd *cli.Command) (*settings.Store, error) {
	st, err := settings.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if vault := cmd.String("vault"); vault != "" {
		if err := st.CompleteFirstRun(vault); err != nil {
			return nil, fmt.Errorf("failed to set vault path: %w", err)
		}
	}
	return st, nil
}

// cliLogger keeps interactive output clean: structured logs go to
// stderr and only warnings and up are shown.
func cliLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)
	return logger
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithSettings(st)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func runChat(ctx context.Context, cmd *cli.Command) error {
	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	svc, closeDB, err := internal.BuildService(st, cliLogger())
	if err != nil {
		return err
	}
	defer closeDB()
	return chat.Run(ctx, svc)
}

func runWrite(ctx context.Context, cmd *cli.Command) error {
	content := cmd.Args().First()
	if content == "" {
		return fmt.Errorf("usage: laguz write \"entry text\" [--date YYYY-MM-DD]")
	}

	var date time.Time
	if raw := cmd.String("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return fmt.Errorf("invalid date %q: want YYYY-MM-DD", raw)
		}
		date = parsed
	}

	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	svc, closeDB, err := internal.BuildService(st, cliLogger())
	if err != nil {
		return err
	}
	defer closeDB()

	result, err := svc.WriteEntry(content, date)
	if err != nil {
		return err
	}
	fmt.Printf("Journal entry saved to %s\n", result.Path)
	return nil
}

func runAnalyze(ctx context.Context, cmd *cli.Command) error {
	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	svc, closeDB, err := internal.BuildService(st, cliLogger())
	if err != nil {
		return err
	}
	defer closeDB()

	profile, err := svc.ReanalyzeStyle()
	if err != nil {
		return err
	}
	out, _ := json.MarshalIndent(profile, "", "  ")
	fmt.Println(string(out))
	return nil
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	svc, closeDB, err := internal.BuildService(st, cliLogger())
	if err != nil {
		return err
	}
	defer closeDB()
	return mcpserver.New(svc).ServeStdio()
}

func main() {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to the settings file",
			DefaultText: "~/.laguz/config.json",
			Value:       settings.DefaultPath(),
			Sources:     cli.EnvVars("LAGUZ_CONFIG_FILE"),
		},
		&cli.StringFlag{
			Name:    "vault",
			Usage:   "Vault directory (persisted into settings on first use)",
			Sources: cli.EnvVars("LAGUZ_VAULT"),
		},
	}

	cmd := &cli.Command{
		Name:   "laguz",
		Usage:  "Local journaling assistant that chats about your day and writes Obsidian daily notes in your style",
		Flags:  flags,
		Action: runServe,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API, vault watcher, and reminder scheduler",
				Action: runServe,
			},
			{
				Name:   "chat",
				Usage:  "Hold a journaling conversation in the terminal",
				Action: runChat,
			},
			{
				Name:  "write",
				Usage: "Append text to a daily note without a conversation",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "date",
						Usage: "Target date as YYYY-MM-DD (defaults to today)",
					},
				},
				Action: runWrite,
			},
			{
				Name:   "analyze",
				Usage:  "Re-analyze the vault and print the writing style profile",
				Action: runAnalyze,
			},
			{
				Name:   "mcp",
				Usage:  "Serve journal tools over the Model Context Protocol on stdio",
				Action: runMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
