// Package main provides a CLI for summarizing text, files and web pages.
// Usage: genai-summarize [--length short|medium|long] [--output text|json] <command> [args]
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"genai-summarizer/internal/config"
	"genai-summarizer/internal/domain/entity"
	"genai-summarizer/internal/infra/adapter/persistence/memory"
	"genai-summarizer/internal/infra/extractor"
	"genai-summarizer/internal/infra/summarizer"
	"genai-summarizer/internal/observability/logging"
	authservice "genai-summarizer/internal/service/auth"
	sumUC "genai-summarizer/internal/usecase/summary"
)

// runtime is what the commands operate on.
type runtime struct {
	Service *sumUC.Service
	Tokens  *authservice.TokenService
	Close   func() error
}

// setupFunc builds the runtime for one invocation.
type setupFunc func(ctx context.Context) (*runtime, error)

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr, defaultSetup)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

// defaultSetup wires the pipeline from the environment, the same way the API server does.
func defaultSetup(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logging.NewTextLogger(cfg.LogLevel, os.Stderr))

	engine, err := summarizer.New(ctx, cfg.Summarizer)
	if err != nil {
		return nil, err
	}
	svc := &sumUC.Service{
		Extractor:  extractor.New(extractor.NewFetcher(extractor.FetchConfigFrom(cfg.Extractor)), cfg.Extractor.Mode),
		Summarizer: engine,
		Repo:       memory.NewSummaryRepo(),
		Limits:     sumUC.LimitsFromConfig(cfg.Limits),
	}
	if cfg.Auth.EphemeralSecret {
		slog.Warn("tokens issued with an ephemeral secret are rejected by servers using another secret")
	}
	return &runtime{
		Service: svc,
		Tokens:  authservice.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Close:   engine.Close,
	}, nil
}

func newApp(stdin io.Reader, stdout, stderr io.Writer, setup setupFunc) *cli.App {
	a := &actions{setup: setup}
	return &cli.App{
		Name:      "genai-summarize",
		Usage:     "summarize text, documents and web pages with a language model",
		Version:   "1.0.0",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "length",
				Aliases: []string{"l"},
				Value:   string(entity.DefaultTier),
				Usage:   "summary length: short, medium or long",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "text",
				Usage:   "output format: text or json",
			},
			&cli.StringFlag{
				Name:    "user",
				Aliases: []string{"u"},
				Value:   "cli",
				Usage:   "owner id recorded on the summaries",
				EnvVars: []string{"SUMMARIZER_USER"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "text",
				Usage:     "summarize text given as arguments, or read from stdin",
				ArgsUsage: "[text...]",
				Action:    a.text,
			},
			{
				Name:      "file",
				Usage:     "summarize a txt, pdf or docx file",
				ArgsUsage: "<path>",
				Action:    a.file,
			},
			{
				Name:      "url",
				Usage:     "fetch and summarize a web page",
				ArgsUsage: "<url>",
				Action:    a.url,
			},
			{
				Name:      "batch",
				Usage:     "summarize each non-empty line of a file, or of stdin",
				ArgsUsage: "[path]",
				Action:    a.batch,
			},
			{
				Name:      "token",
				Usage:     "issue a bearer token for the API",
				ArgsUsage: "<user-id>",
				Action:    a.token,
			},
		},
	}
}

// formatError renders err the way the API reports it.
func formatError(err error) string {
	return fmt.Sprintf("Error [%s]: %s", entity.KindOf(err).Code(), entity.PublicMessage(err))
}
