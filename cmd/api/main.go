package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"genai-summarizer/internal/config"
	hhttp "genai-summarizer/internal/handler/http"
	"genai-summarizer/internal/handler/http/summary"
	"genai-summarizer/internal/infra/adapter/persistence/memory"
	"genai-summarizer/internal/infra/extractor"
	"genai-summarizer/internal/infra/summarizer"
	"genai-summarizer/internal/observability/logging"
	"genai-summarizer/internal/observability/tracing"
	authservice "genai-summarizer/internal/service/auth"
	sumUC "genai-summarizer/internal/usecase/summary"

	_ "genai-summarizer/docs" // swagger docs
)

// @title           GenAI Summarizer API
// @version         1.0
// @description     テキスト・ファイル・URL を生成AIで要約する REST API
// @description     要約結果はユーザーごとに保存され、履歴の参照と削除ができます。

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT トークンによる認証。ヘッダーに "Bearer {token}" 形式で指定してください。省略した場合はゲストとして扱われます。

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.NewLogger(cfg.LogLevel, os.Stdout)
	slog.SetDefault(logger)

	shutdownTracer := tracing.InitTracer()
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("failed to shut down tracer", slog.Any("error", err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	components, err := setupServer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := components.Engine.Close(); err != nil {
			logger.Error("failed to close summarizer", slog.Any("error", err))
		}
	}()

	return runServer(ctx, cfg.Server, logger, components.Handler)
}

// ServerComponents holds what the server needs to run and clean up.
type ServerComponents struct {
	Handler http.Handler
	Engine  *summarizer.Engine
}

// setupServer wires the pipeline and returns the HTTP handler.
func setupServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*ServerComponents, error) {
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
	tokens := authservice.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	logger.Info("CORS enabled", slog.Any("allowed_origins", cfg.Server.AllowedOrigins))
	if !engine.Configured() {
		logger.Warn("summarizer is not configured; summarize requests will fail",
			slog.String("provider", engine.Provider()))
	}

	handler := hhttp.NewRouter(hhttp.RouterConfig{
		Service:        svc,
		Tokens:         tokens,
		Summarizer:     engine,
		Logger:         logger,
		RequestTimeout: cfg.Server.RequestTimeout,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Version:        getVersion(),
	})
	return &ServerComponents{Handler: handler, Engine: engine}, nil
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return summary.Version
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(ctx context.Context, cfg config.ServerConfig, logger *slog.Logger, handler http.Handler) error {
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: 10 * time.Second, // Slowloris 対策
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", getVersion()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-quit:
	}
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
	return nil
}
