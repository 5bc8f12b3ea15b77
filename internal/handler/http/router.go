package http

import (
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"genai-summarizer/internal/handler/http/auth"
	"genai-summarizer/internal/handler/http/middleware"
	"genai-summarizer/internal/handler/http/requestid"
	"genai-summarizer/internal/handler/http/summary"
	"genai-summarizer/internal/observability/tracing"
	authservice "genai-summarizer/internal/service/auth"
	sumUC "genai-summarizer/internal/usecase/summary"
)

// bodyOverhead is added to the file size limit for the global body cap.
const bodyOverhead = 1 << 20

// RouterConfig carries everything the route table depends on.
type RouterConfig struct {
	Service        *sumUC.Service
	Tokens         *authservice.TokenService
	Summarizer     SummarizerStatus
	Logger         *slog.Logger
	RequestTimeout time.Duration
	AllowedOrigins []string
	Version        string
}

// NewRouter returns the API handler with the full middleware chain:
// CORS → request id → recover → logging → metrics → tracing → body limit →
// timeout → owner resolution.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	// ヘルスチェック・監視（認証不要）
	mux.Handle("GET /health", &HealthHandler{Summarizer: cfg.Summarizer, Store: cfg.Service.Repo, Version: cfg.Version})
	mux.Handle("GET /ready", &ReadyHandler{Store: cfg.Service.Repo})
	mux.Handle("GET /live", &LiveHandler{})
	mux.Handle("GET /metrics", MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	mux.Handle("POST /auth/token", auth.TokenHandler(cfg.Tokens))
	mux.Handle("POST /auth/guest", auth.GuestHandler(cfg.Tokens))
	mux.Handle("POST /api/login", auth.LoginHandler(cfg.Tokens))
	mux.Handle("GET /api/guest-token", auth.GuestTokenHandler(cfg.Tokens))

	summary.Register(mux, cfg.Service)

	maxBody := cfg.Service.Limits.MaxFileSize + bodyOverhead
	return Chain(mux,
		middleware.CORS(middleware.DefaultCORSConfig(cfg.AllowedOrigins, logger)),
		requestid.Middleware,
		Recover(logger),
		Logging(logger),
		MetricsMiddleware,
		tracing.Middleware,
		LimitRequestBody(maxBody),
		Timeout(cfg.RequestTimeout),
		auth.OwnerResolver(cfg.Tokens),
	)
}
