// Package auth resolves the owner of each API request and serves the
// token endpoints.
package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"genai-summarizer/internal/domain/entity"
	"genai-summarizer/internal/handler/http/respond"
	authservice "genai-summarizer/internal/service/auth"
)

type ctxKey string

const ctxOwner ctxKey = "owner"

// TokenParser verifies a bearer token and returns its subject.
type TokenParser interface {
	Parse(token string) (string, error)
}

// WithOwner stores the owner ID in ctx.
func WithOwner(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ctxOwner, ownerID)
}

// OwnerFromContext returns the owner resolved by OwnerResolver.
func OwnerFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxOwner).(string)
	return id, ok && id != ""
}

// OwnerResolver attaches the request owner to the context.
//
// Without an Authorization header the caller gets a fresh guest ID, so two
// anonymous requests never share history. A header that is not a valid
// bearer token is rejected with 401.
func OwnerResolver(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsPublicEndpoint(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			ownerID, outcome, err := resolveOwner(r.Header.Get("Authorization"), tokens)
			RecordOwnerResolution(outcome)
			if err != nil {
				slog.WarnContext(r.Context(), "authentication failed",
					slog.String("path", r.URL.Path),
					slog.Any("error", err))
				w.Header().Set("WWW-Authenticate", "Bearer")
				respond.Error(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), ownerID)))
		})
	}
}

func resolveOwner(header string, tokens TokenParser) (ownerID, outcome string, err error) {
	if strings.TrimSpace(header) == "" {
		id, err := authservice.NewGuestID()
		if err != nil {
			return "", "rejected", err
		}
		return id, "guest", nil
	}

	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", "rejected", entity.AuthenticationError("Invalid authentication credentials", nil)
	}

	sub, err := tokens.Parse(token)
	if err != nil {
		return "", "rejected", err
	}
	return sub, "token", nil
}
