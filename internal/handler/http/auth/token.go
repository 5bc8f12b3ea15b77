package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"genai-summarizer/internal/domain/entity"
	"genai-summarizer/internal/handler/http/respond"
	authservice "genai-summarizer/internal/service/auth"
)

type tokenRequest struct {
	UserID string `json:"user_id" example:"u1"`
}

// TokenResponse is returned by the token endpoints.
type TokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string `json:"token_type" example:"bearer"`
	UserID      string `json:"user_id" example:"u1"`
}

const maxUserIDLength = 128

// TokenHandler issues a bearer token for the given user ID.
//
// @Summary      ユーザートークン発行
// @Description  指定したユーザーIDのベアラートークンを発行します
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body tokenRequest true "ユーザーID"
// @Success      200 {object} TokenResponse "トークン"
// @Failure      400 {object} respond.ErrorBody "リクエストが不正"
// @Failure      500 {object} respond.ErrorBody "トークン生成失敗"
// @Router       /auth/token [post]
func TokenHandler(tokens *authservice.TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, r, entity.ValidationError("Invalid JSON body"))
			return
		}
		userID := strings.TrimSpace(req.UserID)
		if userID == "" || len(userID) > maxUserIDLength {
			respond.Error(w, r, entity.ValidationError("user_id is required and must be at most 128 characters"))
			return
		}

		signed, err := tokens.Issue(userID)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		RecordTokenIssued("user")
		slog.InfoContext(r.Context(), "token issued", slog.String("user_id", userID))
		respond.JSON(w, http.StatusOK, TokenResponse{AccessToken: signed, TokenType: "bearer", UserID: userID})
	}
}

// GuestHandler issues a token for a new guest identity.
//
// @Summary      ゲストトークン発行
// @Description  新しいゲストIDを生成し、そのベアラートークンを発行します
// @Tags         auth
// @Produce      json
// @Success      200 {object} TokenResponse "トークン"
// @Failure      500 {object} respond.ErrorBody "トークン生成失敗"
// @Router       /auth/guest [post]
func GuestHandler(tokens *authservice.TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		signed, guestID, err := tokens.IssueGuest()
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		RecordTokenIssued("guest")
		slog.InfoContext(r.Context(), "guest token issued", slog.String("user_id", guestID))
		respond.JSON(w, http.StatusOK, TokenResponse{AccessToken: signed, TokenType: "bearer", UserID: guestID})
	}
}

// LoginResponse is the token shape of the form login endpoints.
type LoginResponse struct {
	Token    string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Username string `json:"username" example:"alice"`
	IsGuest  bool   `json:"is_guest,omitempty" example:"false"`
}

// LoginHandler issues a token for the username form field.
//
// @Summary      ログイン
// @Description  フォームの username に対するトークンを発行します
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username formData string true "ユーザー名"
// @Success      200 {object} LoginResponse "トークン"
// @Failure      400 {object} respond.ErrorBody "ユーザー名がない"
// @Failure      500 {object} respond.ErrorBody "トークン生成失敗"
// @Router       /api/login [post]
func LoginHandler(tokens *authservice.TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := strings.TrimSpace(r.FormValue("username"))
		if username == "" || len(username) > maxUserIDLength {
			respond.Error(w, r, entity.ValidationError("Username is required"))
			return
		}

		signed, err := tokens.Issue(username)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		RecordTokenIssued("user")
		slog.InfoContext(r.Context(), "user logged in", slog.String("user_id", username))
		respond.JSON(w, http.StatusOK, LoginResponse{Token: signed, Username: username})
	}
}

// GuestTokenHandler is GuestHandler with the LoginResponse shape.
//
// @Summary      ゲストトークン取得
// @Description  新しいゲストIDを生成し、そのトークンを返します
// @Tags         auth
// @Produce      json
// @Success      200 {object} LoginResponse "トークン"
// @Failure      500 {object} respond.ErrorBody "トークン生成失敗"
// @Router       /api/guest-token [get]
func GuestTokenHandler(tokens *authservice.TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		signed, guestID, err := tokens.IssueGuest()
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		RecordTokenIssued("guest")
		slog.InfoContext(r.Context(), "guest token issued", slog.String("user_id", guestID))
		respond.JSON(w, http.StatusOK, LoginResponse{Token: signed, Username: guestID, IsGuest: true})
	}
}
