package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sitecue/sitecue/internal/auth"
	"github.com/sitecue/sitecue/internal/domain"
	"github.com/sitecue/sitecue/internal/httpserver/deps"
	"github.com/sitecue/sitecue/internal/logger"
	redisstore "github.com/sitecue/sitecue/internal/store/redis"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	AccessToken  string    `json:"access_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	RefreshToken string    `json:"refresh_token"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Signup registers a new account and signs it in.
func Signup(d deps.Deps) http.HandlerFunc {
	store := redisstore.NewStore(d.RedisClient)

	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" || !strings.Contains(email, "@") {
			writeError(w, http.StatusBadRequest, "invalid email")
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		user := &domain.User{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: hash,
			CreatedAt:    time.Now(),
		}

		if err := store.CreateUser(r.Context(), user); err != nil {
			if errors.Is(err, redisstore.ErrEmailTaken) {
				writeError(w, http.StatusConflict, "email already registered")
				return
			}
			d.Logger.Error("failed to create user", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to create user")
			return
		}

		resp, err := issueTokens(r, d, store, user)
		if err != nil {
			d.Logger.Error("failed to issue tokens", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to sign in")
			return
		}

		d.Logger.Info("user signed up", logger.String("user_id", user.ID))
		writeJSON(w, http.StatusCreated, resp)
	}
}

// Login verifies credentials and opens a refresh session.
func Login(d deps.Deps) http.HandlerFunc {
	store := redisstore.NewStore(d.RedisClient)

	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		user, err := store.GetUserByEmail(r.Context(), email)
		if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
			// Same answer for unknown email and wrong password
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		resp, err := issueTokens(r, d, store, user)
		if err != nil {
			d.Logger.Error("failed to issue tokens", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to sign in")
			return
		}

		d.Logger.Info("user logged in", logger.String("user_id", user.ID))
		writeJSON(w, http.StatusOK, resp)
	}
}

// Refresh exchanges a live refresh session for a fresh access token.
func Refresh(d deps.Deps) http.HandlerFunc {
	store := redisstore.NewStore(d.RedisClient)

	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.RefreshToken == "" {
			writeError(w, http.StatusBadRequest, "refresh_token is required")
			return
		}

		session, err := store.GetSession(r.Context(), req.RefreshToken)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid refresh token")
			return
		}
		if session.Expired(time.Now()) {
			writeError(w, http.StatusUnauthorized, "refresh token expired")
			return
		}

		user, err := store.GetUser(r.Context(), session.UserID)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid refresh token")
			return
		}

		access, expiresAt, err := d.Auth.GenerateAccessToken(user.ID)
		if err != nil {
			d.Logger.Error("failed to generate access token", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to refresh")
			return
		}

		writeJSON(w, http.StatusOK, tokenResponse{
			UserID:       user.ID,
			Email:        user.Email,
			AccessToken:  access,
			ExpiresAt:    expiresAt,
			RefreshToken: session.Token,
		})
	}
}

// Logout closes a refresh session. Idempotent.
func Logout(d deps.Deps) http.HandlerFunc {
	store := redisstore.NewStore(d.RedisClient)

	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.RefreshToken == "" {
			writeError(w, http.StatusBadRequest, "refresh_token is required")
			return
		}

		if err := store.DeleteSession(r.Context(), req.RefreshToken); err != nil {
			d.Logger.Debug("logout for unknown session", logger.Error(err))
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func issueTokens(r *http.Request, d deps.Deps, store *redisstore.Store, user *domain.User) (*tokenResponse, error) {
	access, expiresAt, err := d.Auth.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		IssuedAt:  now,
		ExpiresAt: now.Add(d.RefreshTTL),
	}
	if err := store.SaveSession(r.Context(), session); err != nil {
		return nil, err
	}

	return &tokenResponse{
		UserID:       user.ID,
		Email:        user.Email,
		AccessToken:  access,
		ExpiresAt:    expiresAt,
		RefreshToken: session.Token,
	}, nil
}
