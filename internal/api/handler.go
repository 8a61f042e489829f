// Package api serves ClauseEase over HTTP as a JSON API.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/hlog"

	"github.com/hyperifyio/clauseease/internal/auth"
	"github.com/hyperifyio/clauseease/internal/glossary"
	"github.com/hyperifyio/clauseease/internal/httputils"
	"github.com/hyperifyio/clauseease/internal/store"
	"github.com/hyperifyio/clauseease/internal/workflow"
)

// Options tunes request handling.
type Options struct {
	// MaxUploadBytes caps request bodies, uploads included.
	MaxUploadBytes int64
	SessionTTL     time.Duration
}

const (
	defaultMaxUploadBytes = 10 << 20
	defaultSessionTTL     = 24 * time.Hour
)

type Handler struct {
	store    *store.Store
	engine   *workflow.Engine
	glossary *glossary.Glossary
	opts     Options
}

func NewHandler(st *store.Store, engine *workflow.Engine, g *glossary.Glossary, opts Options) *Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = defaultSessionTTL
	}
	if engine == nil {
		engine = &workflow.Engine{}
	}
	if g == nil {
		g = glossary.New(nil)
	}
	return &Handler{store: st, engine: engine, glossary: g, opts: opts}
}

type userHandler func(w http.ResponseWriter, r *http.Request, user store.User)

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// currentUser resolves the bearer token. ok is false when the request
// carries no token.
func (h *Handler) currentUser(r *http.Request) (user store.User, ok bool, err error) {
	token := bearerToken(r)
	if token == "" {
		return store.User{}, false, nil
	}
	u, err := h.store.SessionUser(r.Context(), token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.User{}, true, errUnauthorized
		}
		return store.User{}, true, err
	}
	return u, true, nil
}

func (h *Handler) requireUser(next userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok, err := h.currentUser(r)
		if !ok {
			err = errUnauthorized
		}
		if err != nil {
			h.fail(w, r, err, "")
			return
		}
		next(w, r, u)
	}
}

func (h *Handler) requireAdmin(next userHandler) http.HandlerFunc {
	return h.requireUser(func(w http.ResponseWriter, r *http.Request, u store.User) {
		if !u.IsAdmin {
			h.fail(w, r, errForbidden, "")
			return
		}
		next(w, r, u)
	})
}

// optionalUser passes the zero user to next for anonymous requests. A
// request with an invalid token is rejected.
func (h *Handler) optionalUser(next userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _, err := h.currentUser(r)
		if err != nil {
			h.fail(w, r, err, "")
			return
		}
		next(w, r, u)
	}
}

func (h *Handler) limitBody(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes)
}

// fail maps err, logs server-side failures and writes the JSON error.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, emptyMessage string) {
	mapped := toHTTPError(err, emptyMessage)
	var he *httputils.HTTPError
	if !errors.As(mapped, &he) || he.Code >= http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
	} else {
		hlog.FromRequest(r).Debug().Err(err).Int("status", he.Code).Msg("request rejected")
	}
	httputils.HandleError(w, mapped)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, data any) {
	if err := httputils.JSONResponse(w, status, data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("write response")
	}
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, httputils.NewError(http.StatusBadRequest, "Invalid id.")
	}
	return id, nil
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("health check")
		_ = httputils.JSONError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	h.respond(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	h.limitBody(w, r)
	var req auth.Registration
	if err := httputils.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, err, "")
		return
	}
	u, err := auth.Register(r.Context(), h.store, req)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	hlog.FromRequest(r).Info().Int64("user_id", u.ID).Msg("account created")
	h.respond(w, r, http.StatusCreated, u)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	h.limitBody(w, r)
	var req LoginRequest
	if err := httputils.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, err, "")
		return
	}
	u, err := auth.Authenticate(r.Context(), h.store, req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	sess, err := h.store.CreateSession(r.Context(), u.ID, h.opts.SessionTTL)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	h.respond(w, r, http.StatusOK, LoginResponse{Token: sess.Token, ExpiresAt: sess.ExpiresAt, User: u})
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request, _ store.User) {
	if err := h.store.DeleteSession(r.Context(), bearerToken(r)); err != nil {
		h.fail(w, r, err, "")
		return
	}
	if err := httputils.SuccessResponse(w, "Logged out", nil); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("write response")
	}
}

func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request, u store.User) {
	h.limitBody(w, r)
	var req ChangePasswordRequest
	if err := httputils.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, err, "")
		return
	}
	if !auth.CheckPassword(u.PasswordHash, req.CurrentPassword) {
		h.fail(w, r, httputils.NewError(http.StatusUnauthorized, "Current password is incorrect."), "")
		return
	}
	err := auth.ChangePassword(r.Context(), h.store, auth.PasswordChange{
		Email:           u.Email,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	if err := httputils.SuccessResponse(w, "Password updated", nil); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("write response")
	}
}
