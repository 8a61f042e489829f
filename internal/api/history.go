package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/hlog"

	"github.com/hyperifyio/clauseease/internal/auth"
	"github.com/hyperifyio/clauseease/internal/export"
	"github.com/hyperifyio/clauseease/internal/httputils"
	"github.com/hyperifyio/clauseease/internal/store"
)

const previewRunes = 120

func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= previewRunes {
		return s
	}
	return string(r[:previewRunes]) + "..."
}

func historyEntries(list []store.Simplification) []HistoryEntry {
	out := make([]HistoryEntry, len(list))
	for i, s := range list {
		out[i] = HistoryEntry{ID: s.ID, Level: s.Level, Mode: s.Mode, Preview: preview(s.Simplified), CreatedAt: s.CreatedAt}
	}
	return out
}

func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request, u store.User) {
	list, err := h.store.ListSimplifications(r.Context(), u.ID)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	h.respond(w, r, http.StatusOK, historyEntries(list))
}

func (h *Handler) HandleGetHistory(w http.ResponseWriter, r *http.Request, u store.User) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	rec, err := h.store.GetSimplification(r.Context(), id, u.ID)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	h.respond(w, r, http.StatusOK, rec)
}

func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request, u store.User) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	rec, err := h.store.GetSimplification(r.Context(), id, u.ID)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	rep := export.FromSimplification(rec)
	name := fmt.Sprintf("simplification-%d", rec.ID)
	switch format := strings.ToLower(r.URL.Query().Get("format")); format {
	case "", "txt", "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.txt"`)
		_, _ = w.Write([]byte(export.Text(rep)))
	case "pdf":
		var buf bytes.Buffer
		if err := export.PDF(&buf, rep); err != nil {
			h.fail(w, r, err, "")
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.pdf"`)
		_, _ = w.Write(buf.Bytes())
	default:
		h.fail(w, r, httputils.NewError(http.StatusBadRequest, "format must be pdf or txt"), "")
	}
}

func (h *Handler) HandleAdminUsers(w http.ResponseWriter, r *http.Request, _ store.User) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	h.respond(w, r, http.StatusOK, users)
}

func (h *Handler) userByPathEmail(r *http.Request) (store.User, error) {
	return h.store.UserByEmail(r.Context(), r.PathValue("email"))
}

func (h *Handler) HandleAdminUserHistory(w http.ResponseWriter, r *http.Request, _ store.User) {
	target, err := h.userByPathEmail(r)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	list, err := h.store.ListSimplifications(r.Context(), target.ID)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	h.respond(w, r, http.StatusOK, list)
}

func (h *Handler) HandleAdminUserDocuments(w http.ResponseWriter, r *http.Request, _ store.User) {
	target, err := h.userByPathEmail(r)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	docs, err := h.store.ListDocuments(r.Context(), target.ID)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	h.respond(w, r, http.StatusOK, summarizeDocuments(docs))
}

func (h *Handler) HandleAdminStats(w http.ResponseWriter, r *http.Request, _ store.User) {
	stats, err := h.store.LevelStats(r.Context())
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	h.respond(w, r, http.StatusOK, stats)
}

func (h *Handler) HandleAdminResetPassword(w http.ResponseWriter, r *http.Request, admin store.User) {
	h.limitBody(w, r)
	var req ResetPasswordRequest
	if err := httputils.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, err, "")
		return
	}
	target, err := h.userByPathEmail(r)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	if err := auth.ChangePassword(r.Context(), h.store, auth.PasswordChange{
		Email:           target.Email,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	}); err != nil {
		h.fail(w, r, err, "")
		return
	}
	if err := h.store.DeleteUserSessions(r.Context(), target.ID); err != nil {
		h.fail(w, r, err, "")
		return
	}
	hlog.FromRequest(r).Info().Int64("admin_id", admin.ID).Int64("user_id", target.ID).Msg("password reset by admin")
	if err := httputils.SuccessResponse(w, "Password updated", nil); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("write response")
	}
}
