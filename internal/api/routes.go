package api

import (
	"net/http"

	"github.com/rs/zerolog"
)

func RegisterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /health", handler.HandleHealth)

	mux.HandleFunc("POST /api/auth/register", handler.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", handler.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", handler.requireUser(handler.HandleLogout))
	mux.HandleFunc("POST /api/auth/password", handler.requireUser(handler.HandleChangePassword))

	mux.HandleFunc("POST /api/extract", handler.optionalUser(handler.HandleExtract))
	mux.HandleFunc("POST /api/documents", handler.requireUser(handler.HandleSaveDocument))
	mux.HandleFunc("GET /api/documents", handler.requireUser(handler.HandleListDocuments))
	mux.HandleFunc("GET /api/documents/{id}", handler.requireUser(handler.HandleGetDocument))
	mux.HandleFunc("DELETE /api/documents/{id}", handler.requireUser(handler.HandleDeleteDocument))

	mux.HandleFunc("POST /api/simplify", handler.optionalUser(handler.HandleSimplify))
	mux.HandleFunc("POST /api/summarize", handler.optionalUser(handler.HandleSummarize))
	mux.HandleFunc("POST /api/readability", handler.optionalUser(handler.HandleReadability))
	mux.HandleFunc("POST /api/glossary/highlight", handler.optionalUser(handler.HandleHighlight))

	mux.HandleFunc("GET /api/history", handler.requireUser(handler.HandleHistory))
	mux.HandleFunc("GET /api/history/{id}", handler.requireUser(handler.HandleGetHistory))
	mux.HandleFunc("GET /api/history/{id}/export", handler.requireUser(handler.HandleExport))

	mux.HandleFunc("GET /api/admin/users", handler.requireAdmin(handler.HandleAdminUsers))
	mux.HandleFunc("GET /api/admin/users/{email}/history", handler.requireAdmin(handler.HandleAdminUserHistory))
	mux.HandleFunc("GET /api/admin/users/{email}/documents", handler.requireAdmin(handler.HandleAdminUserDocuments))
	mux.HandleFunc("POST /api/admin/users/{email}/password", handler.requireAdmin(handler.HandleAdminResetPassword))
	mux.HandleFunc("GET /api/admin/stats", handler.requireAdmin(handler.HandleAdminStats))
}

// NewServer returns the routed handler wrapped in logging and panic recovery.
func NewServer(handler *Handler, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()
	RegisterRoutes(mux, handler)
	return withLogging(logger, recoverer(mux))
}
