package api

import (
	"time"

	"github.com/hyperifyio/clauseease/internal/glossary"
	"github.com/hyperifyio/clauseease/internal/store"
	"github.com/hyperifyio/clauseease/internal/workflow"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      store.User `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type ResetPasswordRequest struct {
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type ExtractResponse struct {
	Filename string `json:"filename"`
	Title    string `json:"title,omitempty"`
	MIME     string `json:"mime"`
	Text     string `json:"text"`
	Words    int    `json:"words"`
}

type SaveDocumentRequest struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

// DocumentSummary is a library entry without its content.
type DocumentSummary struct {
	ID        int64     `json:"id"`
	Filename  string    `json:"filename"`
	MIME      string    `json:"mime"`
	Words     int       `json:"words"`
	CreatedAt time.Time `json:"created_at"`
}

type SimplifyRequest struct {
	Text       string  `json:"text"`
	DocumentID int64   `json:"document_id,omitempty"`
	Level      string  `json:"level"`
	Mode       string  `json:"mode,omitempty"`
	Summarize  bool    `json:"summarize,omitempty"`
	Ratio      float64 `json:"ratio,omitempty"`
}

type SimplifyResponse struct {
	workflow.SimplifyResult
	Terms []glossary.Entry `json:"terms,omitempty"`
}

type SummarizeRequest struct {
	Text       string  `json:"text"`
	DocumentID int64   `json:"document_id,omitempty"`
	Method     string  `json:"method,omitempty"`
	Ratio      float64 `json:"ratio,omitempty"`
}

type TextRequest struct {
	Text string `json:"text"`
}

type HighlightResponse struct {
	HTML    string                `json:"html"`
	Terms   []glossary.Entry      `json:"terms"`
	Defined []glossary.Definition `json:"defined"`
}

// HistoryEntry is a simplification log entry without the full texts.
type HistoryEntry struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Mode      string    `json:"mode"`
	Preview   string    `json:"preview"`
	CreatedAt time.Time `json:"created_at"`
}
