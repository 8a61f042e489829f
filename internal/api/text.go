package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/hyperifyio/clauseease/internal/glossary"
	"github.com/hyperifyio/clauseease/internal/httputils"
	"github.com/hyperifyio/clauseease/internal/readability"
	"github.com/hyperifyio/clauseease/internal/simplify"
	"github.com/hyperifyio/clauseease/internal/store"
	"github.com/hyperifyio/clauseease/internal/summarize"
	"github.com/hyperifyio/clauseease/internal/workflow"
)

// resolveText returns text, or the content of a stored document of the user
// when documentID is set.
func (h *Handler) resolveText(ctx context.Context, u store.User, text string, documentID int64) (string, error) {
	if documentID == 0 {
		return text, nil
	}
	if u.ID == 0 {
		return "", errUnauthorized
	}
	doc, err := h.store.GetDocument(ctx, documentID, u.ID)
	if err != nil {
		return "", err
	}
	return doc.Content, nil
}

func (h *Handler) HandleSimplify(w http.ResponseWriter, r *http.Request, u store.User) {
	h.limitBody(w, r)
	var req SimplifyRequest
	if err := httputils.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, err, "")
		return
	}
	level := simplify.Intermediate
	if strings.TrimSpace(req.Level) != "" {
		l, err := simplify.ParseLevel(req.Level)
		if err != nil {
			h.fail(w, r, err, "")
			return
		}
		level = l
	}
	mode, err := workflow.ParseMode(req.Mode)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	text, err := h.resolveText(r.Context(), u, req.Text, req.DocumentID)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	res, err := h.engine.Simplify(r.Context(), workflow.SimplifyRequest{
		UserID:    u.ID,
		Text:      text,
		Level:     level,
		Mode:      mode,
		Summarize: req.Summarize,
		Ratio:     req.Ratio,
	})
	if err != nil {
		h.fail(w, r, err, simplify.EmptyInputMessage)
		return
	}
	h.respond(w, r, http.StatusOK, SimplifyResponse{
		SimplifyResult: res,
		Terms:          h.glossary.Terms(res.Simplified),
	})
}

func (h *Handler) HandleSummarize(w http.ResponseWriter, r *http.Request, u store.User) {
	h.limitBody(w, r)
	var req SummarizeRequest
	if err := httputils.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, err, "")
		return
	}
	method, err := workflow.ParseMethod(req.Method)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	text, err := h.resolveText(r.Context(), u, req.Text, req.DocumentID)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	res, err := h.engine.Summarize(r.Context(), workflow.SummarizeRequest{Text: text, Method: method, Ratio: req.Ratio})
	if err != nil {
		h.fail(w, r, err, summarize.EmptyInputMessage)
		return
	}
	h.respond(w, r, http.StatusOK, res)
}

func (h *Handler) HandleReadability(w http.ResponseWriter, r *http.Request, _ store.User) {
	h.limitBody(w, r)
	var req TextRequest
	if err := httputils.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, err, "")
		return
	}
	rep, err := h.engine.Analyze(req.Text)
	if err != nil {
		h.fail(w, r, err, readability.EmptyInputMessage)
		return
	}
	h.respond(w, r, http.StatusOK, rep)
}

func (h *Handler) HandleHighlight(w http.ResponseWriter, r *http.Request, _ store.User) {
	h.limitBody(w, r)
	var req TextRequest
	if err := httputils.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, err, "")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		h.fail(w, r, workflow.ErrEmptyInput, "Please enter some text to highlight.")
		return
	}
	h.respond(w, r, http.StatusOK, HighlightResponse{
		HTML:    h.glossary.Highlight(req.Text),
		Terms:   h.glossary.Terms(req.Text),
		Defined: glossary.DefinedTerms(req.Text),
	})
}
