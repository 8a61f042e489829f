package api

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/hlog"

	"github.com/hyperifyio/clauseease/internal/httputils"
	"github.com/hyperifyio/clauseease/internal/ingest"
	"github.com/hyperifyio/clauseease/internal/preprocess"
	"github.com/hyperifyio/clauseease/internal/store"
)

const uploadField = "file"

// readUpload parses a multipart upload and extracts the text of its file.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (*ingest.Parsed, error) {
	h.limitBody(w, r)
	if err := r.ParseMultipartForm(h.opts.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, httputils.NewError(http.StatusRequestEntityTooLarge, "File too large.")
		}
		return nil, httputils.NewError(http.StatusBadRequest, "Expected a multipart upload with a \"file\" field.")
	}
	defer r.MultipartForm.RemoveAll()
	f, hdr, err := r.FormFile(uploadField)
	if err != nil {
		return nil, httputils.NewError(http.StatusBadRequest, "Expected a multipart upload with a \"file\" field.")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	parsed, err := ingest.Extract(hdr.Filename, data)
	if err != nil {
		return nil, err
	}
	hlog.FromRequest(r).Debug().Str("filename", parsed.Filename).Int("bytes", len(data)).Msg("upload extracted")
	return parsed, nil
}

func (h *Handler) HandleExtract(w http.ResponseWriter, r *http.Request, _ store.User) {
	parsed, err := h.readUpload(w, r)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	h.respond(w, r, http.StatusOK, ExtractResponse{
		Filename: parsed.Filename,
		Title:    parsed.Title,
		MIME:     parsed.MIME,
		Text:     parsed.Text,
		Words:    preprocess.FieldCount(parsed.Text),
	})
}

func (h *Handler) HandleSaveDocument(w http.ResponseWriter, r *http.Request, u store.User) {
	doc := store.Document{UserID: u.ID}
	if httputils.IsJSON(r) {
		h.limitBody(w, r)
		var req SaveDocumentRequest
		if err := httputils.DecodeJSON(r, &req); err != nil {
			h.fail(w, r, err, "")
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			h.fail(w, r, httputils.NewError(http.StatusUnprocessableEntity, "Document text is empty."), "")
			return
		}
		doc.Filename = filepath.Base(strings.TrimSpace(req.Filename))
		if doc.Filename == "." || doc.Filename == "/" {
			doc.Filename = "pasted.txt"
		}
		doc.MIME = "text/plain"
		doc.Content = req.Text
	} else {
		parsed, err := h.readUpload(w, r)
		if err != nil {
			h.fail(w, r, err, "")
			return
		}
		doc.Filename, doc.MIME, doc.Content = parsed.Filename, parsed.MIME, parsed.Text
	}
	saved, err := h.store.SaveDocument(r.Context(), doc)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	hlog.FromRequest(r).Info().Int64("document_id", saved.ID).Msg("document saved")
	h.respond(w, r, http.StatusCreated, saved)
}

func summarizeDocuments(docs []store.Document) []DocumentSummary {
	out := make([]DocumentSummary, len(docs))
	for i, d := range docs {
		out[i] = DocumentSummary{
			ID:        d.ID,
			Filename:  d.Filename,
			MIME:      d.MIME,
			Words:     preprocess.FieldCount(d.Content),
			CreatedAt: d.CreatedAt,
		}
	}
	return out
}

func (h *Handler) HandleListDocuments(w http.ResponseWriter, r *http.Request, u store.User) {
	docs, err := h.store.ListDocuments(r.Context(), u.ID)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	h.respond(w, r, http.StatusOK, summarizeDocuments(docs))
}

func (h *Handler) HandleGetDocument(w http.ResponseWriter, r *http.Request, u store.User) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	doc, err := h.store.GetDocument(r.Context(), id, u.ID)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	h.respond(w, r, http.StatusOK, doc)
}

func (h *Handler) HandleDeleteDocument(w http.ResponseWriter, r *http.Request, u store.User) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	if err := h.store.DeleteDocument(r.Context(), id, u.ID); err != nil {
		h.fail(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
