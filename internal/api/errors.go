package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/hyperifyio/clauseease/internal/auth"
	"github.com/hyperifyio/clauseease/internal/httputils"
	"github.com/hyperifyio/clauseease/internal/ingest"
	"github.com/hyperifyio/clauseease/internal/simplify"
	"github.com/hyperifyio/clauseease/internal/store"
	"github.com/hyperifyio/clauseease/internal/summarize"
	"github.com/hyperifyio/clauseease/internal/workflow"
)

var (
	errUnauthorized = httputils.NewError(http.StatusUnauthorized, "Please log in.")
	errForbidden    = httputils.NewError(http.StatusForbidden, "Admin access required.")
)

// toHTTPError maps domain errors to client-facing ones. emptyMessage is the
// warning shown for blank input.
func toHTTPError(err error, emptyMessage string) error {
	var he *httputils.HTTPError
	var ve *auth.ValidationError
	switch {
	case errors.As(err, &he):
		return he
	case errors.As(err, &ve):
		return httputils.NewError(http.StatusBadRequest, ve.Message)
	case errors.Is(err, workflow.ErrEmptyInput):
		return httputils.NewError(http.StatusUnprocessableEntity, emptyMessage)
	case errors.Is(err, ingest.ErrNoText):
		return httputils.NewError(http.StatusUnprocessableEntity, "No readable text found in the file.")
	case errors.Is(err, ingest.ErrUnsupportedFormat):
		return httputils.NewError(http.StatusUnsupportedMediaType, "Unsupported file type. Upload a .txt, .docx, .pdf or .html file.")
	case errors.Is(err, summarize.ErrInvalidRatio),
		errors.Is(err, summarize.ErrInvalidWeights),
		errors.Is(err, simplify.ErrUnknownLevel),
		errors.Is(err, workflow.ErrUnknownMode):
		return httputils.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		return httputils.NewError(http.StatusUnauthorized, "Invalid email or password.")
	case errors.Is(err, store.ErrEmailTaken):
		return httputils.NewError(http.StatusConflict, "An account with this email already exists.")
	case errors.Is(err, store.ErrNotFound):
		return httputils.NewError(http.StatusNotFound, "Not found.")
	case errors.Is(err, workflow.ErrModelUnavailable):
		return httputils.NewError(http.StatusServiceUnavailable, "The model backend is not configured.")
	case errors.Is(err, context.DeadlineExceeded):
		return httputils.NewError(http.StatusGatewayTimeout, "The model backend timed out.")
	case errors.Is(err, workflow.ErrModelFailed):
		return httputils.NewError(http.StatusBadGateway, "The model backend failed. Try again or use rule-based mode.")
	}
	return err
}
