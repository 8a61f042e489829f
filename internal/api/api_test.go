package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hyperifyio/clauseease/internal/auth"
	"github.com/hyperifyio/clauseease/internal/glossary"
	"github.com/hyperifyio/clauseease/internal/store"
	"github.com/hyperifyio/clauseease/internal/workflow"
)

const lease = "The lessee shall remit payment prior to the first day of each month. " +
	"In the event of breach, the lessor may terminate. " +
	"Pursuant to this agreement, notice must be in writing. " +
	"The premises are located downtown. " +
	"All repairs are the responsibility of the lessor."

type testServer struct {
	t     *testing.T
	store *store.Store
	srv   *httptest.Server
}

func newTestServer(t *testing.T, opts Options) *testServer {
	t.Helper()
	auth.Cost = bcrypt.MinCost
	st, err := store.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	h := NewHandler(st, &workflow.Engine{Recorder: st}, glossary.Default(), opts)
	srv := httptest.NewServer(NewServer(h, zerolog.Nop()))
	t.Cleanup(srv.Close)
	return &testServer{t: t, store: st, srv: srv}
}

func (ts *testServer) do(method, path, token string, body any) *http.Response {
	ts.t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(ts.t, err)
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, ts.srv.URL+path, rdr)
	require.NoError(ts.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(ts.t, err)
	ts.t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (ts *testServer) upload(path, token, filename string, content []byte) *http.Response {
	ts.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(ts.t, err)
	_, _ = fw.Write(content)
	require.NoError(ts.t, mw.Close())
	req, err := http.NewRequest(http.MethodPost, ts.srv.URL+path, &buf)
	require.NoError(ts.t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(ts.t, err)
	ts.t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func (ts *testServer) register(email, password string) {
	ts.t.Helper()
	resp := ts.do(http.MethodPost, "/api/auth/register", "", auth.Registration{
		FirstName: "Test", LastName: "User", Email: email, Password: password, ConfirmPassword: password,
	})
	require.Equal(ts.t, http.StatusCreated, resp.StatusCode)
}

func (ts *testServer) login(email, password string) string {
	ts.t.Helper()
	resp := ts.do(http.MethodPost, "/api/auth/login", "", LoginRequest{Email: email, Password: password})
	require.Equal(ts.t, http.StatusOK, resp.StatusCode)
	return decode[LoginResponse](ts.t, resp).Token
}

func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	return decode[map[string]string](t, resp)["error"]
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, Options{})
	resp := ts.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestAuthFlow(t *testing.T) {
	ts := newTestServer(t, Options{})

	tests := []struct {
		name   string
		body   auth.Registration
		status int
		msg    string
	}{
		{"missing field", auth.Registration{Email: "a@example.com"}, http.StatusBadRequest, "Please fill in all fields."},
		{"mismatch", auth.Registration{FirstName: "A", LastName: "B", Email: "a@example.com", Password: "password1", ConfirmPassword: "password2"}, http.StatusBadRequest, "Passwords do not match."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := ts.do(http.MethodPost, "/api/auth/register", "", tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.msg, errorMessage(t, resp))
		})
	}

	ts.register("ada@example.com", "password1")
	resp := ts.do(http.MethodPost, "/api/auth/register", "", auth.Registration{
		FirstName: "A", LastName: "B", Email: "ADA@example.com", Password: "password1", ConfirmPassword: "password1",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = ts.do(http.MethodPost, "/api/auth/login", "", LoginRequest{Email: "ada@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := ts.login("ada@example.com", "password1")

	resp = ts.do(http.MethodPost, "/api/auth/password", token, ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "password2", ConfirmPassword: "password2"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = ts.do(http.MethodPost, "/api/auth/password", token, ChangePasswordRequest{CurrentPassword: "password1", NewPassword: "password2", ConfirmPassword: "password2"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	ts.login("ada@example.com", "password2")

	resp = ts.do(http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = ts.do(http.MethodGet, "/api/documents", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDecodeRejectsWrongContentType(t *testing.T) {
	ts := newTestServer(t, Options{})
	resp, err := http.Post(ts.srv.URL+"/api/simplify", "text/plain", strings.NewReader("hello"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestSimplify(t *testing.T) {
	ts := newTestServer(t, Options{})

	t.Run("anonymous", func(t *testing.T) {
		resp := ts.do(http.MethodPost, "/api/simplify", "", SimplifyRequest{Text: lease, Level: "intermediate", Summarize: true})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		out := decode[SimplifyResponse](t, resp)
		assert.Contains(t, out.Simplified, "the lessor may end")
		assert.Zero(t, out.ID)
		assert.NotEmpty(t, out.Summary)
		assert.NotEmpty(t, out.Terms)
	})

	t.Run("empty input", func(t *testing.T) {
		resp := ts.do(http.MethodPost, "/api/simplify", "", SimplifyRequest{Text: "   ", Level: "basic"})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "Please enter text to simplify.", errorMessage(t, resp))
	})

	t.Run("bad level", func(t *testing.T) {
		resp := ts.do(http.MethodPost, "/api/simplify", "", SimplifyRequest{Text: lease, Level: "expert"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("bad ratio", func(t *testing.T) {
		resp := ts.do(http.MethodPost, "/api/simplify", "", SimplifyRequest{Text: lease, Summarize: true, Ratio: 2})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("model not configured", func(t *testing.T) {
		resp := ts.do(http.MethodPost, "/api/simplify", "", SimplifyRequest{Text: lease, Mode: "model"})
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("invalid token", func(t *testing.T) {
		resp := ts.do(http.MethodPost, "/api/simplify", "not-a-token", SimplifyRequest{Text: lease})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestDocumentsHistoryAndExport(t *testing.T) {
	ts := newTestServer(t, Options{})
	ts.register("ada@example.com", "password1")
	ts.register("bob@example.com", "password1")
	ada := ts.login("ada@example.com", "password1")
	bob := ts.login("bob@example.com", "password1")

	resp := ts.upload("/api/documents", ada, "lease.txt", []byte(lease))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	doc := decode[store.Document](t, resp)
	assert.Equal(t, "lease.txt", doc.Filename)

	resp = ts.do(http.MethodPost, "/api/documents", ada, SaveDocumentRequest{Filename: "note.txt", Text: "Short note."})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = ts.do(http.MethodGet, "/api/documents", ada, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]DocumentSummary](t, resp)
	require.Len(t, list, 2)

	resp = ts.do(http.MethodGet, "/api/documents/"+itoa(doc.ID), bob, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = ts.do(http.MethodPost, "/api/simplify", ada, SimplifyRequest{DocumentID: doc.ID, Level: "advanced"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[SimplifyResponse](t, resp)
	require.NotZero(t, res.ID)

	resp = ts.do(http.MethodPost, "/api/simplify", bob, SimplifyRequest{DocumentID: doc.ID})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = ts.do(http.MethodGet, "/api/history", ada, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	hist := decode[[]HistoryEntry](t, resp)
	require.Len(t, hist, 1)
	assert.Equal(t, "advanced", hist[0].Level)

	resp = ts.do(http.MethodGet, "/api/history/"+itoa(res.ID)+"/export?format=txt", ada, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Readability before")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".txt")

	resp = ts.do(http.MethodGet, "/api/history/"+itoa(res.ID)+"/export?format=pdf", ada, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	resp = ts.do(http.MethodGet, "/api/history/"+itoa(res.ID)+"/export?format=doc", ada, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.do(http.MethodGet, "/api/history/"+itoa(res.ID)+"/export", bob, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = ts.do(http.MethodDelete, "/api/documents/"+itoa(doc.ID), ada, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = ts.do(http.MethodDelete, "/api/documents/"+itoa(doc.ID), ada, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUploads(t *testing.T) {
	ts := newTestServer(t, Options{MaxUploadBytes: 1024})

	resp := ts.upload("/api/extract", "", "lease.txt", []byte(lease))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[ExtractResponse](t, resp)
	assert.Equal(t, "text/plain", out.MIME)
	assert.Greater(t, out.Words, 10)

	resp = ts.upload("/api/extract", "", "lease.rtf", []byte(lease))
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)

	resp = ts.upload("/api/extract", "", "empty.txt", []byte("  \n"))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = ts.upload("/api/extract", "", "big.txt", bytes.Repeat([]byte("word "), 1000))
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestSummarizeReadabilityHighlight(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp := ts.do(http.MethodPost, "/api/summarize", "", SummarizeRequest{Text: lease, Ratio: 0.4})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sum := decode[workflow.SummarizeResult](t, resp)
	assert.Equal(t, workflow.MethodHybrid, sum.Method)
	assert.Len(t, sum.Selected, 2)

	resp = ts.do(http.MethodPost, "/api/summarize", "", SummarizeRequest{Text: lease, Method: "abstractive"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp = ts.do(http.MethodPost, "/api/summarize", "", SummarizeRequest{Text: ""})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "Please provide text to summarize.", errorMessage(t, resp))

	resp = ts.do(http.MethodPost, "/api/readability", "", TextRequest{Text: "Rent is due, now! Pay it."})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rep := decode[map[string]any](t, resp)
	assert.EqualValues(t, 2, rep["sentence_count"])

	resp = ts.do(http.MethodPost, "/api/glossary/highlight", "", TextRequest{Text: `The Lessee (the "Tenant") waives <rights>.`})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	hl := decode[HighlightResponse](t, resp)
	assert.Contains(t, hl.HTML, `<span class="tooltip"><b>Lessee</b>`)
	assert.Contains(t, hl.HTML, "&lt;rights&gt;")
	require.Len(t, hl.Defined, 1)
	assert.Equal(t, "Tenant", hl.Defined[0].Term)
}

func TestAdmin(t *testing.T) {
	ts := newTestServer(t, Options{})
	ctx := context.Background()
	_, err := auth.EnsureAdmin(ctx, ts.store, "admin@example.com", "adminpass")
	require.NoError(t, err)
	ts.register("ada@example.com", "password1")
	admin := ts.login("admin@example.com", "adminpass")
	ada := ts.login("ada@example.com", "password1")

	resp := ts.do(http.MethodPost, "/api/simplify", ada, SimplifyRequest{Text: lease, Level: "basic"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(http.MethodGet, "/api/admin/users", ada, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = ts.do(http.MethodGet, "/api/admin/users", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	users := decode[[]map[string]any](t, resp)
	require.Len(t, users, 2)
	_, leaked := users[0]["password_hash"]
	assert.False(t, leaked)

	resp = ts.do(http.MethodGet, "/api/admin/users/ada@example.com/history", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]store.Simplification](t, resp), 1)

	resp = ts.do(http.MethodGet, "/api/admin/users/nobody@example.com/documents", admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = ts.do(http.MethodGet, "/api/admin/stats", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decode[[]store.LevelStat](t, resp)
	require.Len(t, stats, 1)
	assert.Equal(t, "basic", stats[0].Level)

	resp = ts.do(http.MethodPost, "/api/admin/users/ada@example.com/password", admin, ResetPasswordRequest{NewPassword: "resetpass", ConfirmPassword: "resetpass"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = ts.do(http.MethodGet, "/api/history", ada, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "reset revokes sessions")
	ts.login("ada@example.com", "resetpass")
}

func TestRecovererReturns500(t *testing.T) {
	h := recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func itoa(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
