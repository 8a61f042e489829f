package workflow

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hyperifyio/clauseease/internal/llm"
	"github.com/hyperifyio/clauseease/internal/simplify"
	"github.com/hyperifyio/clauseease/internal/store"
	"github.com/hyperifyio/clauseease/internal/summarize"
)

type fakeModel struct {
	out      string
	err      error
	deadline bool
	gotText  string
}

func (f *fakeModel) Simplify(ctx context.Context, text string, level simplify.Level) (string, error) {
	_, f.deadline = ctx.Deadline()
	f.gotText = text
	return f.out, f.err
}

type fakeAbstractive struct {
	out string
	err error
}

func (f fakeAbstractive) Summarize(ctx context.Context, text string) (string, error) {
	return f.out, f.err
}

type memRecorder struct {
	records []store.Simplification
	err     error
}

func (m *memRecorder) LogSimplification(ctx context.Context, r store.Simplification) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.records = append(m.records, r)
	return int64(len(m.records)), nil
}

const lease = "The lessee shall remit payment prior to the first day of each month. " +
	"In the event of breach, the lessor may terminate. " +
	"Pursuant to this agreement, notice must be in writing. " +
	"The premises are located downtown. " +
	"All repairs are the responsibility of the lessor."

func TestSimplify_RulesRecordsAndScores(t *testing.T) {
	rec := &memRecorder{}
	e := &Engine{Recorder: rec}
	res, err := e.Simplify(context.Background(), SimplifyRequest{
		UserID: 3, Text: lease, Level: simplify.Intermediate, Summarize: true, Ratio: 0.4,
	})
	if err != nil {
		t.Fatalf("simplify: %v", err)
	}
	if want := simplify.Simplify(lease, simplify.Intermediate); res.Simplified != want {
		t.Fatalf("simplified = %q want %q", res.Simplified, want)
	}
	if res.Mode != ModeRules || res.ID != 1 {
		t.Fatalf("unexpected mode/id: %+v", res)
	}
	if res.Summary == "" {
		t.Fatalf("summary requested but empty")
	}
	if res.Before.FleschReadingEase == 0 || res.BeforeEase == "" || res.AfterGrade == "" {
		t.Fatalf("scores missing: %+v", res)
	}
	if res.Easier != (res.Delta.FleschReadingEase > 0) {
		t.Fatalf("easier=%v disagrees with delta %+v", res.Easier, res.Delta)
	}
	if len(rec.records) != 1 {
		t.Fatalf("expected one record, got %d", len(rec.records))
	}
	r := rec.records[0]
	if r.UserID != 3 || r.Level != "intermediate" || r.Mode != "rules" || r.Summary != res.Summary {
		t.Fatalf("unexpected record %+v", r)
	}
}

func TestSimplify_AnonymousNotRecorded(t *testing.T) {
	rec := &memRecorder{}
	e := &Engine{Recorder: rec}
	if _, err := e.Simplify(context.Background(), SimplifyRequest{Text: lease, Level: simplify.Basic}); err != nil {
		t.Fatal(err)
	}
	if len(rec.records) != 0 {
		t.Fatalf("anonymous run recorded")
	}
}

func TestSimplify_RecorderFailureDoesNotFail(t *testing.T) {
	e := &Engine{Recorder: &memRecorder{err: errors.New("disk full")}}
	res, err := e.Simplify(context.Background(), SimplifyRequest{UserID: 1, Text: lease, Level: simplify.Advanced})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ID != 0 {
		t.Fatalf("id should be zero when not recorded")
	}
}

func TestSimplify_Errors(t *testing.T) {
	e := &Engine{}
	ctx := context.Background()
	if _, err := e.Simplify(ctx, SimplifyRequest{Text: "  \n ", Level: simplify.Basic}); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := e.Simplify(ctx, SimplifyRequest{Text: lease}); !errors.Is(err, simplify.ErrUnknownLevel) {
		t.Fatalf("expected ErrUnknownLevel, got %v", err)
	}
	if _, err := e.Simplify(ctx, SimplifyRequest{Text: lease, Level: simplify.Basic, Mode: ModeModel}); !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
	if _, err := e.Simplify(ctx, SimplifyRequest{Text: lease, Level: simplify.Basic, Mode: "magic"}); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
	if _, err := e.Simplify(ctx, SimplifyRequest{Text: lease, Level: simplify.Basic, Summarize: true, Ratio: 1.5}); !errors.Is(err, summarize.ErrInvalidRatio) {
		t.Fatalf("expected ErrInvalidRatio, got %v", err)
	}
}

func TestSimplify_ModelMode(t *testing.T) {
	m := &fakeModel{out: "The tenant pays before the first of the month."}
	e := &Engine{Model: m, ModelTimeout: time.Second}
	res, err := e.Simplify(context.Background(), SimplifyRequest{Text: "The \u201clessee\u201d pays.", Level: simplify.Advanced, Mode: ModeModel})
	if err != nil {
		t.Fatalf("model simplify: %v", err)
	}
	if res.Simplified != m.out || res.Mode != ModeModel {
		t.Fatalf("unexpected result %+v", res)
	}
	if !m.deadline {
		t.Fatalf("model call should carry a deadline")
	}
	if m.gotText != `The "lessee" pays.` {
		t.Fatalf("input not normalized: %q", m.gotText)
	}
}

func TestSimplify_ModelNotConfiguredMapsToUnavailable(t *testing.T) {
	e := &Engine{Model: &fakeModel{err: llm.ErrNotConfigured}}
	_, err := e.Simplify(context.Background(), SimplifyRequest{Text: lease, Level: simplify.Basic, Mode: ModeModel})
	if !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
	boom := errors.New("backend down")
	e.Model = &fakeModel{err: boom}
	_, err = e.Simplify(context.Background(), SimplifyRequest{Text: lease, Level: simplify.Basic, Mode: ModeModel})
	if !errors.Is(err, boom) || !errors.Is(err, ErrModelFailed) {
		t.Fatalf("expected wrapped backend error, got %v", err)
	}
}

func TestSummarize_Hybrid(t *testing.T) {
	e := &Engine{DefaultRatio: 0.4}
	res, err := e.Summarize(context.Background(), SummarizeRequest{Text: lease})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	want, _ := summarize.Summarize(lease, 0.4)
	if res.Summary != want {
		t.Fatalf("summary = %q want %q", res.Summary, want)
	}
	if res.Method != MethodHybrid || res.SentenceCount != 5 || len(res.Selected) != 2 || len(res.Scores) != 5 {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.SummaryWords == 0 || res.SummaryWords >= res.OriginalWords {
		t.Fatalf("word counts %d/%d", res.SummaryWords, res.OriginalWords)
	}
}

func TestSummarize_Abstractive(t *testing.T) {
	e := &Engine{}
	ctx := context.Background()
	if _, err := e.Summarize(ctx, SummarizeRequest{Text: lease, Method: MethodAbstractive}); !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
	e.Abstractive = fakeAbstractive{out: "Tenant pays monthly; landlord repairs."}
	res, err := e.Summarize(ctx, SummarizeRequest{Text: lease, Method: MethodAbstractive})
	if err != nil {
		t.Fatal(err)
	}
	if res.Summary != "Tenant pays monthly; landlord repairs." || res.Scores != nil {
		t.Fatalf("unexpected result %+v", res)
	}
	if _, err := e.Summarize(ctx, SummarizeRequest{Text: " "}); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestAnalyze(t *testing.T) {
	e := &Engine{}
	rep, err := e.Analyze("Rent is due, now! Pay it.")
	if err != nil {
		t.Fatal(err)
	}
	if rep.SentenceCount != 2 || rep.WordCount != 6 {
		t.Fatalf("unexpected report %+v", rep)
	}
	if _, err := e.Analyze(""); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput")
	}
}

func TestParseModeAndMethod(t *testing.T) {
	if m, err := ParseMode(" Model "); err != nil || m != ModeModel {
		t.Fatalf("ParseMode: %v %v", m, err)
	}
	if m, err := ParseMode(""); err != nil || m != ModeRules {
		t.Fatalf("ParseMode empty: %v %v", m, err)
	}
	if _, err := ParseMode("x"); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode")
	}
	if m, err := ParseMethod("ABSTRACTIVE"); err != nil || m != MethodAbstractive {
		t.Fatalf("ParseMethod: %v %v", m, err)
	}
	if !strings.Contains(ErrModelUnavailable.Error(), "model") {
		t.Fatalf("error text")
	}
}

func TestSimplify_UnchangedTextIsNotEasier(t *testing.T) {
	e := &Engine{}
	res, err := e.Simplify(context.Background(), SimplifyRequest{Text: "The cat sat on the mat.", Level: simplify.Intermediate})
	if err != nil {
		t.Fatalf("simplify: %v", err)
	}
	if res.Simplified != "The cat sat on the mat." || res.Easier {
		t.Fatalf("plain text should come back unchanged and not easier: %+v", res)
	}
}
