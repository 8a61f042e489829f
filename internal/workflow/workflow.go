// Package workflow runs a full simplification or summarization request:
// normalization, the chosen algorithm, readability before and after, and
// persistence of the result.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/clauseease/internal/llm"
	"github.com/hyperifyio/clauseease/internal/preprocess"
	"github.com/hyperifyio/clauseease/internal/readability"
	"github.com/hyperifyio/clauseease/internal/simplify"
	"github.com/hyperifyio/clauseease/internal/store"
	"github.com/hyperifyio/clauseease/internal/summarize"
)

var (
	// ErrEmptyInput is returned when the request text is blank.
	ErrEmptyInput = errors.New("no text provided")
	// ErrModelUnavailable is returned when a model-backed mode is requested
	// but no model backend is configured.
	ErrModelUnavailable = errors.New("model backend not configured")
	// ErrModelFailed wraps errors returned by the model backend.
	ErrModelFailed = errors.New("model backend failed")
	// ErrUnknownMode is returned for an unrecognized mode or method.
	ErrUnknownMode = errors.New("unknown mode")
)

// Mode selects how text is simplified.
type Mode string

const (
	ModeRules Mode = "rules"
	ModeModel Mode = "model"
)

// Method selects how text is summarized.
type Method string

const (
	MethodHybrid      Method = "hybrid"
	MethodAbstractive Method = "abstractive"
)

// ModelSimplifier rewrites text at a level with a generative model.
type ModelSimplifier interface {
	Simplify(ctx context.Context, text string, level simplify.Level) (string, error)
}

// AbstractiveSummarizer summarizes text with a generative model.
type AbstractiveSummarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Recorder stores finished simplifications.
type Recorder interface {
	LogSimplification(ctx context.Context, r store.Simplification) (int64, error)
}

// Engine coordinates the algorithms. The zero value runs rules-only
// simplification and hybrid summarization with default weights.
type Engine struct {
	Model       ModelSimplifier
	Summarizer  *summarize.Summarizer
	Abstractive AbstractiveSummarizer
	Scorer      readability.Scorer
	Recorder    Recorder
	// ModelTimeout bounds each model call. Zero means no extra bound.
	ModelTimeout time.Duration
	// DefaultRatio is used when a request leaves Ratio at zero.
	DefaultRatio float64
}

// SimplifyRequest is one simplification job.
type SimplifyRequest struct {
	UserID    int64          `json:"-"`
	Text      string         `json:"text"`
	Level     simplify.Level `json:"level"`
	Mode      Mode           `json:"mode,omitempty"`
	Summarize bool           `json:"summarize,omitempty"`
	Ratio     float64        `json:"ratio,omitempty"`
}

// SimplifyResult is the outcome of Simplify.
type SimplifyResult struct {
	// ID is the log entry id, zero when the run was not recorded.
	ID          int64              `json:"id,omitempty"`
	Level       simplify.Level     `json:"level"`
	Mode        Mode               `json:"mode"`
	Original    string             `json:"original"`
	Simplified  string             `json:"simplified"`
	Summary     string             `json:"summary,omitempty"`
	Before      readability.Scores `json:"before"`
	After       readability.Scores `json:"after"`
	Delta       readability.Delta  `json:"delta"`
	Easier      bool               `json:"easier"`
	BeforeEase  string             `json:"before_ease"`
	AfterEase   string             `json:"after_ease"`
	BeforeGrade string             `json:"before_grade"`
	AfterGrade  string             `json:"after_grade"`
}

func (e *Engine) scorer() readability.Scorer {
	if e.Scorer == nil {
		return readability.Standard{}
	}
	return e.Scorer
}

func (e *Engine) summarizer() *summarize.Summarizer {
	if e.Summarizer == nil {
		s, _ := summarize.New(summarize.DefaultWeights)
		return s
	}
	return e.Summarizer
}

func (e *Engine) ratio(r float64) float64 {
	if r != 0 {
		return r
	}
	if e.DefaultRatio != 0 {
		return e.DefaultRatio
	}
	return summarize.DefaultRatio
}

func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.ModelTimeout > 0 {
		return context.WithTimeout(ctx, e.ModelTimeout)
	}
	return context.WithCancel(ctx)
}

func modelError(err error) error {
	if errors.Is(err, llm.ErrNotConfigured) {
		return ErrModelUnavailable
	}
	return fmt.Errorf("%w: %w", ErrModelFailed, err)
}

// Simplify normalizes req.Text, simplifies it, scores both versions and
// optionally summarizes the simplified text. The run is recorded when a
// Recorder is set and req.UserID is non-zero; a recording failure is logged
// and does not fail the request.
func (e *Engine) Simplify(ctx context.Context, req SimplifyRequest) (SimplifyResult, error) {
	text := preprocess.Normalize(req.Text)
	if text == "" {
		return SimplifyResult{}, ErrEmptyInput
	}
	if !req.Level.Valid() {
		return SimplifyResult{}, simplify.ErrUnknownLevel
	}
	mode := req.Mode
	if mode == "" {
		mode = ModeRules
	}
	res := SimplifyResult{Level: req.Level, Mode: mode, Original: text}
	switch mode {
	case ModeRules:
		res.Simplified = simplify.Simplify(text, req.Level)
	case ModeModel:
		if e.Model == nil {
			return SimplifyResult{}, ErrModelUnavailable
		}
		mctx, cancel := e.withTimeout(ctx)
		out, err := e.Model.Simplify(mctx, text, req.Level)
		cancel()
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("level", req.Level.String()).Msg("model simplification failed")
			return SimplifyResult{}, modelError(err)
		}
		res.Simplified = out
	default:
		return SimplifyResult{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	sc := e.scorer()
	res.Before = sc.Score(text)
	res.After = sc.Score(res.Simplified)
	res.Delta = readability.Compare(res.Before, res.After)
	res.Easier = res.Delta.Easier()
	res.BeforeEase = readability.EaseLabel(res.Before.FleschReadingEase)
	res.AfterEase = readability.EaseLabel(res.After.FleschReadingEase)
	res.BeforeGrade = readability.GradeLabel(res.Before.FleschKincaidGrade)
	res.AfterGrade = readability.GradeLabel(res.After.FleschKincaidGrade)

	if req.Summarize {
		sum, err := e.summarizer().Summarize(res.Simplified, e.ratio(req.Ratio))
		if err != nil {
			return SimplifyResult{}, err
		}
		res.Summary = sum
	}

	if e.Recorder != nil && req.UserID != 0 {
		id, err := e.Recorder.LogSimplification(ctx, store.Simplification{
			UserID:     req.UserID,
			Level:      req.Level.String(),
			Mode:       string(mode),
			Original:   text,
			Simplified: res.Simplified,
			Summary:    res.Summary,
			Before:     res.Before,
			After:      res.After,
		})
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Int64("user_id", req.UserID).Msg("record simplification")
		} else {
			res.ID = id
		}
	}
	return res, nil
}

// SummarizeRequest is one summarization job.
type SummarizeRequest struct {
	Text   string  `json:"text"`
	Method Method  `json:"method,omitempty"`
	Ratio  float64 `json:"ratio,omitempty"`
}

// SummarizeResult is the outcome of Summarize. Scores is set for the hybrid
// method only.
type SummarizeResult struct {
	Method        Method                    `json:"method"`
	Ratio         float64                   `json:"ratio,omitempty"`
	Summary       string                    `json:"summary"`
	Scores        []summarize.SentenceScore `json:"scores,omitempty"`
	Selected      []int                     `json:"selected,omitempty"`
	SentenceCount int                       `json:"sentence_count"`
	OriginalWords int                       `json:"original_words"`
	SummaryWords  int                       `json:"summary_words"`
}

// Summarize normalizes req.Text and summarizes it with the requested method.
func (e *Engine) Summarize(ctx context.Context, req SummarizeRequest) (SummarizeResult, error) {
	text := preprocess.Normalize(req.Text)
	if text == "" {
		return SummarizeResult{}, ErrEmptyInput
	}
	method := req.Method
	if method == "" {
		method = MethodHybrid
	}
	res := SummarizeResult{
		Method:        method,
		SentenceCount: len(preprocess.Sentences(text)),
		OriginalWords: preprocess.FieldCount(text),
	}
	switch method {
	case MethodHybrid:
		res.Ratio = e.ratio(req.Ratio)
		out, err := e.summarizer().Extract(text, res.Ratio)
		if err != nil {
			return SummarizeResult{}, err
		}
		res.Summary = out.Summary
		res.Scores = out.Scores
		res.Selected = out.Selected
	case MethodAbstractive:
		if e.Abstractive == nil {
			return SummarizeResult{}, ErrModelUnavailable
		}
		mctx, cancel := e.withTimeout(ctx)
		out, err := e.Abstractive.Summarize(mctx, text)
		cancel()
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("abstractive summary failed")
			return SummarizeResult{}, modelError(err)
		}
		res.Summary = out
	default:
		return SummarizeResult{}, fmt.Errorf("%w: %q", ErrUnknownMode, method)
	}
	res.SummaryWords = preprocess.FieldCount(res.Summary)
	return res, nil
}

// Analyze returns the readability report for text.
func (e *Engine) Analyze(text string) (readability.Report, error) {
	if strings.TrimSpace(text) == "" {
		return readability.Report{}, ErrEmptyInput
	}
	return readability.Analyze(e.scorer(), preprocess.Normalize(text)), nil
}

// ParseMode accepts "rules" or "model"; empty means rules.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeRules:
		return ModeRules, nil
	case ModeModel:
		return ModeModel, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// ParseMethod accepts "hybrid" or "abstractive"; empty means hybrid.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(s))) {
	case "", MethodHybrid:
		return MethodHybrid, nil
	case MethodAbstractive:
		return MethodAbstractive, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}
