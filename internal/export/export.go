// Package export renders a simplification result as a downloadable text or
// PDF report.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/clauseease/internal/readability"
	"github.com/hyperifyio/clauseease/internal/store"
)

// Report is everything shown in an exported result.
type Report struct {
	Title      string
	Level      string
	Mode       string
	Original   string
	Simplified string
	Summary    string
	Before     readability.Scores
	After      readability.Scores
	CreatedAt  time.Time
}

// FromSimplification builds a report from a logged run.
func FromSimplification(r store.Simplification) Report {
	return Report{
		Title:      fmt.Sprintf("Simplification #%d", r.ID),
		Level:      r.Level,
		Mode:       r.Mode,
		Original:   r.Original,
		Simplified: r.Simplified,
		Summary:    r.Summary,
		Before:     r.Before,
		After:      r.After,
		CreatedAt:  r.CreatedAt,
	}
}

func (r Report) title() string {
	if strings.TrimSpace(r.Title) == "" {
		return "ClauseEase report"
	}
	return r.Title
}

func scoreLines(s readability.Scores) []string {
	return []string{
		fmt.Sprintf("Flesch Reading Ease: %.2f (%s)", s.FleschReadingEase, readability.EaseLabel(s.FleschReadingEase)),
		fmt.Sprintf("Flesch-Kincaid Grade: %.2f (%s)", s.FleschKincaidGrade, readability.GradeLabel(s.FleschKincaidGrade)),
		fmt.Sprintf("Gunning Fog: %.2f", s.GunningFog),
	}
}

type section struct {
	heading string
	body    []string
}

func (r Report) sections() []section {
	meta := []string{}
	if r.Level != "" {
		meta = append(meta, "Level: "+r.Level)
	}
	if r.Mode != "" {
		meta = append(meta, "Mode: "+r.Mode)
	}
	if !r.CreatedAt.IsZero() {
		meta = append(meta, "Created: "+r.CreatedAt.UTC().Format(time.RFC3339))
	}
	out := []section{}
	if len(meta) > 0 {
		out = append(out, section{body: meta})
	}
	out = append(out,
		section{"Simplified text", []string{r.Simplified}},
	)
	if strings.TrimSpace(r.Summary) != "" {
		out = append(out, section{"Summary", []string{r.Summary}})
	}
	out = append(out,
		section{"Readability before", scoreLines(r.Before)},
		section{"Readability after", scoreLines(r.After)},
		section{"Original text", []string{r.Original}},
	)
	return out
}

// Text renders r as plain text.
func Text(r Report) string {
	var b strings.Builder
	t := r.title()
	b.WriteString(t)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", len([]rune(t))))
	b.WriteString("\n")
	for _, s := range r.sections() {
		b.WriteString("\n")
		if s.heading != "" {
			b.WriteString(s.heading)
			b.WriteString("\n")
			b.WriteString(strings.Repeat("-", len([]rune(s.heading))))
			b.WriteString("\n")
		}
		for _, line := range s.body {
			b.WriteString(strings.TrimSpace(line))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// PDF renders r as an A4 document. Text outside the cp1252 range is
// replaced by the translator.
func PDF(w io.Writer, r Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(r.title()), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, tr(r.title()), "", 1, "L", false, 0, "")
	for _, s := range r.sections() {
		pdf.Ln(3)
		if s.heading != "" {
			pdf.SetFont("Helvetica", "B", 12)
			pdf.CellFormat(0, 7, tr(s.heading), "", 1, "L", false, 0, "")
		}
		pdf.SetFont("Helvetica", "", 11)
		for _, line := range s.body {
			for _, para := range strings.Split(line, "\n") {
				if strings.TrimSpace(para) == "" {
					pdf.Ln(3)
					continue
				}
				pdf.MultiCell(0, 5, tr(para), "", "L", false)
			}
		}
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
