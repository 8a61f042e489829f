package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hyperifyio/clauseease/internal/app"
	"github.com/hyperifyio/clauseease/internal/export"
	"github.com/hyperifyio/clauseease/internal/ingest"
	"github.com/hyperifyio/clauseease/internal/readability"
	"github.com/hyperifyio/clauseease/internal/simplify"
	"github.com/hyperifyio/clauseease/internal/summarize"
	"github.com/hyperifyio/clauseease/internal/workflow"
)

// readInput returns the text of the file named by args[0], read through the
// ingest extractors, or standard input when no file or "-" is given.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	p, err := ingest.Extract(args[0], data)
	if err != nil {
		return "", err
	}
	return p.Text, nil
}

// emptyAs turns workflow.ErrEmptyInput into a warning carrying msg.
func emptyAs(err error, msg string) error {
	if errors.Is(err, workflow.ErrEmptyInput) {
		return &warning{msg: msg}
	}
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newSimplifyCmd(opts *rootOptions) *cobra.Command {
	var (
		level      string
		mode       string
		summarizeF bool
		ratio      float64
		asJSON     bool
		exportPath string
	)
	cmd := &cobra.Command{
		Use:   "simplify [file|-]",
		Short: "Rewrite contract text in plainer language",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := simplify.ParseLevel(level)
			if err != nil {
				return err
			}
			m, err := workflow.ParseMode(mode)
			if err != nil {
				return err
			}
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			a, err := app.New(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.Engine.Simplify(cmd.Context(), workflow.SimplifyRequest{
				Text:      text,
				Level:     lvl,
				Mode:      m,
				Summarize: summarizeF,
				Ratio:     ratio,
			})
			if err != nil {
				return emptyAs(err, simplify.EmptyInputMessage)
			}
			if exportPath != "" {
				if err := writeReport(exportPath, res); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, res)
			}
			fmt.Fprintln(out, res.Simplified)
			if res.Summary != "" {
				fmt.Fprintf(out, "\nSummary:\n%s\n", res.Summary)
			}
			fmt.Fprintf(out, "\nReading ease: %.2f (%s) -> %.2f (%s)\n",
				res.Before.FleschReadingEase, res.BeforeEase, res.After.FleschReadingEase, res.AfterEase)
			fmt.Fprintf(out, "Grade level: %.2f (%s) -> %.2f (%s)\n",
				res.Before.FleschKincaidGrade, res.BeforeGrade, res.After.FleschKincaidGrade, res.AfterGrade)
			if !res.Easier {
				fmt.Fprintln(out, "Reading ease did not improve; try a simpler level.")
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&level, "level", "l", "intermediate", "basic, intermediate or advanced")
	f.StringVar(&mode, "mode", "rules", "rules or model")
	f.BoolVar(&summarizeF, "summarize", false, "Also produce a hybrid summary")
	f.Float64Var(&ratio, "ratio", 0, "Summary compression ratio in (0, 1]; 0 uses the configured default")
	f.BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	f.StringVar(&exportPath, "export", "", "Write a report to this .txt or .pdf path")
	return cmd
}

func writeReport(path string, res workflow.SimplifyResult) error {
	r := export.Report{
		Level:      res.Level.String(),
		Mode:       string(res.Mode),
		Original:   res.Original,
		Simplified: res.Simplified,
		Summary:    res.Summary,
		Before:     res.Before,
		After:      res.After,
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return os.WriteFile(path, []byte(export.Text(r)), 0o644)
	case ".pdf":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := export.PDF(f, r); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return fmt.Errorf("export %s: want a .txt or .pdf path", path)
}

func newSummarizeCmd(opts *rootOptions) *cobra.Command {
	var (
		method string
		ratio  float64
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "summarize [file|-]",
		Short: "Summarize contract text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := workflow.ParseMethod(method)
			if err != nil {
				return err
			}
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			a, err := app.New(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.Engine.Summarize(cmd.Context(), workflow.SummarizeRequest{Text: text, Method: m, Ratio: ratio})
			if err != nil {
				return emptyAs(err, summarize.EmptyInputMessage)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Summary)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&method, "method", "hybrid", "hybrid or abstractive")
	f.Float64Var(&ratio, "ratio", 0, "Compression ratio in (0, 1]; 0 uses the configured default")
	f.BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	return cmd
}

func newReadabilityCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "readability [file|-]",
		Short: "Score how hard a text is to read",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			a, err := app.New(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			rep, err := a.Engine.Analyze(text)
			if err != nil {
				return emptyAs(err, readability.EmptyInputMessage)
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, rep)
			}
			printReport(out, rep)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full report as JSON")
	return cmd
}

func printReport(w io.Writer, rep readability.Report) {
	fmt.Fprintf(w, "Flesch Reading Ease:  %.2f (%s)\n", rep.Scores.FleschReadingEase, rep.EaseLabel)
	fmt.Fprintf(w, "Flesch-Kincaid Grade: %.2f (%s)\n", rep.Scores.FleschKincaidGrade, rep.GradeLabel)
	fmt.Fprintf(w, "Gunning Fog:          %.2f\n", rep.Scores.GunningFog)
	fmt.Fprintf(w, "Sentences: %d  Words: %d  Punctuation: %d\n", rep.SentenceCount, rep.WordCount, rep.PunctuationCount)
}

func newExtractCmd(_ *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Print the text of a TXT, DOCX, PDF or HTML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			p, err := ingest.Extract(args[0], data)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), p)
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.Text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print filename, title, MIME type and text as JSON")
	return cmd
}
