// Command clauseease simplifies and summarizes contract text from the command
// line, serves the HTTP API and exposes the same operations as MCP tools.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Logging setup; the root command may switch to JSON once config is read.
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(report(err))
	}
}

// report logs err and returns the process exit code: 2 for input the user
// must fix, 1 for everything else.
func report(err error) int {
	var w *warning
	if errors.As(err, &w) {
		log.Warn().Msg(w.msg)
		return 2
	}
	log.Error().Err(err).Msg("clauseease failed")
	return 1
}

// warning is an error shown as a plain message instead of a failure.
type warning struct{ msg string }

func (w *warning) Error() string { return w.msg }
