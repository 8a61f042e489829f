// Package app wires configuration, the model backend, storage and the HTTP
// API into a runnable service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/clauseease/internal/api"
	"github.com/hyperifyio/clauseease/internal/auth"
	"github.com/hyperifyio/clauseease/internal/cache"
	"github.com/hyperifyio/clauseease/internal/glossary"
	"github.com/hyperifyio/clauseease/internal/llm"
	"github.com/hyperifyio/clauseease/internal/readability"
	"github.com/hyperifyio/clauseease/internal/simplify"
	"github.com/hyperifyio/clauseease/internal/store"
	"github.com/hyperifyio/clauseease/internal/summarize"
	"github.com/hyperifyio/clauseease/internal/workflow"
)

// maintenanceInterval is how often expired sessions and stale cache entries
// are purged while serving.
const maintenanceInterval = time.Hour

type App struct {
	cfg      Config
	Engine   *workflow.Engine
	Glossary *glossary.Glossary
	Store    *store.Store
	cache    *cache.LLMCache
}

// New builds the engine and its collaborators. The database is opened
// separately with OpenStore so offline commands never touch it.
func New(ctx context.Context, cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	g := glossary.Default()
	if cfg.GlossaryPath != "" {
		loaded, err := glossary.Load(cfg.GlossaryPath)
		if err != nil {
			return nil, fmt.Errorf("glossary: %w", err)
		}
		g = loaded
	}

	summarizer, err := summarize.New(cfg.SummaryWeights)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:      cfg,
		Glossary: g,
		Engine: &workflow.Engine{
			Summarizer:   summarizer,
			Scorer:       readability.Standard{},
			ModelTimeout: cfg.ModelTimeout,
			DefaultRatio: cfg.DefaultRatio,
		},
	}

	if !cfg.ModelConfigured() {
		log.Info().Msg("no model backend configured; model mode disabled")
		return a, nil
	}

	if cfg.CacheDir != "" {
		a.cache = &cache.LLMCache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
		a.pruneCache()
	}

	provider := llm.NewOpenAIProvider(cfg.LLMBaseURL, cfg.LLMAPIKey, newHighThroughputHTTPClient(cfg.SSLVerify))
	gen := &llm.ChatGenerator{Client: provider, Model: cfg.LLMModel, Cache: a.cache}
	a.Engine.Model = &simplify.ModelSimplifier{Generator: gen, Model: cfg.LLMModel}
	a.Engine.Abstractive = &summarize.Abstractive{Generator: gen, Model: cfg.LLMModel}

	// Quick connectivity check by listing models. Best-effort: a backend
	// that is down surfaces later as 503/502 on model requests.
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	models, err := provider.ListModels(pctx)
	if err != nil {
		log.Warn().Err(err).Str("base", cfg.LLMBaseURL).Msg("LLM model list failed; continuing")
	} else if len(models.Models) > 0 {
		log.Info().Int("count", len(models.Models)).Msg("LLM models available")
	} else {
		log.Warn().Msg("LLM returned zero models")
	}
	return a, nil
}

// Config returns the configuration the app was built with.
func (a *App) Config() Config { return a.cfg }

// OpenStore opens the database, attaches it as the engine's recorder and
// seeds the administrator account when one is configured.
func (a *App) OpenStore(ctx context.Context) error {
	if a.Store != nil {
		return nil
	}
	st, err := store.Open(a.cfg.DBPath)
	if err != nil {
		return err
	}
	a.Store = st
	a.Engine.Recorder = st
	if a.cfg.AdminEmail != "" {
		created, err := auth.EnsureAdmin(ctx, st, a.cfg.AdminEmail, a.cfg.AdminPassword)
		if err != nil {
			return fmt.Errorf("admin account: %w", err)
		}
		log.Info().Str("email", store.NormalizeEmail(a.cfg.AdminEmail)).Bool("created", created).Msg("admin account ready")
	}
	return nil
}

func (a *App) Close() {
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			log.Warn().Err(err).Msg("close store")
		}
		a.Store = nil
	}
}

// Handler returns the HTTP API over the opened store.
func (a *App) Handler() (http.Handler, error) {
	if a.Store == nil {
		return nil, errors.New("store not opened")
	}
	h := api.NewHandler(a.Store, a.Engine, a.Glossary, api.Options{
		MaxUploadBytes: a.cfg.MaxUploadBytes,
		SessionTTL:     a.cfg.SessionTTL,
	})
	return api.NewServer(h, log.Logger), nil
}

// Serve listens on cfg.ListenAddr until ctx is cancelled, then shuts the
// server down gracefully.
func (a *App) Serve(ctx context.Context) error {
	if err := a.OpenStore(ctx); err != nil {
		return err
	}
	handler, err := a.Handler()
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              a.cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go a.maintain(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", a.cfg.ListenAddr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func (a *App) maintain(ctx context.Context) {
	ticker := time.NewTicker(maintenanceInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.runMaintenance(ctx)
		}
	}
}

func (a *App) runMaintenance(ctx context.Context) {
	if a.Store != nil {
		n, err := a.Store.PurgeExpiredSessions(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("purge sessions")
		} else if n > 0 {
			log.Debug().Int64("removed", n).Msg("expired sessions purged")
		}
	}
	a.pruneCache()
}

// pruneCache applies the age and size limits to the model cache. Errors are
// logged and never fatal.
func (a *App) pruneCache() {
	if a.cache == nil {
		return
	}
	if a.cfg.CacheMaxAge > 0 {
		if n, err := cache.PurgeLLMCacheByAge(a.cache.Dir, a.cfg.CacheMaxAge); err != nil {
			log.Warn().Err(err).Msg("purge model cache by age")
		} else if n > 0 {
			log.Debug().Int("removed", n).Msg("stale model cache entries purged")
		}
	}
	if a.cfg.CacheMaxBytes > 0 || a.cfg.CacheMaxCount > 0 {
		if n, err := cache.EnforceLLMCacheLimits(a.cache.Dir, a.cfg.CacheMaxBytes, a.cfg.CacheMaxCount); err != nil {
			log.Warn().Err(err).Msg("enforce model cache limits")
		} else if n > 0 {
			log.Debug().Int("removed", n).Msg("model cache trimmed")
		}
	}
}
