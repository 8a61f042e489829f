package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/clauseease/internal/app"
)

// rootOptions carries the persistent flags and, after PersistentPreRunE, the
// merged configuration.
type rootOptions struct {
	configPath   string
	envFiles     []string
	verbose      bool
	logFormat    string
	dbPath       string
	llmBase      string
	llmModel     string
	llmKey       string
	glossaryPath string
	modelTimeout time.Duration

	cfg app.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "clauseease",
		Short:         "Simplify and summarize contract text",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			setupLogging(cfg, cmd.ErrOrStderr())
			opts.cfg = cfg
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "YAML or JSON config file")
	pf.StringSliceVar(&opts.envFiles, "env-file", []string{".env"}, "dotenv files to load; later files override earlier ones")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")
	pf.StringVar(&opts.logFormat, "log-format", "", "Log format: console or json")
	pf.StringVar(&opts.dbPath, "db", "", "SQLite database path")
	pf.StringVar(&opts.llmBase, "llm.base", "", "OpenAI-compatible base URL")
	pf.StringVar(&opts.llmModel, "llm.model", "", "Model name")
	pf.StringVar(&opts.llmKey, "llm.key", "", "API key for the model server")
	pf.StringVar(&opts.glossaryPath, "glossary", "", "Glossary file replacing the built-in terms")
	pf.DurationVar(&opts.modelTimeout, "model-timeout", 0, "Bound on each model call (e.g. 30s)")

	cmd.AddCommand(
		newServeCmd(opts),
		newSimplifyCmd(opts),
		newSummarizeCmd(opts),
		newReadabilityCmd(opts),
		newExtractCmd(opts),
		newAdminCmd(opts),
		newCacheCmd(opts),
		newMCPCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// load merges configuration with precedence flags > env > file > defaults.
func (o *rootOptions) load(cmd *cobra.Command) (app.Config, error) {
	if err := app.LoadEnvFiles(o.envFiles...); err != nil {
		return app.Config{}, err
	}
	cfg := app.Defaults()
	if o.configPath != "" {
		fc, err := app.LoadConfigFile(o.configPath)
		if err != nil {
			return app.Config{}, err
		}
		if err := app.ApplyFileConfig(&cfg, fc); err != nil {
			return app.Config{}, err
		}
	}
	if err := app.ApplyEnvOverrides(&cfg); err != nil {
		return app.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = o.verbose
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	if flags.Changed("db") {
		cfg.DBPath = o.dbPath
	}
	if flags.Changed("llm.base") {
		cfg.LLMBaseURL = o.llmBase
	}
	if flags.Changed("llm.model") {
		cfg.LLMModel = o.llmModel
	}
	if flags.Changed("llm.key") {
		cfg.LLMAPIKey = o.llmKey
	}
	if flags.Changed("glossary") {
		cfg.GlossaryPath = o.glossaryPath
	}
	if flags.Changed("model-timeout") {
		cfg.ModelTimeout = o.modelTimeout
	}
	return cfg, nil
}

func setupLogging(cfg app.Config, w io.Writer) {
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if w == nil {
		w = os.Stderr
	}
	if cfg.LogFormat == "json" {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.VersionString())
		},
	}
}
