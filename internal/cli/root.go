// Package cli implements the typeconfig command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-typeconfig"
	"github.com/goliatone/go-typeconfig/internal/config"
	"github.com/goliatone/go-typeconfig/internal/logging"
	"github.com/goliatone/go-typeconfig/pkg/abstracttype"
	"github.com/goliatone/go-typeconfig/pkg/columnsettings"
	"github.com/goliatone/go-typeconfig/pkg/form"
	"github.com/goliatone/go-typeconfig/pkg/renderers/tui"
)

// Option customises the command tree, mostly for tests.
type Option func(*app)

// WithRenderer replaces the interactive terminal renderer used by edit.
func WithRenderer(renderer columnsettings.FormRenderer) Option {
	return func(a *app) {
		a.renderer = renderer
	}
}

// WithLogOutput redirects structured logs.
func WithLogOutput(out io.Writer) Option {
	return func(a *app) {
		a.logOut = out
	}
}

type app struct {
	cfgFile  string
	cfg      *config.Config
	logger   *logging.Logger
	logOut   io.Writer
	registry *abstracttype.Registry
	renderer columnsettings.FormRenderer
}

// NewRootCommand builds the typeconfig command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &app{logOut: os.Stderr}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(a)
	}

	root := &cobra.Command{
		Use:           "typeconfig",
		Short:         "Inspect and edit column display options for abstract types",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default typeconfig.yaml in the working directory)")
	flags.String("log-level", config.DefaultLogLevel, "log level: debug, info, warn, error")
	flags.StringP("format", "f", config.DefaultFormat, "output format: json or yaml")
	flags.String("duration-max", "", "default largest duration unit (d, h, m, s, ms)")
	flags.String("duration-min", "", "default smallest duration unit (d, h, m, s, ms)")

	root.AddCommand(
		a.typesCommand(),
		a.schemaCommand(),
		a.optionsSchemaCommand(),
		a.normalizeCommand(),
		a.validateCommand(),
		a.editCommand(),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, a.logOut)
	if err != nil {
		return err
	}

	bounds := cfg.Duration.Range()
	registry, err := typeconfig.NewRegistry(
		typeconfig.WithLogger(logger.Logger),
		typeconfig.WithDurationDefaults(bounds.Max, bounds.Min),
	)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.registry = registry
	if a.renderer == nil {
		a.renderer = tui.New(tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithLogger(ctx, logger.WithValues(logging.CommandKey, cmd.Name())))
	return nil
}

func (a *app) log(cmd *cobra.Command) logr.Logger {
	return logging.FromContext(cmd.Context())
}

func (a *app) write(cmd *cobra.Command, value any) error {
	out, err := form.Encode(value, form.Format(a.cfg.Format))
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
