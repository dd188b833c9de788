// Package cli implements the cfgcheck command. It parses flags and
// environment defaults, checks an HCL file against the expected slot types
// and maps the outcome to process exit codes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/KimNorgaard/go-cfgconv"
	"github.com/joeshaw/envdecode"
	"github.com/spf13/cobra"
)

// ExitError is an error that carries the process exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Config holds the defaults that can be set through the environment.
// Flags override them.
type Config struct {
	LogLevel  string `env:"CFGCHECK_LOG_LEVEL,default=warn"`
	LogFormat string `env:"CFGCHECK_LOG_FORMAT,default=text"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("cfgcheck: environment: %w", err)
	}
	return cfg, nil
}

type options struct {
	require   []string
	optional  []string
	dump      bool
	logLevel  string
	logFormat string
}

// Run executes cfgcheck with args, writing results to stdout and logs and
// usage to stderr. The returned error is an *ExitError unless the context
// was cancelled.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := LoadConfig()
	if err != nil {
		return usageError("%s", err)
	}
	cmd := newCommand(cfg, stdout, stderr)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) || errors.Is(err, context.Canceled) {
		return err
	}
	// Everything else comes from cobra's argument and flag handling.
	return usageError("%s\nRun 'cfgcheck --help' for usage.", err)
}

func newCommand(cfg Config, stdout, stderr io.Writer) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "cfgcheck [--require key=type]... [--optional key=type]... FILE",
		Short: "Check the attributes of an HCL file against expected types",
		Long: `cfgcheck decodes the top-level attributes of an HCL file and reports every
problem it finds. Types are written as catalog expressions, for example
uint16, duration, tuple(string, uint16) or list(tuple(string, int8)).

With --dump, every attribute is printed in value literal syntax first.

Exit status is 0 when every slot decoded, 1 when a slot failed and 2 on
usage errors.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts.logLevel, opts.logFormat, stderr)
			if err != nil {
				return err
			}
			slots, err := parseSlots(cfgconv.DefaultCatalog(), opts)
			if err != nil {
				return err
			}
			return check(cmd.Context(), logger, args[0], slots, opts.dump, stdout)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringArrayVar(&opts.require, "require", nil, "`key=type` that must be present (repeatable)")
	flags.StringArrayVar(&opts.optional, "optional", nil, "`key=type` that may be absent (repeatable)")
	flags.BoolVar(&opts.dump, "dump", false, "print every attribute of FILE before checking")
	flags.StringVar(&opts.logLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error ($CFGCHECK_LOG_LEVEL)")
	flags.StringVar(&opts.logFormat, "log-format", cfg.LogFormat, "log format: text or json ($CFGCHECK_LOG_FORMAT)")
	return cmd
}

// newLogger builds the command's logger without touching the global one.
func newLogger(levelStr, formatStr string, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, usageError("invalid log-level %q: must be 'debug', 'info', 'warn' or 'error'", levelStr)
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(formatStr) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	}
	return nil, usageError("invalid log-format %q: must be 'text' or 'json'", formatStr)
}
