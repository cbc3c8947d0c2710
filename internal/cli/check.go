package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/envchecker"
	"github.com/aretw0/envchecker/internal/presentation/tui"
	"github.com/aretw0/envchecker/pkg/adapters/redis"
	"github.com/aretw0/envchecker/pkg/schema"
)

// Output formats for the check report.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// CheckOptions contains all the configuration for the check command.
type CheckOptions struct {
	ConfigPath string
	Verbose    bool
	EnvFiles   []string
	RedisAddr  string
	RedisKey   string
	Format     string
	Watch      bool
	Debug      bool
}

// Exit codes of the check command.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// Execute handles the check command, dispatching to watch mode when requested.
func Execute(ctx context.Context, opts CheckOptions, stdout io.Writer) (int, error) {
	if opts.Format != FormatText && opts.Format != FormatJSON {
		return ExitFailure, fmt.Errorf("unknown format %q (want %s or %s)", opts.Format, FormatText, FormatJSON)
	}
	if opts.Watch {
		if opts.Format == FormatJSON {
			return ExitFailure, errors.New("--watch and --format json cannot be used together")
		}
		return ExitOK, RunWatch(ctx, opts, stdout)
	}
	return RunCheck(ctx, opts, stdout), nil
}

// RunCheck validates once, writes the report to stdout and returns the exit code.
func RunCheck(ctx context.Context, opts CheckOptions, stdout io.Writer) int {
	logger := createLogger(opts.Debug)
	out, err := check(ctx, opts, logger)

	if opts.Format == FormatJSON {
		writeJSONReport(stdout, out, err, logger)
	} else {
		writeTextReport(stdout, opts, out, err)
	}

	if err != nil {
		return ExitFailure
	}
	return ExitOK
}

func check(ctx context.Context, opts CheckOptions, logger *slog.Logger) (*envchecker.Outcome, error) {
	checkOpts := []envchecker.Option{
		envchecker.WithEnvFiles(opts.EnvFiles...),
		envchecker.WithLogger(logger),
	}

	if opts.RedisAddr != "" {
		src := redis.New(opts.RedisAddr, "", 0)
		defer src.Close()

		snap, err := src.Snapshot(ctx, opts.RedisKey)
		if err != nil {
			return nil, err
		}
		logger.Debug("Redis snapshot loaded", "addr", opts.RedisAddr, "env", opts.RedisKey, "keys", len(snap))
		checkOpts = append(checkOpts, envchecker.WithLayer(snap))
	}

	return envchecker.Check(opts.ConfigPath, checkOpts...)
}

func writeTextReport(w io.Writer, opts CheckOptions, out *envchecker.Outcome, err error) {
	report := tui.NewReport(w)
	if out != nil && out.Config != nil {
		report.Warnings(out.Config.Warnings)
	}
	if err != nil {
		report.Failure(err, opts.ConfigPath)
		return
	}
	report.Success(out.Config, out.Result, opts.Verbose)
}

// jsonReport is the machine-readable check output.
type jsonReport struct {
	Success      bool           `json:"success"`
	ValidatedEnv map[string]any `json:"validatedEnv,omitempty"`
	Warnings     []string       `json:"warnings,omitempty"`
	Errors       []string       `json:"errors,omitempty"`
	Error        string         `json:"error,omitempty"`
}

func writeJSONReport(w io.Writer, out *envchecker.Outcome, err error, logger *slog.Logger) {
	var rep jsonReport
	if out != nil && out.Config != nil {
		rep.Warnings = out.Config.Warnings
	}

	if err == nil {
		rep.Success = true
		rep.ValidatedEnv = out.Result.Redact(out.Config).Values
	} else {
		rep.Error = err.Error()
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			rep.Errors = verr.Errors()
			rep.Error = verr.Primary()
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		logger.Error("Report encode failed", "err", err)
	}
}
