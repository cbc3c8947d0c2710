package envchecker

import (
	_ "embed"
	"log/slog"
	"time"

	"github.com/aretw0/envchecker/internal/logging"
	"github.com/aretw0/envchecker/pkg/env"
	"github.com/aretw0/envchecker/pkg/schema"
)

//go:embed VERSION
var Version string

// DefaultConfigFile is the schema file looked up in the working directory.
const DefaultConfigFile = "envchecker.config.yaml"

// Outcome is the result of a Check. Config is set whenever the schema loaded,
// even if validation failed, so callers can still report its warnings.
type Outcome struct {
	Config  *schema.Config
	Result  *schema.Result
	Elapsed time.Duration
}

type checker struct {
	envFiles []string
	layers   []env.Map
	source   env.Source
	registry *schema.Registry
	logger   *slog.Logger
}

// Option defines a functional option for Check.
type Option func(*checker)

// WithEnvFiles layers dotenv files under the process environment.
// Later files override earlier ones.
func WithEnvFiles(paths ...string) Option {
	return func(c *checker) {
		c.envFiles = append(c.envFiles, paths...)
	}
}

// WithLayer adds a snapshot above the dotenv files and below the process environment.
func WithLayer(m env.Map) Option {
	return func(c *checker) {
		c.layers = append(c.layers, m)
	}
}

// WithSource validates against src only, ignoring files, layers and the process environment.
func WithSource(src env.Source) Option {
	return func(c *checker) {
		c.source = src
	}
}

// WithRegistry sets the predicate registry used to resolve `validate` names.
func WithRegistry(reg *schema.Registry) Option {
	return func(c *checker) {
		c.registry = reg
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *checker) {
		c.logger = logger
	}
}

// Check loads the schema at configPath, resolves its validator names and
// validates the layered environment against it.
func Check(configPath string, opts ...Option) (*Outcome, error) {
	c := &checker{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	if c.registry == nil {
		c.registry = schema.DefaultRegistry()
	}

	cfg, err := schema.Load(configPath)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("Schema loaded", "path", configPath, "variables", len(cfg.Variables), "warnings", len(cfg.Warnings))

	out := &Outcome{Config: cfg}
	if err := cfg.Resolve(c.registry); err != nil {
		return out, err
	}

	src, err := c.environment()
	if err != nil {
		return out, err
	}

	start := time.Now()
	res, err := schema.Validate(cfg, src, schema.WithRegistry(c.registry))
	out.Elapsed = time.Since(start)
	out.Result = res
	if err != nil {
		c.logger.Debug("Validation failed", "err", err, "elapsed", out.Elapsed)
		return out, err
	}

	c.logger.Debug("Validation succeeded", "variables", len(res.Values), "elapsed", out.Elapsed)
	return out, nil
}

// environment builds the source: dotenv files, then layers, then the process environment.
func (c *checker) environment() (env.Source, error) {
	if c.source != nil {
		return c.source, nil
	}

	files, err := env.ReadFiles(c.envFiles...)
	if err != nil {
		return nil, err
	}
	layers := append([]env.Map{files}, c.layers...)
	layers = append(layers, env.FromOS())
	merged := env.Layer(layers...)
	c.logger.Debug("Environment assembled", "files", len(c.envFiles), "layers", len(c.layers), "keys", len(merged))
	return merged, nil
}
