package tendril

import (
	"go.uber.org/zap"

	"github.com/tendril-lang/tendril/pkg/value"
)

// config is copy-on-write: every Option returns a new config rather than
// mutating the one it's given, so a Pattern's configuration can't be
// changed out from under a caller still holding it (spec §6.3).
type config struct {
	normalize value.Normalize
	maxSteps  int
	logger    *zap.Logger
	envSeed   map[string]value.Value
}

func defaultConfig() config {
	return config{
		normalize: value.NormalizeNone,
		maxSteps:  0,
		logger:    zap.NewNop(),
	}
}

// Option configures a compiled Pattern.
type Option func(config) config

// WithUnicodeNormalize selects the Unicode normal form string scalars
// and Regex subjects are compared under (SPEC_FULL.md §5: the regex
// source itself is never normalized).
func WithUnicodeNormalize(n value.Normalize) Option {
	return func(c config) config {
		c.normalize = n
		return c
	}
}

// WithMaxSteps bounds how many matcher steps a single query may spend
// (spec §6.3, §9). When the budget runs out the search stops and the
// query's stream ends early; no error is returned to the caller. Zero
// (the default) means unbounded.
func WithMaxSteps(n int) Option {
	return func(c config) config {
		c.maxSteps = n
		return c
	}
}

// WithLogger installs a *zap.Logger for the pattern's Debug/Warn
// diagnostics (SPEC_FULL.md §2). The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c config) config {
		if l != nil {
			c.logger = l
		}
		return c
	}
}

// WithEnvSeed pre-binds scalar names before matching starts, as if the
// query already held those bindings going in. Useful for replaying a
// guard or a sub-pattern against a previously captured value.
func WithEnvSeed(seed map[string]value.Value) Option {
	return func(c config) config {
		cp := make(map[string]value.Value, len(seed))
		for k, v := range seed {
			cp[k] = v
		}
		c.envSeed = cp
		return c
	}
}

func applyOptions(opts []Option) config {
	c := defaultConfig()
	for _, opt := range opts {
		c = opt(c)
	}
	return c
}
