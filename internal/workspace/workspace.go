// Package workspace resolves the canonical project root for a helper
// invocation and repairs a known class of corrupted path strings supplied by
// upstream agents. Every other subsystem addresses files relative to the
// root resolved here, so resolution failure is fatal.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// PwdEnv carries the invoking agent's notion of the present working
// directory. It outranks the process cwd because agents routinely spawn
// helpers from a directory other than the project they are editing.
const PwdEnv = "SPECSMITH_PWD"

// ErrNotResolvable means no root candidate exists on disk. Nothing
// downstream can proceed without a root, so callers treat this as fatal.
var ErrNotResolvable = errors.New("workspace root not resolvable")

// Strategy produces one root candidate, or "" when its source has nothing
// to offer. Candidates are tried in order with short-circuit on the first
// that exists as a directory.
type Strategy func() string

// Resolver resolves the workspace root from an ordered strategy chain.
type Resolver struct {
	strategies []Strategy
	log        *zap.Logger
}

// NewResolver builds a resolver with the default chain:
// SPECSMITH_PWD, then the process working directory, then the user home.
func NewResolver(log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		strategies: []Strategy{
			EnvStrategy(PwdEnv),
			CwdStrategy,
			HomeStrategy,
		},
		log: log,
	}
}

// NewResolverWithStrategies builds a resolver with an explicit chain.
// Used by tests and by callers that already know the root.
func NewResolverWithStrategies(log *zap.Logger, strategies ...Strategy) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{strategies: strategies, log: log}
}

// EnvStrategy reads a root candidate from an environment variable.
func EnvStrategy(key string) Strategy {
	return func() string { return os.Getenv(key) }
}

// CwdStrategy reads the process working directory.
func CwdStrategy() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return cwd
}

// HomeStrategy reads the invoking user's home directory.
func HomeStrategy() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// Resolve returns the first candidate that exists on disk as a directory,
// as a cleaned absolute path. Returns ErrNotResolvable when the whole chain
// is exhausted.
func (r *Resolver) Resolve() (string, error) {
	for i, strategy := range r.strategies {
		candidate := strategy()
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			r.log.Debug("root candidate not absolutizable",
				zap.String("candidate", candidate), zap.Error(err))
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			r.log.Debug("root candidate rejected",
				zap.Int("strategy", i), zap.String("candidate", abs))
			continue
		}
		r.log.Debug("workspace root resolved",
			zap.Int("strategy", i), zap.String("root", abs))
		return abs, nil
	}
	return "", fmt.Errorf("%w: tried %d candidates", ErrNotResolvable, len(r.strategies))
}
