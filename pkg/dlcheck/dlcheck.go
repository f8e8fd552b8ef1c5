// Package dlcheck checks that every type of a Go module is either Data or
// Logic. It is meant to run from a test or at start-up:
//
//	func TestArchitecture(t *testing.T) {
//		if _, err := dlcheck.Check(context.Background(), ".", "./..."); err != nil {
//			t.Fatal(err)
//		}
//	}
package dlcheck

import (
	"context"
	"fmt"
	"path/filepath"

	"dlcheck/internal/classify"
	"dlcheck/internal/config"
	"dlcheck/internal/typeinfo"
	"dlcheck/internal/typeinfo/gotypes"
	"dlcheck/internal/validate"
	"dlcheck/internal/whitelist"
)

// Re-exported so callers can inspect failures without importing internals.
type (
	Report              = validate.Report
	DualCategoryFailure = validate.DualCategoryFailure
)

// Check validates the module in dir using its .dlcheck.yaml (or the
// defaults). Non-empty patterns replace the configured ones.
func Check(ctx context.Context, dir string, patterns ...string) (*Report, error) {
	cfg, err := config.Load(filepath.Join(dir, config.DefaultFileName))
	if err != nil {
		return nil, err
	}
	if len(patterns) > 0 {
		cfg.Patterns = patterns
	}
	return CheckWithConfig(ctx, dir, cfg)
}

// CheckWithConfig validates the module in dir with an explicit config.
func CheckWithConfig(ctx context.Context, dir string, cfg *config.Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p, err := LoadProvider(ctx, dir, cfg)
	if err != nil {
		return nil, err
	}
	return validate.NewSession(p, SessionOptions(cfg)...).RunContext(ctx, p.Types())
}

// LoadProvider loads the packages of dir selected by cfg.
func LoadProvider(ctx context.Context, dir string, cfg *config.Config) (*gotypes.Provider, error) {
	p, err := gotypes.Load(ctx, gotypes.Config{
		Dir:                dir,
		Patterns:           cfg.Patterns,
		Tests:              cfg.Tests,
		StateTypes:         cfg.StateTypes,
		BuiltinCollections: cfg.BuiltinCollections,
		CacheSize:          cfg.DescriptorCacheSize,
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", dir, err)
	}
	return p, nil
}

// Whitelist builds the whitelist registry described by cfg.
func Whitelist(cfg *config.Config) *whitelist.Registry {
	extra := make([]typeinfo.TypeID, len(cfg.Whitelist))
	for i, id := range cfg.Whitelist {
		extra[i] = typeinfo.TypeID(id)
	}
	return whitelist.New(
		whitelist.WithExtra(extra...),
		whitelist.WithIgnore(whitelist.Glob(cfg.Ignore...)),
		whitelist.WithApproved(whitelist.Glob(cfg.Approved...)),
	)
}

// Collections returns the trusted-collection namespace predicate: builtin
// collections plus the configured package globs.
func Collections(cfg *config.Config) func(namespace string) bool {
	match := whitelist.Glob(cfg.Collections...)
	return func(ns string) bool {
		if ns == gotypes.BuiltinNamespace {
			return true
		}
		return match != nil && match(typeinfo.TypeID(ns))
	}
}

// ClassifierOptions translates cfg into classifier options.
func ClassifierOptions(cfg *config.Config) []classify.Option {
	return []classify.Option{
		classify.WithWhitelist(Whitelist(cfg)),
		classify.WithCollections(Collections(cfg)),
		classify.WithEqualityMethods(cfg.EqualityMethods...),
		classify.WithHashMethods(cfg.HashMethods...),
	}
}

// SessionOptions translates cfg into validation session options.
func SessionOptions(cfg *config.Config) []validate.Option {
	return []validate.Option{
		validate.WithClassifier(ClassifierOptions(cfg)...),
		validate.WithKeepGoing(cfg.KeepGoing),
	}
}
