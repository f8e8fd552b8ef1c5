// Package validate drives the classifier over a set of root types and turns
// types that are neither Data nor Logic into fatal, explained failures.
package validate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dlcheck/internal/classify"
	"dlcheck/internal/logging"
	"dlcheck/internal/typeinfo"

	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// Resolved is the single category a root type resolves to.
type Resolved int

const (
	ResolvedExempt Resolved = iota
	ResolvedLogic
	ResolvedData
)

func (r Resolved) String() string {
	switch r {
	case ResolvedExempt:
		return "exempt"
	case ResolvedLogic:
		return "logic"
	case ResolvedData:
		return "data"
	default:
		return fmt.Sprintf("resolved(%d)", int(r))
	}
}

// MarshalText renders the category name.
func (r Resolved) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Resolution records how one root type was settled.
type Resolution struct {
	Type     typeinfo.TypeID `json:"type"`
	Name     string          `json:"name"`
	Category Resolved        `json:"category"`
}

// Report summarizes one session run.
type Report struct {
	SessionID    uuid.UUID
	Resolutions  []Resolution
	Failures     []*DualCategoryFailure
	Data         int
	Logic        int
	Exempt       int
	CacheEntries int
	Duration     time.Duration
}

// Checked is the number of roots that were settled or failed.
func (r *Report) Checked() int { return len(r.Resolutions) + len(r.Failures) }

// OK reports whether no root failed.
func (r *Report) OK() bool { return len(r.Failures) == 0 }

// Err combines every failure into one error, nil when the run was clean.
func (r *Report) Err() error {
	var err error
	for _, f := range r.Failures {
		err = multierr.Append(err, f)
	}
	return err
}

type options struct {
	classify  []classify.Option
	keepGoing bool
}

// Option configures a Session.
type Option func(*options)

// WithClassifier forwards options to the session's classifiers. A cache
// passed here is ignored; the session always owns its own.
func WithClassifier(opts ...classify.Option) Option {
	return func(o *options) { o.classify = append(o.classify, opts...) }
}

// WithKeepGoing makes Run collect every failure instead of stopping at the
// first one.
func WithKeepGoing(keepGoing bool) Option {
	return func(o *options) { o.keepGoing = keepGoing }
}

// Session is one validation run. It owns a fresh verdict cache which lives
// exactly as long as the session. A Session is not safe for concurrent use.
type Session struct {
	ID uuid.UUID

	provider  typeinfo.Provider
	cache     *classify.Cache
	cached    *classify.Classifier
	uncached  *classify.Classifier
	keepGoing bool
	log       *logging.Logger
}

// NewSession starts a session over provider.
func NewSession(provider typeinfo.Provider, opts ...Option) *Session {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	id := uuid.New()
	cache := classify.NewCache()
	cached := classify.New(provider, append(o.classify, classify.WithCache(cache))...)

	return &Session{
		ID:        id,
		provider:  provider,
		cache:     cache,
		cached:    cached,
		uncached:  cached.Uncached(),
		keepGoing: o.keepGoing,
		log:       logging.Get(logging.CategoryDriver).With("session", id.String()),
	}
}

// Validate resolves one root. Logic is tried first, then Data. When both fail
// the verdicts are recomputed without the cache and a *DualCategoryFailure is
// returned. A root the provider cannot describe is a provider error, not a
// classification failure.
func (s *Session) Validate(id typeinfo.TypeID) (Resolution, error) {
	name := s.cached.Name(id)
	res := Resolution{Type: id, Name: name}

	if s.cached.Exempt(id) {
		res.Category = ResolvedExempt
		return res, nil
	}
	if _, err := s.provider.Describe(id); err != nil {
		return res, fmt.Errorf("validate %s: %w", id, err)
	}
	if s.cached.IsLogic(id, classify.Chain{}).OK() {
		res.Category = ResolvedLogic
		return res, nil
	}
	if s.cached.IsData(id, classify.Chain{}).OK() {
		res.Category = ResolvedData
		return res, nil
	}

	s.log.Debug("%s failed both categories, rebuilding explanation", name)
	return res, &DualCategoryFailure{
		Type:        id,
		Name:        name,
		DataReason:  s.uncached.IsData(id, classify.Chain{}).Reason,
		LogicReason: s.uncached.IsLogic(id, classify.Chain{}).Reason,
	}
}

// Run validates roots in order.
func (s *Session) Run(roots []typeinfo.TypeID) (*Report, error) {
	return s.RunContext(context.Background(), roots)
}

// RunContext validates roots in order, checking ctx between roots. Without
// keep-going it stops at the first failure; with it every failure is
// collected and returned combined. Provider errors always stop the run.
func (s *Session) RunContext(ctx context.Context, roots []typeinfo.TypeID) (*Report, error) {
	start := time.Now()
	report := &Report{SessionID: s.ID}
	s.log.Info("validating %d types", len(roots))

	var errs error
	for _, id := range roots {
		if err := ctx.Err(); err != nil {
			return s.finish(report, start), err
		}

		res, err := s.Validate(id)
		if err != nil {
			var failure *DualCategoryFailure
			if !errors.As(err, &failure) {
				s.log.Error("%v", err)
				return s.finish(report, start), multierr.Append(errs, err)
			}
			report.Failures = append(report.Failures, failure)
			s.log.Warn("%s is neither Data nor Logic", failure.Name)
			if !s.keepGoing {
				return s.finish(report, start), err
			}
			errs = multierr.Append(errs, err)
			continue
		}

		report.Resolutions = append(report.Resolutions, res)
		switch res.Category {
		case ResolvedData:
			report.Data++
		case ResolvedLogic:
			report.Logic++
		case ResolvedExempt:
			report.Exempt++
		}
	}

	return s.finish(report, start), errs
}

func (s *Session) finish(report *Report, start time.Time) *Report {
	report.Duration = time.Since(start)
	report.CacheEntries = s.cache.Len()
	hits, misses := s.cache.Stats()
	s.log.Info("checked %d types (data=%d logic=%d exempt=%d failed=%d) in %s, cache %d hits / %d misses",
		report.Checked(), report.Data, report.Logic, report.Exempt, len(report.Failures),
		report.Duration, hits, misses)
	return report
}
