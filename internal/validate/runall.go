package validate

import (
	"context"
	"runtime"
	"sync"

	"dlcheck/internal/logging"
	"dlcheck/internal/typeinfo"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Set is an independent group of roots, typically one loaded module.
type Set struct {
	Name     string
	Provider typeinfo.Provider
	Roots    []typeinfo.TypeID
	Options  []Option
}

// RunAll validates independent sets concurrently, each in its own session.
// Reports are returned in the order of sets. Classification failures from
// every set are combined into the returned error; cancellation of ctx stops
// the remaining work and is returned as is.
func RunAll(ctx context.Context, sets []Set) ([]*Report, error) {
	reports := make([]*Report, len(sets))

	var mu sync.Mutex
	var failures error

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for i, set := range sets {
		eg.Go(func() error {
			roots := set.Roots
			if roots == nil {
				if e, ok := set.Provider.(typeinfo.Enumerator); ok {
					roots = e.Types()
				}
			}

			session := NewSession(set.Provider, set.Options...)
			logging.DriverDebug("set %q runs in session %s", set.Name, session.ID)

			report, err := session.RunContext(egCtx, roots)
			reports[i] = report
			if err == nil {
				return nil
			}
			if ctxErr := egCtx.Err(); ctxErr != nil {
				return ctxErr
			}

			mu.Lock()
			failures = multierr.Append(failures, err)
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return reports, err
	}
	return reports, failures
}
