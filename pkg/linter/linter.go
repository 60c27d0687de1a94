// Package linter walks changelogs and reports rule violations.
//
// # Quick Start
//
//	l := linter.New(linter.WithConfig(cfg))
//	result, err := l.Lint(context.Background(), changeLog)
//	if err != nil {
//	    log.Fatal(err) // configuration error, duplicate include, rule failure
//	}
//	for _, v := range result.Violations {
//	    fmt.Println(v.Message)
//	}
//
// A changelog passes when no rule reports a violation. Violations never stop
// the walk; fatal errors abort it and no partial result is returned.
package linter

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/nsxbet/changelog-linter/pkg/advisor"
	"github.com/nsxbet/changelog-linter/pkg/config"
	_ "github.com/nsxbet/changelog-linter/pkg/rules/core"
	"github.com/nsxbet/changelog-linter/pkg/types"
)

// Linter lints changelogs against one effective configuration.
//
// Linter is safe for concurrent use by multiple goroutines; every Lint call
// has its own Session.
type Linter struct {
	loader   *config.Loader
	registry *advisor.Registry
	resolver Resolver
}

// New creates a Linter. Without options it uses the bundled default
// configuration and the built-in rules.
func New(opts ...Option) *Linter {
	l := &Linter{}
	for _, opt := range opts {
		opt(l)
	}
	if l.loader == nil {
		l.loader = config.NewLoader(config.DefaultSource())
	}
	if l.registry == nil {
		l.registry = advisor.DefaultRegistry()
	}
	return l
}

// Lint walks changeLog and everything it includes with a fresh Session.
func (l *Linter) Lint(ctx context.Context, changeLog *types.ChangeLog) (*Result, error) {
	return l.LintSession(ctx, changeLog, NewSession())
}

// LintLocation resolves location and lints it.
func (l *Linter) LintLocation(ctx context.Context, location string) (*Result, error) {
	if l.resolver == nil {
		return nil, errors.Errorf("no resolver configured to load %q", location)
	}
	changeLog, err := l.resolver.Load(ctx, location)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load changelog %s", location)
	}
	return l.Lint(ctx, changeLog)
}

// LintSession lints changeLog within an existing session, so that several
// root changelogs can share one set of visited locations.
func (l *Linter) LintSession(ctx context.Context, changeLog *types.ChangeLog, session *Session) (*Result, error) {
	if changeLog == nil {
		return nil, errors.New("changelog is nil")
	}
	cfg, err := l.loader.Get()
	if err != nil {
		return nil, err
	}

	w := &walker{
		runner:     advisor.NewRunner(cfg, l.registry),
		session:    session,
		resolver:   l.resolver,
		violations: make([]*advisor.Violation, 0),
	}
	if err := w.runner.RunInclude(changeLog.Location, session); err != nil {
		return nil, err
	}
	if err := w.walk(ctx, changeLog); err != nil {
		return nil, err
	}

	w.summary.Violations = len(w.violations)
	slog.Debug("Lint finished", "location", changeLog.Location, "violations", w.summary.Violations)
	return &Result{
		Location:   changeLog.Location,
		Pass:       len(w.violations) == 0,
		Violations: w.violations,
		Summary:    w.summary,
	}, nil
}

type walker struct {
	runner   *advisor.Runner
	session  *Session
	resolver Resolver

	// chain is the include path from the root to the changelog being walked.
	chain      []string
	violations []*advisor.Violation
	summary    Summary
}

// enter pushes location onto the include chain. It fails when location is
// already on the chain, whether or not duplicate includes are checked.
func (w *walker) enter(location string) error {
	for i, loc := range w.chain {
		if loc == location {
			cycle := append(append([]string(nil), w.chain[i:]...), location)
			return &advisor.IncludeCycleError{Chain: cycle}
		}
	}
	w.chain = append(w.chain, location)
	return nil
}

func (w *walker) leave() {
	w.chain = w.chain[:len(w.chain)-1]
}

// walk checks one changelog depth first: schema names, changelog rules,
// then every changeset with its changes, then includes in document order.
// Include rules run on an include's location before it is resolved, so a
// rejected include is never loaded.
func (w *walker) walk(ctx context.Context, changeLog *types.ChangeLog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := w.enter(changeLog.Location); err != nil {
		return err
	}
	defer w.leave()

	slog.Debug("Linting changelog", "location", changeLog.Location)
	w.summary.ChangeLogs++

	for _, schemaName := range changeLog.SchemaNames {
		if err := w.collect(w.runner.RunValue(changeLog, schemaName)); err != nil {
			return err
		}
	}
	if err := w.collect(w.runner.RunChangeLog(changeLog)); err != nil {
		return err
	}

	for _, changeSet := range changeLog.ChangeSets {
		if changeSet == nil {
			continue
		}
		w.summary.ChangeSets++
		if err := w.collect(w.runner.RunChangeSet(changeLog, changeSet)); err != nil {
			return err
		}
		for _, change := range changeSet.Changes {
			if change == nil {
				continue
			}
			w.summary.Changes++
			if err := w.collect(w.runner.RunChange(changeLog, changeSet, change)); err != nil {
				return err
			}
		}
	}

	for _, include := range changeLog.Includes {
		if include == nil {
			continue
		}
		if err := w.runner.RunInclude(include.Location, w.session); err != nil {
			return err
		}
		child, err := w.resolve(ctx, include)
		if err != nil {
			return err
		}
		if err := w.walk(ctx, child); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) collect(vs []*advisor.Violation, err error) error {
	if err != nil {
		return err
	}
	w.violations = append(w.violations, vs...)
	return nil
}

func (w *walker) resolve(ctx context.Context, include *types.Include) (*types.ChangeLog, error) {
	if include.ChangeLog != nil {
		return include.ChangeLog, nil
	}
	if w.resolver == nil {
		return nil, errors.Errorf("no resolver configured to load included changelog %s", include.Location)
	}
	child, err := w.resolver.Load(ctx, include.Location)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load included changelog %s", include.Location)
	}
	if child.Location == "" {
		located := *child
		located.Location = include.Location
		child = &located
	}
	return child, nil
}
