package advisor

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/nsxbet/changelog-linter/pkg/config"
	"github.com/nsxbet/changelog-linter/pkg/pattern"
	"github.com/nsxbet/changelog-linter/pkg/types"
)

// Runner dispatches the enabled rules of one run to subjects. A rule runs
// once per enabled configuration, in registration order and then
// configuration order. A Runner only reads its configuration and may be
// shared by concurrent walks.
type Runner struct {
	cfg      *config.Config
	registry *Registry
	matcher  *pattern.Matcher
}

// NewRunner returns a Runner over cfg. A nil registry means the default one.
func NewRunner(cfg *config.Config, registry *Registry) *Runner {
	if cfg == nil {
		cfg = config.Empty()
	}
	if registry == nil {
		registry = defaultRegistry
	}
	return &Runner{
		cfg:      cfg,
		registry: registry,
		matcher:  pattern.Default(),
	}
}

// Config returns the effective configuration.
func (r *Runner) Config() *config.Config {
	return r.cfg
}

// Ignored reports whether changeSet is excluded by ignore-context-pattern.
func (r *Runner) Ignored(changeSet *types.ChangeSet) (bool, error) {
	p := r.cfg.IgnoreContextPattern()
	if p == "" || changeSet == nil || changeSet.Context == "" {
		return false, nil
	}
	ok, err := r.matcher.MatchString(p, changeSet.Context)
	if err != nil {
		return false, &ConfigError{Rule: "ignore-context-pattern", Err: err}
	}
	return ok, nil
}

// RunChangeLog runs changelog scope rules.
func (r *Runner) RunChangeLog(changeLog *types.ChangeLog) ([]*Violation, error) {
	var out []*Violation
	for _, rule := range r.registry.Rules() {
		clr, ok := rule.(ChangeLogRule)
		if !ok {
			continue
		}
		err := r.each(rule, changeLog, nil, func(ctx *Context) error {
			vs, err := clr.CheckChangeLog(ctx, changeLog)
			out = append(out, vs...)
			return err
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// RunChangeSet runs changeset scope rules.
func (r *Runner) RunChangeSet(changeLog *types.ChangeLog, changeSet *types.ChangeSet) ([]*Violation, error) {
	if ignored, err := r.Ignored(changeSet); ignored || err != nil {
		return nil, err
	}
	var out []*Violation
	for _, rule := range r.registry.Rules() {
		csr, ok := rule.(ChangeSetRule)
		if !ok {
			continue
		}
		err := r.each(rule, changeLog, changeSet, func(ctx *Context) error {
			vs, err := csr.CheckChangeSet(ctx, changeSet)
			out = append(out, vs...)
			return err
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// RunChange runs change scope rules and the column rules of the change's
// columns. A rule whose Supports rejects the change is skipped.
func (r *Runner) RunChange(changeLog *types.ChangeLog, changeSet *types.ChangeSet, change types.Change) ([]*Violation, error) {
	if ignored, err := r.Ignored(changeSet); ignored || err != nil {
		return nil, err
	}
	var out []*Violation
	for _, rule := range r.registry.Rules() {
		if cr, ok := rule.(ChangeRule); ok && cr.Supports(change) {
			err := r.each(rule, changeLog, changeSet, func(ctx *Context) error {
				vs, err := cr.CheckChange(ctx, change)
				out = append(out, vs...)
				return err
			})
			if err != nil {
				return nil, err
			}
		}
		if colr, ok := rule.(ColumnRule); ok && colr.Supports(change) {
			cc, ok := change.(types.ColumnsChange)
			if !ok {
				continue
			}
			err := r.each(rule, changeLog, changeSet, func(ctx *Context) error {
				for _, col := range cc.ChangeColumns() {
					vs, err := colr.CheckColumn(ctx, change, col)
					out = append(out, vs...)
					if err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// RunValue runs value rules against a raw document value.
func (r *Runner) RunValue(changeLog *types.ChangeLog, value string) ([]*Violation, error) {
	var out []*Violation
	for _, rule := range r.registry.Rules() {
		vr, ok := rule.(ValueRule)
		if !ok {
			continue
		}
		err := r.each(rule, changeLog, nil, func(ctx *Context) error {
			vs, err := vr.CheckValue(ctx, value)
			out = append(out, vs...)
			return err
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// RunInclude runs include rules for a changelog location before it is walked.
// Include rules record state in visited, so each runs with its first enabled
// configuration only. The first failure aborts.
func (r *Runner) RunInclude(location string, visited Visited) error {
	for _, rule := range r.registry.Rules() {
		ir, ok := rule.(IncludeRule)
		if !ok {
			continue
		}
		rc := r.firstEnabled(rule.Name())
		if rc == nil {
			continue
		}
		ctx := &Context{Rule: rule.Name(), Config: rc, Matcher: r.matcher}
		err := check(ctx, func(ctx *Context) error {
			return ir.CheckInclude(ctx, location, visited)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) firstEnabled(name string) *config.RuleConfig {
	for _, rc := range r.cfg.Rule(name) {
		if rc.Enabled() {
			return rc
		}
	}
	return nil
}

// each calls fn once per enabled configuration of rule.
func (r *Runner) each(rule Rule, changeLog *types.ChangeLog, changeSet *types.ChangeSet, fn func(*Context) error) error {
	for _, rc := range r.cfg.Rule(rule.Name()) {
		if !rc.Enabled() {
			continue
		}
		ctx := &Context{
			Rule:      rule.Name(),
			Config:    rc,
			Matcher:   r.matcher,
			ChangeLog: changeLog,
			ChangeSet: changeSet,
		}
		if err := check(ctx, fn); err != nil {
			return err
		}
	}
	return nil
}

// check runs fn, turning panics and unexpected errors into InternalError.
func check(ctx *Context, fn func(*Context) error) (err error) {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			e, ok := panicErr.(error)
			if !ok {
				e = errors.Errorf("%v", panicErr)
			}
			slog.Error("Rule check PANIC RECOVER", "rule", ctx.Rule, "error", e)
			err = &InternalError{Rule: ctx.Rule, Err: errors.Wrap(e, "panic")}
		}
	}()

	err = fn(ctx)
	if err == nil {
		return nil
	}

	var (
		cfgErr   *ConfigError
		dupErr   *DuplicateIncludeError
		cycleErr *IncludeCycleError
		intErr   *InternalError
	)
	switch {
	case errors.As(err, &cfgErr), errors.As(err, &dupErr), errors.As(err, &cycleErr), errors.As(err, &intErr):
		return err
	case errors.Is(err, pattern.ErrNoDynamicValue), errors.Is(err, pattern.ErrUnknownAttribute):
		return &ConfigError{Rule: ctx.Rule, Err: err}
	}
	return &InternalError{Rule: ctx.Rule, Err: err}
}
