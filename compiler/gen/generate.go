package gen

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/schemaforge/schemaforge"
	"github.com/schemaforge/schemaforge/schema"
	"github.com/schemaforge/schemaforge/templates"
)

// Artifact is one rendered output file, held in memory. Writing to
// disk is the caller's concern.
type Artifact struct {
	// Path is the output path relative to the generation root.
	Path string
	// Content is the rendered file content.
	Content string
	// Template is the registry identifier that produced the artifact.
	Template string
	// Table names the source table. Empty for run-scoped artifacts.
	Table string
}

// Failure records one (table, template) pair that did not render.
type Failure struct {
	Table    string
	Template string
	Err      error
}

// Report is the outcome of one generation run.
type Report struct {
	// RunID identifies the run.
	RunID uuid.UUID
	// Artifacts holds the rendered files, sorted by path.
	Artifacts []Artifact
	// Failures holds the pairs that did not render.
	Failures []Failure
}

// Err reports a failed run: nothing rendered and at least one failure
// occurred. Partial runs with some artifacts return nil; the caller
// inspects Failures for the details.
func (r *Report) Err() error {
	if len(r.Artifacts) > 0 || len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f.Err
	}
	return errors.Join(errs...)
}

// Generate renders every enabled template for every table. Tables
// render in parallel under the configured worker limit; results are
// aggregated and sorted by output path, so identical inputs produce an
// identical report regardless of scheduling.
//
// A failing (table, template) pair is recorded and does not block other
// pairs unless fail-fast is set. Two artifacts deriving the same output
// path abort the run with OutputCollisionError.
func (g *Generator) Generate(ctx context.Context, tables []*schema.Table) (*Report, error) {
	report := &Report{RunID: uuid.New()}
	var mu sync.Mutex

	collect := func(a Artifact) {
		mu.Lock()
		report.Artifacts = append(report.Artifacts, a)
		mu.Unlock()
	}
	fail := func(table, template string, err error) error {
		mu.Lock()
		report.Failures = append(report.Failures, Failure{Table: table, Template: template, Err: err})
		mu.Unlock()
		if g.failFast {
			return err
		}
		return nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)

	runFeatures := g.features
	stopped := false
	for i, t := range tables {
		gctx, err := g.newContext(t, i+1)
		if err != nil {
			if ferr := fail(t.Name, "", err); ferr != nil {
				stopped = true
				break
			}
			continue
		}
		runFeatures = mergeFeatures(runFeatures, t.Features)

		for _, d := range g.templates {
			if d.Scope != templates.ScopeTable || !d.Enabled(gctx.Features) {
				continue
			}
			eg.Go(func() error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				a, err := render(d, gctx.Vars, t.Name)
				if err != nil {
					return fail(t.Name, d.ID, err)
				}
				collect(a)
				return nil
			})
		}
	}

	// Run-scoped templates belong to features. Each renders once when
	// any table of the batch, or the run default, enables its feature.
	if len(tables) > 0 && !stopped {
		rctx := g.runContext()
		for _, f := range AllFeatures {
			if !f.Enabled(runFeatures) {
				continue
			}
			for _, id := range f.Templates {
				d, ok := g.selected(id)
				if !ok {
					continue
				}
				eg.Go(func() error {
					select {
					case <-ctx.Done():
						return ctx.Err()
					default:
					}
					a, err := render(d, rctx, "")
					if err != nil {
						return fail("", d.ID, err)
					}
					collect(a)
					return nil
				})
			}
		}
	}

	err := eg.Wait()

	sort.Slice(report.Artifacts, func(i, j int) bool {
		return report.Artifacts[i].Path < report.Artifacts[j].Path
	})
	for i := 1; i < len(report.Artifacts); i++ {
		prev, cur := report.Artifacts[i-1], report.Artifacts[i]
		if prev.Path == cur.Path {
			return nil, schemaforge.NewOutputCollisionError(cur.Path, prev.Template, cur.Template)
		}
	}

	if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return report, err
	}
	return report, nil
}

// selected returns the descriptor with the given identifier from the
// generator's template selection.
func (g *Generator) selected(id string) (*templates.Descriptor, bool) {
	for _, d := range g.templates {
		if d.ID == id {
			return d, true
		}
	}
	return nil, false
}

// render executes one descriptor against a context: the body first,
// then the path pattern.
func render(d *templates.Descriptor, vars map[string]any, table string) (Artifact, error) {
	content, err := d.Body.Render(vars)
	if err != nil {
		return Artifact{}, err
	}
	path, err := d.Path.Render(vars)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Path: path, Content: content, Template: d.ID, Table: table}, nil
}
