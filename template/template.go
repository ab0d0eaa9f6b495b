package template

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/schemaforge/schemaforge"
)

// Template is a parsed template, immutable and safe for concurrent
// rendering.
type Template struct {
	name  string
	nodes []node
}

// Parse compiles template text. Syntax errors are reported at parse
// time with their line number, so a broken template asset fails at
// startup rather than mid-generation.
func Parse(name, text string) (*Template, error) {
	nodes, err := parse(name, text)
	if err != nil {
		return nil, err
	}
	return &Template{name: name, nodes: nodes}, nil
}

// MustParse is like Parse but panics on error. Intended for embedded
// assets that are validated by tests.
func MustParse(name, text string) *Template {
	t, err := Parse(name, text)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the template identifier.
func (t *Template) Name() string {
	return t.name
}

// Vars returns the top-level context variables the template requires,
// sorted. Names bound inside {{#each}} bodies are excluded: they may
// resolve against the loop element, so only the enclosing sequence
// itself counts as a requirement.
func (t *Template) Vars() []string {
	set := make(map[string]struct{})
	collectVars(t.nodes, set)
	vars := make([]string, 0, len(set))
	for v := range set {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	return vars
}

func collectVars(nodes []node, set map[string]struct{}) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *varNode:
			set[n.path[0]] = struct{}{}
		case *ifNode:
			set[n.path[0]] = struct{}{}
			collectVars(n.then, set)
			collectVars(n.els, set)
		case *eachNode:
			set[n.path[0]] = struct{}{}
		}
	}
}

// Render executes the template against the given context. Rendering is
// a pure function of (template, context): identical inputs produce
// byte-identical output. A variable absent from the context fails with
// UnresolvedVariableError naming the first missing variable; no value
// is ever silently substituted with a blank.
func (t *Template) Render(ctx map[string]any) (string, error) {
	var b strings.Builder
	sc := &scope{values: ctx}
	if err := t.renderNodes(&b, t.nodes, sc); err != nil {
		return "", err
	}
	return b.String(), nil
}

// scope is one level of the variable environment. Loop iterations push
// a child scope holding the element and the loop variables; lookups
// fall back outward.
type scope struct {
	values  map[string]any
	elem    any // current {{#each}} element, addressed as "this"
	hasElem bool
	parent  *scope
}

func (s *scope) lookup(path []string) (any, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if sc.hasElem {
			if path[0] == "this" {
				return descend(sc.elem, path[1:])
			}
			// Element fields shadow outer variables.
			if m, ok := sc.elem.(map[string]any); ok {
				if v, ok := m[path[0]]; ok {
					return descend(v, path[1:])
				}
			}
		}
		if sc.values != nil {
			if v, ok := sc.values[path[0]]; ok {
				return descend(v, path[1:])
			}
		}
	}
	return nil, false
}

func descend(v any, rest []string) (any, bool) {
	for _, seg := range rest {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		if v, ok = m[seg]; !ok {
			return nil, false
		}
	}
	return v, true
}

func (t *Template) renderNodes(b *strings.Builder, nodes []node, sc *scope) error {
	for _, n := range nodes {
		switch n := n.(type) {
		case *textNode:
			b.WriteString(n.text)
		case *varNode:
			v, ok := sc.lookup(n.path)
			if !ok {
				return schemaforge.NewUnresolvedVariableError(t.name, n.raw)
			}
			s, err := stringify(v)
			if err != nil {
				return fmt.Errorf("schemaforge: template %s: {{%s}}: %w", t.name, n.raw, err)
			}
			b.WriteString(s)
		case *ifNode:
			v, ok := sc.lookup(n.path)
			if !ok {
				return schemaforge.NewUnresolvedVariableError(t.name, n.raw)
			}
			cond, ok := v.(bool)
			if !ok {
				return fmt.Errorf("schemaforge: template %s: {{#if %s}}: value is %T, want bool", t.name, n.raw, v)
			}
			body := n.then
			if !cond {
				body = n.els
			}
			if err := t.renderNodes(b, body, sc); err != nil {
				return err
			}
		case *eachNode:
			v, ok := sc.lookup(n.path)
			if !ok {
				return schemaforge.NewUnresolvedVariableError(t.name, n.raw)
			}
			elems, err := sequence(v)
			if err != nil {
				return fmt.Errorf("schemaforge: template %s: {{#each %s}}: %w", t.name, n.raw, err)
			}
			for i, elem := range elems {
				child := &scope{
					values: map[string]any{
						"@index": i,
						"@first": i == 0,
						"@last":  i == len(elems)-1,
					},
					elem:    elem,
					hasElem: true,
					parent:  sc,
				}
				if err := t.renderNodes(b, n.body, child); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// sequence normalizes the supported iteration value shapes.
func sequence(v any) ([]any, error) {
	switch v := v.(type) {
	case []any:
		return v, nil
	case []map[string]any:
		elems := make([]any, len(v))
		for i, e := range v {
			elems[i] = e
		}
		return elems, nil
	case []string:
		elems := make([]any, len(v))
		for i, e := range v {
			elems[i] = e
		}
		return elems, nil
	default:
		return nil, fmt.Errorf("value is %T, want a sequence", v)
	}
}

// stringify renders a scalar context value. Maps and slices have no
// text form; substituting them is always a template bug.
func stringify(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("value is %T, not printable", v)
	}
}
