// Package env implements the matcher's Environment: an immutable,
// persistent binding set (spec §3 Environment/Binding, invariants
// I1-I4). Because Env is persistent, a choice point can simply hold onto
// the Env value it had before trying an alternative; abandoning that
// alternative (on backtrack, or after a lookahead resolves) is just
// "go back to using the old reference" with no copying or undo log.
package env

import (
	"github.com/tendril-lang/tendril/pkg/occurrence"
	"github.com/tendril-lang/tendril/pkg/value"
)

// Kind distinguishes the two binding namespaces: `$name` scalar captures
// and `@name` group captures. A scalar and a group binding may share the
// same name without colliding (spec §3: Binding is keyed by (sigil, name)).
type Kind int

const (
	Scalar Kind = iota
	Group
)

// Binding is one captured value together with every place in the subject
// tree it was recorded from (normally one place; lookahead and guard
// re-evaluation never add more, but a name bound at several sites, such
// as a scalar inside a repeat or a repeated group span, keeps one
// occurrence per bind site, each unifying re-bind appending its own).
type Binding struct {
	Value       value.Value
	Occurrences []occurrence.Ref
}

type entry struct {
	kind    Kind
	name    string
	binding Binding
}

// Env is the empty environment when nil; every non-empty Env is one
// entry consed onto a parent Env, so distinct Envs can share structure.
type Env struct {
	parent *entryNode
}

type entryNode struct {
	parent *entryNode
	entry  entry
}

// Empty is the environment with no bindings.
var Empty = &Env{}

// With returns a new Env with (kind, name) bound to binding, leaving the
// receiver untouched. A later binding of the same (kind, name) shadows
// earlier ones on lookup without removing them, matching invariant I2
// (bindings are append-only within a branch; shadowing only happens
// across re-entry of the same scalar/group bind site, e.g. inside a
// repeated quantifier).
func (e *Env) With(kind Kind, name string, binding Binding) *Env {
	return &Env{parent: &entryNode{parent: e.parent, entry: entry{kind: kind, name: name, binding: binding}}}
}

// Get looks up the most recent binding for (kind, name).
func (e *Env) Get(kind Kind, name string) (Binding, bool) {
	for n := e.parent; n != nil; n = n.parent {
		if n.entry.kind == kind && n.entry.name == name {
			return n.entry.binding, true
		}
	}
	return Binding{}, false
}

// Has reports whether (kind, name) has a binding.
func (e *Env) Has(kind Kind, name string) bool {
	_, ok := e.Get(kind, name)
	return ok
}

// ScalarValues returns every scalar binding's value, keyed by name, for
// handing to pkg/guard.Eval. Where a name has been rebound (inside a
// quantified repeat that re-enters the same $name each iteration), the
// most recent binding wins, matching Get's shadowing semantics.
func (e *Env) ScalarValues() map[string]value.Value {
	out := map[string]value.Value{}
	seen := map[string]bool{}
	for n := e.parent; n != nil; n = n.parent {
		if n.entry.kind != Scalar || seen[n.entry.name] {
			continue
		}
		seen[n.entry.name] = true
		out[n.entry.name] = n.entry.binding.Value
	}
	return out
}

// Names returns every (kind, name) pair bound anywhere in e, most recent
// first, without duplicates. Used by Solution construction (spec §3) to
// enumerate what a match captured.
func (e *Env) Names() []struct {
	Kind Kind
	Name string
} {
	type kn struct {
		Kind Kind
		Name string
	}
	seen := map[kn]bool{}
	var out []struct {
		Kind Kind
		Name string
	}
	for n := e.parent; n != nil; n = n.parent {
		k := kn{n.entry.kind, n.entry.name}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, struct {
			Kind Kind
			Name string
		}{n.entry.kind, n.entry.name})
	}
	return out
}
