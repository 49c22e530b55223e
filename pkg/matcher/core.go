package matcher

import (
	"github.com/tendril-lang/tendril/pkg/env"
	"github.com/tendril-lang/tendril/pkg/guard"
	"github.com/tendril-lang/tendril/pkg/matchast"
	"github.com/tendril-lang/tendril/pkg/occurrence"
	"github.com/tendril-lang/tendril/pkg/value"
)

// matchNode tries to match n against v, calling k once per way it
// succeeds. It returns true once k (or a fatal error) says the search is
// done. A step-budget overrun or a malformed regex sets c.err and
// unwinds the whole call tree by returning true at every level; callers
// should check c.err once the top-level call returns rather than
// threading an error return through every Cont (Cont itself stays a
// plain bool-returning function, matching the matcher's internal style).
func matchNode(c *ctx, n matchast.Node, v value.Value, path occurrence.Path, e *env.Env, k Cont) bool {
	if c.err != nil {
		return true
	}
	if err := c.step(); err != nil {
		c.err = err
		return true
	}
	switch node := n.(type) {
	case matchast.Any:
		return k(e)

	case matchast.Lit:
		if c.matchLit(node.Value, v) {
			return k(e)
		}
		return false

	case matchast.Regex:
		s, ok := v.AsString()
		if !ok {
			return false
		}
		matched, err := c.matchRegex(node, s)
		if err != nil {
			c.err = err
			return true
		}
		if matched {
			return k(e)
		}
		return false

	case matchast.ScalarBind:
		return matchScalarBind(c, node, v, path, e, k)

	case matchast.GroupBind:
		return matchGroupBindGeneric(c, node, v, path, e, k)

	case matchast.Alt:
		for _, opt := range node.Options {
			if matchNode(c, opt, v, path, e, k) {
				return true
			}
			if c.err != nil {
				return true
			}
		}
		return false

	case matchast.Look:
		return matchLook(c, node, v, path, e, k)

	case matchast.Guarded:
		return matchNode(c, node.Body, v, path, e, func(e2 *env.Env) bool {
			ok := evalGuardNode(c, node, e2)
			if c.err != nil || !ok {
				return false
			}
			return k(e2)
		})

	case matchast.Seq:
		seq, ok := v.AsSequence()
		if !ok {
			return false
		}
		return matchSeq(c, node, seq, path, e, k)

	case matchast.Obj:
		m, ok := v.AsMapping()
		if !ok {
			return false
		}
		return matchObj(c, node, m, path, e, k)

	default:
		return false
	}
}

// matchLook evaluates a zero-width lookahead. A positive lookahead
// succeeds (without consuming anything or keeping its bindings) iff Body
// has at least one solution against v at the current position; a
// negative lookahead succeeds iff it has none (spec §4.5.4.6). Either
// way, e itself (not whatever Body would have bound) is what flows to k,
// preserving lookahead purity.
func matchLook(c *ctx, node matchast.Look, v value.Value, path occurrence.Path, e *env.Env, k Cont) bool {
	found := false
	matchNode(c, node.Body, v, path, e, func(*env.Env) bool {
		found = true
		return true
	})
	if c.err != nil {
		return true
	}
	if found == node.Negative {
		return false
	}
	return k(e)
}

func evalGuardNode(c *ctx, node matchast.Guarded, e *env.Env) bool {
	genv := &guard.Env{Bindings: e.ScalarValues(), Root: c.root}
	result, err := guard.Eval(node.Expr, genv)
	if err != nil {
		return false // a guard error just fails this branch (spec §7)
	}
	b, ok := result.AsBool()
	return ok && b
}

// matchGroupBindGeneric handles a GroupBind encountered outside Seq/Obj's
// own span-aware handling: the bound value is simply whatever Body
// matched, recorded as a single KindValue occurrence.
func matchGroupBindGeneric(c *ctx, node matchast.GroupBind, v value.Value, path occurrence.Path, e *env.Env, k Cont) bool {
	return matchNode(c, node.Body, v, path, e, func(e2 *env.Env) bool {
		e3, ok := bindGroupUnify(e2, node.Name, v, occurrence.ValueRef(path))
		if !ok {
			return false
		}
		return k(e3)
	})
}

func matchScalarBind(c *ctx, node matchast.ScalarBind, v value.Value, path occurrence.Path, e *env.Env, k Cont) bool {
	bindIt := func(e2 *env.Env) bool {
		e3, ok := bindScalarUnify(e2, node.Name, v, occurrence.ValueRef(path))
		if !ok {
			return false
		}
		return k(e3)
	}
	if node.Body == nil {
		return bindIt(e)
	}
	return matchNode(c, node.Body, v, path, e, bindIt)
}

// bindScalarUnify binds name to v in e. If name already has a scalar
// binding, v must unify with it by SameValueZero (spec §3: "A name is
// bound at most once per solution; subsequent occurrences must unify")
// — a mismatch reports failure rather than silently rebinding, matching
// the worked example in spec §8 (`[$a, $a]` matches `[3,3]` but not
// `[3,4]`). On success the new occurrence is appended to whatever the
// name already recorded.
func bindScalarUnify(e *env.Env, name string, v value.Value, ref occurrence.Ref) (*env.Env, bool) {
	if existing, ok := e.Get(env.Scalar, name); ok {
		if !value.SameValueZero(existing.Value, v) {
			return nil, false
		}
		return e.With(env.Scalar, name, env.Binding{
			Value:       existing.Value,
			Occurrences: append(append([]occurrence.Ref{}, existing.Occurrences...), ref),
		}), true
	}
	return e.With(env.Scalar, name, env.Binding{
		Value:       v,
		Occurrences: []occurrence.Ref{ref},
	}), true
}

// bindGroupUnify is bindScalarUnify's analogue for group (@name)
// bindings. Group values are typically composite projections rather
// than scalars, so unification compares by value.DeepEqual instead of
// SameValueZero.
func bindGroupUnify(e *env.Env, name string, v value.Value, ref occurrence.Ref) (*env.Env, bool) {
	if existing, ok := e.Get(env.Group, name); ok {
		if !value.DeepEqual(existing.Value, v) {
			return nil, false
		}
		return e.With(env.Group, name, env.Binding{
			Value:       existing.Value,
			Occurrences: append(append([]occurrence.Ref{}, existing.Occurrences...), ref),
		}), true
	}
	return e.With(env.Group, name, env.Binding{
		Value:       v,
		Occurrences: []occurrence.Ref{ref},
	}), true
}
