package matcher

import (
	"github.com/tendril-lang/tendril/pkg/env"
	"github.com/tendril-lang/tendril/pkg/matchast"
	"github.com/tendril-lang/tendril/pkg/occurrence"
	"github.com/tendril-lang/tendril/pkg/value"
)

// objCont is the continuation threaded through object matching: besides
// the environment, it carries which of m's own direct keys have been
// claimed so far, so Remainder (and nested GroupBind projections) can
// tell what's left over.
type objCont func(e *env.Env, claimed map[string]bool) bool

func matchObj(c *ctx, node matchast.Obj, m *value.OMap, path occurrence.Path, e *env.Env, k Cont) bool {
	return matchObjTerms(c, node.Terms, 0, m, map[string]bool{}, path, e, func(e2 *env.Env, claimed map[string]bool) bool {
		return matchRemainder(c, node.Remainder, m, claimed, path, e2, k)
	})
}

func matchObjTerms(c *ctx, terms []matchast.Node, idx int, m *value.OMap, claimed map[string]bool, path occurrence.Path, e *env.Env, k objCont) bool {
	if c.err != nil {
		return true
	}
	if idx == len(terms) {
		return k(e, claimed)
	}
	rest := func(e2 *env.Env, claimed2 map[string]bool) bool {
		return matchObjTerms(c, terms, idx+1, m, claimed2, path, e2, k)
	}
	switch t := terms[idx].(type) {
	case *matchast.OTerm:
		return matchOTermOccurrences(c, t, m, claimed, path, e, rest)
	case matchast.Obj:
		// A parenthesized sub-group: its terms splice into this position.
		return matchObjTerms(c, t.Terms, 0, m, claimed, path, e, func(e2 *env.Env, claimed2 map[string]bool) bool {
			if t.Remainder != nil {
				return matchRemainder(c, t.Remainder, m, claimed2, path, e2, func(e3 *env.Env) bool {
					return rest(e3, claimed2)
				})
			}
			return rest(e2, claimed2)
		})
	case matchast.GroupBind:
		return matchObjGroupBind(c, t, m, claimed, path, e, rest)
	case matchast.Look:
		return matchObjLook(c, t, m, claimed, path, e, rest)
	default:
		return false
	}
}

func matchObjLook(c *ctx, look matchast.Look, m *value.OMap, claimed map[string]bool, path occurrence.Path, e *env.Env, rest objCont) bool {
	terms := flattenObjTermList(look.Body)
	found := false
	matchObjTerms(c, terms, 0, m, cloneClaimed(claimed), path, e, func(*env.Env, map[string]bool) bool {
		found = true
		return true
	})
	if c.err != nil {
		return true
	}
	if found == look.Negative {
		return false
	}
	return rest(e, claimed)
}

func flattenObjTermList(n matchast.Node) []matchast.Node {
	if o, ok := n.(matchast.Obj); ok {
		return o.Terms
	}
	return []matchast.Node{n}
}

func cloneClaimed(claimed map[string]bool) map[string]bool {
	out := make(map[string]bool, len(claimed))
	for k, v := range claimed {
		out[k] = v
	}
	return out
}

// matchObjGroupBind matches a nested object-context group binding
// (`@name=(OGroup* Remnant?)`): the nested term set is matched against
// the same mapping m, and whichever of m's direct keys it claims become
// the projection bound to name, recorded as a KindObjectKeys occurrence.
func matchObjGroupBind(c *ctx, gb matchast.GroupBind, m *value.OMap, claimed map[string]bool, path occurrence.Path, e *env.Env, rest objCont) bool {
	inner, ok := gb.Body.(matchast.Obj)
	if !ok {
		return false
	}
	before := cloneClaimed(claimed)
	return matchObjTerms(c, inner.Terms, 0, m, before, path, e, func(e2 *env.Env, claimedAfterTerms map[string]bool) bool {
		finish := func(e3 *env.Env, finalClaimed map[string]bool) bool {
			var newKeys []string
			for key := range finalClaimed {
				if !claimed[key] {
					newKeys = append(newKeys, key)
				}
			}
			proj := projectKeys(m, newKeys)
			e4, okBind := bindGroupUnify(e3, gb.Name, proj, occurrence.ObjectKeysRef(path, newKeys))
			if !okBind {
				return false
			}
			merged := cloneClaimed(claimed)
			for _, key := range newKeys {
				merged[key] = true
			}
			return rest(e4, merged)
		}
		if inner.Remainder != nil {
			return matchRemainderKeys(c, inner.Remainder, m, claimedAfterTerms, path, e2, finish)
		}
		return finish(e2, claimedAfterTerms)
	})
}

// projectKeys builds a Mapping value over exactly the given keys of m,
// preserving m's own key order.
func projectKeys(m *value.OMap, keys []string) value.Value {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	var pairs []value.Pair
	for p := m.Oldest(); p != nil; p = p.Next() {
		if want[p.Key] {
			pairs = append(pairs, value.Pair{Key: p.Key, Value: p.Value})
		}
	}
	return value.Mapping(pairs...)
}

type slot struct {
	key   string
	value value.Value
	path  occurrence.Path
}

func matchOTermOccurrences(c *ctx, ot *matchast.OTerm, m *value.OMap, claimed map[string]bool, path occurrence.Path, e *env.Env, rest objCont) bool {
	slots := candidateSlots(c, ot, m, claimed, path)
	lo, hi := ot.Quant.Min, ot.Quant.Max
	if hi < 0 || hi > len(slots) {
		hi = len(slots)
	}
	if lo > hi {
		return false
	}
	for n := hi; n >= lo; n-- {
		if matchOTermSlots(c, ot, slots[:n], 0, claimed, e, rest) {
			return true
		}
		if c.err != nil {
			return true
		}
	}
	return false
}

func matchOTermSlots(c *ctx, ot *matchast.OTerm, slots []slot, idx int, claimed map[string]bool, e *env.Env, rest objCont) bool {
	if c.err != nil {
		return true
	}
	if idx == len(slots) {
		return rest(e, claimed)
	}
	sl := slots[idx]
	return applyBreadcrumbs(c, ot.Breadcrumbs, 0, sl.value, sl.path, e, func(v value.Value, p occurrence.Path, e2 *env.Env) bool {
		return matchNode(c, ot.Value, v, p, e2, func(e3 *env.Env) bool {
			next := cloneClaimed(claimed)
			next[sl.key] = true
			e4 := e3
			if ot.Key.Kind == matchast.KeyBind && ot.Key.Bind != "" {
				var okBind bool
				e4, okBind = bindScalarUnify(e3, ot.Key.Bind, value.String(sl.key), occurrence.ObjectValueRef(sl.path, sl.key))
				if !okBind {
					return false
				}
			}
			return matchOTermSlots(c, ot, slots, idx+1, next, e4, rest)
		})
	})
}

// candidateSlots finds every key this OTerm may attach to: its own
// mapping's keys (minus whatever's already claimed) for a direct-depth
// term, or every matching key anywhere below m for an AnyDepth term
// (`..key: value`), ordered shallowest-depth-first and then by
// insertion order at each depth (SPEC_FULL.md §5's resolution of the
// skip-breadcrumb/any-depth ordering open question).
func candidateSlots(c *ctx, ot *matchast.OTerm, m *value.OMap, claimed map[string]bool, path occurrence.Path) []slot {
	if !ot.AnyDepth {
		var out []slot
		for p := m.Oldest(); p != nil; p = p.Next() {
			if claimed[p.Key] {
				continue
			}
			if matchKey(c, ot.Key, p.Key) {
				out = append(out, slot{key: p.Key, value: p.Value, path: path.Append(occurrence.KeyStep(p.Key))})
			}
		}
		return out
	}
	var levels [][]slot
	var walk func(v value.Value, p occurrence.Path, depth int)
	walk = func(v value.Value, p occurrence.Path, depth int) {
		mm, ok := v.AsMapping()
		if !ok {
			if seq, ok := v.AsSequence(); ok {
				for i, elem := range seq {
					walk(elem, p.Append(occurrence.IndexStep(i)), depth+1)
				}
			}
			return
		}
		for len(levels) <= depth {
			levels = append(levels, nil)
		}
		for pr := mm.Oldest(); pr != nil; pr = pr.Next() {
			if depth == 0 && claimed[pr.Key] {
				continue
			}
			if matchKey(c, ot.Key, pr.Key) {
				levels[depth] = append(levels[depth], slot{key: pr.Key, value: pr.Value, path: p.Append(occurrence.KeyStep(pr.Key))})
			}
			walk(pr.Value, p.Append(occurrence.KeyStep(pr.Key)), depth+1)
		}
	}
	walk(value.MappingFrom(m), path, 0)
	var out []slot
	for _, lvl := range levels {
		out = append(out, lvl...)
	}
	return out
}

func matchKey(c *ctx, km matchast.KeyMatch, key string) bool {
	switch km.Kind {
	case matchast.KeyLiteral:
		return c.opts.Normalize.EqualStrings(km.Lit, key)
	case matchast.KeyRegex:
		ok, err := c.matchRegex(matchast.Regex{Source: km.RxSrc, Flags: km.RxFl}, key)
		if err != nil {
			c.err = err
			return false
		}
		return ok
	case matchast.KeyBind, matchast.KeyWild:
		return true
	default:
		return false
	}
}

// applyBreadcrumbs walks bc[idx:], descending through v/path as each
// breadcrumb dictates, and finally calls k with wherever it lands.
func applyBreadcrumbs(c *ctx, bc []matchast.Breadcrumb, idx int, v value.Value, path occurrence.Path, e *env.Env, k func(value.Value, occurrence.Path, *env.Env) bool) bool {
	if c.err != nil {
		return true
	}
	if idx == len(bc) {
		return k(v, path, e)
	}
	step := bc[idx]
	switch step.Kind {
	case matchast.BreadcrumbDot:
		mm, ok := v.AsMapping()
		if !ok {
			return false
		}
		for p := mm.Oldest(); p != nil; p = p.Next() {
			if matchNode(c, step.Item, p.Value, path.Append(occurrence.KeyStep(p.Key)), e, func(e2 *env.Env) bool {
				return applyBreadcrumbs(c, bc, idx+1, p.Value, path.Append(occurrence.KeyStep(p.Key)), e2, k)
			}) {
				return true
			}
			if c.err != nil {
				return true
			}
		}
		return false

	case matchast.BreadcrumbBracket:
		seq, ok := v.AsSequence()
		if !ok {
			return false
		}
		for i, elem := range seq {
			if matchNode(c, step.Item, elem, path.Append(occurrence.IndexStep(i)), e, func(e2 *env.Env) bool {
				return applyBreadcrumbs(c, bc, idx+1, elem, path.Append(occurrence.IndexStep(i)), e2, k)
			}) {
				return true
			}
			if c.err != nil {
				return true
			}
		}
		return false

	case matchast.BreadcrumbSkip:
		if step.Item == nil {
			return applyBreadcrumbs(c, bc, idx+1, v, path, e, k)
		}
		return skipSearch(c, step.Item, v, path, e, func(v2 value.Value, p2 occurrence.Path, e2 *env.Env) bool {
			return applyBreadcrumbs(c, bc, idx+1, v2, p2, e2, k)
		})

	default:
		return false
	}
}

// skipSearch finds anywhere below (and including) v that item matches,
// shallowest first then insertion order, and calls k there.
func skipSearch(c *ctx, item matchast.Node, v value.Value, path occurrence.Path, e *env.Env, k func(value.Value, occurrence.Path, *env.Env) bool) bool {
	type found struct {
		v value.Value
		p occurrence.Path
	}
	var levels [][]found
	var walk func(v value.Value, p occurrence.Path, depth int)
	walk = func(v value.Value, p occurrence.Path, depth int) {
		for len(levels) <= depth {
			levels = append(levels, nil)
		}
		levels[depth] = append(levels[depth], found{v, p})
		if mm, ok := v.AsMapping(); ok {
			for pr := mm.Oldest(); pr != nil; pr = pr.Next() {
				walk(pr.Value, p.Append(occurrence.KeyStep(pr.Key)), depth+1)
			}
		} else if seq, ok := v.AsSequence(); ok {
			for i, elem := range seq {
				walk(elem, p.Append(occurrence.IndexStep(i)), depth+1)
			}
		}
	}
	walk(v, path, 0)
	for _, lvl := range levels {
		for _, f := range lvl {
			if matchNode(c, item, f.v, f.p, e, func(e2 *env.Env) bool {
				return k(f.v, f.p, e2)
			}) {
				return true
			}
			if c.err != nil {
				return true
			}
		}
	}
	return false
}

func matchRemainder(c *ctx, r *matchast.Remainder, m *value.OMap, claimed map[string]bool, path occurrence.Path, e *env.Env, k Cont) bool {
	return matchRemainderKeys(c, r, m, claimed, path, e, func(e2 *env.Env, _ map[string]bool) bool {
		return k(e2)
	})
}

// matchRemainderKeys resolves a Remnant clause against whatever keys of
// m are still unclaimed, and reports the final claimed set (every key of
// m, once a remainder clause has run, since Remainder always accounts
// for the rest one way or another).
func matchRemainderKeys(c *ctx, r *matchast.Remainder, m *value.OMap, claimed map[string]bool, path occurrence.Path, e *env.Env, k objCont) bool {
	var leftover []string
	for p := m.Oldest(); p != nil; p = p.Next() {
		if !claimed[p.Key] {
			leftover = append(leftover, p.Key)
		}
	}
	if r == nil {
		return k(e, claimed)
	}
	full := func() map[string]bool {
		out := cloneClaimed(claimed)
		for _, key := range leftover {
			out[key] = true
		}
		return out
	}
	switch r.Kind {
	case matchast.RemainderExhausted, matchast.RemainderAsserted:
		if len(leftover) != 0 {
			return false
		}
		return k(e, claimed)
	case matchast.RemainderPlain:
		n := len(leftover)
		if n < r.Quant.Min || (!r.Quant.Unbounded() && n > r.Quant.Max) {
			if r.Optional && n == 0 {
				return k(e, claimed)
			}
			return false
		}
		return k(e, full())
	case matchast.RemainderBind:
		n := len(leftover)
		if n < r.Quant.Min || (!r.Quant.Unbounded() && n > r.Quant.Max) {
			return false
		}
		proj := projectKeys(m, leftover)
		e2, okBind := bindGroupUnify(e, r.Name, proj, occurrence.ObjectKeysRef(path, leftover))
		if !okBind {
			return false
		}
		return k(e2, full())
	default:
		return false
	}
}
