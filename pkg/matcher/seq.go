package matcher

import (
	"github.com/tendril-lang/tendril/pkg/env"
	"github.com/tendril-lang/tendril/pkg/matchast"
	"github.com/tendril-lang/tendril/pkg/occurrence"
	"github.com/tendril-lang/tendril/pkg/value"
)

// matchSeq matches an array pattern's elements against seq in order,
// requiring the whole array to be consumed (spec §4.5.4.3: Seq describes
// the entire sequence, not a prefix of it).
func matchSeq(c *ctx, node matchast.Seq, seq []value.Value, path occurrence.Path, e *env.Env, k Cont) bool {
	return matchSeqFrom(c, node.Elems, 0, seq, 0, path, e, k)
}

func matchSeqFrom(c *ctx, elems []matchast.SeqElem, idx int, seq []value.Value, pos int, path occurrence.Path, e *env.Env, k Cont) bool {
	if c.err != nil {
		return true
	}
	if idx == len(elems) {
		if pos == len(seq) {
			return k(e)
		}
		return false
	}
	elem := elems[idx]
	rest := func(e2 *env.Env, consumed int) bool {
		return matchSeqFrom(c, elems, idx+1, seq, pos+consumed, path, e2, k)
	}
	if gb, ok := elem.Node.(matchast.GroupBind); ok {
		return matchGroupBindSpan(c, gb, elem.Quant, seq, pos, path, e, rest)
	}
	return matchQuantSingle(c, elem.Node, elem.Quant, seq, pos, path, e, rest)
}

// matchQuantSingle repeats a single-element node min..max times
// (inclusive, max<0 meaning unbounded but capped by remaining seq
// length), trying candidate counts in the order its Policy dictates, and
// for each candidate count matching that many consecutive array elements
// against node before calling rest.
func matchQuantSingle(c *ctx, node matchast.Node, q matchast.Quant, seq []value.Value, pos int, path occurrence.Path, e *env.Env, rest func(*env.Env, int) bool) bool {
	maxAvail := len(seq) - pos
	upper := maxAvail
	if !q.Unbounded() && q.Max < upper {
		upper = q.Max
	}
	if upper < q.Min {
		return false
	}
	try := func(n int) bool {
		return matchRepeatAt(c, node, seq, pos, n, path, e, func(e2 *env.Env) bool {
			return rest(e2, n)
		})
	}
	switch q.Policy {
	case matchast.Possessive:
		return try(upper)
	case matchast.Reluctant:
		for n := q.Min; n <= upper; n++ {
			if try(n) {
				return true
			}
			if c.err != nil {
				return true
			}
		}
		return false
	default: // Greedy
		for n := upper; n >= q.Min; n-- {
			if try(n) {
				return true
			}
			if c.err != nil {
				return true
			}
		}
		return false
	}
}

// matchRepeatAt matches node against exactly `count` consecutive array
// elements starting at pos, succeeding only if all of them do.
func matchRepeatAt(c *ctx, node matchast.Node, seq []value.Value, pos, count int, path occurrence.Path, e *env.Env, k Cont) bool {
	if c.err != nil {
		return true
	}
	if count == 0 {
		return k(e)
	}
	p := path.Append(occurrence.IndexStep(pos))
	return matchNode(c, node, seq[pos], p, e, func(e2 *env.Env) bool {
		return matchRepeatAt(c, node, seq, pos+1, count-1, path, e2, k)
	})
}

// matchGroupBindSpan matches an array-context group binding (`@name` or
// `@name=(AGroup...)`) against a variable-length run of seq starting at
// pos. The run's length is governed primarily by gb.Body's own internal
// structure (an unconstrained `@name` has an Any body and spans any number
// of elements, longest first); an explicit outer Quant on the group itself
// (e.g. `@g=(1){2}`) repeats the whole captured span that many times.
// Every repeat binds the same @name, so each one after the first must
// unify (value.DeepEqual) with what the previous repeat captured —
// a repeat whose span differs is a normal mismatch, same as any other
// re-bind of an already-bound name (spec §3).
func matchGroupBindSpan(c *ctx, gb matchast.GroupBind, outer matchast.Quant, seq []value.Value, pos int, path occurrence.Path, e *env.Env, rest func(*env.Env, int) bool) bool {
	if outer == (matchast.Quant{Min: 1, Max: 1, Policy: matchast.Greedy}) {
		return matchOneGroupSpan(c, gb, seq, pos, path, e, func(e2 *env.Env, consumed int) bool {
			return rest(e2, consumed)
		})
	}
	return matchGroupRepeat(c, gb, outer, seq, pos, 0, path, e, rest)
}

func matchGroupRepeat(c *ctx, gb matchast.GroupBind, outer matchast.Quant, seq []value.Value, pos, done int, path occurrence.Path, e *env.Env, rest func(*env.Env, int) bool) bool {
	if c.err != nil {
		return true
	}
	tryStop := done >= outer.Min
	extend := func() bool {
		if !outer.Unbounded() && done >= outer.Max {
			return false
		}
		return matchOneGroupSpan(c, gb, seq, pos, path, e, func(e2 *env.Env, consumed int) bool {
			return matchGroupRepeat(c, gb, outer, seq, pos+consumed, done+1, path, e2, rest)
		})
	}
	if extend() {
		return true
	}
	if c.err != nil {
		return true
	}
	if tryStop {
		return rest(e, 0)
	}
	return false
}

// matchOneGroupSpan finds exactly one span starting at pos that gb.Body
// matches (as a Seq against seq[pos:pos+n] for some n), then calls k with
// the resulting env (carrying the new @name binding) and how many
// elements it consumed.
func matchOneGroupSpan(c *ctx, gb matchast.GroupBind, seq []value.Value, pos int, path occurrence.Path, e *env.Env, k func(*env.Env, int) bool) bool {
	if c.err != nil {
		return true
	}
	for n := len(seq) - pos; n >= 0; n-- {
		sub := seq[pos : pos+n]
		ok := matchSeqBody(c, gb.Body, sub, e, func(e2 *env.Env) bool {
			bound := value.Sequence(sub...)
			e3, okBind := bindGroupUnify(e2, gb.Name, bound, occurrence.ArraySliceRef(path, pos, pos+n))
			if !okBind {
				return false
			}
			return k(e3, n)
		})
		if ok {
			return true
		}
		if c.err != nil {
			return true
		}
	}
	return false
}

// matchSeqBody matches body (typically an unbounded Any, from `@name`
// with no explicit sub-pattern, or a nested Seq from `@name=(...)`)
// against the whole of sub.
func matchSeqBody(c *ctx, body matchast.Node, sub []value.Value, e *env.Env, k Cont) bool {
	if seqNode, ok := body.(matchast.Seq); ok {
		return matchSeqFrom(c, seqNode.Elems, 0, sub, 0, occurrence.Path{}, e, k)
	}
	if _, ok := body.(matchast.Any); ok {
		return k(e)
	}
	// Any other body shape is matched against the span as a single value
	// only when the span is exactly one element.
	if len(sub) != 1 {
		return false
	}
	return matchNode(c, body, sub[0], occurrence.Path{}, e, k)
}
