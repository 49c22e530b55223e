package edit

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/tendril-lang/tendril/pkg/occurrence"
	"github.com/tendril-lang/tendril/pkg/value"
)

func spliceOne(tree value.Value, ed Edit) (value.Value, bool) {
	return spliceAt(tree, ed, 0)
}

func spliceAt(v value.Value, ed Edit, depth int) (value.Value, bool) {
	if depth == len(ed.Ref.Path) {
		return spliceHere(v, ed)
	}
	step := ed.Ref.Path[depth]
	if step.Kind == occurrence.StepIndex {
		seq, ok := v.AsSequence()
		if !ok || step.Index < 0 || step.Index >= len(seq) {
			return v, false
		}
		childNew, ok := spliceAt(seq[step.Index], ed, depth+1)
		if !ok {
			return v, false
		}
		out := make([]value.Value, len(seq))
		copy(out, seq)
		out[step.Index] = childNew
		return value.Sequence(out...), true
	}
	m, ok := v.AsMapping()
	if !ok {
		return v, false
	}
	cur, exists := m.Get(step.Key)
	if !exists {
		return v, false
	}
	childNew, ok := spliceAt(cur, ed, depth+1)
	if !ok {
		return v, false
	}
	return value.MappingFrom(replaceValueAt(m, step.Key, childNew)), true
}

// spliceHere applies ed at the node ref.Path has navigated to. Beyond
// the structural checks (index in range, key exists) every branch
// already made, a staleness-by-value check (spec §4.7 step 2) compares
// ed.Recorded against whatever live value actually sits there now, when
// ed carries one: a mismatch means an earlier edit in the same batch
// already changed this spot, so the edit is skipped rather than applied
// against data the solution never actually saw.
func spliceHere(v value.Value, ed Edit) (value.Value, bool) {
	ref := ed.Ref
	switch ref.Kind {
	case occurrence.KindValue:
		if ed.HasRecorded && !value.DeepEqual(v, ed.Recorded) {
			return v, false
		}
		return ed.Replacement, true

	case occurrence.KindArraySlice:
		seq, ok := v.AsSequence()
		if !ok || ref.Start < 0 || ref.End > len(seq) || ref.Start > ref.End {
			return v, false
		}
		if ed.HasRecorded && !value.DeepEqual(value.Sequence(seq[ref.Start:ref.End]...), ed.Recorded) {
			return v, false
		}
		replSeq, ok := ed.Replacement.AsSequence()
		if !ok {
			return v, false
		}
		out := make([]value.Value, 0, len(seq)-(ref.End-ref.Start)+len(replSeq))
		out = append(out, seq[:ref.Start]...)
		out = append(out, replSeq...)
		out = append(out, seq[ref.End:]...)
		return value.Sequence(out...), true

	case occurrence.KindObjectValue:
		m, ok := v.AsMapping()
		if !ok {
			return v, false
		}
		cur, exists := m.Get(ref.Key)
		if !exists {
			return v, false
		}
		if ed.HasRecorded && !value.DeepEqual(cur, ed.Recorded) {
			return v, false
		}
		return value.MappingFrom(replaceValueAt(m, ref.Key, ed.Replacement)), true

	case occurrence.KindObjectKeys:
		m, ok := v.AsMapping()
		if !ok {
			return v, false
		}
		for _, key := range ref.Keys {
			if _, exists := m.Get(key); !exists {
				return v, false
			}
		}
		if ed.HasRecorded && !value.DeepEqual(projectKeys(m, ref.Keys), ed.Recorded) {
			return v, false
		}
		replMap, ok := ed.Replacement.AsMapping()
		if !ok {
			return v, false
		}
		return value.MappingFrom(replaceKeysAt(m, ref.Keys, replMap)), true

	default:
		return v, false
	}
}

// projectKeys builds the mapping of just m's entries named in keys,
// preserving m's own key order — the same shape pkg/matcher's group
// bindings record, so it can be compared against a recorded @name/remainder
// value (spec §4.7 step 2).
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

// replaceValueAt copies m, replacing key's value with newVal, preserving
// key order.
func replaceValueAt(m *value.OMap, key string, newVal value.Value) *value.OMap {
	out := orderedmap.New[string, value.Value]()
	for p := m.Oldest(); p != nil; p = p.Next() {
		if p.Key == key {
			out.Set(p.Key, newVal)
		} else {
			out.Set(p.Key, p.Value)
		}
	}
	return out
}

// replaceKeysAt copies m, dropping every key in removeKeys and splicing
// replacement's pairs in at the position the first removed key held.
func replaceKeysAt(m *value.OMap, removeKeys []string, replacement *value.OMap) *value.OMap {
	remove := make(map[string]bool, len(removeKeys))
	for _, k := range removeKeys {
		remove[k] = true
	}
	out := orderedmap.New[string, value.Value]()
	spliced := false
	for p := m.Oldest(); p != nil; p = p.Next() {
		if remove[p.Key] {
			if !spliced {
				for rp := replacement.Oldest(); rp != nil; rp = rp.Next() {
					out.Set(rp.Key, rp.Value)
				}
				spliced = true
			}
			continue
		}
		out.Set(p.Key, p.Value)
	}
	if !spliced {
		for rp := replacement.Oldest(); rp != nil; rp = rp.Next() {
			out.Set(rp.Key, rp.Value)
		}
	}
	return out
}
