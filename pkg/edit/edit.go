// Package edit turns a set of occurrence-anchored replacements into a new
// immutable value.Value tree (spec §4.7). Edits are applied deepest-first
// (by occurrence path length) and, at equal depth, in a deterministic
// lexicographic tie-break over their path steps, so a parent splice never
// invalidates a child edit that was already folded in. Every edit is
// re-validated against the live tree immediately before it's applied;
// one that no longer lines up (because an earlier edit at an overlapping
// path already changed that shape) is skipped rather than applied
// against stale structure.
package edit

import (
	"fmt"
	"sort"

	"github.com/tendril-lang/tendril/pkg/occurrence"
	"github.com/tendril-lang/tendril/pkg/value"
)

// Edit is one proposed replacement: put Replacement at the location Ref
// describes. Recorded, when HasRecorded is set, is the value a solution
// originally captured at Ref; Apply compares it against the live tree
// immediately before splicing and skips the edit as stale on a mismatch
// (spec §4.7 step 2). Edits built without a Recorded value (the common
// case for a caller-assembled batch with no solution behind it) only get
// Apply's structural staleness check — index-in-range, key-exists.
type Edit struct {
	Ref         occurrence.Ref
	Replacement value.Value
	Recorded    value.Value
	HasRecorded bool
}

// WithRecorded builds an Edit carrying the solution's originally-bound
// value at ref, so Apply can detect staleness by value rather than just
// structurally.
func WithRecorded(ref occurrence.Ref, replacement, recorded value.Value) Edit {
	return Edit{Ref: ref, Replacement: replacement, Recorded: recorded, HasRecorded: true}
}

// Result reports what Apply actually did.
type Result struct {
	Tree     value.Value
	Applied  []Edit
	Skipped  []Edit // stale by the time their turn came
}

// Apply folds edits into root, deepest occurrence first. Duplicate edits
// (identical Ref and Replacement) are applied once.
func Apply(root value.Value, edits []Edit) Result {
	ordered := orderEdits(dedupe(edits))
	tree := root
	var applied, skipped []Edit
	for _, ed := range ordered {
		next, ok := spliceOne(tree, ed)
		if !ok {
			skipped = append(skipped, ed)
			continue
		}
		tree = next
		applied = append(applied, ed)
	}
	return Result{Tree: tree, Applied: applied, Skipped: skipped}
}

func dedupe(edits []Edit) []Edit {
	type key struct {
		path string
		kind occurrence.Kind
		ref  string
		repr string
	}
	seen := map[key]bool{}
	var out []Edit
	for _, ed := range edits {
		ref := fmt.Sprintf("%d:%d:%q:%q", ed.Ref.Start, ed.Ref.End, ed.Ref.Key, ed.Ref.Keys)
		k := key{path: pathKey(ed.Ref.Path), kind: ed.Ref.Kind, ref: ref, repr: ed.Replacement.GoString()}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, ed)
	}
	return out
}

func pathKey(p occurrence.Path) string {
	s := ""
	for _, step := range p {
		if step.Kind == occurrence.StepIndex {
			s += fmt.Sprintf("[%d]", step.Index)
		} else {
			s += "." + step.Key
		}
	}
	return s
}

// orderEdits sorts deepest-path-first, then lexicographically by path
// key as a deterministic tie-break (spec §4.7).
func orderEdits(edits []Edit) []Edit {
	out := make([]Edit, len(edits))
	copy(out, edits)
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].Ref.Depth(), out[j].Ref.Depth()
		if di != dj {
			return di > dj
		}
		return pathKey(out[i].Ref.Path) < pathKey(out[j].Ref.Path)
	})
	return out
}
