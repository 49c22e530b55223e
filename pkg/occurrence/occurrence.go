// Package occurrence locates where in the subject tree a binding's value
// came from, independent of the value itself (spec §3 OccurrenceRef,
// §4.6). A Ref is replayed against a live tree by pkg/edit to splice in a
// replacement without re-matching.
package occurrence

// StepKind distinguishes the two ways a Path descends through a tree.
type StepKind int

const (
	StepIndex StepKind = iota
	StepKey
)

// Step is one hop of a Path: either a sequence index or a mapping key.
type Step struct {
	Kind  StepKind
	Index int
	Key   string
}

// IndexStep builds a sequence-index path step.
func IndexStep(i int) Step { return Step{Kind: StepIndex, Index: i} }

// KeyStep builds a mapping-key path step.
func KeyStep(k string) Step { return Step{Kind: StepKey, Key: k} }

// Path is the sequence of steps from the match root down to the node a
// Ref describes.
type Path []Step

// Append returns a new Path with step appended, never mutating p.
func (p Path) Append(step Step) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = step
	return out
}

// Kind distinguishes the four occurrence shapes spec §3 defines.
type Kind int

const (
	// KindValue refers to one whole value at Path (a scalar binding, or a
	// group binding's single captured element).
	KindValue Kind = iota
	// KindArraySlice refers to a contiguous run Path[...][Start:End] of a
	// sequence (an array-context GroupBind span).
	KindArraySlice
	// KindObjectValue refers to the value at Path[...][Key] of a mapping
	// (an object-term's value position).
	KindObjectValue
	// KindObjectKeys refers to a subset of keys of the mapping at Path
	// (an object-context GroupBind or Remainder projection).
	KindObjectKeys
)

// Ref is an occurrence reference: where a bound value was found, recorded
// precisely enough to be replayed against the live tree during editing.
type Ref struct {
	Kind  Kind
	Path  Path
	Start int      // KindArraySlice
	End   int      // KindArraySlice, exclusive
	Key   string   // KindObjectValue
	Keys  []string // KindObjectKeys
}

// ValueRef builds a KindValue occurrence.
func ValueRef(path Path) Ref { return Ref{Kind: KindValue, Path: path} }

// ArraySliceRef builds a KindArraySlice occurrence over [start, end).
func ArraySliceRef(path Path, start, end int) Ref {
	return Ref{Kind: KindArraySlice, Path: path, Start: start, End: end}
}

// ObjectValueRef builds a KindObjectValue occurrence at key.
func ObjectValueRef(path Path, key string) Ref {
	return Ref{Kind: KindObjectValue, Path: path, Key: key}
}

// ObjectKeysRef builds a KindObjectKeys occurrence over keys.
func ObjectKeysRef(path Path, keys []string) Ref {
	cp := make([]string, len(keys))
	copy(cp, keys)
	return Ref{Kind: KindObjectKeys, Path: path, Keys: cp}
}

// Depth is the number of steps in the occurrence's Path, used by pkg/edit
// to order edits deepest-first so nested splices apply before their
// ancestors see a stale shape.
func (r Ref) Depth() int { return len(r.Path) }
