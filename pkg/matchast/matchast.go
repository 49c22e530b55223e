// Package matchast is the lowered, canonical pattern AST the matcher
// actually walks (spec §3 "Pattern AST" as realized after §4.3 lowering).
// Every quantifier is represented by an explicit Quant with a resolved
// policy; every alternation is a flat N-ary Alt; every sequence/object
// grammar production surviving lowering keeps only the shapes the
// matcher needs to interpret, not the surface grammar's parse shape.
package matchast

import "github.com/tendril-lang/tendril/pkg/guard"

// QuantPolicy selects how a repetition tries and retries candidate
// lengths during backtracking (spec §4.5.4.2/§4.5.4.3).
type QuantPolicy int

const (
	// Greedy tries the longest span first, backing off on failure.
	Greedy QuantPolicy = iota
	// Reluctant tries the shortest span first, growing on failure.
	Reluctant
	// Possessive tries only the longest span and never backs off.
	Possessive
)

func (p QuantPolicy) String() string {
	switch p {
	case Greedy:
		return "greedy"
	case Reluctant:
		return "reluctant"
	case Possessive:
		return "possessive"
	default:
		return "policy(?)"
	}
}

// Quant bounds a repeated node: Min and Max (-1 = unbounded) occurrences,
// tried under Policy.
type Quant struct {
	Min    int
	Max    int // -1 means unbounded
	Policy QuantPolicy
}

// Unbounded reports whether the quantifier has no upper bound.
func (q Quant) Unbounded() bool { return q.Max < 0 }

// Node is any matcher-AST node. Sealed to this package's concrete types
// via the unexported marker method.
type Node interface {
	node()
}

// Any matches exactly one value of any kind (surface `_`).
type Any struct{}

func (Any) node() {}

// Lit matches a scalar by SameValueZero equality against Value.
type Lit struct {
	Value LitValue
}

func (Lit) node() {}

// LitKind distinguishes the scalar kinds a Lit can hold.
type LitKind int

const (
	LitString LitKind = iota
	LitNumber
	LitBool
	LitNull
)

// LitValue is a boxed literal scalar (kept separate from pkg/value.Value
// so this package has no import-cycle exposure to the tree being matched;
// pkg/matcher converts at comparison time).
type LitValue struct {
	Kind LitKind
	S    string
	N    float64
	B    bool
}

// Regex matches a string scalar against a compiled ECMAScript pattern
// (spec §4.5.4.1, backed by dlclark/regexp2; see pkg/matcher).
type Regex struct {
	Source string
	Flags  string
}

func (Regex) node() {}

// ScalarBind captures the value a sub-pattern matches under Name,
// recording an occurrence ref at match time (spec §3 Binding, §4.6).
type ScalarBind struct {
	Name string
	Body Node // nil means an unconstrained `$name` capture
}

func (ScalarBind) node() {}

// GroupBind captures a contiguous array span or an object-term subset
// under Name as a structured projection rather than a single scalar
// (spec §3 GroupBind).
type GroupBind struct {
	Name string
	Body Node
}

func (GroupBind) node() {}

// Alt is a flat N-ary alternation; lowering flattens nested left-associative
// `|` chains into one Alt (spec §4.3).
type Alt struct {
	Options []Node
}

func (Alt) node() {}

// Look is a zero-width lookahead; the matcher restores all bindings made
// while evaluating Body once Look itself resolves (spec §4.5.4.6).
type Look struct {
	Negative bool
	Body     Node
}

func (Look) node() {}

// Seq is an ordered array pattern: literal values interleaved with Repeat
// spans (every element of a surface ArrPattern lowers to exactly one Seq
// element, bare `..` lowering to an unbounded Any Repeat).
type Seq struct {
	Elems []SeqElem
}

func (Seq) node() {}

// SeqElem is one position in a Seq: a node under a resolved Quant.
type SeqElem struct {
	Node  Node
	Quant Quant
}

// Obj is a mapping pattern: a set of object-level requirements (each an
// *OTerm, an Obj for a parenthesized sub-group, a Look over nested object
// terms, or a GroupBind projecting a nested Obj) plus an optional
// Remainder clause over the keys none of the terms claimed.
type Obj struct {
	Terms     []Node
	Remainder *Remainder
}

func (Obj) node() {}

// OTerm is one object-term requirement: match Key against candidate keys,
// descend through Breadcrumbs, then match Value against what's found
// there, guarded by a resolved occurrence Quant and Optional flag (spec
// §4.2 OTerm, §4.5.4.4).
type OTerm struct {
	Key KeyMatch
	// AnyDepth is true when the surface head was the bare `..` sentinel
	// (spec §4.2 OTermHead "Root" branch): the key may be found at any
	// depth below the current mapping rather than only among its direct
	// keys.
	AnyDepth    bool
	Breadcrumbs []Breadcrumb
	Value       Node
	Quant       Quant
	Optional    bool
}

func (OTerm) node() {}

// Guarded wraps any node with a `when(...)` clause attached to its
// surface Term (spec §4.4 scopes guard evaluation to "once the term's own
// bindings are in scope", so Guarded evaluates Body's bindings into scope
// before running Expr). ClosedVars lists the free variables pkg/lower
// proved are already bound by the time this guard runs (spec §7 closure
// analysis); an empty ClosedVars with non-empty guard.FreeVars means the
// guard can only be checked at runtime, against whatever the environment
// holds then.
type Guarded struct {
	Body       Node
	Expr       *guard.Expr
	ClosedVars []string
}

func (Guarded) node() {}

// KeyMatchKind distinguishes how an OTerm selects candidate keys.
type KeyMatchKind int

const (
	KeyLiteral KeyMatchKind = iota
	KeyRegex
	KeyBind
	KeyWild
)

// KeyMatch is the lowered form of KeyPattern.
type KeyMatch struct {
	Kind  KeyMatchKind
	Lit   string // KeyLiteral
	RxSrc string // KeyRegex
	RxFl  string // KeyRegex
	Bind  string // KeyBind: capture name, empty means unnamed
}

// BreadcrumbKind distinguishes the three ways an OTerm descends from a
// matched key's value before its Value pattern is applied.
type BreadcrumbKind int

const (
	// BreadcrumbDot descends exactly one level via the embedded Item.
	BreadcrumbDot BreadcrumbKind = iota
	// BreadcrumbBracket descends exactly one level via index/element form.
	BreadcrumbBracket
	// BreadcrumbSkip descends zero or more levels until Item matches
	// somewhere below (spec §4.5.4.4's "skip breadcrumb"); bare skip
	// (Item == nil) just asserts "any depth, any shape".
	BreadcrumbSkip
)

// Breadcrumb is one descent step.
type Breadcrumb struct {
	Kind BreadcrumbKind
	Item Node // nil only for BreadcrumbSkip's bare ".." form
}

// RemainderKind distinguishes the four Remnant forms from spec §4.2/§4.5.4.5.
type RemainderKind int

const (
	// RemainderExhausted (`$`) asserts no keys remain unclaimed.
	RemainderExhausted RemainderKind = iota
	// RemainderAsserted (`(?!remainder)`) is equivalent to Exhausted but
	// written as a lookahead; the matcher treats both identically.
	RemainderAsserted
	// RemainderPlain (`%`/`remainder`) captures leftover keys without
	// naming them, optionally bounded by Quant and optionally absent
	// (Optional).
	RemainderPlain
	// RemainderBind (`@name=(%...)`) captures leftover keys as a named
	// mapping-projection GroupBind.
	RemainderBind
)

// Remainder describes what happens to mapping keys no OTerm claimed.
type Remainder struct {
	Kind     RemainderKind
	Name     string // RemainderBind only
	Optional bool
	Quant    Quant // Min 0, Max -1 (unbounded) when no range was written
}
