// Package value implements the tree value V from the Tendril data model:
// a recursive tagged union of Null, Bool, Number, String, Sequence and
// Mapping, with SameValueZero scalar equality and deep-structural equality
// over composites.
//
// Mappings preserve insertion order — required for deterministic rewrite
// output — by way of an ordered map rather than a plain Go map.
package value

import (
	"fmt"
	"math"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind tags the variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// OMap is the ordered string-keyed map backing Mapping values.
type OMap = orderedmap.OrderedMap[string, Value]

// Value is the recursive tagged union described in spec §3.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	seq  []Value
	m    *OMap
}

// Pair is a single key/value entry used to build a Mapping.
type Pair struct {
	Key   string
	Value Value
}

// Null returns the Null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a Bool value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a Number value.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String returns a String value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Sequence returns a Sequence value over the given elements, copied.
func Sequence(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindSequence, seq: cp}
}

// Mapping returns a Mapping value built from pairs, preserving order.
// Later pairs with a duplicate key overwrite the earlier value in place
// (insertion position is that of the first occurrence), matching ordinary
// object-literal semantics.
func Mapping(pairs ...Pair) Value {
	om := orderedmap.New[string, Value]()
	for _, p := range pairs {
		om.Set(p.Key, p.Value)
	}
	return Value{kind: KindMapping, m: om}
}

// MappingFrom wraps an already-built ordered map without copying.
func MappingFrom(m *OMap) Value {
	if m == nil {
		m = orderedmap.New[string, Value]()
	}
	return Value{kind: KindMapping, m: m}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload and whether v is a Bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the numeric payload and whether v is a Number.
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == KindNumber }

// AsString returns the string payload and whether v is a String.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsSequence returns the element slice and whether v is a Sequence.
// The returned slice must not be mutated by callers.
func (v Value) AsSequence() ([]Value, bool) { return v.seq, v.kind == KindSequence }

// AsMapping returns the backing ordered map and whether v is a Mapping.
// The returned map must not be mutated by callers.
func (v Value) AsMapping() (*OMap, bool) { return v.m, v.kind == KindMapping }

// Len reports the natural length of v for the guard size() builtin:
// rune count for strings, element count for sequences, key count for
// mappings, and 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindString:
		return len([]rune(v.s))
	case KindSequence:
		return len(v.seq)
	case KindMapping:
		if v.m == nil {
			return 0
		}
		return v.m.Len()
	default:
		return 0
	}
}

// Get returns the value at key in a Mapping, or Null/false otherwise.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMapping || v.m == nil {
		return Null(), false
	}
	return v.m.Get(key)
}

// Keys returns the ordered key list of a Mapping, nil otherwise.
func (v Value) Keys() []string {
	if v.kind != KindMapping || v.m == nil {
		return nil
	}
	keys := make([]string, 0, v.m.Len())
	for pair := v.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// SameValueZero implements scalar equality where NaN equals NaN and -0
// equals +0, per spec §3. For composite kinds it falls back to DeepEqual
// so that group-binding unification (§4.5.2) can use one comparison.
func SameValueZero(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		if math.IsNaN(a.n) && math.IsNaN(b.n) {
			return true
		}
		return a.n == b.n // Go's == already equates -0 and +0
	case KindString:
		return a.s == b.s
	default:
		return DeepEqual(a, b)
	}
}

// DeepEqual implements deep-structural equality: scalars compare via
// SameValueZero, Sequences compare element-wise in order, Mappings
// compare by key set and per-key value (order-insensitive, since two
// mappings with the same entries in different insertion order are the
// same JSON-shaped value; insertion order only affects rewrite output).
func DeepEqual(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindSequence:
		if len(a.seq) != len(b.seq) {
			return false
		}
		for i := range a.seq {
			if !DeepEqual(a.seq[i], b.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if a.Len() != b.Len() {
			return false
		}
		for _, k := range a.Keys() {
			av, _ := a.Get(k)
			bv, ok := b.Get(k)
			if !ok || !DeepEqual(av, bv) {
				return false
			}
		}
		return true
	default:
		return SameValueZero(a, b)
	}
}

// Equal reports deep-structural equality, the same comparison DeepEqual
// performs. It exists so external comparison tools that look for an
// Equal(T) bool method (go-cmp's cmp.Diff, most notably) can compare
// Values without reaching into their unexported fields.
func (v Value) Equal(other Value) bool { return DeepEqual(v, other) }

// Clone returns a structural copy of v. Scalars are returned as-is
// (immutable); Sequences and Mappings are copied one level at a time,
// recursively, so the result shares no mutable backing storage with v.
func Clone(v Value) Value {
	switch v.kind {
	case KindSequence:
		out := make([]Value, len(v.seq))
		for i, e := range v.seq {
			out[i] = Clone(e)
		}
		return Value{kind: KindSequence, seq: out}
	case KindMapping:
		om := orderedmap.New[string, Value]()
		if v.m != nil {
			for pair := v.m.Oldest(); pair != nil; pair = pair.Next() {
				om.Set(pair.Key, Clone(pair.Value))
			}
		}
		return Value{kind: KindMapping, m: om}
	default:
		return v
	}
}

// GoString renders a Go-ish debug form of v. It is not a JSON encoder and
// makes no stability promises across versions; it exists for error
// messages and test failure output.
func (v Value) GoString() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%v", v.b)
	case KindNumber:
		return fmt.Sprintf("%v", v.n)
	case KindString:
		return fmt.Sprintf("%q", v.s)
	case KindSequence:
		out := "["
		for i, e := range v.seq {
			if i > 0 {
				out += ", "
			}
			out += e.GoString()
		}
		return out + "]"
	case KindMapping:
		out := "{"
		for i, k := range v.Keys() {
			if i > 0 {
				out += ", "
			}
			val, _ := v.Get(k)
			out += fmt.Sprintf("%q: %s", k, val.GoString())
		}
		return out + "}"
	default:
		return "?"
	}
}
