package value

import (
	"fmt"
	"sort"
)

// FromGo converts native Go data (as produced by encoding/json.Unmarshal
// into `any`, or hand-built literals in tests) into a Value tree.
// Accepted inputs: nil, bool, string, any numeric kind (converted to
// float64), []any, map[string]any, and already-built Value/[]Value/Pair
// slices for convenience when composing trees in Go code.
func FromGo(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case float64:
		return Number(x), nil
	case float32:
		return Number(float64(x)), nil
	case int:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case []any:
		items := make([]Value, len(x))
		for i, e := range x {
			cv, err := FromGo(e)
			if err != nil {
				return Value{}, err
			}
			items[i] = cv
		}
		return Sequence(items...), nil
	case []Value:
		return Sequence(x...), nil
	case []Pair:
		return Mapping(x...), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]Pair, 0, len(x))
		for _, k := range keys {
			cv, err := FromGo(x[k])
			if err != nil {
				return Value{}, err
			}
			pairs = append(pairs, Pair{Key: k, Value: cv})
		}
		return Mapping(pairs...), nil
	default:
		return Value{}, fmt.Errorf("value: cannot convert %T to Value", v)
	}
}

// MustFromGo is FromGo but panics on error; intended for tests and
// literal tree construction, never for production input paths.
func MustFromGo(v any) Value {
	out, err := FromGo(v)
	if err != nil {
		panic(err)
	}
	return out
}

// ToGo converts a Value tree back into native Go data, the inverse of
// FromGo (modulo Mapping key order, which plain map[string]any cannot
// preserve — callers that need order should read Keys()/Get() directly).
func ToGo(v Value) any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, e := range v.seq {
			out[i] = ToGo(e)
		}
		return out
	case KindMapping:
		out := make(map[string]any, v.Len())
		for _, k := range v.Keys() {
			cv, _ := v.Get(k)
			out[k] = ToGo(cv)
		}
		return out
	default:
		return nil
	}
}
