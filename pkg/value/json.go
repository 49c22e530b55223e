package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// ParseJSON decodes a single JSON document into a Value tree, preserving
// object key order via json.Decoder's token stream (json.Unmarshal into
// map[string]any would otherwise lose it, since a Go map has none).
func ParseJSON(data []byte) (Value, error) {
	return DecodeJSON(bytes.NewReader(data))
}

// DecodeJSON is ParseJSON reading from r.
func DecodeJSON(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("value: trailing data after JSON document")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			om := newOMap()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("value: expected object key, got %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				om.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return Value{}, err
			}
			return MappingFrom(om), nil
		case '[':
			var items []Value
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return Value{}, err
			}
			return Sequence(items...), nil
		default:
			return Value{}, fmt.Errorf("value: unexpected delimiter %v", t)
		}
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("value: invalid JSON number %q: %w", t.String(), err)
		}
		return Number(f), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("value: unsupported JSON token %v (%T)", tok, tok)
	}
}

func newOMap() *OMap {
	return MappingFrom(nil).m // allocate via the same constructor Mapping uses
}

// EncodeJSON renders v as JSON, preserving Mapping key order. Indent, if
// non-empty, is used as the per-level indentation string (matching
// json.MarshalIndent); an empty indent produces compact output.
func EncodeJSON(v Value, indent string) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v, indent, ""); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v Value, indent, prefix string) error {
	nextPrefix := prefix + indent
	nl := func() {
		if indent != "" {
			buf.WriteByte('\n')
			buf.WriteString(nextPrefix)
		}
	}
	closeNl := func() {
		if indent != "" {
			buf.WriteByte('\n')
			buf.WriteString(prefix)
		}
	}
	switch v.Kind() {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		b, _ := v.AsBool()
		if b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		n, _ := v.AsNumber()
		enc, err := json.Marshal(n)
		if err != nil {
			return err
		}
		buf.Write(enc)
	case KindString:
		s, _ := v.AsString()
		enc, err := json.Marshal(s)
		if err != nil {
			return err
		}
		buf.Write(enc)
	case KindSequence:
		seq, _ := v.AsSequence()
		if len(seq) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteByte('[')
		for i, elem := range seq {
			if i > 0 {
				buf.WriteByte(',')
			}
			nl()
			if err := writeJSON(buf, elem, indent, nextPrefix); err != nil {
				return err
			}
		}
		closeNl()
		buf.WriteByte(']')
	case KindMapping:
		keys := v.Keys()
		if len(keys) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			nl()
			keyEnc, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(keyEnc)
			buf.WriteByte(':')
			if indent != "" {
				buf.WriteByte(' ')
			}
			val, _ := v.Get(k)
			if err := writeJSON(buf, val, indent, nextPrefix); err != nil {
				return err
			}
		}
		closeNl()
		buf.WriteByte('}')
	}
	return nil
}
