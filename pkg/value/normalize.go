package value

import "golang.org/x/text/unicode/norm"

// Normalize names the unicode normalization form applied symmetrically to
// both sides of a string comparison, per the unicodeNormalize option
// (spec §6.3).
type Normalize int

const (
	// NormalizeNone performs no normalization; strings compare byte-for-byte.
	NormalizeNone Normalize = iota
	// NormalizeNFC normalizes both operands to NFC before comparing.
	NormalizeNFC
	// NormalizeNFD normalizes both operands to NFD before comparing.
	NormalizeNFD
)

// Apply normalizes s under the given form. NormalizeNone is a no-op.
func (n Normalize) Apply(s string) string {
	switch n {
	case NormalizeNFC:
		return norm.NFC.String(s)
	case NormalizeNFD:
		return norm.NFD.String(s)
	default:
		return s
	}
}

// EqualStrings compares a and b after applying n to both sides
// symmetrically, as required by spec §4.5.1.
func (n Normalize) EqualStrings(a, b string) bool {
	if n == NormalizeNone {
		return a == b
	}
	return n.Apply(a) == n.Apply(b)
}
