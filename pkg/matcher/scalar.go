package matcher

import (
	"github.com/dlclark/regexp2"

	"github.com/tendril-lang/tendril/pkg/matchast"
	"github.com/tendril-lang/tendril/pkg/value"
)

type regexCacheEntry struct {
	re  *regexp2.Regexp
	err error
}

// compileRegex compiles and caches an ECMAScript regex per (source,
// flags) pair for the lifetime of one Run (spec §4.5.4.1). Recognized
// flags: i (ignore case), m (multiline), s (dotall), u (unicode), y
// (sticky, mapped to regexp2's RE2 option is not applicable so treated as
// a no-op marker kept for source fidelity).
func (c *ctx) compileRegex(source, flags string) (*regexp2.Regexp, error) {
	key := flags + "\x00" + source
	if e, ok := c.regexes[key]; ok {
		return e.re, e.err
	}
	opts := regexp2.None
	for _, f := range flags {
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		case 'u':
			opts |= regexp2.Unicode
		case 'y':
			// Sticky matching isn't a distinct regexp2 option; Tendril
			// regex atoms always anchor at position 0 of the whole
			// subject string anyway (spec §4.5.4.1), so 'y' is accepted
			// for source compatibility and otherwise ignored.
		}
	}
	re, err := regexp2.Compile(source, opts)
	c.regexes[key] = &regexCacheEntry{re: re, err: err}
	return re, err
}

// matchRegex reports whether the leftmost match of re starts at position 0
// and covers the whole of subject (the Regex atom requires a whole-string
// match, spec §4.5.4.1); a shorter leftmost match is not retried with other
// alternatives, so `/a|ab/` does not match "ab". It applies the run's
// unicode-normalize policy to the subject only (see SPEC_FULL.md §5: the
// regex source is never normalized, only the candidate string is).
func (c *ctx) matchRegex(r matchast.Regex, subject string) (bool, error) {
	re, err := c.compileRegex(r.Source, r.Flags)
	if err != nil {
		return false, err
	}
	normalized := c.opts.Normalize.Apply(subject)
	m, err := re.FindStringMatch(normalized)
	if err != nil {
		return false, err
	}
	return m != nil && m.Index == 0 && m.String() == normalized, nil
}

// matchLit reports whether v equals a literal scalar via SameValueZero
// (spec §4.5.4.1): NaN equals NaN, -0 equals +0, and strings compare
// under the run's unicode-normalize policy.
func (c *ctx) matchLit(lit matchast.LitValue, v value.Value) bool {
	switch lit.Kind {
	case matchast.LitString:
		s, ok := v.AsString()
		return ok && c.opts.Normalize.EqualStrings(lit.S, s)
	case matchast.LitNumber:
		n, ok := v.AsNumber()
		if !ok {
			return false
		}
		if lit.N != lit.N && n != n { // both NaN
			return true
		}
		return lit.N == n
	case matchast.LitBool:
		b, ok := v.AsBool()
		return ok && b == lit.B
	case matchast.LitNull:
		return v.IsNull()
	default:
		return false
	}
}
