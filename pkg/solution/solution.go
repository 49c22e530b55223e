// Package solution holds what a successful match produced: the root
// value that was matched and every name the pattern bound, plus the lazy
// SolutionStream the matcher drives solutions through (spec §3 Solution,
// §5 "pull iterator", §6 SolutionStream).
package solution

import (
	"sort"

	"github.com/tendril-lang/tendril/pkg/env"
	"github.com/tendril-lang/tendril/pkg/occurrence"
	"github.com/tendril-lang/tendril/pkg/value"
)

// Solution is one successful match: the whole-tree Root the pattern was
// run against, Where the match was anchored within Root (the occurrence
// root: Root itself in Logical mode, the visited node or slice in Scan
// mode — spec §3 "where"), and the Env snapshot holding every
// scalar/group binding the match made along the way.
type Solution struct {
	Root  value.Value
	Where occurrence.Ref
	Env   *env.Env
}

// Value returns the value bound to scalar name $name, if any.
func (s *Solution) Value(name string) (value.Value, bool) {
	b, ok := s.Env.Get(env.Scalar, name)
	if !ok {
		return value.Value{}, false
	}
	return b.Value, true
}

// Group returns the value projected by group binding @name, if any.
func (s *Solution) Group(name string) (value.Value, bool) {
	b, ok := s.Env.Get(env.Group, name)
	if !ok {
		return value.Value{}, false
	}
	return b.Value, true
}

// Occurrences returns the occurrence refs recorded for scalar binding
// $name, if any (spec §4.6: normally one ref; a scalar bound at several
// sites, such as `[$a, $a]` or inside a repeat, carries one ref per site,
// since each unifying re-bind appends its ref to the earlier ones).
func (s *Solution) Occurrences(name string) ([]occurrence.Ref, bool) {
	b, ok := s.Env.Get(env.Scalar, name)
	if !ok {
		return nil, false
	}
	return b.Occurrences, true
}

// GroupOccurrences returns the occurrence refs recorded for group
// binding @name, if any.
func (s *Solution) GroupOccurrences(name string) ([]occurrence.Ref, bool) {
	b, ok := s.Env.Get(env.Group, name)
	if !ok {
		return nil, false
	}
	return b.Occurrences, true
}

// AllValues returns every scalar binding's value keyed by name, most
// recent per name.
func (s *Solution) AllValues() map[string]value.Value {
	return s.Env.ScalarValues()
}

// key produces a structural dedup key for Unique/UniqueBy's default
// comparison. With no names given it covers every scalar binding; given
// names, it restricts the comparison to just those (spec §6.1's
// `unique(varNames…)`), so two solutions that differ only in bindings
// outside that list collapse into one.
func (s *Solution) key(names ...string) string {
	vals := s.AllValues()
	if len(names) == 0 {
		names = make([]string, 0, len(vals))
		for name := range vals {
			names = append(names, name)
		}
		sort.Strings(names)
	}
	var sb []byte
	for _, name := range names {
		sb = append(sb, []byte(name)...)
		sb = append(sb, ':')
		sb = append(sb, []byte(vals[name].GoString())...)
		sb = append(sb, ';')
	}
	return string(sb)
}
