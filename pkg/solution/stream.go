package solution

// Stream is a lazy, pull-based sequence of solutions (spec §5, §6): each
// call to Next runs just enough of the matcher's backtracking search to
// produce (or rule out) one more Solution. Nothing downstream of the
// matcher forces more work than it asks for; Take(n) or First stops the
// underlying search the moment enough solutions exist.
//
// A Stream backed by a live search (as matcher.Run's is) may hold a
// background goroutine open between calls to Next; Close releases it.
// Streams built by New alone have nothing to release and Close is a
// no-op on them.
type Stream struct {
	next  func() (*Solution, bool)
	close func()
}

// New wraps a generator function as a Stream. The generator must be safe
// to call repeatedly after it once returns false (returning false again
// forever), matching the matcher's own exhausted-search behavior. The
// resulting Stream has no backing resource to release; Close is a no-op.
func New(next func() (*Solution, bool)) *Stream {
	return &Stream{next: next}
}

// NewWithClose wraps a generator together with a close function that
// releases whatever resource backs it (spec §5: "callers cancel by
// ceasing to consume the iterator; partial state is disposed").
func NewWithClose(next func() (*Solution, bool), closeFn func()) *Stream {
	return &Stream{next: next, close: closeFn}
}

// Close releases any resource backing the stream — for matcher.Run's
// Stream, this cancels the background search goroutine. Safe to call
// more than once, and safe on a Stream with nothing to release.
func (s *Stream) Close() {
	if s == nil || s.close == nil {
		return
	}
	s.close()
}

// Next pulls the next solution, if the search hasn't been exhausted.
func (s *Stream) Next() (*Solution, bool) {
	if s == nil || s.next == nil {
		return nil, false
	}
	return s.next()
}

// Filter returns a Stream of only the solutions pred accepts, still
// backed by s's own Close.
func (s *Stream) Filter(pred func(*Solution) bool) *Stream {
	return NewWithClose(func() (*Solution, bool) {
		for {
			sol, ok := s.Next()
			if !ok {
				return nil, false
			}
			if pred(sol) {
				return sol, true
			}
		}
	}, s.Close)
}

// Map transforms each solution through f without changing how many of
// them the underlying search has to produce.
func (s *Stream) Map(f func(*Solution) *Solution) *Stream {
	return NewWithClose(func() (*Solution, bool) {
		sol, ok := s.Next()
		if !ok {
			return nil, false
		}
		return f(sol), true
	}, s.Close)
}

// Take stops the stream after at most n solutions.
func (s *Stream) Take(n int) *Stream {
	remaining := n
	return NewWithClose(func() (*Solution, bool) {
		if remaining <= 0 {
			return nil, false
		}
		sol, ok := s.Next()
		if !ok {
			return nil, false
		}
		remaining--
		return sol, true
	}, s.Close)
}

// Unique drops solutions whose scalar bindings render identically
// (Value.GoString, via Solution.key) to one already yielded. With no
// names given every scalar binding is compared; given names restricts
// the comparison to just those bindings (spec §6.1's `unique(varNames…)`).
// The comparison is by rendering, not value.DeepEqual: mappings holding
// the same entries in a different key order, and -0 versus 0, count as
// distinct.
func (s *Stream) Unique(names ...string) *Stream {
	return s.UniqueBy(func(sol *Solution) string { return sol.key(names...) })
}

// UniqueBy drops solutions whose key() has already been yielded.
func (s *Stream) UniqueBy(key func(*Solution) string) *Stream {
	seen := map[string]bool{}
	return s.Filter(func(sol *Solution) bool {
		k := key(sol)
		if seen[k] {
			return false
		}
		seen[k] = true
		return true
	})
}

// First pulls at most one solution and releases the stream: per spec §5,
// a caller that stops after the first solution has ceased consuming the
// iterator, so whatever search backs the stream is cancelled right away
// rather than left blocked offering a second solution nobody will take.
func (s *Stream) First() (*Solution, bool) {
	defer s.Close()
	return s.Next()
}

// Count exhausts the stream and counts how many solutions it produced,
// then releases it. Only terminates if the underlying search does (spec
// §4.5.4.7 requires callers to bound unbounded searches via maxSteps,
// not Count itself).
func (s *Stream) Count() int {
	defer s.Close()
	n := 0
	for {
		if _, ok := s.Next(); !ok {
			return n
		}
		n++
	}
}

// ToArray exhausts the stream into a slice, in solution order, then
// releases it.
func (s *Stream) ToArray() []*Solution {
	defer s.Close()
	var out []*Solution
	for {
		sol, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, sol)
	}
}

// Project exhausts the stream, running fn over each solution and
// collecting its result — the terminal counterpart to Map, for callers
// that want the projected values themselves (e.g. bound scalars pulled
// out into plain Go values) rather than a further Stream of Solutions.
// Releases the stream once exhausted.
func (s *Stream) Project(fn func(*Solution) any) []any {
	defer s.Close()
	var out []any
	for {
		sol, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, fn(sol))
	}
}
