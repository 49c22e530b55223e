package matcher

import (
	"go.uber.org/zap"

	"github.com/tendril-lang/tendril/pkg/env"
	"github.com/tendril-lang/tendril/pkg/matchast"
	"github.com/tendril-lang/tendril/pkg/occurrence"
	"github.com/tendril-lang/tendril/pkg/solution"
	"github.com/tendril-lang/tendril/pkg/value"
)

// RunScan matches root against every node of subject and every
// contiguous slice of every sequence within it (Scan mode, spec §4.5),
// attempting a fresh anchored match at each location and yielding one
// solution per success with Where naming the location the match was
// anchored at (spec §3 Solution, §6.1 `.occurrences`). Like Run, it
// streams lazily over a background goroutine bridged through the same
// results/resume/cancel channels, so it must be drained or Closed.
func RunScan(root matchast.Node, subject value.Value, opts Options) *solution.Stream {
	results := make(chan *solution.Solution)
	resume := make(chan bool)
	cancel := make(chan struct{})
	closeOnce := make(chan struct{})

	go func() {
		defer close(results)
		c := newCtx(opts)
		c.root = subject

		seed := env.Empty
		for name, v := range opts.Seed {
			seed = seed.With(env.Scalar, name, env.Binding{Value: v, Occurrences: nil})
		}

		select {
		case <-cancel:
		default:
			emit := func(where occurrence.Ref, e *env.Env) bool {
				select {
				case results <- &solution.Solution{Root: subject, Where: where, Env: e}:
				case <-cancel:
					return true
				}
				select {
				case cont := <-resume:
					return !cont
				case <-cancel:
					return true
				}
			}
			scanVisit(c, root, subject, occurrence.Path{}, seed, emit)
		}
		if c.err != nil {
			c.log.Debug("scan run ended with error", zap.Error(c.err))
		}
	}()

	stop := func() {
		select {
		case <-closeOnce:
		default:
			close(closeOnce)
			close(cancel)
		}
	}

	return solution.NewWithClose(func() (*solution.Solution, bool) {
		select {
		case <-cancel:
			return nil, false
		default:
		}
		sol, ok := <-results
		if !ok {
			return nil, false
		}
		select {
		case resume <- true:
		case <-cancel:
		}
		return sol, true
	}, stop)
}

// scanVisit attempts an anchored match of root against v, treating v as
// its own occurrence root (so bindings recorded during this attempt use
// paths relative to v, not to the overall subject), then recurses into
// every contiguous slice of v (when v is a sequence) and every child of
// v. Visit order — this node, then its slices, then its children, in
// index order for sequences and insertion order for mappings — combines
// with the matcher's own depth-first choice order to give scan mode a
// deterministic solution order (spec §5).
//
// It returns true the moment emit asks the search to stop (the caller
// has everything it needs, or the stream was cancelled) or a fatal error
// occurs, exactly like matchNode's own return convention.
func scanVisit(c *ctx, root matchast.Node, v value.Value, path occurrence.Path, seed *env.Env, emit func(occurrence.Ref, *env.Env) bool) bool {
	if c.err != nil {
		return true
	}
	here := occurrence.ValueRef(path)
	if matchNode(c, root, v, occurrence.Path{}, seed, func(e *env.Env) bool {
		return emit(here, e)
	}) {
		return true
	}
	if c.err != nil {
		return true
	}

	if seq, ok := v.AsSequence(); ok {
		for n := 1; n < len(seq); n++ {
			for start := 0; start+n <= len(seq); start++ {
				slice := value.Sequence(seq[start : start+n]...)
				sliceRef := occurrence.ArraySliceRef(path, start, start+n)
				if matchNode(c, root, slice, occurrence.Path{}, seed, func(e *env.Env) bool {
					return emit(sliceRef, e)
				}) {
					return true
				}
				if c.err != nil {
					return true
				}
			}
		}
		for i, elem := range seq {
			if scanVisit(c, root, elem, path.Append(occurrence.IndexStep(i)), seed, emit) {
				return true
			}
			if c.err != nil {
				return true
			}
		}
		return false
	}

	if m, ok := v.AsMapping(); ok {
		for p := m.Oldest(); p != nil; p = p.Next() {
			if scanVisit(c, root, p.Value, path.Append(occurrence.KeyStep(p.Key)), seed, emit) {
				return true
			}
			if c.err != nil {
				return true
			}
		}
	}
	return false
}
