// Package matcher is the backtracking engine that walks a matchast.Node
// against a value.Value subject tree, producing a lazy solution.Stream
// (spec §4.5). It runs single-threaded and cooperatively: the search is
// expressed as continuation-passing recursion (matchNode calls a success
// continuation k for every way it can match, and k's return value tells
// the search whether to keep looking for more); the public Stream is
// bridged over that recursion with a single background goroutine that
// blocks on an unbuffered channel until the caller pulls the next
// solution, which is Go's usual stand-in for a cooperative generator
// since the language has no native coroutines.
package matcher

import (
	"go.uber.org/zap"

	"github.com/tendril-lang/tendril/pkg/env"
	"github.com/tendril-lang/tendril/pkg/matchast"
	"github.com/tendril-lang/tendril/pkg/occurrence"
	"github.com/tendril-lang/tendril/pkg/solution"
	"github.com/tendril-lang/tendril/pkg/value"
)

// Cont is a success continuation: called once per complete match with
// the environment that match produced. It returns true to tell the
// search to stop (the caller has everything it needs), false to keep
// backtracking for further solutions.
type Cont func(e *env.Env) bool

// Options configures a single Run.
type Options struct {
	Normalize value.Normalize
	MaxSteps  int // 0 means unbounded
	Logger    *zap.Logger
	Seed      map[string]value.Value // pre-bound scalars, see tendril.WithEnvSeed
}

// ctx threads per-run state through the recursive matchNode calls.
type ctx struct {
	opts    Options
	steps   int
	log     *zap.Logger
	regexes map[string]*regexCacheEntry
	root    value.Value
	err     error
}

func newCtx(opts Options) *ctx {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ctx{opts: opts, log: logger, regexes: map[string]*regexCacheEntry{}}
}

func (c *ctx) step() error {
	c.steps++
	if c.opts.MaxSteps > 0 && c.steps > c.opts.MaxSteps {
		return &StepBudgetExceeded{MaxSteps: c.opts.MaxSteps}
	}
	return nil
}

// StepBudgetExceeded aborts a run once c.opts.MaxSteps matcher steps have
// been spent without resolving (spec §4.5.4.7, §9 BudgetError).
type StepBudgetExceeded struct {
	MaxSteps int
}

func (e *StepBudgetExceeded) Error() string {
	return "tendril: matcher step budget exceeded"
}

// Run matches root against the whole of subject (Logical/anchored mode,
// spec §4.5) and returns a lazy Stream of every solution, bridged over a
// background goroutine (see package doc). See RunScan for Scan mode.
// The returned stream's Close must be called if the caller abandons the
// stream before exhausting it, or the goroutine leaks waiting on the
// unconsumed channel.
func Run(root matchast.Node, subject value.Value, opts Options) *solution.Stream {
	results := make(chan *solution.Solution)
	resume := make(chan bool)
	cancel := make(chan struct{})
	closeOnce := make(chan struct{})

	go func() {
		defer close(results)
		c := newCtx(opts)
		c.root = subject
		budgetErr := func() bool {
			select {
			case <-cancel:
				return true
			default:
			}
			return false
		}
		if budgetErr() {
			return
		}
		initial := env.Empty
		for name, v := range opts.Seed {
			initial = initial.With(env.Scalar, name, env.Binding{Value: v, Occurrences: nil})
		}
		matchNode(c, root, subject, occurrence.Path{}, initial, func(e *env.Env) bool {
			select {
			case results <- &solution.Solution{Root: subject, Where: occurrence.ValueRef(occurrence.Path{}), Env: e}:
			case <-cancel:
				return true
			}
			select {
			case cont := <-resume:
				return !cont
			case <-cancel:
				return true
			}
		})
		if c.err != nil {
			c.log.Debug("match run ended with error", zap.Error(c.err))
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
		sol, ok := <-results
		if !ok {
			return nil, false
		}
		resume <- true
		return sol, true
	}, stop)
}
