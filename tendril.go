// Package tendril compiles and runs Tendril patterns against JSON-shaped
// trees: match, capture, and rewrite nested Go values the way a regular
// expression matches, captures, and rewrites a string (spec §1).
package tendril

import (
	"fmt"

	"github.com/alecthomas/participle/v2"

	"github.com/tendril-lang/tendril/pkg/ast"
	"github.com/tendril-lang/tendril/pkg/edit"
	"github.com/tendril-lang/tendril/pkg/lower"
	"github.com/tendril-lang/tendril/pkg/matchast"
	"github.com/tendril-lang/tendril/pkg/matcher"
	"github.com/tendril-lang/tendril/pkg/solution"
	"github.com/tendril-lang/tendril/pkg/value"
)

// Pattern is a compiled Tendril pattern, ready to run against any number
// of subject trees.
type Pattern struct {
	src  string
	root matchast.Node
	cfg  config
}

// Compile parses and lowers src into a Pattern (spec §6.1 Compile).
// Parse failures surface as *ParseError; lowering failures (an invalid
// embedded when(...) clause, or a literal key repeated within one object
// pattern) surface as *LowerError.
func Compile(src string, opts ...Option) (*Pattern, error) {
	p, err := ast.NewParser()
	if err != nil {
		return nil, fmt.Errorf("tendril: internal grammar error: %w", err)
	}
	surface, err := p.ParseString("", src)
	if err != nil {
		return nil, toParseError(err)
	}
	root, err := lower.Lower(surface)
	if err != nil {
		return nil, &LowerError{Message: err.Error()}
	}
	return &Pattern{src: src, root: root, cfg: applyOptions(opts)}, nil
}

// toParseError wraps a participle parse failure as a *ParseError,
// carrying participle's own 1-based line/column through (spec.md §6.4).
func toParseError(err error) error {
	if perr, ok := err.(participle.Error); ok {
		pos := perr.Position()
		return &ParseError{Message: perr.Message(), Position: Position{Line: pos.Line, Column: pos.Column}}
	}
	return &ParseError{Message: err.Error()}
}

// Source returns the pattern text Compile was given.
func (p *Pattern) Source() string {
	return p.src
}

func (p *Pattern) runOptions() matcher.Options {
	return matcher.Options{
		Normalize: p.cfg.normalize,
		MaxSteps:  p.cfg.maxSteps,
		Logger:    p.cfg.logger,
		Seed:      p.cfg.envSeed,
	}
}

func (p *Pattern) run(subject value.Value) *solution.Stream {
	return matcher.Run(p.root, subject, p.runOptions())
}

// Solutions returns every way p matches subject, as a lazy stream (spec
// §6.2 SolutionStream).
func (p *Pattern) Solutions(subject value.Value) *solution.Stream {
	return p.run(subject)
}

// Matches reports whether p matches subject at least once.
func (p *Pattern) Matches(subject value.Value) bool {
	_, ok := p.run(subject).First()
	return ok
}

// Extract returns the first solution's bindings, if p matches.
func (p *Pattern) Extract(subject value.Value) (map[string]value.Value, bool) {
	sol, ok := p.run(subject).First()
	if !ok {
		return nil, false
	}
	return sol.AllValues(), true
}

// ExtractAll returns every solution's bindings.
func (p *Pattern) ExtractAll(subject value.Value) []map[string]value.Value {
	var out []map[string]value.Value
	for _, sol := range p.run(subject).ToArray() {
		out = append(out, sol.AllValues())
	}
	return out
}

// Occurrences scans subject for every node and sequence slice p matches
// (Scan mode, spec §4.5), returning a lazy stream of one Solution per
// location; each Solution's Where names the location the match was
// anchored at (spec §6.1 `.occurrences`).
func (p *Pattern) Occurrences(subject value.Value) *solution.Stream {
	return matcher.RunScan(p.root, subject, p.runOptions())
}

// Replace rewrites the first match's binding of name to replacement and
// returns the resulting tree, leaving subject untouched (spec §4.7,
// §6.1 Edit).
func (p *Pattern) Replace(subject value.Value, name string, replacement value.Value) (value.Value, bool) {
	sol, ok := p.run(subject).First()
	if !ok {
		return subject, false
	}
	bound, ok := sol.Value(name)
	if !ok {
		return subject, false
	}
	refs, ok := sol.Occurrences(name)
	if !ok || len(refs) == 0 {
		return subject, false
	}
	edits := make([]edit.Edit, len(refs))
	for i, ref := range refs {
		edits[i] = edit.WithRecorded(ref, replacement, bound)
	}
	res := edit.Apply(subject, edits)
	return res.Tree, true
}

// ReplaceAll rewrites every match's binding of name to whatever f
// returns for that match's current value, folding all the edits
// together in one pass (spec §4.7).
func (p *Pattern) ReplaceAll(subject value.Value, name string, f func(value.Value) value.Value) value.Value {
	var edits []edit.Edit
	for _, sol := range p.run(subject).ToArray() {
		v, ok := sol.Value(name)
		if !ok {
			continue
		}
		refs, ok := sol.Occurrences(name)
		if !ok {
			continue
		}
		repl := f(v)
		for _, ref := range refs {
			edits = append(edits, edit.WithRecorded(ref, repl, v))
		}
	}
	return edit.Apply(subject, edits).Tree
}

// Edit applies a caller-assembled batch of edits against subject in one
// deterministic pass (spec §4.7), typically built from several
// Solutions' occurrence refs.
func (p *Pattern) Edit(subject value.Value, edits []edit.Edit) edit.Result {
	return edit.Apply(subject, edits)
}
