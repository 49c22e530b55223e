// Package lower canonicalizes the surface pattern AST (pkg/ast) into the
// matcher AST (pkg/matchast), per spec §4.3: quantifier symbols resolve to
// an explicit (min, max, policy) Quant, left-associative `|` chains
// flatten into one Alt, bare `..` array elements become an unbounded Any
// span, and `when(...)` guard source text is parsed once here (rather
// than re-parsed on every matcher visit) with its free variables checked
// against what lexical scope can prove is already bound.
package lower

import (
	"fmt"

	tendrilast "github.com/tendril-lang/tendril/pkg/ast"
	"github.com/tendril-lang/tendril/pkg/guard"
	"github.com/tendril-lang/tendril/pkg/litparse"
	"github.com/tendril-lang/tendril/pkg/matchast"
)

var defaultQuant = matchast.Quant{Min: 1, Max: 1, Policy: matchast.Greedy}
var spanQuant = matchast.Quant{Min: 0, Max: -1, Policy: matchast.Greedy}

// Lower turns a compiled surface Pattern into its matcher-AST root.
func Lower(p *tendrilast.Pattern) (matchast.Node, error) {
	return lowerItem(p.Root)
}

func lowerItem(it *tendrilast.Item) (matchast.Node, error) {
	if it == nil {
		return matchast.Any{}, nil
	}
	if len(it.Alts) == 1 {
		return lowerTerm(it.Alts[0])
	}
	opts := make([]matchast.Node, 0, len(it.Alts))
	for _, t := range it.Alts {
		n, err := lowerTerm(t)
		if err != nil {
			return nil, err
		}
		opts = append(opts, n)
	}
	return matchast.Alt{Options: opts}, nil
}

func lowerTerm(t *tendrilast.Term) (matchast.Node, error) {
	base, err := lowerTermBase(t.Base)
	if err != nil {
		return nil, err
	}
	if t.Guard == nil {
		return base, nil
	}
	expr, err := guard.Parse(t.Guard.Src)
	if err != nil {
		return nil, fmt.Errorf("lower: invalid when(...) clause at %s: %w", t.Guard.Pos, err)
	}
	free := guard.FreeVars(expr)
	bound := bindNames(base)
	closed := make([]string, 0, len(free))
	for _, name := range free {
		if bound[name] {
			closed = append(closed, name)
		}
	}
	return matchast.Guarded{Body: base, Expr: expr, ClosedVars: closed}, nil
}

func lowerTermBase(b *tendrilast.TermBase) (matchast.Node, error) {
	switch {
	case b.Group != nil:
		return lowerItem(b.Group)
	case b.Look != nil:
		body, err := lowerItem(b.Look.Body())
		if err != nil {
			return nil, err
		}
		return matchast.Look{Negative: b.Look.Negated(), Body: body}, nil
	case b.Scalar != nil:
		return lowerScalarBind(b.Scalar)
	case b.GroupBind != nil:
		var body matchast.Node = matchast.Any{}
		if b.GroupBind.Body != nil {
			n, err := lowerItem(b.GroupBind.Body)
			if err != nil {
				return nil, err
			}
			body = n
		}
		return matchast.GroupBind{Name: b.GroupBind.Name, Body: body}, nil
	case b.Any:
		return matchast.Any{}, nil
	case b.Literal != nil:
		return lowerLiteral(b.Literal)
	case b.Obj != nil:
		return lowerObjPattern(b.Obj)
	case b.Arr != nil:
		return lowerArrPattern(b.Arr)
	default:
		return nil, fmt.Errorf("lower: empty term base at %s", b.Pos)
	}
}

func lowerScalarBind(s *tendrilast.ScalarBindTerm) (matchast.Node, error) {
	if s.Body == nil {
		return matchast.ScalarBind{Name: s.Name}, nil
	}
	body, err := lowerItem(s.Body)
	if err != nil {
		return nil, err
	}
	return matchast.ScalarBind{Name: s.Name, Body: body}, nil
}

func lowerLiteral(l *tendrilast.Literal) (matchast.Node, error) {
	switch {
	case l.Str != nil:
		s, err := litparse.UnquoteString(*l.Str)
		if err != nil {
			return nil, fmt.Errorf("lower: %w", err)
		}
		return matchast.Lit{Value: matchast.LitValue{Kind: matchast.LitString, S: s}}, nil
	case l.Num != nil:
		n, err := litparse.ParseNumber(*l.Num)
		if err != nil {
			return nil, fmt.Errorf("lower: %w", err)
		}
		return matchast.Lit{Value: matchast.LitValue{Kind: matchast.LitNumber, N: n}}, nil
	case l.True:
		return matchast.Lit{Value: matchast.LitValue{Kind: matchast.LitBool, B: true}}, nil
	case l.False:
		return matchast.Lit{Value: matchast.LitValue{Kind: matchast.LitBool, B: false}}, nil
	case l.Null:
		return matchast.Lit{Value: matchast.LitValue{Kind: matchast.LitNull}}, nil
	case l.Regex != nil:
		src, flags, err := litparse.ParseRegex(*l.Regex)
		if err != nil {
			return nil, fmt.Errorf("lower: %w", err)
		}
		return matchast.Regex{Source: src, Flags: flags}, nil
	default:
		return nil, fmt.Errorf("lower: empty literal at %s", l.Pos)
	}
}

// bindNames collects every name a node binds directly into scope, for
// guard closure analysis. It does not look inside Look (lookaheads don't
// leave bindings live) or across Alt branches where names could be
// conditionally absent, matching spec §7's conservative stance: a free
// variable is "closed" only when every live branch is guaranteed to bind
// it.
func bindNames(n matchast.Node) map[string]bool {
	out := map[string]bool{}
	var walk func(matchast.Node)
	walk = func(n matchast.Node) {
		switch v := n.(type) {
		case matchast.ScalarBind:
			out[v.Name] = true
			if v.Body != nil {
				walk(v.Body)
			}
		case matchast.GroupBind:
			out[v.Name] = true
			if v.Body != nil {
				walk(v.Body)
			}
		case matchast.Guarded:
			walk(v.Body)
		case matchast.Seq:
			for _, e := range v.Elems {
				if e.Quant.Min > 0 {
					walk(e.Node)
				}
			}
		case matchast.Obj:
			for _, t := range v.Terms {
				walkObjTerm(t, out)
			}
		}
	}
	walk(n)
	return out
}

func walkObjTerm(n matchast.Node, out map[string]bool) {
	switch v := n.(type) {
	case *matchast.OTerm:
		if v.Key.Kind == matchast.KeyBind && v.Key.Bind != "" {
			out[v.Key.Bind] = true
		}
		if !v.Optional && v.Quant.Min > 0 {
			collectInto(v.Value, out)
		}
	case matchast.GroupBind:
		out[v.Name] = true
	}
}

func collectInto(n matchast.Node, out map[string]bool) {
	for k := range bindNames(n) {
		out[k] = true
	}
}
