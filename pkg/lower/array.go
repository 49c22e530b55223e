package lower

import (
	"fmt"

	tendrilast "github.com/tendril-lang/tendril/pkg/ast"
	"github.com/tendril-lang/tendril/pkg/matchast"
)

func lowerArrPattern(a *tendrilast.ArrPattern) (matchast.Node, error) {
	elems := make([]matchast.SeqElem, 0, len(a.Items))
	for _, g := range a.Items {
		e, err := lowerArrGroup(g)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	return matchast.Seq{Elems: elems}, nil
}

func lowerArrGroup(g *tendrilast.ArrGroup) (matchast.SeqElem, error) {
	if g.Skip {
		return matchast.SeqElem{Node: matchast.Any{}, Quant: spanQuant}, nil
	}
	if len(g.Alts) == 1 {
		return lowerArrAlt(g.Alts[0])
	}
	opts := make([]matchast.Node, 0, len(g.Alts))
	quant := defaultQuant
	haveQuant := false
	for _, alt := range g.Alts {
		n, q, err := lowerArrAltParts(alt)
		if err != nil {
			return matchast.SeqElem{}, err
		}
		opts = append(opts, n)
		if alt.Quant != nil {
			quant = q
			haveQuant = true
		}
	}
	_ = haveQuant
	return matchast.SeqElem{Node: matchast.Alt{Options: opts}, Quant: quant}, nil
}

func lowerArrAlt(a *tendrilast.ArrAlt) (matchast.SeqElem, error) {
	n, q, err := lowerArrAltParts(a)
	if err != nil {
		return matchast.SeqElem{}, err
	}
	return matchast.SeqElem{Node: n, Quant: q}, nil
}

func lowerArrAltParts(a *tendrilast.ArrAlt) (matchast.Node, matchast.Quant, error) {
	n, err := lowerArrGroupBase(a.Base)
	if err != nil {
		return nil, matchast.Quant{}, err
	}
	return n, resolveQuant(a.Quant), nil
}

func lowerArrGroupBase(b *tendrilast.ArrGroupBase) (matchast.Node, error) {
	switch {
	case b.Paren != nil:
		elems := make([]matchast.SeqElem, 0, len(b.Paren))
		for _, g := range b.Paren {
			e, err := lowerArrGroup(g)
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		return matchast.Seq{Elems: elems}, nil
	case b.GroupBind != nil:
		if len(b.GroupBind.Body) == 0 {
			return matchast.GroupBind{Name: b.GroupBind.Name, Body: matchast.Any{}}, nil
		}
		elems := make([]matchast.SeqElem, 0, len(b.GroupBind.Body))
		for _, g := range b.GroupBind.Body {
			e, err := lowerArrGroup(g)
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		return matchast.GroupBind{Name: b.GroupBind.Name, Body: matchast.Seq{Elems: elems}}, nil
	case b.Scalar != nil:
		return lowerScalarBind(b.Scalar)
	case b.Term != nil:
		return lowerTerm(b.Term)
	default:
		return nil, fmt.Errorf("lower: empty array group base at %s", b.Pos)
	}
}

func resolveQuant(q *tendrilast.Quant) matchast.Quant {
	if q == nil {
		return defaultQuant
	}
	switch {
	case q.Symbol != nil:
		switch *q.Symbol {
		case "?":
			return matchast.Quant{Min: 0, Max: 1, Policy: matchast.Greedy}
		case "??":
			return matchast.Quant{Min: 0, Max: 1, Policy: matchast.Reluctant}
		case "+":
			return matchast.Quant{Min: 1, Max: -1, Policy: matchast.Greedy}
		case "+?":
			return matchast.Quant{Min: 1, Max: -1, Policy: matchast.Reluctant}
		case "++":
			return matchast.Quant{Min: 1, Max: -1, Policy: matchast.Possessive}
		case "*":
			return matchast.Quant{Min: 0, Max: -1, Policy: matchast.Greedy}
		case "*?":
			return matchast.Quant{Min: 0, Max: -1, Policy: matchast.Reluctant}
		case "*+":
			return matchast.Quant{Min: 0, Max: -1, Policy: matchast.Possessive}
		}
	case q.OpenMax != nil:
		return matchast.Quant{Min: 0, Max: q.OpenMax.Max, Policy: matchast.Greedy}
	case q.MinMax != nil:
		return matchast.Quant{Min: q.MinMax.Min, Max: q.MinMax.Max, Policy: matchast.Greedy}
	case q.MinOpen != nil:
		return matchast.Quant{Min: q.MinOpen.Min, Max: -1, Policy: matchast.Greedy}
	case q.Exact != nil:
		return matchast.Quant{Min: q.Exact.N, Max: q.Exact.N, Policy: matchast.Greedy}
	}
	return defaultQuant
}
