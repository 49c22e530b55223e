package lower

import (
	"fmt"

	tendrilast "github.com/tendril-lang/tendril/pkg/ast"
	"github.com/tendril-lang/tendril/pkg/litparse"
	"github.com/tendril-lang/tendril/pkg/matchast"
)

func lowerObjPattern(o *tendrilast.ObjPattern) (matchast.Node, error) {
	terms := make([]matchast.Node, 0, len(o.Groups))
	seen := map[string]bool{}
	for _, g := range o.Groups {
		n, err := lowerOGroup(g)
		if err != nil {
			return nil, err
		}
		if t, ok := n.(*matchast.OTerm); ok && !t.AnyDepth && t.Key.Kind == matchast.KeyLiteral {
			if seen[t.Key.Lit] {
				return nil, fmt.Errorf("lower: duplicate literal key %q at %s", t.Key.Lit, g.Pos)
			}
			seen[t.Key.Lit] = true
		}
		terms = append(terms, n)
	}
	var remainder *matchast.Remainder
	if o.Remnant != nil {
		r, err := lowerRemnant(o.Remnant)
		if err != nil {
			return nil, err
		}
		remainder = r
	}
	return matchast.Obj{Terms: terms, Remainder: remainder}, nil
}

func lowerOGroup(g *tendrilast.OGroup) (matchast.Node, error) {
	switch {
	case g.LookPos != nil:
		body, err := lowerOGroup(g.LookPos)
		if err != nil {
			return nil, err
		}
		return matchast.Look{Negative: false, Body: body}, nil
	case g.LookNeg != nil:
		body, err := lowerOGroup(g.LookNeg)
		if err != nil {
			return nil, err
		}
		return matchast.Look{Negative: true, Body: body}, nil
	case g.Paren != nil:
		terms := make([]matchast.Node, 0, len(g.Paren))
		for _, sub := range g.Paren {
			n, err := lowerOGroup(sub)
			if err != nil {
				return nil, err
			}
			terms = append(terms, n)
		}
		return matchast.Obj{Terms: terms}, nil
	case g.GroupBind != nil:
		return lowerOGroupBind(g.GroupBind)
	case g.Term != nil:
		return lowerOTerm(g.Term)
	default:
		return nil, fmt.Errorf("lower: empty object group at %s", g.Pos)
	}
}

func lowerOGroupBind(gb *tendrilast.OGroupBind) (matchast.Node, error) {
	terms := make([]matchast.Node, 0, len(gb.Groups))
	for _, g := range gb.Groups {
		n, err := lowerOGroup(g)
		if err != nil {
			return nil, err
		}
		terms = append(terms, n)
	}
	var remainder *matchast.Remainder
	if gb.Remnant != nil {
		r, err := lowerRemnant(gb.Remnant)
		if err != nil {
			return nil, err
		}
		remainder = r
	}
	return matchast.GroupBind{Name: gb.Name, Body: matchast.Obj{Terms: terms, Remainder: remainder}}, nil
}

func lowerOTerm(t *tendrilast.OTerm) (*matchast.OTerm, error) {
	key, anyDepth, err := lowerOTermHead(t.Head)
	if err != nil {
		return nil, err
	}
	breadcrumbs := make([]matchast.Breadcrumb, 0, len(t.Breadcrumbs))
	for _, bc := range t.Breadcrumbs {
		lowered, err := lowerBreadcrumb(bc)
		if err != nil {
			return nil, err
		}
		breadcrumbs = append(breadcrumbs, lowered)
	}
	value, err := lowerItem(t.Value)
	if err != nil {
		return nil, err
	}
	quant := resolveOQuant(t.Quant)
	if t.Optional {
		quant.Min = 0
	}
	return &matchast.OTerm{
		Key:         key,
		AnyDepth:    anyDepth,
		Breadcrumbs: breadcrumbs,
		Value:       value,
		Quant:       quant,
		Optional:    t.Optional,
	}, nil
}

func lowerOTermHead(h *tendrilast.OTermHead) (matchast.KeyMatch, bool, error) {
	if h.Root {
		return matchast.KeyMatch{Kind: matchast.KeyWild}, true, nil
	}
	km, err := lowerKeyPattern(h.Key)
	return km, false, err
}

func lowerKeyPattern(k *tendrilast.KeyPattern) (matchast.KeyMatch, error) {
	switch {
	case k.Str != nil:
		s, err := litparse.UnquoteString(*k.Str)
		if err != nil {
			return matchast.KeyMatch{}, fmt.Errorf("lower: %w", err)
		}
		return matchast.KeyMatch{Kind: matchast.KeyLiteral, Lit: s}, nil
	case k.Regex != nil:
		src, flags, err := litparse.ParseRegex(*k.Regex)
		if err != nil {
			return matchast.KeyMatch{}, fmt.Errorf("lower: %w", err)
		}
		return matchast.KeyMatch{Kind: matchast.KeyRegex, RxSrc: src, RxFl: flags}, nil
	case k.Bind != nil:
		return matchast.KeyMatch{Kind: matchast.KeyBind, Bind: k.Bind.Name}, nil
	case k.Wild:
		return matchast.KeyMatch{Kind: matchast.KeyWild}, nil
	case k.Name != nil:
		return matchast.KeyMatch{Kind: matchast.KeyLiteral, Lit: *k.Name}, nil
	default:
		return matchast.KeyMatch{}, fmt.Errorf("lower: empty key pattern at %s", k.Pos)
	}
}

func lowerBreadcrumb(bc *tendrilast.Breadcrumb) (matchast.Breadcrumb, error) {
	switch {
	case bc.Skip != nil:
		item, err := lowerItem(bc.Skip)
		if err != nil {
			return matchast.Breadcrumb{}, err
		}
		return matchast.Breadcrumb{Kind: matchast.BreadcrumbSkip, Item: item}, nil
	case bc.Dot != nil:
		item, err := lowerItem(bc.Dot)
		if err != nil {
			return matchast.Breadcrumb{}, err
		}
		return matchast.Breadcrumb{Kind: matchast.BreadcrumbDot, Item: item}, nil
	case bc.Bracket != nil:
		item, err := lowerItem(bc.Bracket)
		if err != nil {
			return matchast.Breadcrumb{}, err
		}
		return matchast.Breadcrumb{Kind: matchast.BreadcrumbBracket, Item: item}, nil
	case bc.BareSkip:
		return matchast.Breadcrumb{Kind: matchast.BreadcrumbSkip}, nil
	default:
		return matchast.Breadcrumb{}, fmt.Errorf("lower: empty breadcrumb at %s", bc.Pos)
	}
}

func resolveOQuant(q *tendrilast.OQuant) matchast.Quant {
	if q == nil {
		return defaultQuant
	}
	switch {
	case q.Opt:
		return matchast.Quant{Min: 0, Max: 1, Policy: matchast.Greedy}
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

func lowerRemnant(r *tendrilast.Remnant) (*matchast.Remainder, error) {
	switch {
	case r.Exhausted:
		return &matchast.Remainder{Kind: matchast.RemainderExhausted}, nil
	case r.Asserted != nil:
		return &matchast.Remainder{Kind: matchast.RemainderAsserted}, nil
	case r.Bind != nil:
		q := matchast.Quant{Min: 0, Max: -1, Policy: matchast.Greedy}
		if r.Bind.Range != nil {
			q = lowerHashRange(r.Bind.Range)
		}
		return &matchast.Remainder{
			Kind:     matchast.RemainderBind,
			Name:     r.Bind.Name,
			Optional: r.Bind.Optional,
			Quant:    q,
		}, nil
	case r.Plain != nil:
		q := matchast.Quant{Min: 0, Max: -1, Policy: matchast.Greedy}
		if r.Plain.Range != nil {
			q = lowerHashRange(r.Plain.Range)
		}
		return &matchast.Remainder{
			Kind:     matchast.RemainderPlain,
			Optional: r.Plain.Optional,
			Quant:    q,
		}, nil
	default:
		return nil, fmt.Errorf("lower: empty remnant at %s", r.Pos)
	}
}

func lowerHashRange(h *tendrilast.HashRange) matchast.Quant {
	switch {
	case h.OpenMax != nil:
		return matchast.Quant{Min: 0, Max: h.OpenMax.Max, Policy: matchast.Greedy}
	case h.MinMax != nil:
		return matchast.Quant{Min: h.MinMax.Min, Max: h.MinMax.Max, Policy: matchast.Greedy}
	case h.MinOpen != nil:
		return matchast.Quant{Min: h.MinOpen.Min, Max: -1, Policy: matchast.Greedy}
	case h.Exact != nil:
		return matchast.Quant{Min: h.Exact.N, Max: h.Exact.N, Policy: matchast.Greedy}
	}
	return matchast.Quant{Min: 0, Max: -1, Policy: matchast.Greedy}
}
