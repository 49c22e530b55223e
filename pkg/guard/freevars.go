package guard

// FreeVars returns the set of binding names a guard expression reads via
// `$name`, in first-occurrence order. pkg/lower uses this for the guard
// closure analysis described in spec §7/§9: whenever every free variable
// is provably bound at a given matcher position, the guard can be proven
// closed at compile time instead of merely at runtime.
func FreeVars(e *Expr) []string {
	seen := map[string]bool{}
	var out []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	var walkOr func(*OrExpr)
	var walkAnd func(*AndExpr)
	var walkEq func(*EqExpr)
	var walkRel func(*RelExpr)
	var walkAdd func(*AddExpr)
	var walkMul func(*MulExpr)
	var walkUnary func(*Unary)
	var walkPrimary func(*Primary)

	walkOr = func(o *OrExpr) {
		if o == nil {
			return
		}
		walkAnd(o.Left)
		for _, r := range o.Rights {
			walkAnd(r.Right)
		}
	}
	walkAnd = func(a *AndExpr) {
		if a == nil {
			return
		}
		walkEq(a.Left)
		for _, r := range a.Rights {
			walkEq(r.Right)
		}
	}
	walkEq = func(e *EqExpr) {
		if e == nil {
			return
		}
		walkRel(e.Left)
		for _, r := range e.Rights {
			walkRel(r.Right)
		}
	}
	walkRel = func(r *RelExpr) {
		if r == nil {
			return
		}
		walkAdd(r.Left)
		for _, rr := range r.Rights {
			walkAdd(rr.Right)
		}
	}
	walkAdd = func(a *AddExpr) {
		if a == nil {
			return
		}
		walkMul(a.Left)
		for _, r := range a.Rights {
			walkMul(r.Right)
		}
	}
	walkMul = func(m *MulExpr) {
		if m == nil {
			return
		}
		walkUnary(m.Left)
		for _, r := range m.Rights {
			walkUnary(r.Right)
		}
	}
	walkUnary = func(u *Unary) {
		if u == nil {
			return
		}
		if u.Not != nil {
			walkUnary(u.Not)
			return
		}
		if u.Neg != nil {
			walkUnary(u.Neg)
			return
		}
		walkPrimary(u.Primary)
	}
	walkPrimary = func(p *Primary) {
		if p == nil {
			return
		}
		switch {
		case p.Paren != nil:
			walkOr(p.Paren)
		case p.Call != nil:
			walkOr(p.Call.Arg)
		case p.Var != nil:
			add(p.Var.Name)
		}
	}

	walkOr(e.Expr)
	return out
}
