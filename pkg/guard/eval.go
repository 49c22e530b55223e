package guard

import (
	"github.com/tendril-lang/tendril/pkg/litparse"
	"github.com/tendril-lang/tendril/pkg/value"
)

// Env is the read-only context a guard expression evaluates against: the
// matcher's current bindings and the root of the tree being matched.
type Env struct {
	Bindings map[string]value.Value
	Root     value.Value
}

// Eval evaluates a parsed guard expression against env. It returns a
// *Error (never a generic error) on type mismatch, division by zero, or
// an unbound variable reference; the matcher treats any of these as a
// failed branch rather than a fatal condition.
func Eval(e *Expr, env *Env) (value.Value, error) {
	return evalOr(e.Expr, env)
}

func evalOr(o *OrExpr, env *Env) (value.Value, error) {
	left, err := evalAnd(o.Left, env)
	if err != nil {
		return value.Value{}, err
	}
	for _, r := range o.Rights {
		lb, ok := left.AsBool()
		if !ok {
			return value.Value{}, typeErr("|| requires boolean operands")
		}
		if lb {
			left = value.Bool(true)
			continue
		}
		right, err := evalAnd(r.Right, env)
		if err != nil {
			return value.Value{}, err
		}
		rb, ok := right.AsBool()
		if !ok {
			return value.Value{}, typeErr("|| requires boolean operands")
		}
		left = value.Bool(rb)
	}
	return left, nil
}

func evalAnd(a *AndExpr, env *Env) (value.Value, error) {
	left, err := evalEq(a.Left, env)
	if err != nil {
		return value.Value{}, err
	}
	for _, r := range a.Rights {
		lb, ok := left.AsBool()
		if !ok {
			return value.Value{}, typeErr("&& requires boolean operands")
		}
		if !lb {
			left = value.Bool(false)
			continue
		}
		right, err := evalEq(r.Right, env)
		if err != nil {
			return value.Value{}, err
		}
		rb, ok := right.AsBool()
		if !ok {
			return value.Value{}, typeErr("&& requires boolean operands")
		}
		left = value.Bool(rb)
	}
	return left, nil
}

func evalEq(e *EqExpr, env *Env) (value.Value, error) {
	left, err := evalRel(e.Left, env)
	if err != nil {
		return value.Value{}, err
	}
	for _, r := range e.Rights {
		right, err := evalRel(r.Right, env)
		if err != nil {
			return value.Value{}, err
		}
		eq := value.SameValueZero(left, right)
		if r.Op == "!=" {
			eq = !eq
		}
		left = value.Bool(eq)
	}
	return left, nil
}

func evalRel(r *RelExpr, env *Env) (value.Value, error) {
	left, err := evalAdd(r.Left, env)
	if err != nil {
		return value.Value{}, err
	}
	for _, rr := range r.Rights {
		right, err := evalAdd(rr.Right, env)
		if err != nil {
			return value.Value{}, err
		}
		ln, ok1 := left.AsNumber()
		rn, ok2 := right.AsNumber()
		if !ok1 || !ok2 {
			return value.Value{}, typeErr("%s requires numeric operands", rr.Op)
		}
		var b bool
		switch rr.Op {
		case "<":
			b = ln < rn
		case ">":
			b = ln > rn
		case "<=":
			b = ln <= rn
		case ">=":
			b = ln >= rn
		}
		left = value.Bool(b)
	}
	return left, nil
}

func evalAdd(a *AddExpr, env *Env) (value.Value, error) {
	left, err := evalMul(a.Left, env)
	if err != nil {
		return value.Value{}, err
	}
	for _, r := range a.Rights {
		right, err := evalMul(r.Right, env)
		if err != nil {
			return value.Value{}, err
		}
		left, err = applyAdd(r.Op, left, right)
		if err != nil {
			return value.Value{}, err
		}
	}
	return left, nil
}

func applyAdd(op string, left, right value.Value) (value.Value, error) {
	if op == "-" {
		ln, ok1 := left.AsNumber()
		rn, ok2 := right.AsNumber()
		if !ok1 || !ok2 {
			return value.Value{}, typeErr("- requires numeric operands")
		}
		return value.Number(ln - rn), nil
	}
	if ln, ok1 := left.AsNumber(); ok1 {
		if rn, ok2 := right.AsNumber(); ok2 {
			return value.Number(ln + rn), nil
		}
	}
	if ls, ok1 := left.AsString(); ok1 {
		if rs, ok2 := right.AsString(); ok2 {
			return value.String(ls + rs), nil
		}
	}
	return value.Value{}, typeErr("+ requires two numbers or two strings")
}

func evalMul(m *MulExpr, env *Env) (value.Value, error) {
	left, err := evalUnary(m.Left, env)
	if err != nil {
		return value.Value{}, err
	}
	for _, r := range m.Rights {
		right, err := evalUnary(r.Right, env)
		if err != nil {
			return value.Value{}, err
		}
		ln, ok1 := left.AsNumber()
		rn, ok2 := right.AsNumber()
		if !ok1 || !ok2 {
			return value.Value{}, typeErr("%s requires numeric operands", r.Op)
		}
		switch r.Op {
		case "*":
			left = value.Number(ln * rn)
		case "%":
			if rn == 0 {
				return value.Value{}, divZeroErr()
			}
			left = value.Number(float64(int64(ln) % int64(rn)))
		}
	}
	return left, nil
}

func evalUnary(u *Unary, env *Env) (value.Value, error) {
	switch {
	case u.Not != nil:
		v, err := evalUnary(u.Not, env)
		if err != nil {
			return value.Value{}, err
		}
		b, ok := v.AsBool()
		if !ok {
			return value.Value{}, typeErr("! requires a boolean operand")
		}
		return value.Bool(!b), nil
	case u.Neg != nil:
		v, err := evalUnary(u.Neg, env)
		if err != nil {
			return value.Value{}, err
		}
		n, ok := v.AsNumber()
		if !ok {
			return value.Value{}, typeErr("unary - requires a numeric operand")
		}
		return value.Number(-n), nil
	default:
		return evalPrimary(u.Primary, env)
	}
}

func evalPrimary(p *Primary, env *Env) (value.Value, error) {
	switch {
	case p.Paren != nil:
		return evalOr(p.Paren, env)
	case p.Call != nil:
		return evalCall(p.Call, env)
	case p.Var != nil:
		v, ok := env.Bindings[p.Var.Name]
		if !ok {
			return value.Value{}, unboundErr(p.Var.Name)
		}
		return v, nil
	case p.Root:
		return env.Root, nil
	case p.Str != nil:
		s, err := litparse.UnquoteString(*p.Str)
		if err != nil {
			return value.Value{}, typeErr("%s", err)
		}
		return value.String(s), nil
	case p.Num != nil:
		n, err := litparse.ParseNumber(*p.Num)
		if err != nil {
			return value.Value{}, typeErr("%s", err)
		}
		return value.Number(n), nil
	case p.True:
		return value.Bool(true), nil
	case p.False:
		return value.Bool(false), nil
	case p.Null:
		return value.Null(), nil
	default:
		return value.Value{}, typeErr("empty guard primary")
	}
}

func evalCall(c *Call, env *Env) (value.Value, error) {
	arg, err := evalOr(c.Arg, env)
	if err != nil {
		return value.Value{}, err
	}
	switch c.Name {
	case "number":
		return value.Bool(arg.Kind() == value.KindNumber), nil
	case "string":
		return value.Bool(arg.Kind() == value.KindString), nil
	case "boolean":
		return value.Bool(arg.Kind() == value.KindBool), nil
	case "size":
		return value.Number(float64(arg.Len())), nil
	default:
		return value.Value{}, typeErr("unknown guard function %q", c.Name)
	}
}
