package tendril

import "fmt"

// Position is a 1-based line+column location in pattern source, per
// spec §6.4.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	if p.Line == 0 && p.Column == 0 {
		return ""
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ParseError reports a lexical or grammatical failure in pattern source.
// It is never recovered — it is always raised to the caller of Compile.
type ParseError struct {
	Message  string
	Position Position
}

func (e *ParseError) Error() string {
	if pos := e.Position.String(); pos != "" {
		return fmt.Sprintf("parse error at %s: %s", pos, e.Message)
	}
	return "parse error: " + e.Message
}

// LowerError reports a post-parse validation failure — a duplicate literal
// object key in one object pattern, an invalid embedded when(...) clause,
// and similar structural issues caught while lowering the surface AST
// (spec §4.3). A quantifier on bare ".." never reaches lowering: the
// grammar rejects it as a *ParseError.
type LowerError struct {
	Message  string
	Position Position
}

func (e *LowerError) Error() string {
	if pos := e.Position.String(); pos != "" {
		return fmt.Sprintf("lower error at %s: %s", pos, e.Message)
	}
	return "lower error: " + e.Message
}

// GuardErrorKind distinguishes the three recoverable guard failure kinds
// (GuardTypeError, GuardDivByZero, GuardUnboundVar). Each fails only the
// current branch; none aborts the query.
type GuardErrorKind int

const (
	GuardTypeError GuardErrorKind = iota
	GuardDivByZero
	GuardUnboundVar
)

func (k GuardErrorKind) String() string {
	switch k {
	case GuardTypeError:
		return "GuardTypeError"
	case GuardDivByZero:
		return "GuardDivByZero"
	case GuardUnboundVar:
		return "UnboundGuardVar"
	default:
		return "GuardError"
	}
}

// GuardError names a guard failure at the package surface. The guard
// evaluator itself reports failures as pkg/guard's own *guard.Error; the
// matcher treats any of them as an ordinary mismatch on the current branch,
// so no Pattern API call returns a GuardError.
type GuardError struct {
	Kind    GuardErrorKind
	Message string
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// BudgetError describes an exhausted maxSteps budget (§6.3). No Pattern
// operation returns it: when the budget runs out the matcher stops the
// search and the stream simply ends, so the query yields no further
// solutions and the caller sees the same result as a plain mismatch.
type BudgetError struct {
	MaxSteps int
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("StepBudgetExceeded: exceeded maxSteps=%d", e.MaxSteps)
}
