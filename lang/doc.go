// Package lang implements the lam language: lexing, parsing, and
// normal-order evaluation of untyped lambda calculus terms.
//
// The surface syntax accepts ASCII identifiers, `\` or `λ` for
// abstraction, `.` as the body separator, and parentheses for grouping:
//
//	(\f.\x.f (f x)) (\f.\x.f x)
//
// Terms are immutable trees of [Var], [Abs], and [App] nodes. Every
// reduction step builds new nodes and shares untouched subtrees, so a
// [Node] may be held and re-evaluated freely by concurrent callers.
//
// Evaluation is normal order (leftmost outermost) with capture-avoiding
// substitution. Because the calculus is Turing complete, [Evaluate] is
// bounded by a configurable step budget and reports [ErrNonTermination]
// when the budget is exhausted instead of looping forever.
//
// Substitution and stepping recurse over the term structure, so native
// stack use grows with term depth. Terms deep enough to threaten the
// stack are far beyond the default step budget in practice.
package lang
