package domain

import (
	"fmt"
	"strings"
)

// The note query surface speaks a small delimited filter grammar:
//
//	and(scope.eq.domain,url_pattern.eq.example.com),is_favorite.eq.true
//
// A top-level comma list is a disjunction; and(...) / or(...) group
// conjunctions and disjunctions; a condition is col.eq.value. Values
// containing structurally significant characters (comma, parenthesis,
// quote) must be double-quoted, with backslash escapes inside quotes.
// Serialize is the single place that quoting happens; building these
// strings by hand interpolation silently mis-parses instead of erroring,
// which is exactly the defect class the tests pin down.

// Row is a record the filter can be evaluated against.
type Row interface {
	// Field returns the row's value for a column, booleans as "true"/"false".
	Field(col string) string
}

// Expr is a filter expression node.
type Expr interface {
	// Match evaluates the expression against a row.
	Match(r Row) bool

	write(b *strings.Builder)
}

// EqExpr matches rows whose column equals a literal value.
type EqExpr struct {
	Col string
	Val string
}

// AndExpr matches rows satisfying every child.
type AndExpr struct {
	Exprs []Expr
}

// OrExpr matches rows satisfying at least one child.
type OrExpr struct {
	Exprs []Expr
}

// Eq builds an equality condition.
func Eq(col, val string) Expr { return &EqExpr{Col: col, Val: val} }

// And builds a conjunction.
func And(exprs ...Expr) Expr { return &AndExpr{Exprs: exprs} }

// Or builds a disjunction.
func Or(exprs ...Expr) Expr { return &OrExpr{Exprs: exprs} }

func (e *EqExpr) Match(r Row) bool { return r.Field(e.Col) == e.Val }

func (e *AndExpr) Match(r Row) bool {
	for _, sub := range e.Exprs {
		if !sub.Match(r) {
			return false
		}
	}
	return true
}

func (e *OrExpr) Match(r Row) bool {
	for _, sub := range e.Exprs {
		if sub.Match(r) {
			return true
		}
	}
	return false
}

func (e *EqExpr) write(b *strings.Builder) {
	b.WriteString(e.Col)
	b.WriteString(".eq.")
	b.WriteString(quoteValue(e.Val))
}

func (e *AndExpr) write(b *strings.Builder) {
	b.WriteString("and(")
	writeList(b, e.Exprs)
	b.WriteByte(')')
}

func (e *OrExpr) write(b *strings.Builder) {
	b.WriteString("or(")
	writeList(b, e.Exprs)
	b.WriteByte(')')
}

func writeList(b *strings.Builder, exprs []Expr) {
	for i, sub := range exprs {
		if i > 0 {
			b.WriteByte(',')
		}
		sub.write(b)
	}
}

// Serialize renders an expression in the wire grammar. A top-level
// disjunction is emitted as a bare comma list (the form the query surface
// accepts), nested groups as and(...) / or(...).
func Serialize(e Expr) string {
	var b strings.Builder
	if or, ok := e.(*OrExpr); ok {
		writeList(&b, or.Exprs)
		return b.String()
	}
	e.write(&b)
	return b.String()
}

// quoteValue double-quotes a value when it contains characters the grammar
// treats as structure. Plain values pass through untouched.
func quoteValue(v string) string {
	if v != "" && !strings.ContainsAny(v, `,()"\`) {
		return v
	}
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(v); i++ {
		if v[i] == '"' || v[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(v[i])
	}
	b.WriteByte('"')
	return b.String()
}

// BuildCueFilter builds the filter selecting notes visible on the current
// page: domain-scoped notes on the page's host, exact-scoped notes on the
// page itself, plus all favorites. The owner predicate is never part of the
// filter; the storage layer scopes every query to the caller.
func BuildCueFilter(keys ScopeKeys) Expr {
	return Or(
		And(Eq("scope", string(ScopeDomain)), Eq("url_pattern", keys.Domain)),
		And(Eq("scope", string(ScopeExact)), Eq("url_pattern", keys.Exact)),
		Eq("is_favorite", "true"),
	)
}

// BuildBadgeFilter is the narrower badge variant: only unresolved notes
// matching the current page, no favorites clause.
func BuildBadgeFilter(keys ScopeKeys) Expr {
	return And(
		Eq("is_resolved", "false"),
		Or(
			And(Eq("scope", string(ScopeDomain)), Eq("url_pattern", keys.Domain)),
			And(Eq("scope", string(ScopeExact)), Eq("url_pattern", keys.Exact)),
		),
	)
}

// ParseFilter parses a wire-grammar filter string back into an expression.
// A top-level comma list parses as a disjunction.
func ParseFilter(s string) (Expr, error) {
	terms, err := splitTerms(s)
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("empty filter")
	}
	exprs := make([]Expr, 0, len(terms))
	for _, term := range terms {
		e, err := parseTerm(term)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	if len(exprs) == 1 {
		return exprs[0], nil
	}
	return Or(exprs...), nil
}

func parseTerm(term string) (Expr, error) {
	if inner, ok := cutGroup(term, "and("); ok {
		return parseGroup(inner, false)
	}
	if inner, ok := cutGroup(term, "or("); ok {
		return parseGroup(inner, true)
	}
	return parseCond(term)
}

func parseGroup(inner string, disjunction bool) (Expr, error) {
	terms, err := splitTerms(inner)
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("empty group")
	}
	exprs := make([]Expr, 0, len(terms))
	for _, t := range terms {
		e, err := parseTerm(t)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	if disjunction {
		return Or(exprs...), nil
	}
	return And(exprs...), nil
}

// cutGroup strips a "and(" / "or(" prefix and the matching trailing paren.
func cutGroup(term, prefix string) (string, bool) {
	if !strings.HasPrefix(term, prefix) || !strings.HasSuffix(term, ")") {
		return "", false
	}
	return term[len(prefix) : len(term)-1], true
}

func parseCond(cond string) (Expr, error) {
	dot := strings.IndexByte(cond, '.')
	if dot <= 0 {
		return nil, fmt.Errorf("invalid condition %q", cond)
	}
	col := cond[:dot]
	rest := cond[dot+1:]

	opEnd := strings.IndexByte(rest, '.')
	if opEnd <= 0 {
		return nil, fmt.Errorf("invalid condition %q", cond)
	}
	op := rest[:opEnd]
	if op != "eq" {
		return nil, fmt.Errorf("unsupported operator %q in %q", op, cond)
	}

	val, err := unquoteValue(rest[opEnd+1:])
	if err != nil {
		return nil, fmt.Errorf("condition %q: %w", cond, err)
	}
	return Eq(col, val), nil
}

func unquoteValue(v string) (string, error) {
	if !strings.HasPrefix(v, `"`) {
		return v, nil
	}
	var b strings.Builder
	escaped := false
	for i := 1; i < len(v); i++ {
		c := v[i]
		switch {
		case escaped:
			b.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			if i != len(v)-1 {
				return "", fmt.Errorf("trailing data after quoted value")
			}
			return b.String(), nil
		default:
			b.WriteByte(c)
		}
	}
	return "", fmt.Errorf("unterminated quoted value")
}

// splitTerms splits on top-level commas, honoring parentheses and quoted
// values. Unbalanced input is rejected rather than guessed at.
func splitTerms(s string) ([]string, error) {
	var terms []string
	depth := 0
	inQuote := false
	escaped := false
	start := 0

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inQuote:
			if c == '\\' {
				escaped = true
			} else if c == '"' {
				inQuote = false
			}
		case c == '"':
			inQuote = true
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced parentheses in filter %q", s)
			}
		case c == ',' && depth == 0:
			terms = append(terms, s[start:i])
			start = i + 1
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parentheses in filter %q", s)
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated quote in filter %q", s)
	}
	if start < len(s) {
		terms = append(terms, s[start:])
	} else if start == len(s) && len(s) > 0 && s[len(s)-1] == ',' {
		return nil, fmt.Errorf("trailing comma in filter %q", s)
	}
	return terms, nil
}
