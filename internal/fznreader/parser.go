package fznreader

import (
	"fmt"
	"math"

	"github.com/katalvlaran/mzfeat/expr"
	"github.com/katalvlaran/mzfeat/symtab"
)

// Sink is the subset of engine.Engine the parser drives. Declared here
// (rather than importing engine.Engine directly) so this package's
// grammar can be exercised by a test double without constructing a
// real engine, and so a future alternate event consumer (a fuzzer, a
// dry-run validator) can reuse the same parser.
type Sink interface {
	UpdateVariable(name string, kind symtab.Kind, domSize float64, anns []expr.Value) error
	UpdateVarArray(name string, begin, end int, kind symtab.Kind, domSize float64, anns []expr.Value) error
	UpdateAssignedVariable(name string, kind symtab.Kind, domSize float64, rhs expr.Value, anns []expr.Value) error
	UpdateAssignedVarArray(name string, begin, end int, kind symtab.Kind, domSize float64, rhs []expr.Value, anns []expr.Value) error
	UpdateCons(params []expr.Value, anns []expr.Value) error
	SetSolveGoal(goal int, searchAnn *expr.Value) error
	SetObjectiveVariable(name string) error
}

// Result reports the non-fatal problems encountered while reading, in
// the order they were found. A Result with no Warnings means every
// statement in the source (predicate signatures aside) was recognised
// and forwarded to the sink.
type Result struct {
	Warnings []string
}

func (r *Result) warnf(line int, format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf("line %d: %s", line, fmt.Sprintf(format, args...)))
}

type parser struct {
	toks []token
	pos  int
	sink Sink
	res  *Result
}

// Read tokenizes src and feeds every var/array/constraint/solve
// statement it recognises to sink, in file order. Predicate signatures
// are skipped silently; any other statement the parser cannot read is
// skipped and recorded as a Warning rather than aborting the read.
func Read(src string, sink Sink) Result {
	res := Result{}
	p := &parser{toks: lex(src), sink: sink, res: &res}
	for !p.atEOF() {
		p.statement()
	}
	return res
}

func (p *parser) atEOF() bool { return p.peek().kind == tokEOF }

func (p *parser) peek() token {
	if p.pos >= len(p.toks) {
		return token{kind: tokEOF}
	}
	return p.toks[p.pos]
}

func (p *parser) peekAt(off int) token {
	if p.pos+off >= len(p.toks) {
		return token{kind: tokEOF}
	}
	return p.toks[p.pos+off]
}

func (p *parser) next() token {
	t := p.peek()
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) isPunct(s string) bool {
	t := p.peek()
	return t.kind == tokPunct && t.text == s
}

func (p *parser) isIdent(s string) bool {
	t := p.peek()
	return t.kind == tokIdent && t.text == s
}

// skipToSemicolon discards tokens (tracking paren/bracket depth, since
// a ';' can never appear inside balanced brackets in this grammar)
// until the statement terminator, consuming it too.
func (p *parser) skipToSemicolon() {
	depth := 0
	for !p.atEOF() {
		t := p.next()
		if t.kind == tokPunct {
			switch t.text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				depth--
			case ";":
				if depth <= 0 {
					return
				}
			}
		}
	}
}

func (p *parser) statement() {
	t := p.peek()
	if t.kind != tokIdent {
		p.res.warnf(t.line, "unexpected token %q at top level, skipping to next ';'", t.text)
		p.skipToSemicolon()
		return
	}
	switch t.text {
	case "var":
		p.varDecl()
	case "array":
		p.arrayDecl()
	case "constraint":
		p.constraintDecl()
	case "solve":
		p.solveDecl()
	case "predicate":
		p.skipToSemicolon() // predicate signatures carry no per-instance data
	default:
		p.res.warnf(t.line, "unrecognised declaration %q, skipping", t.text)
		p.skipToSemicolon()
	}
}

// varDecl parses `var <domain>: name <anns> [= rhs] ;`.
func (p *parser) varDecl() {
	line := p.peek().line
	p.next() // "var"
	kind, domSize := p.domain()
	if !p.expectPunct(":") {
		p.skipToSemicolon()
		return
	}
	name := p.identOrWarn()
	anns := p.annotations()
	if p.isPunct("=") {
		p.next()
		rhs := p.expr()
		if err := p.sink.UpdateAssignedVariable(name, kind, domSize, rhs, anns); err != nil {
			p.res.warnf(line, "UpdateAssignedVariable(%q): %v", name, err)
		}
	} else {
		if err := p.sink.UpdateVariable(name, kind, domSize, anns); err != nil {
			p.res.warnf(line, "UpdateVariable(%q): %v", name, err)
		}
	}
	p.expectPunct(";")
}

// arrayDecl parses `array [lo..hi] of var <domain>: name <anns> [= [e1, e2, ...]] ;`.
func (p *parser) arrayDecl() {
	line := p.peek().line
	p.next() // "array"
	p.expectPunct("[")
	lo := p.intLiteral()
	p.expectPunct("..")
	hi := p.intLiteral()
	p.expectPunct("]")
	p.expectIdentText("of")
	p.expectIdentText("var")
	kind, domSize := p.domain()
	if !p.expectPunct(":") {
		p.skipToSemicolon()
		return
	}
	name := p.identOrWarn()
	anns := p.annotations()
	if p.isPunct("=") {
		p.next()
		p.expectPunct("[")
		elems := p.exprListUntil("]")
		p.expectPunct("]")
		if err := p.sink.UpdateAssignedVarArray(name, int(lo), int(hi), kind, domSize, elems, anns); err != nil {
			p.res.warnf(line, "UpdateAssignedVarArray(%q): %v", name, err)
		}
	} else {
		if err := p.sink.UpdateVarArray(name, int(lo), int(hi), kind, domSize, anns); err != nil {
			p.res.warnf(line, "UpdateVarArray(%q): %v", name, err)
		}
	}
	p.expectPunct(";")
}

// constraintDecl parses `constraint name ( arg1, arg2, ... ) <anns> ;`.
func (p *parser) constraintDecl() {
	line := p.peek().line
	p.next() // "constraint"
	name := p.identOrWarn()
	p.expectPunct("(")
	args := p.exprListUntil(")")
	p.expectPunct(")")
	anns := p.annotations()
	params := append([]expr.Value{expr.String(name)}, args...)
	if err := p.sink.UpdateCons(params, anns); err != nil {
		p.res.warnf(line, "UpdateCons(%q): %v", name, err)
	}
	p.expectPunct(";")
}

// solveDecl parses `solve <anns> satisfy ;` or
// `solve <anns> (minimize|maximize) <expr> ;`.
func (p *parser) solveDecl() {
	line := p.peek().line
	p.next() // "solve"
	anns := p.annotations()
	var searchAnn *expr.Value
	if len(anns) > 0 {
		searchAnn = &anns[0]
	}

	goal := 1
	switch {
	case p.isIdent("satisfy"):
		p.next()
	case p.isIdent("minimize"):
		p.next()
		goal = 2
		obj := p.expr()
		if obj.Kind() == expr.KindString {
			if err := p.sink.SetObjectiveVariable(obj.AsString()); err != nil {
				p.res.warnf(line, "SetObjectiveVariable: %v", err)
			}
		}
	case p.isIdent("maximize"):
		p.next()
		goal = 3
		obj := p.expr()
		if obj.Kind() == expr.KindString {
			if err := p.sink.SetObjectiveVariable(obj.AsString()); err != nil {
				p.res.warnf(line, "SetObjectiveVariable: %v", err)
			}
		}
	default:
		p.res.warnf(line, "solve statement missing satisfy/minimize/maximize")
	}
	if err := p.sink.SetSolveGoal(goal, searchAnn); err != nil {
		p.res.warnf(line, "SetSolveGoal: %v", err)
	}
	p.expectPunct(";")
}

// domain parses one of: bool | int | float | lo..hi | lo.0..hi.0 |
// {v1,...,vn} | set of <domain-body>, returning the variable kind and
// its domain size (spec §3: "positive; +Inf allowed for unbounded").
func (p *parser) domain() (symtab.Kind, float64) {
	t := p.peek()
	switch {
	case t.kind == tokIdent && t.text == "bool":
		p.next()
		return symtab.KindBool, 2
	case t.kind == tokIdent && t.text == "int":
		p.next()
		return symtab.KindInt, math.Inf(1)
	case t.kind == tokIdent && t.text == "float":
		p.next()
		if p.peek().kind == tokInt || p.peek().kind == tokFloat {
			lo := p.numberLiteral()
			p.expectPunct("..")
			hi := p.numberLiteral()
			return symtab.KindFloat, hi - lo
		}
		return symtab.KindFloat, math.Inf(1)
	case t.kind == tokIdent && t.text == "set":
		p.next()
		p.expectIdentText("of")
		_, size := p.domain()
		return symtab.KindSet, size
	case t.kind == tokPunct && t.text == "{":
		return p.braceDomain()
	case t.kind == tokInt || t.kind == tokFloat:
		isFloat := t.kind == tokFloat
		lo := p.numberLiteral()
		p.expectPunct("..")
		hiTok := p.peek()
		isFloat = isFloat || hiTok.kind == tokFloat
		hi := p.numberLiteral()
		if isFloat {
			return symtab.KindFloat, hi - lo
		}
		return symtab.KindInt, hi - lo + 1
	default:
		p.res.warnf(t.line, "unrecognised domain starting with %q, assuming unbounded int", t.text)
		return symtab.KindInt, math.Inf(1)
	}
}

// braceDomain parses an explicit enumerated domain `{v1, v2, ...}`; its
// size is the element count (duplicates, if any, are not folded —
// MiniZinc's own flattener never emits them).
func (p *parser) braceDomain() (symtab.Kind, float64) {
	p.expectPunct("{")
	count := 0
	for !p.isPunct("}") && !p.atEOF() {
		p.expr()
		count++
		if p.isPunct(",") {
			p.next()
		}
	}
	p.expectPunct("}")
	return symtab.KindInt, float64(count)
}

// annotations parses a possibly-empty run of `:: ann` suffixes.
func (p *parser) annotations() []expr.Value {
	var anns []expr.Value
	for p.isPunct("::") {
		p.next()
		anns = append(anns, p.annotation())
	}
	return anns
}

// annotation parses one `name` or `name(arg1, ...)` annotation.
func (p *parser) annotation() expr.Value {
	name := p.identOrWarn()
	if p.isPunct("(") {
		p.next()
		args := p.exprListUntil(")")
		p.expectPunct(")")
		items := append([]expr.Value{expr.String(name)}, args...)
		return expr.Array(items...)
	}
	return expr.String(name)
}

// exprListUntil parses a comma-separated list of expressions, stopping
// (without consuming) at a punctuation token equal to closer.
func (p *parser) exprListUntil(closer string) []expr.Value {
	var out []expr.Value
	for !p.isPunct(closer) && !p.atEOF() {
		out = append(out, p.expr())
		if p.isPunct(",") {
			p.next()
		} else {
			break
		}
	}
	return out
}

// expr parses one constraint/annotation argument: a variable/array
// name, a literal, a nested call-shaped annotation value, an array
// literal `[...]`, or a set literal `{...}`.
func (p *parser) expr() expr.Value {
	t := p.peek()
	switch {
	case t.kind == tokIdent && (t.text == "true" || t.text == "false"):
		p.next()
		return expr.Bool(t.text == "true")
	case t.kind == tokIdent:
		p.next()
		if p.isPunct("(") {
			p.next()
			args := p.exprListUntil(")")
			p.expectPunct(")")
			items := append([]expr.Value{expr.String(t.text)}, args...)
			return expr.Array(items...)
		}
		return expr.String(t.text)
	case t.kind == tokString:
		p.next()
		return expr.String(t.text)
	case t.kind == tokInt:
		lo := p.intLiteral()
		if p.isPunct("..") {
			p.next()
			p.intLiteral()
		}
		return expr.Int(lo)
	case t.kind == tokFloat:
		f := p.numberLiteral()
		return expr.Float(f)
	case t.kind == tokPunct && t.text == "[":
		p.next()
		items := p.exprListUntil("]")
		p.expectPunct("]")
		return expr.Array(items...)
	case t.kind == tokPunct && t.text == "{":
		p.next()
		items := p.exprListUntil("}")
		p.expectPunct("}")
		return expr.Set(items...)
	default:
		p.res.warnf(t.line, "unrecognised expression token %q", t.text)
		p.next()
		return expr.Bool(false)
	}
}

func (p *parser) identOrWarn() string {
	t := p.peek()
	if t.kind != tokIdent {
		p.res.warnf(t.line, "expected identifier, got %q", t.text)
		return ""
	}
	p.next()
	return t.text
}

func (p *parser) expectPunct(s string) bool {
	if p.isPunct(s) {
		p.next()
		return true
	}
	t := p.peek()
	p.res.warnf(t.line, "expected %q, got %q", s, t.text)
	return false
}

func (p *parser) expectIdentText(s string) {
	if p.isIdent(s) {
		p.next()
		return
	}
	t := p.peek()
	p.res.warnf(t.line, "expected %q, got %q", s, t.text)
}

func (p *parser) intLiteral() int64 {
	t := p.next()
	v, err := parseIntLiteral(t.text)
	if err != nil {
		p.res.warnf(t.line, "invalid integer literal %q", t.text)
		return 0
	}
	return v
}

func (p *parser) numberLiteral() float64 {
	t := p.next()
	if t.kind == tokInt {
		v, err := parseIntLiteral(t.text)
		if err != nil {
			p.res.warnf(t.line, "invalid numeric literal %q", t.text)
			return 0
		}
		return float64(v)
	}
	v, err := parseFloatLiteral(t.text)
	if err != nil {
		p.res.warnf(t.line, "invalid numeric literal %q", t.text)
		return 0
	}
	return v
}
