package formula

import (
	"fmt"
	"strings"
)

// A SyntaxError reports a malformed formula string together with the byte
// offset at which parsing failed.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokName
	tokTrue
	tokFalse
	tokEdg
	tokNot     // ~
	tokAnd     // &
	tokOr      // |
	tokImplies // ->
	tokIff     // <->
	tokLt      // <
	tokEq      // =
	tokBang    // !
	tokQuest   // ?
	tokLParen
	tokRParen
	tokLBrack
	tokRBrack
	tokColon
	tokComma
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

type lexer struct {
	input string
	pos   int
	// propNames admits '@' and digits inside names, for decoded bit
	// variables like x@1.
	propNames bool
}

func (lx *lexer) errf(pos int, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (lx *lexer) next() (token, error) {
	for lx.pos < len(lx.input) {
		c := lx.input[lx.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			lx.pos++
			continue
		}
		break
	}
	if lx.pos >= len(lx.input) {
		return token{kind: tokEOF, pos: lx.pos}, nil
	}
	start := lx.pos
	c := lx.input[lx.pos]
	switch c {
	case '(':
		lx.pos++
		return token{tokLParen, "(", start}, nil
	case ')':
		lx.pos++
		return token{tokRParen, ")", start}, nil
	case '[':
		lx.pos++
		return token{tokLBrack, "[", start}, nil
	case ']':
		lx.pos++
		return token{tokRBrack, "]", start}, nil
	case ':':
		lx.pos++
		return token{tokColon, ":", start}, nil
	case ',':
		lx.pos++
		return token{tokComma, ",", start}, nil
	case '~':
		lx.pos++
		return token{tokNot, "~", start}, nil
	case '&':
		lx.pos++
		return token{tokAnd, "&", start}, nil
	case '|':
		lx.pos++
		return token{tokOr, "|", start}, nil
	case '!':
		lx.pos++
		return token{tokBang, "!", start}, nil
	case '?':
		lx.pos++
		return token{tokQuest, "?", start}, nil
	case '=':
		lx.pos++
		return token{tokEq, "=", start}, nil
	case '-':
		if lx.pos+1 < len(lx.input) && lx.input[lx.pos+1] == '>' {
			lx.pos += 2
			return token{tokImplies, "->", start}, nil
		}
		return token{}, lx.errf(start, "unexpected character %q", c)
	case '<':
		if lx.pos+2 < len(lx.input) && lx.input[lx.pos+1] == '-' && lx.input[lx.pos+2] == '>' {
			lx.pos += 3
			return token{tokIff, "<->", start}, nil
		}
		lx.pos++
		return token{tokLt, "<", start}, nil
	}
	if isNameStart(c) {
		end := lx.pos + 1
		for end < len(lx.input) && lx.isNameChar(lx.input[end]) {
			end++
		}
		text := lx.input[lx.pos:end]
		lx.pos = end
		switch text {
		case "T":
			return token{tokTrue, text, start}, nil
		case "F":
			return token{tokFalse, text, start}, nil
		case "edg":
			return token{tokEdg, text, start}, nil
		}
		return token{tokName, text, start}, nil
	}
	return token{}, lx.errf(start, "unexpected character %q", c)
}

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func (lx *lexer) isNameChar(c byte) bool {
	if isNameStart(c) || c >= '0' && c <= '9' || c == '_' {
		return true
	}
	return lx.propNames && c == '@'
}

type parser struct {
	fac   *Factory
	lx    *lexer
	tok   token
	class Class
}

// Read parses a first-order graph formula, such as
//
//	(~ edg(x1, x2)) & (? [y] : x1 = y)
//
// Negation and quantifiers bind tightest, then &, |, -> and <->, loosest
// last. Binary operators associate to the left.
func (fac *Factory) Read(s string) (Formula, error) {
	return fac.read(s, Fog)
}

// ReadProp parses a propositional formula over Boolean variable names,
// which may carry an @-position suffix like x@2.
func (fac *Factory) ReadProp(s string) (Formula, error) {
	return fac.read(s, Prop)
}

func (fac *Factory) read(s string, c Class) (Formula, error) {
	p := &parser{fac: fac, lx: &lexer{input: s, propNames: c == Prop}, class: c}
	if err := p.advance(); err != nil {
		return Formula{}, err
	}
	f, err := p.parseIff()
	if err != nil {
		return Formula{}, err
	}
	if p.tok.kind != tokEOF {
		return Formula{}, p.lx.errf(p.tok.pos, "unexpected %q after formula", p.tok.text)
	}
	return f, nil
}

func (p *parser) advance() error {
	t, err := p.lx.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) expect(k tokenKind, what string) error {
	if p.tok.kind != k {
		return p.lx.errf(p.tok.pos, "expected %s, found %q", what, p.tok.text)
	}
	return p.advance()
}

func (p *parser) parseIff() (Formula, error) {
	f, err := p.parseImplies()
	if err != nil {
		return Formula{}, err
	}
	for p.tok.kind == tokIff {
		if err := p.advance(); err != nil {
			return Formula{}, err
		}
		g, err := p.parseImplies()
		if err != nil {
			return Formula{}, err
		}
		f = p.fac.Iff(f, g)
	}
	return f, nil
}

func (p *parser) parseImplies() (Formula, error) {
	f, err := p.parseOr()
	if err != nil {
		return Formula{}, err
	}
	for p.tok.kind == tokImplies {
		if err := p.advance(); err != nil {
			return Formula{}, err
		}
		g, err := p.parseOr()
		if err != nil {
			return Formula{}, err
		}
		f = p.fac.Implies(f, g)
	}
	return f, nil
}

// parseOr collects the whole |-chain before folding it, so the factory's
// Balanced mode can pick the grouping.
func (p *parser) parseOr() (Formula, error) {
	f, err := p.parseAnd()
	if err != nil {
		return Formula{}, err
	}
	ops := []Formula{f}
	for p.tok.kind == tokOr {
		if err := p.advance(); err != nil {
			return Formula{}, err
		}
		g, err := p.parseAnd()
		if err != nil {
			return Formula{}, err
		}
		ops = append(ops, g)
	}
	return p.fac.OrAll(ops), nil
}

func (p *parser) parseAnd() (Formula, error) {
	f, err := p.parseUnary()
	if err != nil {
		return Formula{}, err
	}
	ops := []Formula{f}
	for p.tok.kind == tokAnd {
		if err := p.advance(); err != nil {
			return Formula{}, err
		}
		g, err := p.parseUnary()
		if err != nil {
			return Formula{}, err
		}
		ops = append(ops, g)
	}
	return p.fac.AndAll(ops), nil
}

func (p *parser) parseUnary() (Formula, error) {
	switch p.tok.kind {
	case tokNot:
		if err := p.advance(); err != nil {
			return Formula{}, err
		}
		f, err := p.parseUnary()
		if err != nil {
			return Formula{}, err
		}
		return p.fac.Not(f), nil
	case tokBang, tokQuest:
		return p.parseQuantifier()
	}
	return p.parsePrimary()
}

func (p *parser) parseQuantifier() (Formula, error) {
	if p.class != Fog {
		return Formula{}, p.lx.errf(p.tok.pos, "quantifier in a propositional formula")
	}
	kind := KindForAll
	if p.tok.kind == tokQuest {
		kind = KindExists
	}
	if err := p.advance(); err != nil {
		return Formula{}, err
	}
	if err := p.expect(tokLBrack, "'['"); err != nil {
		return Formula{}, err
	}
	if p.tok.kind != tokName {
		return Formula{}, p.lx.errf(p.tok.pos, "expected bound variable, found %q", p.tok.text)
	}
	v, err := p.internName(p.tok)
	if err != nil {
		return Formula{}, err
	}
	if err := p.advance(); err != nil {
		return Formula{}, err
	}
	if err := p.expect(tokRBrack, "']'"); err != nil {
		return Formula{}, err
	}
	if err := p.expect(tokColon, "':'"); err != nil {
		return Formula{}, err
	}
	body, err := p.parseUnary()
	if err != nil {
		return Formula{}, err
	}
	if kind == KindForAll {
		return p.fac.ForAll(v, body)
	}
	return p.fac.Exists(v, body)
}

func (p *parser) parsePrimary() (Formula, error) {
	switch p.tok.kind {
	case tokLParen:
		if err := p.advance(); err != nil {
			return Formula{}, err
		}
		f, err := p.parseIff()
		if err != nil {
			return Formula{}, err
		}
		if err := p.expect(tokRParen, "')'"); err != nil {
			return Formula{}, err
		}
		return f, nil
	case tokTrue:
		f := p.fac.TrueConst(p.class)
		return f, p.advance()
	case tokFalse:
		f := p.fac.FalseConst(p.class)
		return f, p.advance()
	case tokEdg:
		return p.parseEdg()
	case tokName:
		return p.parseNameAtom()
	}
	return Formula{}, p.lx.errf(p.tok.pos, "expected formula, found %q", p.tok.text)
}

func (p *parser) parseEdg() (Formula, error) {
	if p.class != Fog {
		return Formula{}, p.lx.errf(p.tok.pos, "edg in a propositional formula")
	}
	if err := p.advance(); err != nil {
		return Formula{}, err
	}
	if err := p.expect(tokLParen, "'('"); err != nil {
		return Formula{}, err
	}
	x, err := p.parseTerm()
	if err != nil {
		return Formula{}, err
	}
	if err := p.expect(tokComma, "','"); err != nil {
		return Formula{}, err
	}
	y, err := p.parseTerm()
	if err != nil {
		return Formula{}, err
	}
	if err := p.expect(tokRParen, "')'"); err != nil {
		return Formula{}, err
	}
	return p.fac.Edg(x, y)
}

func (p *parser) parseNameAtom() (Formula, error) {
	pos := p.tok.pos
	i, err := p.internName(p.tok)
	if err != nil {
		return Formula{}, err
	}
	if err := p.advance(); err != nil {
		return Formula{}, err
	}
	if p.class == Prop {
		return p.fac.PropVar(i)
	}
	// in a graph formula a bare name must be the left term of a relation
	var kind Kind
	switch p.tok.kind {
	case tokEq:
		kind = KindEq
	case tokLt:
		kind = KindLt
	default:
		return Formula{}, p.lx.errf(pos, "term without a relation")
	}
	if err := p.advance(); err != nil {
		return Formula{}, err
	}
	j, err := p.parseTerm()
	if err != nil {
		return Formula{}, err
	}
	return p.fac.Atom(kind, i, j)
}

func (p *parser) parseTerm() (int, error) {
	if p.tok.kind != tokName {
		return 0, p.lx.errf(p.tok.pos, "expected term, found %q", p.tok.text)
	}
	i, err := p.internName(p.tok)
	if err != nil {
		return 0, err
	}
	return i, p.advance()
}

// internName registers a symbol name after checking its casing: the first
// letter decides variable or constant, and the remaining letters must agree
// with it.
func (p *parser) internName(t token) (int, error) {
	name := t.text
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	upper := name[0] >= 'A' && name[0] <= 'Z'
	for j := 1; j < len(name); j++ {
		c := name[j]
		if upper && c >= 'a' && c <= 'z' || !upper && c >= 'A' && c <= 'Z' {
			return 0, p.lx.errf(t.pos, "mixed-case name %q", t.text)
		}
	}
	return p.fac.syms.LookupIndex(t.text)
}
