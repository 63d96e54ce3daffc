package expr

import (
	"fmt"
	"strconv"
	"unicode"
)

// SyntaxError reports where parsing stopped.
type SyntaxError struct {
	Pos int // rune offset
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d: %s", e.Pos, e.Msg)
}

type tokenKind int

const (
	tokNum tokenKind = iota
	tokOp
	tokLParen
	tokRParen
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func tokenize(input string) ([]token, error) {
	var toks []token
	rs := []rune(input)
	for i := 0; i < len(rs); {
		c := rs[i]
		switch {
		case unicode.IsSpace(c):
			i++
		case unicode.IsDigit(c):
			start := i
			for i < len(rs) && unicode.IsDigit(rs[i]) {
				i++
			}
			toks = append(toks, token{tokNum, string(rs[start:i]), start})
		case c == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		default:
			if _, ok := ParseOp(string(c)); !ok {
				return nil, &SyntaxError{Pos: i, Msg: fmt.Sprintf("unexpected %q", c)}
			}
			toks = append(toks, token{tokOp, string(c), i})
			i++
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(rs)}), nil
}

type parser struct {
	toks []token
	i    int
}

// Parse reads an arithmetic expression over integers with + - × ÷ (or * /)
// and parentheses. * and / bind tighter than + and -; the solver's own output
// is fully parenthesized so precedence never decides anything for it.
//
// A unary minus is accepted only in front of a number, as in -5, or in front
// of a parenthesized number, as in -(-5).
func Parse(input string) (Node, error) {
	toks, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unexpected %q", t.text)}
	}
	return n, nil
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) expr() (Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		op, _ := ParseOp(t.text)
		if t.kind != tokOp || (op != Add && op != Sub) {
			return left, nil
		}
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
}

func (p *parser) term() (Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		op, _ := ParseOp(t.text)
		if t.kind != tokOp || (op != Mul && op != Div) {
			return left, nil
		}
		p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
}

func (p *parser) unary() (Node, error) {
	t := p.peek()
	if op, _ := ParseOp(t.text); t.kind != tokOp || op != Sub {
		return p.primary()
	}
	p.next()

	switch nt := p.peek(); nt.kind {
	case tokNum:
		n, err := p.number()
		if err != nil {
			return nil, err
		}
		return &Leaf{Value: -n}, nil
	case tokLParen:
		p.next()
		inner, err := p.unary()
		if err != nil {
			return nil, err
		}
		leaf, ok := inner.(*Leaf)
		if !ok || leaf.Negated {
			return nil, &SyntaxError{Pos: nt.pos, Msg: "unary minus applies to a number only"}
		}
		if rp := p.next(); rp.kind != tokRParen {
			return nil, &SyntaxError{Pos: rp.pos, Msg: "expected )"}
		}
		return &Leaf{Value: leaf.Value, Negated: true}, nil
	default:
		return nil, &SyntaxError{Pos: nt.pos, Msg: "unary minus applies to a number only"}
	}
}

func (p *parser) primary() (Node, error) {
	t := p.peek()
	switch t.kind {
	case tokNum:
		n, err := p.number()
		if err != nil {
			return nil, err
		}
		return &Leaf{Value: n}, nil
	case tokLParen:
		p.next()
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		if rp := p.next(); rp.kind != tokRParen {
			return nil, &SyntaxError{Pos: rp.pos, Msg: "expected )"}
		}
		return n, nil
	case tokEOF:
		return nil, &SyntaxError{Pos: t.pos, Msg: "unexpected end of input"}
	}
	return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unexpected %q", t.text)}
}

func (p *parser) number() (int, error) {
	t := p.next()
	n, err := strconv.Atoi(t.text)
	if err != nil {
		return 0, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("bad number %q", t.text)}
	}
	return n, nil
}
