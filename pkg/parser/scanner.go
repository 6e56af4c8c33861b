package parser

import (
	"strings"
	"unicode"

	"jakt/analysis-go/pkg/ast"
)

// scanner splits source text into tokens up front so the parser can
// backtrack over generic argument lists.
type scanner struct {
	src  []rune
	off  int
	line int
	col  int
	errh func(pos ast.Position, msg string)
}

func newScanner(src string, errh func(pos ast.Position, msg string)) *scanner {
	return &scanner{src: []rune(src), line: 1, col: 1, errh: errh}
}

func (s *scanner) pos() ast.Position { return ast.Position{Line: s.line, Column: s.col} }

func (s *scanner) peek(n int) rune {
	if s.off+n >= len(s.src) {
		return -1
	}
	return s.src[s.off+n]
}

func (s *scanner) advance() {
	if s.off >= len(s.src) {
		return
	}
	if s.src[s.off] == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	s.off++
}

func (s *scanner) errorf(pos ast.Position, msg string) {
	if s.errh != nil {
		s.errh(pos, msg)
	}
}

func (s *scanner) scanAll() []token {
	var toks []token
	for {
		newline := s.skipSpace()
		tok := s.scan()
		tok.newline = newline || len(toks) == 0
		// A member after '.' is never a fraction: t.0.1 is two accesses.
		if tok.kind == tokFloat && len(toks) > 0 && toks[len(toks)-1].lit == "." && toks[len(toks)-1].kind == tokPunct {
			toks = append(toks, s.splitTupleIndex(tok)...)
			continue
		}
		toks = append(toks, tok)
		if tok.kind == tokEOF {
			return toks
		}
	}
}

// splitTupleIndex turns a float token "0.1" scanned after '.' into the
// tokens "0", ".", "1".
func (s *scanner) splitTupleIndex(tok token) []token {
	parts := strings.SplitN(tok.lit, ".", 2)
	first := token{kind: tokInt, lit: parts[0], start: tok.start, end: tok.start}
	first.end.Column += len(parts[0])
	dot := token{kind: tokPunct, lit: ".", start: first.end, end: first.end}
	dot.end.Column++
	second := token{kind: tokInt, lit: parts[1], suffix: tok.suffix, start: dot.end, end: tok.end}
	return []token{first, dot, second}
}

// skipSpace skips whitespace and comments, reporting whether a line break
// was crossed.
func (s *scanner) skipSpace() bool {
	newline := false
	for {
		ch := s.peek(0)
		switch {
		case ch == '\n':
			newline = true
			s.advance()
		case ch == ' ' || ch == '\t' || ch == '\r':
			s.advance()
		case ch == '/' && s.peek(1) == '/':
			for s.peek(0) != '\n' && s.peek(0) >= 0 {
				s.advance()
			}
		case ch == '/' && s.peek(1) == '*':
			start := s.pos()
			s.advance()
			s.advance()
			for !(s.peek(0) == '*' && s.peek(1) == '/') {
				if s.peek(0) < 0 {
					s.errorf(start, "comment not terminated")
					return newline
				}
				if s.peek(0) == '\n' {
					newline = true
				}
				s.advance()
			}
			s.advance()
			s.advance()
		default:
			return newline
		}
	}
}

func (s *scanner) scan() token {
	start := s.pos()
	ch := s.peek(0)
	var tok token
	switch {
	case ch < 0:
		tok = token{kind: tokEOF}
	case ch == 'b' && s.peek(1) == '\'':
		s.advance()
		tok = s.scanChar(tokByteChar)
	case isIdentStart(ch):
		tok = token{kind: tokIdent, lit: s.scanWord()}
	case unicode.IsDigit(ch):
		tok = s.scanNumber(start)
	case ch == '"':
		tok = s.scanString(start)
	case ch == '\'':
		tok = s.scanChar(tokChar)
	default:
		tok = s.scanPunct(start)
	}
	tok.start = start
	tok.end = s.pos()
	return tok
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || unicode.IsDigit(ch)
}

func (s *scanner) scanWord() string {
	var b strings.Builder
	for isIdentPart(s.peek(0)) {
		b.WriteRune(s.peek(0))
		s.advance()
	}
	return b.String()
}

func (s *scanner) scanNumber(start ast.Position) token {
	var b strings.Builder
	kind := tokInt
	digits := func(valid func(rune) bool) {
		for valid(s.peek(0)) || s.peek(0) == '_' {
			if s.peek(0) != '_' {
				b.WriteRune(s.peek(0))
			}
			s.advance()
		}
	}
	if s.peek(0) == '0' && strings.ContainsRune("xXoObB", s.peek(1)) {
		b.WriteRune(s.peek(0))
		b.WriteRune(s.peek(1))
		s.advance()
		s.advance()
		digits(func(r rune) bool { return unicode.IsDigit(r) || strings.ContainsRune("abcdefABCDEF", r) })
	} else {
		digits(unicode.IsDigit)
		if s.peek(0) == '.' && unicode.IsDigit(s.peek(1)) {
			kind = tokFloat
			b.WriteRune('.')
			s.advance()
			digits(unicode.IsDigit)
		}
	}
	tok := token{kind: kind, lit: b.String()}
	if isIdentStart(s.peek(0)) {
		suffixPos := s.pos()
		tok.suffix = s.scanWord()
		switch {
		case kind == tokInt && floatSuffixes[tok.suffix]:
			tok.kind = tokFloat
		case kind == tokInt && integerSuffixes[tok.suffix]:
		case kind == tokFloat && floatSuffixes[tok.suffix]:
		default:
			s.errorf(suffixPos, "invalid numeric suffix "+tok.suffix)
			tok.suffix = ""
		}
	}
	return tok
}

func (s *scanner) scanString(start ast.Position) token {
	s.advance()
	var b strings.Builder
	for {
		ch := s.peek(0)
		switch {
		case ch < 0 || ch == '\n':
			s.errorf(start, "string literal not terminated")
			return token{kind: tokString, lit: b.String()}
		case ch == '"':
			s.advance()
			return token{kind: tokString, lit: b.String()}
		case ch == '\\':
			s.advance()
			b.WriteRune(unescape(s.peek(0)))
			s.advance()
		default:
			b.WriteRune(ch)
			s.advance()
		}
	}
}

func (s *scanner) scanChar(kind tokenKind) token {
	start := s.pos()
	s.advance()
	var b strings.Builder
	for s.peek(0) != '\'' {
		ch := s.peek(0)
		if ch < 0 || ch == '\n' {
			s.errorf(start, "character literal not terminated")
			return token{kind: kind, lit: b.String()}
		}
		if ch == '\\' {
			s.advance()
			ch = unescape(s.peek(0))
		}
		b.WriteRune(ch)
		s.advance()
	}
	s.advance()
	return token{kind: kind, lit: b.String()}
}

func unescape(ch rune) rune {
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	}
	return ch
}

func (s *scanner) scanPunct(start ast.Position) token {
	for _, p := range punctuation {
		if s.hasPrefix(p) {
			for range p {
				s.advance()
			}
			return token{kind: tokPunct, lit: p}
		}
	}
	ch := s.peek(0)
	s.errorf(start, "unexpected character "+string(ch))
	s.advance()
	return s.scan()
}

func (s *scanner) hasPrefix(p string) bool {
	i := 0
	for _, r := range p {
		if s.peek(i) != r {
			return false
		}
		i++
	}
	return true
}
