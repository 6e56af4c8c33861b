package parser

import "jakt/analysis-go/pkg/ast"

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokInt
	tokFloat
	tokString
	tokChar
	tokByteChar
	tokPunct
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of file"
	case tokIdent:
		return "identifier"
	case tokInt:
		return "integer literal"
	case tokFloat:
		return "float literal"
	case tokString:
		return "string literal"
	case tokChar, tokByteChar:
		return "character literal"
	}
	return "punctuation"
}

// token is one lexeme. For numeric literals lit holds the digits and suffix
// the width suffix, if any.
type token struct {
	kind    tokenKind
	lit     string
	suffix  string
	start   ast.Position
	end     ast.Position
	newline bool // preceded by a line break
}

var keywords = map[string]bool{
	"and": true, "anon": true, "as": true, "boxed": true, "break": true,
	"class": true, "comptime": true, "continue": true, "defer": true,
	"else": true, "enum": true, "extern": true, "false": true, "for": true,
	"function": true, "if": true, "import": true, "in": true, "let": true,
	"loop": true, "match": true, "mut": true, "namespace": true, "not": true,
	"or": true, "private": true, "public": true, "raw": true, "return": true,
	"struct": true, "this": true, "throw": true, "throws": true, "true": true,
	"unsafe": true, "weak": true, "while": true, "yield": true,
}

// Longest punctuation first so the scanner can match greedily.
var punctuation = []string{
	"<<=", ">>=", "...",
	"::", "->", "=>", "==", "!=", "<=", ">=", "<<", ">>", "+=", "-=", "*=",
	"/=", "%=", "&=", "|=", "^=", "++", "--", "..", "??", "?.",
	"(", ")", "[", "]", "{", "}", "<", ">", ",", ":", ";", ".", "=", "+",
	"-", "*", "/", "%", "&", "|", "^", "~", "!", "?",
}

var integerSuffixes = map[string]bool{
	"i8": true, "i16": true, "i32": true, "i64": true,
	"u8": true, "u16": true, "u32": true, "u64": true,
	"usize": true, "c_char": true, "c_int": true,
}

var floatSuffixes = map[string]bool{"f32": true, "f64": true}
