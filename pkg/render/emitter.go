package render

import (
	"html"
	"strings"
)

// Category classifies a rendered token for styled output.
type Category int

const (
	CategoryText Category = iota
	CategoryTypeName
	CategoryModifierKeyword
	CategoryDeclarationKeyword
	CategoryNamespaceName
	CategoryNamespaceQualifier
	CategoryDelimiter
	CategoryColon
	CategoryOptionalQualifier
	CategoryGenericName
	CategoryStructName
	CategoryEnumName
	CategoryEnumVariantName
	CategoryFunctionName
	CategoryParameterName
	CategoryFieldName
	CategoryUnknown
)

var categoryNames = map[Category]string{
	CategoryText:               "text",
	CategoryTypeName:           "type-name",
	CategoryModifierKeyword:    "keyword-modifier",
	CategoryDeclarationKeyword: "keyword-declaration",
	CategoryNamespaceName:      "namespace-name",
	CategoryNamespaceQualifier: "namespace-qualifier",
	CategoryDelimiter:          "delimiter",
	CategoryColon:              "colon",
	CategoryOptionalQualifier:  "optional-qualifier",
	CategoryGenericName:        "generic-name",
	CategoryStructName:         "struct-name",
	CategoryEnumName:           "enum-name",
	CategoryEnumVariantName:    "enum-variant-name",
	CategoryFunctionName:       "function-name",
	CategoryParameterName:      "parameter-name",
	CategoryFieldName:          "field-name",
	CategoryUnknown:            "unknown",
}

// String returns the category's CSS-style class name.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "text"
}

// Emitter receives the tokens of one rendering, one method per category.
type Emitter interface {
	Text(s string)
	TypeName(s string)
	ModifierKeyword(s string)
	DeclarationKeyword(s string)
	NamespaceName(s string)
	NamespaceQualifier(s string)
	Delimiter(s string)
	Colon(s string)
	OptionalQualifier(s string)
	GenericName(s string)
	StructName(s string)
	EnumName(s string)
	EnumVariantName(s string)
	FunctionName(s string)
	ParameterName(s string)
	FieldName(s string)
	Unknown(s string)
	String() string
}

// styled implements every Emitter category method by forwarding to emit.
type styled struct {
	emit func(Category, string)
}

func (s styled) Text(text string)               { s.emit(CategoryText, text) }
func (s styled) TypeName(text string)           { s.emit(CategoryTypeName, text) }
func (s styled) ModifierKeyword(text string)    { s.emit(CategoryModifierKeyword, text) }
func (s styled) DeclarationKeyword(text string) { s.emit(CategoryDeclarationKeyword, text) }
func (s styled) NamespaceName(text string)      { s.emit(CategoryNamespaceName, text) }
func (s styled) NamespaceQualifier(text string) { s.emit(CategoryNamespaceQualifier, text) }
func (s styled) Delimiter(text string)          { s.emit(CategoryDelimiter, text) }
func (s styled) Colon(text string)              { s.emit(CategoryColon, text) }
func (s styled) OptionalQualifier(text string)  { s.emit(CategoryOptionalQualifier, text) }
func (s styled) GenericName(text string)        { s.emit(CategoryGenericName, text) }
func (s styled) StructName(text string)         { s.emit(CategoryStructName, text) }
func (s styled) EnumName(text string)           { s.emit(CategoryEnumName, text) }
func (s styled) EnumVariantName(text string)    { s.emit(CategoryEnumVariantName, text) }
func (s styled) FunctionName(text string)       { s.emit(CategoryFunctionName, text) }
func (s styled) ParameterName(text string)      { s.emit(CategoryParameterName, text) }
func (s styled) FieldName(text string)          { s.emit(CategoryFieldName, text) }
func (s styled) Unknown(text string)            { s.emit(CategoryUnknown, text) }

// PlainEmitter writes tokens without styling.
type PlainEmitter struct {
	styled
	b strings.Builder
}

func NewPlainEmitter() *PlainEmitter {
	e := &PlainEmitter{}
	e.styled = styled{emit: func(_ Category, s string) { e.b.WriteString(s) }}
	return e
}

func (e *PlainEmitter) String() string { return e.b.String() }

// HTMLEmitter wraps styled tokens in <span class="..."> and escapes all text.
type HTMLEmitter struct {
	styled
	b strings.Builder
}

func NewHTMLEmitter() *HTMLEmitter {
	e := &HTMLEmitter{}
	e.styled = styled{emit: e.write}
	return e
}

func (e *HTMLEmitter) write(c Category, s string) {
	if c == CategoryText {
		e.b.WriteString(html.EscapeString(s))
		return
	}
	e.b.WriteString(`<span class="`)
	e.b.WriteString(c.String())
	e.b.WriteString(`">`)
	e.b.WriteString(html.EscapeString(s))
	e.b.WriteString("</span>")
}

func (e *HTMLEmitter) String() string { return e.b.String() }

// Token is one categorized piece of rendered text.
type Token struct {
	Category Category
	Text     string
}

// TokenEmitter collects the rendered tokens.
type TokenEmitter struct {
	styled
	tokens []Token
}

func NewTokenEmitter() *TokenEmitter {
	e := &TokenEmitter{}
	e.styled = styled{emit: func(c Category, s string) {
		e.tokens = append(e.tokens, Token{Category: c, Text: s})
	}}
	return e
}

func (e *TokenEmitter) Tokens() []Token { return e.tokens }

func (e *TokenEmitter) String() string {
	var b strings.Builder
	for _, tok := range e.tokens {
		b.WriteString(tok.Text)
	}
	return b.String()
}
