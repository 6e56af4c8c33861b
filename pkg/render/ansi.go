package render

import "strings"

type color string

const (
	reset        color = "\033[0m"
	red          color = "\033[31m"
	green        color = "\033[32m"
	yellow       color = "\033[33m"
	blue         color = "\033[34m"
	purple       color = "\033[35m"
	cyan         color = "\033[36m"
	grey         color = "\033[90m"
	brightYellow color = "\033[93m"
	brightBlue   color = "\033[94m"
	boldPurple   color = "\033[1;35m"
)

var palette = map[Category]color{
	CategoryTypeName:           cyan,
	CategoryModifierKeyword:    purple,
	CategoryDeclarationKeyword: boldPurple,
	CategoryNamespaceName:      brightBlue,
	CategoryNamespaceQualifier: grey,
	CategoryDelimiter:          grey,
	CategoryColon:              grey,
	CategoryOptionalQualifier:  yellow,
	CategoryGenericName:        brightYellow,
	CategoryStructName:         green,
	CategoryEnumName:           green,
	CategoryEnumVariantName:    blue,
	CategoryFunctionName:       blue,
	CategoryParameterName:      yellow,
	CategoryFieldName:          yellow,
	CategoryUnknown:            red,
}

// ANSIEmitter colours tokens with terminal escape sequences.
type ANSIEmitter struct {
	styled
	b strings.Builder
}

func NewANSIEmitter() *ANSIEmitter {
	e := &ANSIEmitter{}
	e.styled = styled{emit: e.write}
	return e
}

func (e *ANSIEmitter) write(c Category, s string) {
	col, ok := palette[c]
	if !ok {
		e.b.WriteString(s)
		return
	}
	e.b.WriteString(string(col))
	e.b.WriteString(s)
	e.b.WriteString(string(reset))
}

func (e *ANSIEmitter) String() string { return e.b.String() }

// StripANSI removes colour escape sequences from s.
func StripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			inEscape = true
			i++
			continue
		}
		if inEscape {
			if (s[i] >= 'A' && s[i] <= 'Z') || (s[i] >= 'a' && s[i] <= 'z') {
				inEscape = false
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
