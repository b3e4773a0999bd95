package schema

import (
	"unicode"
	"unicode/utf8"
)

// DefaultDelimiter separates fields when a Schema declares neither start
// positions nor a separator
const DefaultDelimiter = ","

// FallbackDelimiter replaces separator names which cannot be resolved
const FallbackDelimiter = "    "

var namedDelimiters = map[string]string{
	"comma": ",",
	"tab":   "\t",
}

// ResolveDelimiter turns a field_separator entry into the delimiter it names.
// Known names resolve to their character, other alphabetic names and other
// multi-character symbols resolve to FallbackDelimiter, whitespace passes
// through unchanged and any other single character is used literally.
func ResolveDelimiter(symbol string) string {
	if d, ok := namedDelimiters[symbol]; ok {
		return d
	}
	switch {
	case isAll(symbol, unicode.IsLetter):
		return FallbackDelimiter
	case isAll(symbol, unicode.IsSpace):
		return symbol
	case utf8.RuneCountInString(symbol) == 1:
		return symbol
	default:
		return FallbackDelimiter
	}
}

func isAll(s string, fn func(rune) bool) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !fn(r) {
			return false
		}
	}
	return true
}
