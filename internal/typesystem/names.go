package typesystem

import (
	"strings"
	"unicode"

	"github.com/funvibe/typerel/internal/config"
)

var reservedWords = map[string]bool{
	config.ExtendsKeyword: true,
	config.SuperKeyword:   true,
	config.VoidKeyword:    true,
	"boolean":             true,
	"byte":                true,
	"char":                true,
	"short":               true,
	"int":                 true,
	"long":                true,
	"float":               true,
	"double":              true,
}

// IsReservedWord reports whether s may not be used as a class or variable name.
func IsReservedWord(s string) bool { return reservedWords[s] }

// IsIdentifierStart reports whether r may start an identifier.
func IsIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$'
}

// IsIdentifierPart reports whether r may continue an identifier.
func IsIdentifierPart(r rune) bool {
	return IsIdentifierStart(r) || unicode.IsDigit(r)
}

// IsIdentifier reports whether s is a valid, non-reserved identifier.
func IsIdentifier(s string) bool {
	if s == "" || IsReservedWord(s) {
		return false
	}
	for i, r := range s {
		if i == 0 && !IsIdentifierStart(r) {
			return false
		}
		if !IsIdentifierPart(r) {
			return false
		}
	}
	return true
}

// IsQualifiedName reports whether s is a dot separated sequence of identifiers.
func IsQualifiedName(s string) bool {
	for _, part := range strings.Split(s, config.PackageSep) {
		if !IsIdentifier(part) {
			return false
		}
	}
	return true
}
