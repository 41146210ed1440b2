package typeparser

import (
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/typerel/internal/typesystem"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokDot
	tokLT
	tokGT
	tokComma
	tokAmp
	tokQuestion
	tokLBrack
	tokRBrack
	tokIllegal
)

var tokenNames = map[tokenKind]string{
	tokEOF:      "end of input",
	tokIdent:    "identifier",
	tokDot:      "'.'",
	tokLT:       "'<'",
	tokGT:       "'>'",
	tokComma:    "','",
	tokAmp:      "'&'",
	tokQuestion: "'?'",
	tokLBrack:   "'['",
	tokRBrack:   "']'",
	tokIllegal:  "illegal character",
}

type token struct {
	kind   tokenKind
	text   string
	offset int
}

func (t token) String() string {
	if t.kind == tokIdent || t.kind == tokIllegal {
		return tokenNames[t.kind] + " " + "\"" + t.text + "\""
	}
	return tokenNames[t.kind]
}

var punctuation = map[rune]tokenKind{
	'.': tokDot,
	'<': tokLT,
	'>': tokGT,
	',': tokComma,
	'&': tokAmp,
	'?': tokQuestion,
	'[': tokLBrack,
	']': tokRBrack,
}

// scan splits a type string into tokens. Whitespace separates tokens and is
// otherwise ignored. The result always ends with tokEOF.
func scan(input string) []token {
	var toks []token
	for i := 0; i < len(input); {
		r, size := utf8.DecodeRuneInString(input[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case typesystem.IsIdentifierStart(r):
			start := i
			for i < len(input) {
				r, size = utf8.DecodeRuneInString(input[i:])
				if !typesystem.IsIdentifierPart(r) {
					break
				}
				i += size
			}
			toks = append(toks, token{kind: tokIdent, text: input[start:i], offset: start})
		default:
			kind, ok := punctuation[r]
			if !ok {
				kind = tokIllegal
			}
			toks = append(toks, token{kind: kind, text: input[i : i+size], offset: i})
			i += size
		}
	}
	return append(toks, token{kind: tokEOF, offset: len(input)})
}
