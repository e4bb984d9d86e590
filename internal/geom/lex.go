package geom

import "unicode"

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokOpen
	tokClose
	tokComma
	tokWord
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) describe() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokOpen:
		return "'('"
	case tokClose:
		return "')'"
	case tokComma:
		return "','"
	}
	return "'" + t.text + "'"
}

// wktLex splits WKT into brackets, commas and words. A word is any run of
// characters that are neither spaces nor delimiters; the parser decides
// whether it is a keyword or a number.
type wktLex struct {
	line string
	pos  int
}

func (l *wktLex) lex() token {
	l.trimLeft()
	start := l.pos
	if l.pos >= len(l.line) {
		return token{kind: tokEOF, pos: start}
	}
	switch l.line[l.pos] {
	case '(':
		l.pos++
		return token{kind: tokOpen, pos: start}
	case ')':
		l.pos++
		return token{kind: tokClose, pos: start}
	case ',':
		l.pos++
		return token{kind: tokComma, pos: start}
	}
	for l.pos < len(l.line) && !isDelim(rune(l.line[l.pos])) {
		l.pos++
	}
	return token{kind: tokWord, text: l.line[start:l.pos], pos: start}
}

func isDelim(r rune) bool {
	switch r {
	case '(', ')', ',':
		return true
	}
	return unicode.IsSpace(r)
}

func (l *wktLex) trimLeft() {
	for l.pos < len(l.line) && unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
}

func isKeyword(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}
