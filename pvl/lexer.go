package pvl

import (
	"fmt"
	"strings"

	"pvlkit/util/scan"
)

// TokenKind represents type of lexical token
type TokenKind int

const (
	TokEOF TokenKind = iota
	TokWord
	TokQuoted
	TokEquals
	TokOpen
	TokClose
	TokComma
	TokUnit
	TokComment
	TokGroup
	TokEndGroup
	TokObject
	TokEndObject
	TokEnd
)

var tokenKindNames = map[TokenKind]string{
	TokEOF:       "end of file",
	TokWord:      "word",
	TokQuoted:    "quoted string",
	TokEquals:    "'='",
	TokOpen:      "opening bracket",
	TokClose:     "closing bracket",
	TokComma:     "','",
	TokUnit:      "unit",
	TokComment:   "comment",
	TokGroup:     "Group",
	TokEndGroup:  "End_Group",
	TokObject:    "Object",
	TokEndObject: "End_Object",
	TokEnd:       "End",
}

// String returns human readable name of token kind
func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(k))
}

// IsMarker returns true if token kind is a structural marker
func (k TokenKind) IsMarker() bool {
	return k >= TokGroup && k <= TokEnd
}

// Token represents lexical element of PVL text.
//
// Text of quoted string excludes the quotes, text of unit excludes angle brackets. Pos and End are byte offsets of
// the token in the source.
type Token struct {
	Kind  TokenKind
	Text  string
	Quote byte
	Line  int
	Pos   int
	End   int
}

var markers = map[string]TokenKind{
	"GROUP":        TokGroup,
	"BEGIN_GROUP":  TokGroup,
	"ENDGROUP":     TokEndGroup,
	"END_GROUP":    TokEndGroup,
	"OBJECT":       TokObject,
	"BEGIN_OBJECT": TokObject,
	"ENDOBJECT":    TokEndObject,
	"END_OBJECT":   TokEndObject,
	"END":          TokEnd,
}

// Lex splits <data> into tokens. The last token is always of TokEOF kind.
//
// Any non-printable byte outside of quotes and comments ends the stream. <filename> is used in errors only.
func Lex(data []byte, filename string) ([]Token, error) {
	s := scan.New(data)
	tokens := []Token{}
	for {
		skipSpace(s)
		char, ok := s.Peek()
		if !ok || !isPrintable(char) {
			tokens = append(tokens, Token{Kind: TokEOF, Line: s.Line, Pos: s.Idx, End: s.Idx})
			return tokens, nil
		}

		tok := Token{Line: s.Line, Pos: s.Idx}
		switch {
		case char == '#' || s.HasPrefix("//"):
			tok.Kind = TokComment
			tok.Text = strings.TrimSpace(s.RestOfLine())
		case s.HasPrefix("/*"):
			lines, ok := lexBlockComment(s)
			if !ok {
				return nil, SyntaxError{Filename: filename, Line: tok.Line, Reason: "Unterminated comment, missing '*/'"}
			}
			for i, line := range lines {
				if line != "" {
					tokens = append(tokens, Token{Kind: TokComment, Text: line, Line: tok.Line + i, Pos: tok.Pos, End: s.Idx})
				}
			}
			continue
		case char == '=':
			s.Next()
			tok.Kind = TokEquals
			tok.Text = "="
		case char == '(' || char == '{':
			s.Next()
			tok.Kind = TokOpen
			tok.Text = string(char)
		case char == ')' || char == '}':
			s.Next()
			tok.Kind = TokClose
			tok.Text = string(char)
		case char == ',':
			s.Next()
			tok.Kind = TokComma
			tok.Text = ","
		case char == '<':
			s.Next()
			unit := s.Until(func(c byte) bool { return c == '>' })
			if _, ok := s.Next(); !ok {
				return nil, SyntaxError{Filename: filename, Line: tok.Line, Reason: "Unterminated unit, missing '>'"}
			}
			tok.Kind = TokUnit
			tok.Text = strings.TrimSpace(unit)
		case char == '"' || char == '\'':
			s.Next()
			text := s.Until(func(c byte) bool { return c == char })
			if _, ok := s.Next(); !ok {
				return nil, SyntaxError{Filename: filename, Line: tok.Line, Reason: fmt.Sprintf("Unterminated quote %c", char)}
			}
			tok.Kind = TokQuoted
			tok.Text = text
			tok.Quote = char
		default:
			tok.Text = s.Until(isWordEnd)
			if tok.Text == "" {
				return nil, SyntaxError{Filename: filename, Line: tok.Line, Reason: fmt.Sprintf("Unexpected character %c", char)}
			}
			tok.Kind = TokWord
			if kind, ok := markers[strings.ToUpper(tok.Text)]; ok {
				tok.Kind = kind
			}
		}
		tok.End = s.Idx
		tokens = append(tokens, tok)
	}
}

// lexBlockComment reads /* */ comment and returns one comment per source line, empty string for blank lines of
// multi-line comment.
//
// Returns false if comment is not terminated.
func lexBlockComment(s *scan.Scanner) ([]string, bool) {
	s.Skip(2)
	var body strings.Builder
	for !s.HasPrefix("*/") {
		char, ok := s.Next()
		if !ok {
			return nil, false
		}
		body.WriteByte(char)
	}
	s.Skip(2)

	lines := strings.Split(body.String(), "\n")
	comments := make([]string, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" && len(lines) > 1 {
			continue
		}
		comments[i] = strings.TrimSpace("/* "+line) + " */"
	}
	return comments, true
}

func skipSpace(s *scan.Scanner) {
	s.Until(func(char byte) bool { return !isSpace(char) })
}

func isSpace(char byte) bool {
	switch char {
	case ' ', '\t', '\r', '\n', '\f', '\v':
		return true
	}
	return false
}

func isPrintable(char byte) bool {
	return char >= 0x20 && char < 0x7f
}

func isWordEnd(char byte) bool {
	if isSpace(char) || !isPrintable(char) {
		return true
	}
	return strings.IndexByte("=(){},<>\"'", char) >= 0
}
