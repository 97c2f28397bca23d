package pvl

import (
	"fmt"
	"strings"
)

// DefaultMaxDepth is the default limit of container and array nesting
const DefaultMaxDepth = 100

// ParseOptions represents parser settings
type ParseOptions struct {
	// Maximum nesting of objects, groups and arrays. Zero means DefaultMaxDepth.
	MaxDepth int
}

// parser represents recursive descent parser over the token list of one label
type parser struct {
	data     []byte
	tokens   []Token
	pos      int
	filename string
	maxDepth int
}

// parseDocument fills <doc> from <data>
func parseDocument(doc *Document, data []byte, filename string, opts ParseOptions) error {
	tokens, err := Lex(data, filename)
	if err != nil {
		return err
	}
	p := &parser{data: data, tokens: tokens, filename: filename, maxDepth: opts.MaxDepth}
	if p.maxDepth <= 0 {
		p.maxDepth = DefaultMaxDepth
	}
	doc.Filename = filename
	return p.parseRoot(&doc.Object)
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) peekAt(offset int) Token {
	idx := min(p.pos+offset, len(p.tokens)-1)
	return p.tokens[idx]
}

func (p *parser) next() Token {
	tok := p.tokens[p.pos]
	if tok.Kind != TokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) errorf(line int, format string, args ...any) error {
	return SyntaxError{Filename: p.filename, Line: line, Reason: fmt.Sprintf(format, args...)}
}

// comments returns all comment tokens at the cursor
func (p *parser) comments() []Token {
	var out []Token
	for p.peek().Kind == TokComment {
		out = append(out, p.next())
	}
	return out
}

// parseRoot reads top level elements into <root> until End or EOF.
//
// Comment block at the very beginning separated from the following element by blank line belongs to the root
// itself, as do comments left when the document ends.
func (p *parser) parseRoot(root *Object) error {
	leading := p.comments()
	if idx := blankLineGap(leading); idx >= 0 {
		root.Comments = append(root.Comments, commentTexts(leading[:idx+1])...)
		leading = leading[idx+1:]
	} else if len(leading) > 0 {
		last := leading[len(leading)-1]
		if nextTok := p.peek(); nextTok.Kind == TokEOF || nextTok.Kind == TokEnd || nextTok.Line > last.Line+1 {
			root.Comments = append(root.Comments, commentTexts(leading)...)
			leading = nil
		}
	}
	pending := commentTexts(leading)

	for {
		pending = append(pending, commentTexts(p.comments())...)
		tok := p.peek()
		switch tok.Kind {
		case TokEOF:
			root.Comments = append(root.Comments, pending...)
			return nil
		case TokEnd:
			p.next()
			root.Comments = append(root.Comments, pending...)
			return nil
		case TokEndGroup, TokEndObject:
			return p.errorf(tok.Line, "Unexpected %v", tok.Kind)
		case TokGroup:
			grp, err := p.parseGroup(pending, 1)
			if err != nil {
				return err
			}
			root.Groups = append(root.Groups, grp)
		case TokObject:
			obj, err := p.parseObject(pending, 1)
			if err != nil {
				return err
			}
			root.Objects = append(root.Objects, obj)
		default:
			kw, err := p.parseKeyword(pending, 0)
			if err != nil {
				return err
			}
			root.Keywords = append(root.Keywords, kw)
		}
		pending = nil
	}
}

// parseName reads "= NAME" after Group or Object marker
func (p *parser) parseName(marker Token) (string, error) {
	if p.peek().Kind != TokEquals {
		return "", p.errorf(marker.Line, "Expected '=' after %v", marker.Kind)
	}
	p.next()
	tok := p.peek()
	if tok.Kind != TokWord && tok.Kind != TokQuoted && !tok.Kind.IsMarker() {
		return "", p.errorf(tok.Line, "Expected %v name, got %v", marker.Kind, tok.Kind)
	}
	p.next()
	if err := ValidateContainerName(tok.Text); err != nil {
		return "", p.errorf(tok.Line, "%v", err)
	}
	return tok.Text, nil
}

// skipEndName consumes optional "= NAME" after EndGroup or EndObject marker
func (p *parser) skipEndName() {
	if p.peek().Kind == TokEquals {
		p.next()
		if tok := p.peek(); tok.Kind == TokWord || tok.Kind == TokQuoted || tok.Kind.IsMarker() {
			p.next()
		}
	}
}

func (p *parser) checkDepth(line, depth int) error {
	if depth > p.maxDepth {
		return p.errorf(line, "Nesting is deeper than %v levels", p.maxDepth)
	}
	return nil
}

// parseGroup reads group starting at Group marker
func (p *parser) parseGroup(comments []string, depth int) (*Group, error) {
	marker := p.next()
	if err := p.checkDepth(marker.Line, depth); err != nil {
		return nil, err
	}
	name, err := p.parseName(marker)
	if err != nil {
		return nil, err
	}
	grp := &Group{Container{Name: name, Filename: p.filename, Comments: comments}}

	for {
		pending := commentTexts(p.comments())
		tok := p.peek()
		switch tok.Kind {
		case TokEndGroup:
			p.next()
			p.skipEndName()
			return grp, nil
		case TokEOF, TokEnd:
			return nil, p.errorf(tok.Line, "Group [%v] is not closed", name)
		case TokEndObject, TokGroup, TokObject:
			return nil, p.errorf(tok.Line, "Unexpected %v in Group [%v]", tok.Kind, name)
		default:
			kw, err := p.parseKeyword(pending, depth)
			if err != nil {
				return nil, err
			}
			grp.Keywords = append(grp.Keywords, kw)
		}
	}
}

// parseObject reads object starting at Object marker
func (p *parser) parseObject(comments []string, depth int) (*Object, error) {
	marker := p.next()
	if err := p.checkDepth(marker.Line, depth); err != nil {
		return nil, err
	}
	name, err := p.parseName(marker)
	if err != nil {
		return nil, err
	}
	obj := &Object{Container: Container{Name: name, Filename: p.filename, Comments: comments}}

	for {
		pending := commentTexts(p.comments())
		tok := p.peek()
		switch tok.Kind {
		case TokEndObject:
			p.next()
			p.skipEndName()
			return obj, nil
		case TokEOF, TokEnd:
			return nil, p.errorf(tok.Line, "Object [%v] is not closed", name)
		case TokEndGroup:
			return nil, p.errorf(tok.Line, "Unexpected %v in Object [%v]", tok.Kind, name)
		case TokGroup:
			grp, err := p.parseGroup(pending, depth+1)
			if err != nil {
				return nil, err
			}
			obj.Groups = append(obj.Groups, grp)
		case TokObject:
			child, err := p.parseObject(pending, depth+1)
			if err != nil {
				return nil, err
			}
			obj.Objects = append(obj.Objects, child)
		default:
			kw, err := p.parseKeyword(pending, depth)
			if err != nil {
				return nil, err
			}
			obj.Keywords = append(obj.Keywords, kw)
		}
	}
}

// parseKeyword reads "NAME", "NAME = VALUE [<UNIT>]" or "NAME = ARRAY [<UNIT>]"
func (p *parser) parseKeyword(comments []string, depth int) (*Keyword, error) {
	tok := p.next()
	switch tok.Kind {
	case TokWord, TokQuoted:
	case TokEquals:
		return nil, p.errorf(tok.Line, "Missing keyword name before '='")
	default:
		return nil, p.errorf(tok.Line, "Expected keyword name, got %v", tok.Kind)
	}
	if err := ValidateName(tok.Text); err != nil {
		return nil, p.errorf(tok.Line, "%v", err)
	}
	kw := &Keyword{Name: tok.Text, Comments: comments}

	if p.peek().Kind != TokEquals {
		return kw, nil
	}
	equals := p.next()

	valTok := p.peek()
	switch {
	case valTok.Kind == TokOpen:
		if err := p.parseArray(kw, depth+1); err != nil {
			return nil, err
		}
		return kw, nil
	case !isValueToken(valTok.Kind):
		return nil, p.errorf(equals.Line, "Missing value for keyword [%v]", kw.Name)
	case valTok.Line > equals.Line && (valTok.Kind.IsMarker() || p.peekAt(1).Kind == TokEquals):
		return nil, p.errorf(equals.Line, "Missing value for keyword [%v]", kw.Name)
	}
	p.next()
	val := Value{Text: valTok.Text}
	if p.peek().Kind == TokUnit {
		val.Unit = p.next().Text
	}
	kw.Values = []Value{val}
	return kw, nil
}

// parseArray reads bracketed comma separated values into <kw>.
//
// Nested arrays are stored as single values holding their source text.
func (p *parser) parseArray(kw *Keyword, depth int) error {
	open := p.next()
	if err := p.checkDepth(open.Line, depth); err != nil {
		return err
	}
	if open.Text == "{" {
		kw.Style = Braces
	}
	kw.Values = []Value{}

	if p.peek().Kind == TokClose {
		if err := p.closeArray(open); err != nil {
			return err
		}
		p.applyArrayUnit(kw)
		return nil
	}

	for {
		p.comments()
		tok := p.peek()
		var val Value
		switch {
		case tok.Kind == TokOpen:
			text, err := p.nestedArray(depth + 1)
			if err != nil {
				return err
			}
			val.Text = text
		case isValueToken(tok.Kind):
			p.next()
			val.Text = tok.Text
		case tok.Kind == TokEOF:
			return p.errorf(open.Line, "Array of keyword [%v] is not closed", kw.Name)
		default:
			return p.errorf(tok.Line, "Expected value in array of keyword [%v], got %v", kw.Name, tok.Kind)
		}
		if p.peek().Kind == TokUnit {
			val.Unit = p.next().Text
		}
		kw.Values = append(kw.Values, val)

		p.comments()
		sep := p.peek()
		switch sep.Kind {
		case TokComma:
			p.next()
		case TokClose:
			if err := p.closeArray(open); err != nil {
				return err
			}
			p.applyArrayUnit(kw)
			return nil
		case TokEOF:
			return p.errorf(open.Line, "Array of keyword [%v] is not closed", kw.Name)
		default:
			return p.errorf(sep.Line, "Expected ',' or closing bracket in array of keyword [%v], got %v", kw.Name,
				sep.Kind)
		}
	}
}

// closeArray consumes closing bracket matching <open>
func (p *parser) closeArray(open Token) error {
	closing := p.next()
	if closing.Text != matchingBracket(open.Text) {
		return p.errorf(closing.Line, "Mismatched brackets %v and %v", open.Text, closing.Text)
	}
	return nil
}

// applyArrayUnit sets unit following closing bracket to every value without unit
func (p *parser) applyArrayUnit(kw *Keyword) {
	if p.peek().Kind != TokUnit {
		return
	}
	unit := p.next().Text
	for i := range kw.Values {
		if kw.Values[i].Unit == "" {
			kw.Values[i].Unit = unit
		}
	}
}

// nestedArray consumes balanced bracketed list and returns its source text
func (p *parser) nestedArray(depth int) (string, error) {
	open := p.peek()
	if err := p.checkDepth(open.Line, depth); err != nil {
		return "", err
	}
	var stack []string
	for {
		tok := p.next()
		switch tok.Kind {
		case TokOpen:
			stack = append(stack, tok.Text)
			if err := p.checkDepth(tok.Line, depth+len(stack)-1); err != nil {
				return "", err
			}
		case TokClose:
			if closing := matchingBracket(stack[len(stack)-1]); tok.Text != closing {
				return "", p.errorf(tok.Line, "Mismatched brackets %v and %v", stack[len(stack)-1], tok.Text)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return strings.TrimSpace(string(p.data[open.Pos:tok.End])), nil
			}
		case TokEOF:
			return "", p.errorf(open.Line, "Nested array is not closed")
		case TokEquals:
			return "", p.errorf(tok.Line, "Unexpected '=' in nested array")
		}
	}
}

func matchingBracket(open string) string {
	if open == "{" {
		return "}"
	}
	return ")"
}

func isValueToken(kind TokenKind) bool {
	return kind == TokWord || kind == TokQuoted || kind.IsMarker()
}

// blankLineGap returns index of the first comment in <tokens> followed by a blank line before the next comment, or -1.
//
// Lines of one block comment are never split.
func blankLineGap(tokens []Token) int {
	for i := 0; i+1 < len(tokens); i++ {
		if tokens[i+1].Line > tokens[i].Line+1 && tokens[i+1].Pos != tokens[i].Pos {
			return i
		}
	}
	return -1
}

func commentTexts(tokens []Token) []string {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Text)
	}
	return out
}
