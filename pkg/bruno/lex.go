package bruno

import (
	"strings"

	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	whitespaceToken = iota
	identifierToken
	flatBlockToken
	anyToken
)

var whitespaceMatcher = parsly.NewToken(whitespaceToken, "Whitespace", matcher.NewWhiteSpace())
var identifierMatcher = parsly.NewToken(identifierToken, "Identifier", &identifierMatch{})
var flatBlockMatcher = parsly.NewToken(flatBlockToken, "{ ... }", &flatBlockMatch{})
var anyMatcher = parsly.NewToken(anyToken, "Any", &anyMatch{})

// Block is a named section of a .bru file such as "meta { ... }".
type Block struct {
	// Name is the identifier before the brace, e.g. "meta" or "vars:pre-request".
	Name string
	// Body is the text between "{" and the first "}".
	Body string
	// Offset of Name in the file.
	Offset int
	// LineStart reports whether Name starts a line.
	LineStart bool
	// Spaced reports whether whitespace separates Name from "{".
	Spaced bool
	// Terminated is false when no "}" follows the opening brace.
	Terminated bool
}

type anyMatch struct{}

func (a *anyMatch) Match(cursor *parsly.Cursor) int {
	if cursor.Pos < cursor.InputSize {
		return 1
	}
	return 0
}

type identifierMatch struct{}

func (i *identifierMatch) Match(cursor *parsly.Cursor) int {
	if cursor.Pos >= cursor.InputSize {
		return 0
	}
	if !isIdentifierStart(cursor.Input[cursor.Pos]) {
		return 0
	}
	pos := cursor.Pos + 1
	for pos < cursor.InputSize && isIdentifierPart(cursor.Input[pos]) {
		pos++
	}
	return pos - cursor.Pos
}

// flatBlockMatch matches "{" up to and including the first "}". Nested
// braces are not balanced: an inner "}" closes the block. An opening brace
// with no closing one runs to the end of input.
type flatBlockMatch struct{}

func (f *flatBlockMatch) Match(cursor *parsly.Cursor) int {
	if cursor.Pos >= cursor.InputSize || cursor.Input[cursor.Pos] != '{' {
		return 0
	}
	for pos := cursor.Pos + 1; pos < cursor.InputSize; pos++ {
		if cursor.Input[pos] == '}' {
			return pos - cursor.Pos + 1
		}
	}
	return cursor.InputSize - cursor.Pos
}

func isIdentifierStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isIdentifierPart(b byte) bool {
	return isIdentifierStart(b) || (b >= '0' && b <= '9') || b == ':' || b == '-'
}

// Lex returns every "identifier {...}" pair in content, in order.
func Lex(content []byte) []Block {
	cursor := parsly.NewCursor("", content, 0)
	var blocks []Block
	for cursor.Pos < cursor.InputSize {
		matched := cursor.MatchAfterOptional(whitespaceMatcher, identifierMatcher, anyMatcher)
		switch matched.Code {
		case identifierToken:
			// The cursor reuses its match value, so keep the identifier
			// position before matching the block.
			start := matched.Offset
			name := matched.Text(cursor)
			nameEnd := start + len(name)
			block := cursor.MatchAfterOptional(whitespaceMatcher, flatBlockMatcher)
			if block.Code != flatBlockToken {
				continue
			}
			text := block.Text(cursor)
			terminated := len(text) >= 2 && strings.HasSuffix(text, "}")
			body := text[1:]
			if terminated {
				body = body[:len(body)-1]
			}
			blocks = append(blocks, Block{
				Name:       name,
				Body:       body,
				Offset:     start,
				LineStart:  start == 0 || content[start-1] == '\n',
				Spaced:     block.Offset > nameEnd,
				Terminated: terminated,
			})
		case parsly.EOF, parsly.Invalid:
			return blocks
		}
	}
	return blocks
}
