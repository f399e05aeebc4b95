package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	labelLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n(?:[ \t\r]*\n)*`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		// 只接受 #rgb、#rrggbb、#rrggbbaa 三种颜色写法。
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`},
		// 长度可带符号，单位见 layout.ParseLength。
		{Name: "Number", Pattern: `[-+]?(?:\d+\.\d+|\d+)(?:px|pt|mm|cm|in|%)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[][,;:{}]`},
	})

	labelParser = participle.MustBuild[Document](
		participle.Lexer(labelLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment"),
	)
)

// Document is the root AST node of a label file:
//
//	label Shelf v1 {
//	  device { tape: 12mm }
//	  text { "Hello" }
//	}
type Document struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     string         `parser:"Newline* 'label' @Ident"`
	Version  string         `parser:"@Ident"`
	Sections []*Section     `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Section is a meta block, a device block or one label item.
type Section struct {
	Meta   *Block `parser:"  'meta' @@"`
	Device *Block `parser:"| 'device' @@"`
	Item   *Item  `parser:"| @@"`
}

// Items returns the label items in document order.
func (d *Document) Items() []*Item {
	var out []*Item
	for _, s := range d.Sections {
		if s.Item != nil {
			out = append(out, s.Item)
		}
	}
	return out
}

// Item is one payload of the label: a kind, loose key/value arguments and an
// optional block of text lines opened on the same line.
//
//	barcode code39 { "F-001" }
type Item struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  string         `parser:"@Ident"`
	Args  []*Arg         `parser:"@@*"`
	Block *Block         `parser:"@@?"`
}

// Arg is a bare word, number, colour or quoted string following an item name.
type Arg struct {
	Quoted *StringLiteral `parser:"  @String"`
	Bare   *string        `parser:"| @( Ident | Number | Color )"`
}

// Value returns the argument text, unquoted.
func (a *Arg) Value() string {
	switch {
	case a == nil:
		return ""
	case a.Quoted != nil:
		return string(*a.Quoted)
	case a.Bare != nil:
		return *a.Bare
	default:
		return ""
	}
}

// IsQuoted reports whether the argument was written as a string literal.
func (a *Arg) IsQuoted() bool { return a != nil && a.Quoted != nil }

// Block is a braced list of assignments and text lines.
type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement is `key: value` inside meta/device, or a text line inside an item.
type Statement struct {
	Assignment *Assignment    `parser:"  @@"`
	Text       *StringLiteral `parser:"| @String"`
}

// Assignment uses colon syntax (key: value).
type Assignment struct {
	Key   string `parser:"@Ident"`
	Value *Value `parser:"':' Newline* @@"`
}

// Value is the right-hand side of an assignment.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Array  *ArrayValue    `parser:"| @@"`
	Word   *string        `parser:"| @Ident"`
}

// ArrayValue captures `[ ... ]` lists separated by commas, semicolons or newlines.
type ArrayValue struct {
	Values []*Value `parser:"'[' Newline* ( @@ ( (',' | ';' | Newline+) Newline* @@ )* )? Newline* ']'"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses a label file from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	return labelParser.Parse("", r)
}

// ParseString parses a label file held in a string.
func ParseString(input string) (*Document, error) {
	return labelParser.ParseString("", input)
}
