package script

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/pdfquill/quill/units"
)

var (
	scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)(?:pt|mm|cm|in)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
	})

	scriptParser = participle.MustBuild[Script](
		participle.Lexer(scriptLexer),
		participle.Elide("Whitespace", "Comment"),
	)
)

// Script is the root AST node for a print script: a flat statement list,
// one statement per line.
type Script struct {
	Pos        lexer.Position `parser:""`
	Statements []*Statement   `parser:"Newline* ( @@ Newline* )*"`
}

// Statement is a single script instruction.
type Statement struct {
	Pos      lexer.Position `parser:""`
	Paper    *PaperStmt     `parser:"  @@"`
	Margin   *MarginStmt    `parser:"| @@"`
	FontSize *FontSizeStmt  `parser:"| @@"`
	Line     *LineStmt      `parser:"| @@"`
	Skip     *SkipStmt      `parser:"| @@"`
	QR       *QRStmt        `parser:"| @@"`
	Barcode  *BarcodeStmt   `parser:"| @@"`
	Image    *ImageStmt     `parser:"| @@"`
	Cut      *CutStmt       `parser:"| @@"`
}

// PaperStmt selects the paper format, eg `paper thermal80`.
type PaperStmt struct {
	Name string `parser:"'paper' @Ident"`
}

// MarginStmt sets page margins: one value for all sides, or four in
// left/right/top/bottom order.
type MarginStmt struct {
	Values []Dimension `parser:"'margin' @Number+"`
}

// FontSizeStmt sets the base font size, eg `font-size 10pt`.
type FontSizeStmt struct {
	Size Dimension `parser:"'font-size' @Number"`
}

// LineStmt prints a line of text in one of the four font slots.
type LineStmt struct {
	Style string        `parser:"@('line' | 'bold' | 'italic' | 'bold-italic')"`
	Text  StringLiteral `parser:"@String"`
}

// SkipStmt inserts blank lines; the count defaults to one.
type SkipStmt struct {
	Count *int `parser:"'skip' @Number?"`
}

// QRStmt prints a QR code, eg `qr "${order.url}"`.
type QRStmt struct {
	Code StringLiteral `parser:"'qr' @String"`
}

// BarcodeStmt prints a 1D barcode, eg `barcode code128 "${order.id}"`.
type BarcodeStmt struct {
	Kind string        `parser:"'barcode' @Ident"`
	Code StringLiteral `parser:"@String"`
}

// ImageStmt places an image file, with optional explicit dimensions.
type ImageStmt struct {
	Path   StringLiteral `parser:"'image' @String"`
	Width  *Dimension    `parser:"( @Number"`
	Height *Dimension    `parser:"@Number )?"`
}

// CutStmt prints a tear-off marker.
type CutStmt struct {
	Cut bool `parser:"@'cut'"`
}

// Dimension captures a number with an optional unit suffix. Bare numbers
// keep Unit None and are interpreted as points by the executor.
type Dimension struct {
	units.Length
}

// Capture implements participle.Capture.
func (d *Dimension) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("dimension capture requires value")
	}
	d.Length = units.Parse(values[0])
	return nil
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

// Parse parses a print script from an io.Reader.
func Parse(r io.Reader) (*Script, error) {
	return scriptParser.Parse("", r)
}

// ParseString parses a print script from a string.
func ParseString(input string) (*Script, error) {
	return scriptParser.ParseString("", input)
}
