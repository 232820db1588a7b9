package script

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/pdfquill/quill/barcode"
	"github.com/pdfquill/quill/binding"
	"github.com/pdfquill/quill/paper"
	"github.com/pdfquill/quill/quill"
	"github.com/pdfquill/quill/render"
	"github.com/pdfquill/quill/settings"
	"github.com/pdfquill/quill/units"
)

// ExecOptions configures script execution.
type ExecOptions struct {
	// Data backs ${path} placeholders in line/qr/barcode statements.
	Data any
	// BaseDir resolves relative image paths and font resources.
	BaseDir string
	// Fonts maps builtin font names to injected resources.
	Fonts map[string]render.Resource
}

// Render builds a printer from the script's header statements, executes the
// body, and returns the finished PDF bytes.
func Render(s *Script, opts ExecOptions) ([]byte, error) {
	p, err := BuildPrinter(s, opts)
	if err != nil {
		return nil, err
	}
	if err := Run(s, p, opts); err != nil {
		return nil, err
	}
	return p.Bytes()
}

// BuildPrinter derives printer construction options from the script's
// paper/margin/font-size statements. Those may appear anywhere but take
// effect before any content is written.
func BuildPrinter(s *Script, opts ExecOptions) (*quill.Printer, error) {
	qo := quill.Options{BaseDir: opts.BaseDir, Fonts: opts.Fonts}
	for _, st := range s.Statements {
		switch {
		case st.Paper != nil:
			t, err := paper.ParseType(st.Paper.Name)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", st.Pos, err)
			}
			qo.PaperType = t
		case st.Margin != nil:
			m, err := marginsOf(st.Margin.Values)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", st.Pos, err)
			}
			qo.Margins = &m
		case st.FontSize != nil:
			fonts := settings.NewFontSettings()
			fonts.Size = toPt(st.FontSize.Size.Length)
			qo.FontSettings = fonts
		}
	}
	return quill.New(qo)
}

// Run executes the script body against an already-constructed printer.
// Header statements (paper/margin/font-size) are skipped here.
func Run(s *Script, p *quill.Printer, opts ExecOptions) error {
	res := binding.NewResolver(opts.Data)
	for _, st := range s.Statements {
		if err := runStatement(st, p, res, opts.BaseDir); err != nil {
			return fmt.Errorf("%s: %w", st.Pos, err)
		}
	}
	return nil
}

func runStatement(st *Statement, p *quill.Printer, res *binding.Resolver, baseDir string) error {
	switch {
	case st.Line != nil:
		return p.PrintLineStyled(res.Interpolate(string(st.Line.Text)), fontTypeOf(st.Line.Style))
	case st.Skip != nil:
		n := 1
		if st.Skip.Count != nil {
			n = *st.Skip.Count
		}
		return p.SkipLines(n)
	case st.QR != nil:
		return p.PrintBarcode(res.Interpolate(string(st.QR.Code)), barcode.QRCode)
	case st.Barcode != nil:
		kind, err := barcode.ParseType(st.Barcode.Kind)
		if err != nil {
			return err
		}
		return p.PrintBarcode(res.Interpolate(string(st.Barcode.Code)), kind)
	case st.Image != nil:
		return runImage(st.Image, p, baseDir)
	case st.Cut != nil:
		return p.CutSignal()
	default:
		// paper/margin/font-size 已在构建阶段消费
		return nil
	}
}

func runImage(st *ImageStmt, p *quill.Printer, baseDir string) error {
	path := string(st.Path)
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取图片 %q 失败: %w", st.Path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("解码图片 %q 失败: %w", st.Path, err)
	}
	if st.Width != nil && st.Height != nil {
		return p.PrintImageSized(img, toPt(st.Width.Length), toPt(st.Height.Length))
	}
	return p.PrintImage(img)
}

func marginsOf(values []Dimension) (settings.Margins, error) {
	switch len(values) {
	case 1:
		v := toPt(values[0].Length)
		return settings.Margins{Left: v, Right: v, Top: v, Bottom: v}, nil
	case 4:
		return settings.Margins{
			Left:   toPt(values[0].Length),
			Right:  toPt(values[1].Length),
			Top:    toPt(values[2].Length),
			Bottom: toPt(values[3].Length),
		}, nil
	default:
		return settings.Margins{}, fmt.Errorf("margin 需要 1 或 4 个值，得到 %d 个", len(values))
	}
}

// toPt 把脚本里的尺寸换算成 pt；裸数字按 pt 处理。
func toPt(l units.Length) float64 {
	if l.Unit == units.None {
		return l.Value
	}
	return l.ToPT()
}

func fontTypeOf(style string) settings.FontType {
	switch style {
	case "bold":
		return settings.FontBold
	case "italic":
		return settings.FontItalic
	case "bold-italic":
		return settings.FontBoldItalic
	default:
		return settings.FontDefault
	}
}
