package quill

// Printer 是面向调用方的门面：折行、落位、分页与导出串在一条同步流水线上。
// 一个 Printer 对应一份文档，不支持跨线程共享；并行生成请各自构建实例。

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/pdfquill/quill/barcode"
	"github.com/pdfquill/quill/format"
	"github.com/pdfquill/quill/paper"
	"github.com/pdfquill/quill/render"
	"github.com/pdfquill/quill/settings"
	"github.com/pdfquill/quill/units"
	"github.com/pdfquill/quill/writer"
)

// 条码的默认打印尺寸（pt）。
var (
	qrPrintSide    = 48 * units.MmToPt
	barPrintWidth  = 80 * units.MmToPt
	barPrintHeight = 12 * units.MmToPt
)

// defaultImageSide 是字节流图片的默认打印边长（pt）。
const defaultImageSide = 100.0

// Options 是一次性的构建配置：构建时校验并消费，之后不再被引用。
type Options struct {
	PaperType    paper.Type
	Margins      *settings.Margins            // nil 时使用默认边距
	FontSettings *settings.FontSettings       // 构建时深拷贝
	Permissions  *settings.PermissionSettings // 构建时深拷贝；透传元数据
	// PreserveSpaces 控制折行时是否保留行首/行尾空白。
	PreserveSpaces bool

	// 字体资源与解析根目录，交给默认的 PDF 编码器。
	BaseDir string
	Fonts   map[string]render.Resource

	// Metrics/Encoder 允许注入替代实现（比如测试桩）；
	// 为 nil 时共用一个 render.PDF。
	Metrics format.Metrics
	Encoder writer.Encoder
}

// Printer 持有页面布局与写入器，提供打印与导出操作。
type Printer struct {
	layout         *settings.PageLayout
	perms          *settings.PermissionSettings
	metrics        format.Metrics
	w              *writer.Writer
	preserveSpaces bool

	// 仅在一次完整写盘成功后记录，避免把半成品当作当前输出文件。
	outFile string
}

// New 校验配置并构建 Printer。零值 Options 得到 A4、默认边距、12pt Go Mono。
func New(opts Options) (*Printer, error) {
	if !opts.PaperType.Valid() {
		return nil, fmt.Errorf("%w: 未知纸张类型 %v", settings.ErrInvalidLayout, opts.PaperType)
	}

	margins := settings.DefaultMargins()
	if opts.Margins != nil {
		margins = *opts.Margins
	}
	fonts := opts.FontSettings.Clone()
	perms := opts.Permissions.Clone()

	layout, err := settings.NewPageLayoutWith(opts.PaperType, margins, fonts)
	if err != nil {
		return nil, err
	}

	metrics := opts.Metrics
	enc := opts.Encoder
	if metrics == nil || enc == nil {
		shared := render.NewWithOptions(render.Options{BaseDir: opts.BaseDir, Fonts: opts.Fonts})
		if metrics == nil {
			metrics = shared
		}
		if enc == nil {
			enc = shared
		}
	}

	return &Printer{
		layout:         layout,
		perms:          perms,
		metrics:        metrics,
		w:              writer.New(layout, metrics, enc, perms),
		preserveSpaces: opts.PreserveSpaces,
	}, nil
}

// Layout 返回当前页面布局（构建阶段可通过 setter 调整）。
func (p *Printer) Layout() *settings.PageLayout { return p.layout }

// Closed 报告文档是否已 finalize。
func (p *Printer) Closed() bool { return p.w.Closed() }

// UpdateFontSettings 替换布局上的字体配置并重新推导几何。
// 属于构建阶段 API：写入任何内容之前调用。
func (p *Printer) UpdateFontSettings(fonts *settings.FontSettings) error {
	return p.layout.SetFontSettings(fonts)
}

// PrintLine 以默认字体打印一段文本，自动折行与分页。
func (p *Printer) PrintLine(text string) error {
	return p.PrintLineStyled(text, settings.FontDefault)
}

// PrintLinef 是 PrintLine 的格式化便捷形式。
func (p *Printer) PrintLinef(formatStr string, args ...any) error {
	return p.PrintLine(fmt.Sprintf(formatStr, args...))
}

// PrintLineStyled 以指定字体槽位打印一段文本，自动折行与分页。
func (p *Printer) PrintLineStyled(text string, fontType settings.FontType) error {
	fonts := p.layout.FontSettings()
	// TODO: 确认 preserveSpaces 是否应该作用于门面打印路径——
	// 旧实现在这里固定传 false，但配置面又暴露了该开关。
	lines, err := format.FormatTextToLines(p.metrics, text,
		fonts.FontByType(fontType), fonts.Size, p.layout.PrintableWidth(), p.preserveSpaces)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if err := p.w.WriteLine(line, fontType); err != nil {
			return err
		}
	}
	return nil
}

// WriteFromTextBuilder 打印一个多样式逻辑块。
func (p *Printer) WriteFromTextBuilder(b *format.TextBuilder) error {
	return p.w.WriteFromTextBuilder(b)
}

// SkipLine 插入一个空行。
func (p *Printer) SkipLine() error { return p.SkipLines(1) }

// SkipLines 插入 n 个空行；n ≤ 0 不做任何事。
func (p *Printer) SkipLines(n int) error { return p.w.SkipLines(n) }

// PrintImage 以图片的像素尺寸（按 pt 计）打印图片。
func (p *Printer) PrintImage(img image.Image) error {
	if img == nil {
		return fmt.Errorf("%w: 图片为空", writer.ErrImageSize)
	}
	b := img.Bounds()
	return p.w.WriteImage(img, float64(b.Dx()), float64(b.Dy()))
}

// PrintImageSized 以显式尺寸（pt）打印图片。
func (p *Printer) PrintImageSized(img image.Image, width, height float64) error {
	return p.w.WriteImage(img, width, height)
}

// PrintImageBytes 解码编码过的图片（PNG/JPEG/GIF）并以默认尺寸打印。
func (p *Printer) PrintImageBytes(data []byte) error {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("解码图片失败: %w", err)
	}
	return p.w.WriteImage(img, defaultImageSide, defaultImageSide)
}

// PrintBarcode 以默认栅格尺寸打印条码或二维码。
func (p *Printer) PrintBarcode(code string, t barcode.Type) error {
	return p.PrintBarcodeSized(code, t, 0, 0)
}

// PrintBarcodeSized 以显式像素尺寸栅格化条码；打印尺寸固定：
// 二维码 48×48mm，一维码 80×12mm。
func (p *Printer) PrintBarcodeSized(code string, t barcode.Type, heightPx, widthPx int) error {
	img, err := barcode.Generate(code, t, widthPx, heightPx)
	if err != nil {
		return err
	}
	if t == barcode.QRCode {
		return p.w.WriteImage(img, qrPrintSide, qrPrintSide)
	}
	return p.w.WriteImage(img, barPrintWidth, barPrintHeight)
}

// CutSignal 打印一条裁切标记（不推进游标），用于标示小票撕裁位置。
func (p *Printer) CutSignal() error {
	return p.w.WriteCutSignal()
}

// Close 显式 finalize 文档，等价于第一次取字节。
func (p *Printer) Close() error {
	_, err := p.w.SaveAndGetBytes()
	return err
}
