package render

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"

	"github.com/pdfquill/quill/format"
	"github.com/pdfquill/quill/settings"
	"github.com/pdfquill/quill/units"
	"github.com/pdfquill/quill/writer"
)

// PDF 通过 github.com/tdewolff/canvas 将落位结果编码为 PDF 字节，并同时
// 提供 format.Metrics 字体度量能力。
// 约定：落位模型使用 pt，canvas 内部使用 mm，二者在此处做边界换算；
// 字体面创建使用 pt 字号。
type PDF struct {
	baseDir string

	// 注入的字体资源，按名字索引（FontRef.Src 形如 "builtin:<name>"）
	fontBlobs map[string][]byte

	fontMu   sync.Mutex
	families map[string]*familyEntry
}

var (
	_ writer.Encoder = (*PDF)(nil)
	_ format.Metrics = (*PDF)(nil)
)

// builtinFonts 是未注入资源时四个内置槽位的兜底字体（Go Mono 等宽族）。
var builtinFonts = map[string][]byte{
	"regular":     gomono.TTF,
	"bold":        gomonobold.TTF,
	"italic":      gomonoitalic.TTF,
	"bold-italic": gomonobolditalic.TTF,
}

type familyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// Options 配置编码器的字体来源。
type Options struct {
	BaseDir string
	Fonts   map[string]Resource // builtin:<name> 引用的字体资源
}

// Resource 既可以用字节提供，也可以用路径提供。
type Resource struct {
	Bytes []byte
	Path  string
}

// New 创建以 baseDir 为根解析字体路径的编码器。
func New(baseDir string) *PDF { return NewWithOptions(Options{BaseDir: baseDir}) }

// NewWithOptions 创建带注入资源的编码器。
func NewWithOptions(opts Options) *PDF {
	p := &PDF{
		baseDir:   opts.BaseDir,
		fontBlobs: map[string][]byte{},
		families:  map[string]*familyEntry{},
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			p.fontBlobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, err := os.ReadFile(res.Path)
			if err == nil && len(data) > 0 {
				p.fontBlobs[name] = data
			}
		}
	}
	return p
}

// Encode 实现 writer.Encoder：逐页绘制并产出 PDF 字节。权限标志为透传
// 元数据，此编码器不做强制。
func (p *PDF) Encode(doc *writer.Document) ([]byte, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return nil, fmt.Errorf("没有可编码的页面")
	}

	var buf bytes.Buffer
	first := doc.Pages[0]
	out := pdf.New(&buf, toMm(first.Width), toMm(first.Height), nil)
	for i, page := range doc.Pages {
		if i > 0 {
			out.NewPage(toMm(page.Width), toMm(page.Height))
		}
		c := canvas.New(toMm(page.Width), toMm(page.Height))
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 与落位模型一致，左上角为原点

		if err := p.drawPage(ctx, page); err != nil {
			return nil, err
		}
		c.RenderTo(out)
	}

	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// TextWidth 实现 format.Metrics：返回文本在给定字体面与字号下的前进宽度（pt）。
func (p *PDF) TextWidth(text string, font settings.FontRef, size float64) (float64, error) {
	face, err := p.fontFace(font, size)
	if err != nil {
		return 0, err
	}
	return face.TextWidth(text) * units.MmToPt, nil
}

func (p *PDF) drawPage(ctx *canvas.Context, page *writer.Page) error {
	for _, rule := range page.Rules {
		if err := p.drawRule(ctx, rule); err != nil {
			return err
		}
	}
	for _, span := range page.Texts {
		if err := p.drawSpan(ctx, span); err != nil {
			return err
		}
	}
	for _, img := range page.Images {
		if err := p.drawImage(ctx, img); err != nil {
			return err
		}
	}
	return nil
}

func (p *PDF) drawSpan(ctx *canvas.Context, span writer.TextSpan) error {
	if span.Content == "" {
		return nil
	}
	face, err := p.fontFace(span.Font, span.Size)
	if err != nil {
		return err
	}
	line := canvas.NewTextLine(face, span.Content, canvas.Left)

	// 基线位置：行框顶部加上字体上升部（mm）。
	baseline := toMm(span.Y) + face.Metrics().Ascent
	ctx.DrawText(toMm(span.X), baseline, line)
	return nil
}

func (p *PDF) drawImage(ctx *canvas.Context, box writer.ImageBox) error {
	if box.Image == nil {
		return fmt.Errorf("图片内容为空")
	}
	if box.Width <= 0 || box.Height <= 0 {
		return fmt.Errorf("图片目标尺寸非法: %gx%g", box.Width, box.Height)
	}
	widthMm := toMm(box.Width)
	img := fitRaster(box.Image, widthMm, toMm(box.Height))
	dpmm := float64(img.Bounds().Dx()) / widthMm
	if dpmm <= 0 {
		dpmm = 1
	}
	ctx.DrawImage(toMm(box.X), toMm(box.Y), img, canvas.DPMM(dpmm))
	return nil
}

// fitRaster 使位图纵横比与目标框一致。DrawImage 只按 DPMM 均匀缩放，
// 非等比的目标框（比如 80×12mm 的一维码）需要先重采样，否则高度失控。
func fitRaster(img image.Image, widthMm, heightMm float64) image.Image {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 || widthMm <= 0 || heightMm <= 0 {
		return img
	}
	wantH := int(math.Round(float64(b.Dx()) * heightMm / widthMm))
	if wantH <= 0 || wantH == b.Dy() {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), wantH))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}

func (p *PDF) drawRule(ctx *canvas.Context, rule writer.Rule) error {
	ctx.SetStrokeColor(canvas.Black)
	ctx.SetStrokeWidth(toMm(rule.Stroke))
	if rule.Dashed {
		ctx.SetDashes(0, 1.5, 1.5)
	}
	path := &canvas.Path{}
	path.MoveTo(0, 0)
	path.LineTo(toMm(rule.X2-rule.X1), 0)
	ctx.DrawPath(toMm(rule.X1), toMm(rule.Y), path)
	if rule.Dashed {
		ctx.SetDashes(0)
	}
	return nil
}

func (p *PDF) fontFace(font settings.FontRef, size float64) (*canvas.FontFace, error) {
	family, style, err := p.ensureFamily(font)
	if err != nil {
		return nil, err
	}
	return family.Face(size, canvas.Black, style, canvas.FontNormal), nil
}

func (p *PDF) ensureFamily(font settings.FontRef) (*canvas.FontFamily, canvas.FontStyle, error) {
	key := fmt.Sprintf("%s|%s|%s", font.Name, font.Src, font.Style)
	p.fontMu.Lock()
	defer p.fontMu.Unlock()

	if entry, ok := p.families[key]; ok {
		return entry.family, entry.style, nil
	}

	style := parseFontStyle(font.Style)
	familyName := font.Name
	if familyName == "" {
		familyName = "quill"
	}
	family := canvas.NewFontFamily(familyName)

	data, err := p.loadFontBytes(font)
	if err != nil {
		return nil, canvas.FontRegular, err
	}
	if err := family.LoadFont(data, 0, style); err != nil {
		return nil, canvas.FontRegular, fmt.Errorf("加载字体 %s 失败: %w", font.Name, err)
	}

	p.families[key] = &familyEntry{family: family, style: style}
	return family, style, nil
}

func (p *PDF) loadFontBytes(font settings.FontRef) ([]byte, error) {
	if font.Src == "" {
		return nil, fmt.Errorf("字体 %s 缺少 src", font.Name)
	}
	src := font.Src
	if strings.HasPrefix(src, "builtin:") || strings.HasPrefix(src, "built-in:") {
		name := strings.TrimPrefix(strings.TrimPrefix(src, "built-in:"), "builtin:")
		if blob, ok := p.fontBlobs[name]; ok {
			return blob, nil
		}
		if blob, ok := builtinFonts[name]; ok {
			return blob, nil
		}
		return nil, fmt.Errorf("找不到注入的字体资源 builtin:%s", name)
	}
	path := src
	if p.baseDir == "" && !filepath.IsAbs(path) {
		return nil, fmt.Errorf("未指定资源目录时不允许使用相对字体路径：%s", src)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.baseDir, path)
	}
	return os.ReadFile(path)
}

func parseFontStyle(style string) canvas.FontStyle {
	if style == "" {
		return canvas.FontRegular
	}
	s := strings.ToLower(style)
	result := canvas.FontRegular
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}

// toMm 将 pt 转换为 mm。
func toMm(pt float64) float64 { return pt * units.PtToMm }
