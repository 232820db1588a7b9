package writer

// 游标与分页状态机。写入操作把折好行的内容落位到当前页，固定纸张越界时
// 换页，热敏纸则增长页高；finalize 一次性调用编码器并缓存产物。

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/pdfquill/quill/format"
	"github.com/pdfquill/quill/settings"
	"github.com/pdfquill/quill/units"
)

var (
	// ErrClosed 表示在 finalize 之后继续写入。
	ErrClosed = errors.New("writer already closed")
	// ErrStale 表示写入器已关闭却没有可用的缓存产物（正常使用不应出现）。
	ErrStale = errors.New("writer closed without cached output")
	// ErrImageSize 表示图片目标尺寸非正。
	ErrImageSize = errors.New("image dimensions must be positive")
)

// GenerationError 包装编码器失败的原始原因；不自动重试。
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string { return fmt.Sprintf("encode document: %v", e.Err) }
func (e *GenerationError) Unwrap() error { return e.Err }

// 裁切标记与热敏纸收尾的固定尺寸。
const (
	cutRuleStroke = 0.8              // pt
	cutMargin     = 5 * units.MmToPt // 热敏纸底部最小裁切余量（pt）
)

// Encoder 是外部页面描述编码能力，每个文档在 finalize 时恰好调用一次。
type Encoder interface {
	Encode(doc *Document) ([]byte, error)
}

// Writer 持有页面集合、(x, y) 游标与 OPEN→CLOSED 生命周期。
// 单线程使用；CLOSED 后缓存只读，可安全并发读取。
type Writer struct {
	layout  *settings.PageLayout
	metrics format.Metrics
	enc     Encoder

	pages  []*Page
	x, y   float64
	maxY   float64 // 热敏纸内容到达的最深位置
	closed bool
	cache  []byte
	perms  *settings.PermissionSettings
}

// New 构建一个空文档的写入器，游标位于首页内容区左上角。
func New(layout *settings.PageLayout, metrics format.Metrics, enc Encoder, perms *settings.PermissionSettings) *Writer {
	w := &Writer{layout: layout, metrics: metrics, enc: enc, perms: perms}
	w.newPage()
	return w
}

// Closed 报告写入器是否已 finalize。
func (w *Writer) Closed() bool { return w.closed }

// PageCount 返回当前页数。
func (w *Writer) PageCount() int { return len(w.pages) }

func (w *Writer) newPage() *Page {
	size := w.layout.PaperType().Size()
	p := &Page{Width: size.Width, Height: size.Height}
	w.pages = append(w.pages, p)
	w.x = w.layout.Margins().Left
	w.y = w.layout.Margins().Top
	return p
}

func (w *Writer) page() *Page { return w.pages[len(w.pages)-1] }

// contentBottom 返回固定纸张内容区底部的 y 坐标。
func (w *Writer) contentBottom() float64 {
	return w.layout.PaperType().Height() - w.layout.Margins().Bottom
}

// ensureRoom 在落位高度为 h 的内容前执行换页或增长策略：
// 固定纸张越界则开新页并重置游标；热敏纸不换页，finalize 时按内容定高。
func (w *Writer) ensureRoom(h float64) {
	if w.layout.PaperType().Thermal() {
		return
	}
	if w.y+h > w.contentBottom() {
		w.newPage()
	}
}

func (w *Writer) touch(bottom float64) {
	if bottom > w.maxY {
		w.maxY = bottom
	}
}

// WriteLine 在游标处落位一行（调用方已完成折行），游标下移一个行高。
func (w *Writer) WriteLine(text string, fontType settings.FontType) error {
	if w.closed {
		return ErrClosed
	}
	fonts := w.layout.FontSettings()
	lineHeight := w.layout.LineHeight()

	w.ensureRoom(lineHeight)
	w.page().Texts = append(w.page().Texts, TextSpan{
		Content: text,
		X:       w.layout.Margins().Left,
		Y:       w.y,
		Font:    fonts.FontByType(fontType),
		Size:    fonts.Size,
	})
	w.y += lineHeight
	w.touch(w.y)
	return nil
}

// SkipLines 将游标下移 n 个行高；n ≤ 0 不做任何事。逐行推进以便正确换页。
func (w *Writer) SkipLines(n int) error {
	if w.closed {
		return ErrClosed
	}
	lineHeight := w.layout.LineHeight()
	for i := 0; i < n; i++ {
		w.ensureRoom(lineHeight)
		w.y += lineHeight
		w.touch(w.y)
	}
	return nil
}

// WriteImage 在游标处落位图片，游标下移 height。宽高以 pt 计。
func (w *Writer) WriteImage(img image.Image, width, height float64) error {
	if w.closed {
		return ErrClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrImageSize, width, height)
	}
	w.ensureRoom(height)
	w.page().Images = append(w.page().Images, ImageBox{
		Image:  img,
		X:      w.layout.Margins().Left,
		Y:      w.y,
		Width:  width,
		Height: height,
	})
	w.y += height
	w.touch(w.y)
	return nil
}

// WriteCutSignal 在当前 y 画一条横贯可打印区域的虚线裁切标记，不推进游标。
func (w *Writer) WriteCutSignal() error {
	if w.closed {
		return ErrClosed
	}
	left := w.layout.Margins().Left
	w.page().Rules = append(w.page().Rules, Rule{
		X1:     left,
		Y:      w.y,
		X2:     left + w.layout.PrintableWidth(),
		Stroke: cutRuleStroke,
		Dashed: true,
	})
	w.touch(w.y + cutRuleStroke)
	return nil
}

// WriteFromTextBuilder 将多样式块展开后自左向右排入当前行：
// 片段放不下时用 SplitText 切出头部，余下的尾部折到下一行继续。
// 每个逻辑行推进一次游标。
func (w *Writer) WriteFromTextBuilder(b *format.TextBuilder) error {
	if w.closed {
		return ErrClosed
	}
	if b == nil || b.Len() == 0 {
		return nil
	}

	texts, err := format.FormatTextBuilder(w.metrics, b, w.layout.PrintableWidth())
	if err != nil {
		return err
	}

	left := w.layout.Margins().Left
	right := left + w.layout.PrintableWidth()
	lineHeight := w.layout.LineHeight()
	lineOpen := false

	place := func(t format.Text) error {
		if !lineOpen {
			w.ensureRoom(lineHeight)
			w.x = left
			lineOpen = true
		}
		fonts := t.FontSettings()
		w.page().Texts = append(w.page().Texts, TextSpan{
			Content: t.Content(),
			X:       w.x,
			Y:       w.y,
			Font:    fonts.SelectedFont(),
			Size:    fonts.Size,
		})
		width, err := w.metrics.TextWidth(t.Content(), fonts.SelectedFont(), fonts.Size)
		if err != nil {
			return err
		}
		w.x += width
		return nil
	}
	breakLine := func() {
		w.y += lineHeight
		w.touch(w.y)
		w.x = left
		lineOpen = false
	}

	for _, t := range texts {
		for {
			cursor := w.x
			if !lineOpen {
				cursor = left
			}
			fonts := t.FontSettings()
			width, err := w.metrics.TextWidth(t.Content(), fonts.SelectedFont(), fonts.Size)
			if err != nil {
				return err
			}
			if cursor+width <= right {
				if err := place(t); err != nil {
					return err
				}
				break
			}

			parts, err := format.SplitText(w.metrics, t, right-cursor)
			if err != nil {
				return err
			}
			if parts.HasHead {
				if err := place(format.NewText(parts.Head, fonts)); err != nil {
					return err
				}
			}
			breakLine()
			if !parts.HasTail {
				break
			}
			t = format.NewText(parts.Tail, fonts)
		}
	}
	if lineOpen {
		breakLine()
	}
	return nil
}

// SaveAndGetBytes 完成文档：回填热敏页高度，调用编码器一次，缓存并返回
// 产物。已关闭时原样返回缓存（幂等，不重复编码）；编码失败时保持 OPEN，
// 允许调用方整体重试。
func (w *Writer) SaveAndGetBytes() ([]byte, error) {
	if w.closed {
		if w.cache == nil {
			return nil, ErrStale
		}
		return w.cache, nil
	}

	if w.layout.PaperType().Thermal() {
		w.pages[len(w.pages)-1].Height = w.finalHeight()
	}

	doc := &Document{Pages: w.pages, Permissions: w.perms}
	data, err := w.enc.Encode(doc)
	if err != nil {
		return nil, &GenerationError{Err: err}
	}
	w.cache = data
	w.closed = true
	return w.cache, nil
}

// finalHeight 计算热敏页的最终高度：内容高度向上取整到整行，再加上
// 底边距与最小裁切余量中较大者。
func (w *Writer) finalHeight() float64 {
	m := w.layout.Margins()
	lineHeight := w.layout.LineHeight()

	content := w.maxY - m.Top
	if content < lineHeight {
		content = lineHeight
	}
	// content 是反复 += lineHeight 累加出来的，比值可能落在 n 的浮点上侧；
	// 取整前退一个 epsilon，避免凭空多出一行。
	content = math.Ceil(content/lineHeight-1e-9) * lineHeight

	bottom := m.Bottom
	if cutMargin > bottom {
		bottom = cutMargin
	}
	return m.Top + content + bottom
}
