package settings

import (
	"errors"
	"fmt"
	"math"

	"github.com/pdfquill/quill/paper"
)

// LineSpacing 是行高相对字号的固定倍率。
const LineSpacing = 1.2

// ErrInvalidLayout 表示页面几何推导失败：可打印区域非正、边距为负或纸张类型非法。
var ErrInvalidLayout = errors.New("invalid page layout")

// Margins 以 pt 为单位记录四个方向的边距。
type Margins struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// Valid 报告各边距是否均非负。
func (m Margins) Valid() bool {
	return m.Left >= 0 && m.Right >= 0 && m.Top >= 0 && m.Bottom >= 0
}

// DefaultMargins 约为 10mm。
func DefaultMargins() Margins {
	return Margins{Left: 28.35, Right: 28.35, Top: 28.35, Bottom: 28.35}
}

// PageLayout 持有纸张、边距与字体配置，并派生可打印宽度、行高与
// 每页最大行数（仅固定纸张）。任一输入变化后必须 Recalculate。
type PageLayout struct {
	paperType paper.Type
	margins   Margins
	fonts     *FontSettings

	printableWidth float64
	lineHeight     float64
	maxLines       int
}

// NewPageLayout 以默认边距与字体构建布局。
func NewPageLayout(pt paper.Type) (*PageLayout, error) {
	return NewPageLayoutWith(pt, DefaultMargins(), NewFontSettings())
}

// NewPageLayoutWith 以显式边距与字体构建布局，构建时即完成一次推导。
func NewPageLayoutWith(pt paper.Type, margins Margins, fonts *FontSettings) (*PageLayout, error) {
	if fonts == nil {
		fonts = NewFontSettings()
	}
	l := &PageLayout{paperType: pt, margins: margins, fonts: fonts}
	if err := l.Recalculate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Clone 返回深拷贝（字体配置亦拷贝），供并行构建多份文档时使用。
func (l *PageLayout) Clone() *PageLayout {
	clone := *l
	clone.fonts = l.fonts.Clone()
	return &clone
}

// Recalculate 重新推导可打印宽度、行高与每页最大行数。
// 纯计算，无副作用；输入非法时返回 ErrInvalidLayout。
func (l *PageLayout) Recalculate() error {
	if !l.paperType.Valid() {
		return fmt.Errorf("%w: 未知纸张类型 %v", ErrInvalidLayout, l.paperType)
	}
	if !l.margins.Valid() {
		return fmt.Errorf("%w: 边距不能为负 %+v", ErrInvalidLayout, l.margins)
	}
	if l.fonts.Size <= 0 {
		return fmt.Errorf("%w: 字号必须为正，实际 %g", ErrInvalidLayout, l.fonts.Size)
	}

	size := l.paperType.Size()
	width := size.Width - l.margins.Left - l.margins.Right
	if width <= 0 {
		return fmt.Errorf("%w: 可打印宽度 %g ≤ 0", ErrInvalidLayout, width)
	}
	l.printableWidth = width
	l.lineHeight = l.fonts.Size * LineSpacing

	if l.paperType.Thermal() {
		// 热敏卷纸高度随内容增长，不存在每页行数上限。
		l.maxLines = 0
		return nil
	}
	printableHeight := size.Height - l.margins.Top - l.margins.Bottom
	if printableHeight <= 0 {
		return fmt.Errorf("%w: 可打印高度 %g ≤ 0", ErrInvalidLayout, printableHeight)
	}
	l.maxLines = int(math.Floor(printableHeight / l.lineHeight))
	return nil
}

// SetPaperType 切换纸张并重新推导。
func (l *PageLayout) SetPaperType(pt paper.Type) error {
	prev := l.paperType
	l.paperType = pt
	if err := l.Recalculate(); err != nil {
		l.paperType = prev
		return err
	}
	return nil
}

// SetMargins 覆盖边距并重新推导。
func (l *PageLayout) SetMargins(m Margins) error {
	prev := l.margins
	l.margins = m
	if err := l.Recalculate(); err != nil {
		l.margins = prev
		return err
	}
	return nil
}

// SetFontSettings 替换字体配置并重新推导。传入 nil 时忽略。
func (l *PageLayout) SetFontSettings(fonts *FontSettings) error {
	if fonts == nil {
		return nil
	}
	prev := l.fonts
	l.fonts = fonts
	if err := l.Recalculate(); err != nil {
		l.fonts = prev
		return err
	}
	return nil
}

func (l *PageLayout) PaperType() paper.Type       { return l.paperType }
func (l *PageLayout) Margins() Margins            { return l.margins }
func (l *PageLayout) FontSettings() *FontSettings { return l.fonts }

// PrintableWidth 即单行可用的最大宽度（pt）。
func (l *PageLayout) PrintableWidth() float64 { return l.printableWidth }

// LineHeight 返回当前字号下的行高（pt）。
func (l *PageLayout) LineHeight() float64 { return l.lineHeight }

// MaxLinesPerPage 返回固定纸张每页可容纳的行数；热敏纸返回 0。
func (l *PageLayout) MaxLinesPerPage() int { return l.maxLines }
