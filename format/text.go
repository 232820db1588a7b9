package format

import "github.com/pdfquill/quill/settings"

// Text 是一条不可变的样式片段：内容字符串加创建时引用的字体配置。
type Text struct {
	content string
	fonts   *settings.FontSettings
}

// NewText 构造一条样式片段。fonts 为 nil 时使用默认配置。
func NewText(content string, fonts *settings.FontSettings) Text {
	if fonts == nil {
		fonts = settings.NewFontSettings()
	}
	return Text{content: content, fonts: fonts}
}

func (t Text) Content() string                      { return t.content }
func (t Text) FontSettings() *settings.FontSettings { return t.fonts }

// TextBuilder 按插入顺序收集多条样式片段，表示一个多样式逻辑块。
// 顺序决定行内自左向右的渲染顺序。
type TextBuilder struct {
	texts []Text
}

// NewTextBuilder 返回空的片段序列。
func NewTextBuilder() *TextBuilder { return &TextBuilder{} }

// AddText 追加一条片段，返回自身以便链式调用。
func (b *TextBuilder) AddText(t Text) *TextBuilder {
	b.texts = append(b.texts, t)
	return b
}

// Add 以内容与字体配置追加一条片段。
func (b *TextBuilder) Add(content string, fonts *settings.FontSettings) *TextBuilder {
	return b.AddText(NewText(content, fonts))
}

// Texts 返回片段切片（调用方不应修改）。
func (b *TextBuilder) Texts() []Text { return b.texts }

// Len 返回片段数。
func (b *TextBuilder) Len() int { return len(b.texts) }

// FormatTextBuilder 将各片段分别按各自字体与字号对同一 maxWidth 展开：
// 折成单行的片段原样透传（同一字体配置指针），折成多行的片段按原顺序
// 展开为多条同样式片段。片段间不做同行混排，这是刻意的简化。
func FormatTextBuilder(m Metrics, b *TextBuilder, maxWidth float64) ([]Text, error) {
	if b == nil {
		return nil, nil
	}
	var result []Text
	for _, t := range b.texts {
		fonts := t.FontSettings()
		lines, err := FormatTextToLines(m, t.Content(), fonts.SelectedFont(), fonts.Size, maxWidth, false)
		if err != nil {
			return nil, err
		}
		if len(lines) > 1 {
			result = append(result, textsFromSource(t, lines)...)
		} else {
			result = append(result, t)
		}
	}
	return result, nil
}

// textsFromSource 以源片段的字体配置包装每一行。
func textsFromSource(src Text, lines []string) []Text {
	out := make([]Text, 0, len(lines))
	for _, line := range lines {
		out = append(out, Text{content: line, fonts: src.FontSettings()})
	}
	return out
}
