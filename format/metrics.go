package format

import "github.com/pdfquill/quill/settings"

// Metrics 提供字体度量能力：给定文本、字体面与字号（pt），返回其前进宽度。
// 对同一 (文本, 字体, 字号) 必须返回确定的结果。排版算法按单个字符调用。
type Metrics interface {
	TextWidth(text string, font settings.FontRef, size float64) (float64, error)
}
