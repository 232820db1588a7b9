package format

// 折行算法二：线性贪心扫描，带词边界回退。用于一条样式片段在排版中途
// 跨越宽度边界的场景（比如多样式行折到下一行继续）。与 wrap.go 的二分
// 算法保持各自的边界行为：本算法在一个字符都放不下时报告 0，由 SplitText
// 强制进位。

import "github.com/pdfquill/quill/settings"

// SplitParts 是按宽度切分一条片段的结果。HasHead 为 false 表示没有任何
// 内容放得下；HasTail 为 false 表示整段内容都放下了。
type SplitParts struct {
	Head    string
	Tail    string
	HasHead bool
	HasTail bool
}

// FindWrapIndex 从左到右累计字符宽度，返回保持总宽 ≤ maxWidth 的最大断点
// （字符下标）。断点落在词中间时回退到其前最后一个空白之后（空白下标+1）。
// 空文本或 maxWidth ≤ 0 返回 0；一个字符都放不下也返回 0。
func FindWrapIndex(m Metrics, text string, font settings.FontRef, size, maxWidth float64) (int, error) {
	runes := []rune(text)
	if len(runes) == 0 || maxWidth <= 0 {
		return 0, nil
	}

	whole, err := m.TextWidth(text, font, size)
	if err != nil {
		return 0, err
	}
	if whole <= maxWidth {
		return len(runes), nil
	}

	width := 0.0
	lastFitting := 0
	for i, r := range runes {
		cw, err := m.TextWidth(string(r), font, size)
		if err != nil {
			return 0, err
		}
		if width+cw > maxWidth {
			break
		}
		width += cw
		lastFitting = i + 1
	}
	if lastFitting == 0 {
		return 0, nil
	}

	breakIdx := lastFitting
	if lastSpace := lastWhitespaceBetween(runes, 0, lastFitting-1); lastSpace >= 0 && lastSpace < lastFitting {
		breakIdx = lastSpace + 1
	}
	return breakIdx, nil
}

// SplitText 将一条片段切成放得下的头部与剩余尾部。一个字符都放不下时
// 强制切出一个字符保证前进。头尾分别剥除尾部/前导空白；剥除后头部为空
// 则报告头部缺席，尾部为（轻度修剪过的）原始内容。
func SplitText(m Metrics, text Text, availableWidth float64) (SplitParts, error) {
	fonts := text.FontSettings()
	content := text.Content()

	breakIdx, err := FindWrapIndex(m, content, fonts.SelectedFont(), fonts.Size, availableWidth)
	if err != nil {
		return SplitParts{}, err
	}
	runes := []rune(content)
	if breakIdx <= 0 {
		breakIdx = min(1, len(runes))
	}

	if breakIdx >= len(runes) {
		if len(runes) == 0 {
			return SplitParts{}, nil
		}
		return SplitParts{Head: content, HasHead: true}, nil
	}

	head := StripTrailingWhitespace(string(runes[:breakIdx]))
	tail := StripLeadingWhitespace(string(runes[breakIdx:]))

	if head == "" {
		return SplitParts{Tail: tail, HasTail: true}, nil
	}
	return SplitParts{Head: head, HasHead: true, Tail: tail, HasTail: tail != ""}, nil
}
