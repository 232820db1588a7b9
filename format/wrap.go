package format

// 折行算法一：前缀和 + 二分查找，带词边界回退。
// 与 split.go 中的贪心扫描解决重叠的问题，但边界行为不同，二者都被调用方
// 依赖，不能合并（见各自函数注释）。

import (
	"strings"
	"unicode"

	"github.com/pdfquill/quill/settings"
)

// FormatTextToLines 将一段单一样式的文本折成若干行，每行渲染宽度 ≤ maxWidth。
//
// 算法：整体放得下直接返回；否则预计算每个字符的前进宽度与前缀和，
// 在 [start+1, n] 上二分出最远能放下的终点；若该终点落在词中间，则向后
// 回退到 start 之后最近的空白处折行；找不到空白时接受词内截断。
// 每轮至少前进一个字符，单字符超宽也不会死循环。
//
// preserveSpaces 为 false 时跳过行首空白并剥除行尾空白；为 true 时
// 原样保留空白。空输入返回单个空行；maxWidth ≤ 0 时退化为每行一个字符。
func FormatTextToLines(m Metrics, text string, font settings.FontRef, size, maxWidth float64, preserveSpaces bool) ([]string, error) {
	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return []string{""}, nil
	}
	if maxWidth <= 0 {
		// 退化输入：宽度约束无意义，确定性地每行输出一个字符。
		lines := make([]string, n)
		for i, r := range runes {
			lines[i] = string(r)
		}
		return lines, nil
	}

	whole, err := m.TextWidth(text, font, size)
	if err != nil {
		return nil, err
	}
	if whole <= maxWidth {
		return []string{text}, nil
	}

	// 每字符宽度与前缀和，使任意区间宽度可 O(1) 求得。
	prefix := make([]float64, n+1)
	for i, r := range runes {
		w, err := m.TextWidth(string(r), font, size)
		if err != nil {
			return nil, err
		}
		prefix[i+1] = prefix[i] + w
	}

	var lines []string
	start := 0
	for start < n {
		if !preserveSpaces {
			for start < n && unicode.IsSpace(runes[start]) {
				start++
			}
		}
		if start >= n {
			break
		}

		// 二分找到最大的 end 使 [start, end) 宽度不超限；下界 start+1 保证前进。
		lo, hi, best := start+1, n, start+1
		for lo <= hi {
			mid := (lo + hi) / 2
			if prefix[mid]-prefix[start] <= maxWidth {
				best = mid
				lo = mid + 1
			} else {
				hi = mid - 1
			}
		}
		end := best

		breakIdx := end
		if end < n && !unicode.IsSpace(runes[end-1]) && !unicode.IsSpace(runes[end]) {
			// 候选断点切开了一个词，优先回退到词边界。
			if lastSpace := lastWhitespaceBetween(runes, start, end-1); lastSpace >= start+1 {
				breakIdx = lastSpace
			}
		}
		if breakIdx == start {
			breakIdx = end
		}

		line := string(runes[start:breakIdx])
		if !preserveSpaces {
			line = StripTrailingWhitespace(line)
		}
		lines = append(lines, line)

		start = breakIdx
		if !preserveSpaces {
			for start < n && unicode.IsSpace(runes[start]) {
				start++
			}
		}
	}
	return lines, nil
}

// lastWhitespaceBetween 返回 runes[from..to]（含端点）内最后一个空白字符的
// 下标，不存在时返回 -1。
func lastWhitespaceBetween(runes []rune, from, to int) int {
	for i := to; i >= from; i-- {
		if unicode.IsSpace(runes[i]) {
			return i
		}
	}
	return -1
}

// StripLeadingWhitespace 剥除前导空白。
func StripLeadingWhitespace(value string) string {
	return strings.TrimLeftFunc(value, unicode.IsSpace)
}

// StripTrailingWhitespace 剥除尾部空白。
func StripTrailingWhitespace(value string) string {
	return strings.TrimRightFunc(value, unicode.IsSpace)
}
