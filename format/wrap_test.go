package format

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pdfquill/quill/settings"
)

// fixedMetrics 是测试桩：每个字符固定宽度，便于精确构造边界场景。
type fixedMetrics struct {
	charWidth float64
}

func (m fixedMetrics) TextWidth(text string, _ settings.FontRef, _ float64) (float64, error) {
	return float64(len([]rune(text))) * m.charWidth, nil
}

func defaultFont() settings.FontRef {
	return settings.NewFontSettings().SelectedFont()
}

// TestFormatTextToLinesAtWordBoundary 验证宽度刚好容纳 "Hello world" 时
// 在词边界折行。
func TestFormatTextToLinesAtWordBoundary(t *testing.T) {
	m := fixedMetrics{charWidth: 10}
	// "Hello world" 共 11 字符 = 110，留一点余量但放不下 " test"。
	lines, err := FormatTextToLines(m, "Hello world test", defaultFont(), 12, 115, false)
	if err != nil {
		t.Fatalf("折行失败: %v", err)
	}
	want := []string{"Hello world", "test"}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("折行结果不符 (-want +got):\n%s", diff)
	}
}

// TestFormatTextToLinesMidWordBackoff 验证断点落在词中间时回退到词边界。
func TestFormatTextToLinesMidWordBackoff(t *testing.T) {
	m := fixedMetrics{charWidth: 10}
	// 宽度 80 可容纳 8 字符，候选断点落在 "defghij" 词中，应回退到空格处折行。
	lines, err := FormatTextToLines(m, "abc defghij", defaultFont(), 12, 80, false)
	if err != nil {
		t.Fatalf("折行失败: %v", err)
	}
	want := []string{"abc", "defghij"}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("折行结果不符 (-want +got):\n%s", diff)
	}
}

// TestFormatTextToLinesWidthInvariant 验证任意输入下每行渲染宽度 ≤ maxWidth，
// 且拼接结果无损还原原文（按词比较，空白在折行处被吸收）。
func TestFormatTextToLinesWidthInvariant(t *testing.T) {
	m := fixedMetrics{charWidth: 10}
	texts := []string{
		"the quick brown fox jumps over the lazy dog",
		"one  two   three    four",
		"averyveryverylongwordwithoutanyspaces",
		"短 句 混合 multibyte 字符 test",
	}
	for _, text := range texts {
		lines, err := FormatTextToLines(m, text, defaultFont(), 12, 100, false)
		if err != nil {
			t.Fatalf("折行失败: %v", err)
		}
		for _, line := range lines {
			w, _ := m.TextWidth(line, defaultFont(), 12)
			if w > 100 {
				t.Fatalf("行 %q 宽度 %g 超出上限 100", line, w)
			}
		}
		got := strings.Fields(strings.Join(lines, " "))
		want := strings.Fields(text)
		// 词内截断会把长词切开，按去空格的全文比较。
		if strings.Join(got, "") != strings.Join(want, "") {
			t.Fatalf("拼接结果与原文不符: got=%v want=%v", got, want)
		}
	}
}

// TestFormatTextToLinesDegenerateWidth 验证宽度小于单个字符时退化为
// 每行一个字符且不报错、不死循环。
func TestFormatTextToLinesDegenerateWidth(t *testing.T) {
	m := fixedMetrics{charWidth: 10}
	lines, err := FormatTextToLines(m, "abc", defaultFont(), 12, 5, false)
	if err != nil {
		t.Fatalf("折行失败: %v", err)
	}
	want := []string{"a", "b", "c"}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("退化折行结果不符 (-want +got):\n%s", diff)
	}

	lines, err = FormatTextToLines(m, "abc", defaultFont(), 12, 0, false)
	if err != nil {
		t.Fatalf("零宽折行失败: %v", err)
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("零宽折行结果不符 (-want +got):\n%s", diff)
	}
}

// TestFormatTextToLinesEmpty 验证空输入返回单个空行。
func TestFormatTextToLinesEmpty(t *testing.T) {
	m := fixedMetrics{charWidth: 10}
	lines, err := FormatTextToLines(m, "", defaultFont(), 12, 100, false)
	if err != nil {
		t.Fatalf("折行失败: %v", err)
	}
	if diff := cmp.Diff([]string{""}, lines); diff != "" {
		t.Fatalf("空输入结果不符 (-want +got):\n%s", diff)
	}
}

// TestFormatTextToLinesPreserveSpaces 验证保留空白模式不剥除行首行尾空白。
func TestFormatTextToLinesPreserveSpaces(t *testing.T) {
	m := fixedMetrics{charWidth: 10}
	text := "ab cd"
	lines, err := FormatTextToLines(m, text, defaultFont(), 12, 30, true)
	if err != nil {
		t.Fatalf("折行失败: %v", err)
	}
	if got := strings.Join(lines, ""); got != text {
		t.Fatalf("保留空白模式下拼接应还原原文: got=%q want=%q", got, text)
	}
}

// TestStripWhitespaceHelpers 覆盖空白剥除辅助函数。
func TestStripWhitespaceHelpers(t *testing.T) {
	if got := StripLeadingWhitespace("\t  abc "); got != "abc " {
		t.Fatalf("StripLeadingWhitespace 结果 %q", got)
	}
	if got := StripTrailingWhitespace(" abc \t\n"); got != " abc" {
		t.Fatalf("StripTrailingWhitespace 结果 %q", got)
	}
}
