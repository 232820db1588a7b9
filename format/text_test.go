package format

import (
	"testing"

	"github.com/pdfquill/quill/settings"
)

// TestFormatTextBuilderPassThrough 验证折成单行的片段原样透传，
// 且保持同一字体配置指针。
func TestFormatTextBuilderPassThrough(t *testing.T) {
	m := fixedMetrics{charWidth: 10}
	fonts := settings.NewFontSettings()
	b := NewTextBuilder().Add("short", fonts)

	texts, err := FormatTextBuilder(m, b, 100)
	if err != nil {
		t.Fatalf("展开失败: %v", err)
	}
	if len(texts) != 1 {
		t.Fatalf("期望 1 条片段，实际 %d", len(texts))
	}
	if texts[0].Content() != "short" {
		t.Fatalf("内容不符: %q", texts[0].Content())
	}
	if texts[0].FontSettings() != fonts {
		t.Fatalf("单行片段应保持原字体配置指针")
	}
}

// TestFormatTextBuilderExpand 验证超宽片段按原顺序展开为多条同样式片段。
func TestFormatTextBuilderExpand(t *testing.T) {
	m := fixedMetrics{charWidth: 10}
	bold := settings.NewFontSettings()
	bold.Selected = settings.FontBold

	b := NewTextBuilder().
		Add("head", nil).
		Add("alpha beta gamma", bold)

	texts, err := FormatTextBuilder(m, b, 60)
	if err != nil {
		t.Fatalf("展开失败: %v", err)
	}
	// "head" 透传；"alpha beta gamma" 以 6 字符宽度折为三行。
	if len(texts) != 4 {
		t.Fatalf("期望 4 条片段，实际 %d", len(texts))
	}
	want := []string{"head", "alpha", "beta", "gamma"}
	for i, w := range want {
		if texts[i].Content() != w {
			t.Fatalf("片段 %d 内容不符: got=%q want=%q", i, texts[i].Content(), w)
		}
	}
	for _, tx := range texts[1:] {
		if tx.FontSettings() != bold {
			t.Fatalf("展开片段应继承源片段字体配置")
		}
	}
}

// TestNewTextDefaults 验证 nil 字体配置回落到默认值。
func TestNewTextDefaults(t *testing.T) {
	tx := NewText("x", nil)
	if tx.FontSettings() == nil {
		t.Fatalf("默认字体配置不应为 nil")
	}
	if tx.FontSettings().Size != 12 {
		t.Fatalf("默认字号应为 12，实际 %g", tx.FontSettings().Size)
	}
}
