package settings

import "testing"

// TestFontByTypeTotal 验证四个字体槽位的查找是全函数。
func TestFontByTypeTotal(t *testing.T) {
	s := NewFontSettings()
	cases := []struct {
		ft   FontType
		want FontRef
	}{
		{FontDefault, s.Regular},
		{FontBold, s.Bold},
		{FontItalic, s.Italic},
		{FontBoldItalic, s.BoldItalic},
	}
	for _, c := range cases {
		if got := s.FontByType(c.ft); got != c.want {
			t.Fatalf("FontByType(%v) = %+v, want %+v", c.ft, got, c.want)
		}
	}
	// 非法枚举值回落到默认槽位。
	if got := s.FontByType(FontType(99)); got != s.Regular {
		t.Fatalf("非法槽位应回落到默认字体，实际 %+v", got)
	}
}

// TestSelectedFont 验证选中槽位跟随 Selected 字段。
func TestSelectedFont(t *testing.T) {
	s := NewFontSettings()
	if s.SelectedFont() != s.Regular {
		t.Fatalf("默认选中应为常规字体")
	}
	s.Selected = FontBoldItalic
	if s.SelectedFont() != s.BoldItalic {
		t.Fatalf("选中槽位未跟随 Selected")
	}
}

// TestFontSettingsClone 验证克隆的独立性，包括 nil 接收者。
func TestFontSettingsClone(t *testing.T) {
	var nilSettings *FontSettings
	if c := nilSettings.Clone(); c == nil {
		t.Fatalf("nil 接收者应克隆出默认配置")
	}

	s := NewFontSettings()
	c := s.Clone()
	c.Size = 99
	c.SetFont(FontBold, FontRef{Name: "Other", Src: "other.ttf"})
	if s.Size != 12 || s.Bold.Name == "Other" {
		t.Fatalf("修改克隆不应影响原配置: %+v", s)
	}
}
