package settings

// 字体配置：四个样式槽位（默认/粗体/斜体/粗斜体）加统一字号。
// 槽位查询使用封闭枚举上的穷举 switch，新增样式是编译期可见的改动。

// FontType 标识一条文本使用的字体样式槽位。
type FontType int

const (
	FontDefault FontType = iota
	FontBold
	FontItalic
	FontBoldItalic
)

func (t FontType) String() string {
	switch t {
	case FontBold:
		return "bold"
	case FontItalic:
		return "italic"
	case FontBoldItalic:
		return "bold-italic"
	default:
		return "default"
	}
}

// FontRef 描述一个字体面：逻辑名、来源与样式提示。
// Src 可以是文件路径，或 "builtin:<name>" 形式引用注入到渲染器的字体资源。
type FontRef struct {
	Name  string
	Src   string
	Style string
}

// FontSettings 保存四个字体槽位与字号（pt）。
// Selected 指示 Text 片段取用哪个槽位。
type FontSettings struct {
	Size       float64
	Regular    FontRef
	Bold       FontRef
	Italic     FontRef
	BoldItalic FontRef
	Selected   FontType
}

// NewFontSettings 返回默认配置：12pt，Go Mono 等宽字体族。
func NewFontSettings() *FontSettings {
	return &FontSettings{
		Size:       12,
		Regular:    FontRef{Name: "GoMono", Src: "builtin:regular"},
		Bold:       FontRef{Name: "GoMono-Bold", Src: "builtin:bold", Style: "bold"},
		Italic:     FontRef{Name: "GoMono-Italic", Src: "builtin:italic", Style: "italic"},
		BoldItalic: FontRef{Name: "GoMono-BoldItalic", Src: "builtin:bold-italic", Style: "bold italic"},
		Selected:   FontDefault,
	}
}

// FontByType 按槽位标签返回字体面；对 FontType 全域有定义。
func (s *FontSettings) FontByType(t FontType) FontRef {
	switch t {
	case FontBold:
		return s.Bold
	case FontItalic:
		return s.Italic
	case FontBoldItalic:
		return s.BoldItalic
	default:
		return s.Regular
	}
}

// SetFont 覆盖指定槽位的字体面。
func (s *FontSettings) SetFont(t FontType, ref FontRef) {
	switch t {
	case FontBold:
		s.Bold = ref
	case FontItalic:
		s.Italic = ref
	case FontBoldItalic:
		s.BoldItalic = ref
	default:
		s.Regular = ref
	}
}

// SelectedFont 返回 Selected 槽位对应的字体面。
func (s *FontSettings) SelectedFont() FontRef {
	return s.FontByType(s.Selected)
}

// Clone 返回深拷贝，避免多个打印实例间共享可变状态。
func (s *FontSettings) Clone() *FontSettings {
	if s == nil {
		return NewFontSettings()
	}
	clone := *s
	return &clone
}
