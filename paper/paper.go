package paper

// 纸张类型：固定尺寸（A 系列、Letter）与热敏卷纸（56mm、80mm）。
// 所有尺寸以 pt 为单位；热敏卷纸高度不固定，随内容增长。

import (
	"fmt"
	"strings"

	"github.com/pdfquill/quill/units"
)

// Type 枚举支持的纸张规格。
type Type int

const (
	A4 Type = iota
	A5
	A6
	Letter
	Thermal56 // 56mm 热敏卷纸
	Thermal80 // 80mm 热敏卷纸
)

// Size 描述一种纸张的固定宽高（pt）。热敏纸 Height 为 0，表示高度随内容增长。
type Size struct {
	Width  float64
	Height float64
}

var sizes = map[Type]Size{
	A4:        {Width: 595.28, Height: 841.89},
	A5:        {Width: 419.53, Height: 595.28},
	A6:        {Width: 297.64, Height: 419.53},
	Letter:    {Width: 612, Height: 792},
	Thermal56: {Width: 56 * units.MmToPt},
	Thermal80: {Width: 80 * units.MmToPt},
}

var names = map[Type]string{
	A4:        "A4",
	A5:        "A5",
	A6:        "A6",
	Letter:    "Letter",
	Thermal56: "Thermal56",
	Thermal80: "Thermal80",
}

// Valid 报告 t 是否为已定义的纸张类型。
func (t Type) Valid() bool {
	_, ok := sizes[t]
	return ok
}

// Thermal 报告该纸张是否为高度可增长的热敏卷纸。
func (t Type) Thermal() bool {
	return t == Thermal56 || t == Thermal80
}

// Size 返回纸张宽高（pt）。热敏纸 Height 为 0。
func (t Type) Size() Size { return sizes[t] }

// Width 返回纸张宽度（pt）。
func (t Type) Width() float64 { return sizes[t].Width }

// Height 返回固定纸张高度（pt）；热敏纸返回 0。
func (t Type) Height() float64 { return sizes[t].Height }

func (t Type) String() string {
	if name, ok := names[t]; ok {
		return name
	}
	return fmt.Sprintf("paper.Type(%d)", int(t))
}

// ParseType 将脚本中的纸张名称解析为 Type，大小写不敏感。
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "a4":
		return A4, nil
	case "a5":
		return A5, nil
	case "a6":
		return A6, nil
	case "letter":
		return Letter, nil
	case "thermal56", "thermal-56", "56mm":
		return Thermal56, nil
	case "thermal80", "thermal-80", "80mm":
		return Thermal80, nil
	default:
		return 0, fmt.Errorf("暂不支持的纸张尺寸：%s", name)
	}
}
