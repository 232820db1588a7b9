package writer

// 该文件定义已落位内容的模型：写入器产出绝对坐标，编码器只负责照样绘制。
// 坐标系以页面左上角为原点，单位 pt，y 向下增长。

import (
	"image"

	"github.com/pdfquill/quill/settings"
)

// Document 是交给编码器的最终布局结果。
type Document struct {
	Pages       []*Page
	Permissions *settings.PermissionSettings
}

// Page 记录页面尺寸与可以直接绘制的元素。热敏页的 Height 在 finalize 时回填。
type Page struct {
	Width  float64
	Height float64
	Texts  []TextSpan
	Images []ImageBox
	Rules  []Rule
}

// TextSpan 是一条已经排好坐标的文本。X/Y 为行框左上角。
type TextSpan struct {
	Content string
	X       float64
	Y       float64
	Font    settings.FontRef
	Size    float64
}

// ImageBox 描述图片位置与目标尺寸（pt）。
type ImageBox struct {
	Image  image.Image
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Rule 是一条水平线；Dashed 为 true 时为裁切标记的虚线样式。
type Rule struct {
	X1     float64
	Y      float64
	X2     float64
	Stroke float64
	Dashed bool
}
