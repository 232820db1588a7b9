package script_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pdfquill/quill/quill"
	"github.com/pdfquill/quill/script"
	"github.com/pdfquill/quill/settings"
	"github.com/pdfquill/quill/writer"
)

// fixedMetrics / captureEncoder 是测试桩，避免执行路径依赖真实字体与 PDF 编码。
type fixedMetrics struct{}

func (fixedMetrics) TextWidth(text string, _ settings.FontRef, _ float64) (float64, error) {
	return float64(len([]rune(text))) * 6, nil
}

type captureEncoder struct {
	doc *writer.Document
}

func (e *captureEncoder) Encode(doc *writer.Document) ([]byte, error) {
	e.doc = doc
	return []byte("%PDF-stub"), nil
}

// buildPrinter 解析脚本并注入测试桩构建打印机。
func buildPrinter(t *testing.T, src string) (*quill.Printer, *captureEncoder, *script.Script) {
	t.Helper()
	s, err := script.ParseString(src)
	if err != nil {
		t.Fatalf("解析脚本失败: %v", err)
	}
	enc := &captureEncoder{}
	p, err := quill.New(quill.Options{Metrics: fixedMetrics{}, Encoder: enc})
	if err != nil {
		t.Fatalf("构建打印机失败: %v", err)
	}
	return p, enc, s
}

// TestRunInterpolatesData 验证脚本执行时占位符被数据填充。
func TestRunInterpolatesData(t *testing.T) {
	src := "line \"单号 ${order.id}\"\nbold \"合计 ${order.total}\"\n"
	p, enc, s := buildPrinter(t, src)

	var data any
	if err := json.Unmarshal([]byte(`{"order":{"id":"A-42","total":18}}`), &data); err != nil {
		t.Fatalf("解析数据失败: %v", err)
	}
	if err := script.Run(s, p, script.ExecOptions{Data: data}); err != nil {
		t.Fatalf("执行脚本失败: %v", err)
	}
	if _, err := p.Bytes(); err != nil {
		t.Fatalf("finalize 失败: %v", err)
	}

	texts := enc.doc.Pages[0].Texts
	if len(texts) != 2 {
		t.Fatalf("期望 2 条文本，实际 %d", len(texts))
	}
	if texts[0].Content != "单号 A-42" {
		t.Fatalf("插值结果不符: %q", texts[0].Content)
	}
	if texts[1].Content != "合计 18" {
		t.Fatalf("插值结果不符: %q", texts[1].Content)
	}
}

// TestRunSkipAndCut 验证 skip 与 cut 语句落到页面模型。
func TestRunSkipAndCut(t *testing.T) {
	src := "line \"a\"\nskip 2\nline \"b\"\ncut\n"
	p, enc, s := buildPrinter(t, src)

	if err := script.Run(s, p, script.ExecOptions{}); err != nil {
		t.Fatalf("执行脚本失败: %v", err)
	}
	if _, err := p.Bytes(); err != nil {
		t.Fatalf("finalize 失败: %v", err)
	}

	page := enc.doc.Pages[0]
	if len(page.Texts) != 2 {
		t.Fatalf("期望 2 条文本，实际 %d", len(page.Texts))
	}
	sep := page.Texts[1].Y - page.Texts[0].Y
	want := 3 * p.Layout().LineHeight()
	if diff := sep - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("skip 行距不符: got=%g want=%g", sep, want)
	}
	if len(page.Rules) != 1 || !page.Rules[0].Dashed {
		t.Fatalf("期望 1 条裁切虚线，实际 %+v", page.Rules)
	}
}

// TestRunReportsStatementPosition 验证执行错误带语句位置。
func TestRunReportsStatementPosition(t *testing.T) {
	src := "barcode ean13 \"not-a-number\"\n"
	p, _, s := buildPrinter(t, src)

	err := script.Run(s, p, script.ExecOptions{})
	if err == nil {
		t.Fatalf("非法条码载荷应报错")
	}
	if msg := err.Error(); !strings.Contains(msg, "1:1") {
		t.Fatalf("错误信息缺少语句位置: %q", msg)
	}
}

// TestBuildPrinterHeaderStatements 验证 paper/margin/font-size 进入布局。
func TestBuildPrinterHeaderStatements(t *testing.T) {
	src := "paper a5\nmargin 20\nfont-size 9\nline \"x\"\n"
	s, err := script.ParseString(src)
	if err != nil {
		t.Fatalf("解析脚本失败: %v", err)
	}
	p, err := script.BuildPrinter(s, script.ExecOptions{})
	if err != nil {
		t.Fatalf("构建打印机失败: %v", err)
	}
	layout := p.Layout()
	if layout.PaperType().String() != "A5" {
		t.Fatalf("纸张类型不符: %v", layout.PaperType())
	}
	if layout.Margins().Left != 20 {
		t.Fatalf("边距不符: %+v", layout.Margins())
	}
	if layout.FontSettings().Size != 9 {
		t.Fatalf("字号不符: %g", layout.FontSettings().Size)
	}
}
