package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfquill/quill/render"
	"github.com/pdfquill/quill/script"
)

func main() {
	input := flag.String("in", "examples/receipt.quill", "打印脚本路径")
	output := flag.String("out", "output/receipt.pdf", "PDF 输出路径")
	dataJSON := flag.String("data", "", "绑定到脚本占位符的 JSON 数据")
	fontFlags := flag.String("fonts", "", "字体资源，形如 regular=DejaVu.ttf,bold=DejaVu-Bold.ttf")
	flag.Parse()

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	fonts, err := parseFontFlags(*fontFlags)
	if err != nil {
		log.Fatalf("解析字体参数失败: %v", err)
	}

	if err := run(*input, *output, inputData, fonts); err != nil {
		log.Fatalf("生成 PDF 失败: %v", err)
	}
	fmt.Printf("已生成 PDF：%s\n", *output)
}

// run 串联脚本解析、排版与落盘。
func run(inputPath, outputPath string, data any, fonts map[string]render.Resource) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("无法打开脚本文件 %s: %w", inputPath, err)
	}
	defer file.Close()

	s, err := script.Parse(file)
	if err != nil {
		return fmt.Errorf("解析脚本失败: %w", err)
	}

	pdfBytes, err := script.Render(s, script.ExecOptions{
		Data:    data,
		BaseDir: filepath.Dir(inputPath),
		Fonts:   fonts,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return nil
}

// parseFontFlags 解析 name=path 逗号列表为字体资源表。
func parseFontFlags(arg string) (map[string]render.Resource, error) {
	if arg == "" {
		return nil, nil
	}
	fonts := make(map[string]render.Resource)
	for _, pair := range strings.Split(arg, ",") {
		name, path, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("无效的字体声明 %q", pair)
		}
		fonts[name] = render.Resource{Path: path}
	}
	return fonts, nil
}
