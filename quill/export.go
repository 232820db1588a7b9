package quill

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ExportError 表示把文档字节搬到外部介质（文件系统）时的失败。
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("导出 %q 失败: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// Bytes 返回最终文档字节的拷贝。第一次调用会 finalize 文档，
// 之后重复调用返回相同内容；调用方可随意修改返回的切片。
func (p *Printer) Bytes() ([]byte, error) {
	data, err := p.w.SaveAndGetBytes()
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Base64 返回标准 base64 编码的文档字节。
func (p *Printer) Base64() (string, error) {
	data, err := p.w.SaveAndGetBytes()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// WriteFile 把文档写到指定路径，按需创建父目录。
// 只有整份字节落盘成功后才把该路径记为当前输出文件。
func (p *Printer) WriteFile(path string) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return &ExportError{Path: path, Err: errors.New("目标是一个目录")}
	}
	data, err := p.w.SaveAndGetBytes()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &ExportError{Path: path, Err: err}
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	p.outFile = path
	return nil
}

// TempFile 把文档写到一个临时文件并返回其路径。
// 若此前已有一次成功的写盘且文件仍在，直接复用，不再重复落盘。
func (p *Printer) TempFile() (string, error) {
	if p.w.Closed() && p.outFile != "" {
		if _, err := os.Stat(p.outFile); err == nil {
			return p.outFile, nil
		}
		// 文件已被外部删除，丢掉过期引用，重新落盘。
		p.outFile = ""
	}
	data, err := p.w.SaveAndGetBytes()
	if err != nil {
		return "", err
	}
	f, err := os.CreateTemp("", "quill-*.pdf")
	if err != nil {
		return "", &ExportError{Err: err}
	}
	path := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return "", &ExportError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", &ExportError{Path: path, Err: err}
	}
	p.outFile = path
	return path, nil
}
