// Package render 将组装好的 Markdown 文档持久化为最终文件
package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyDocument 文档内容为空
var ErrEmptyDocument = errors.New("document is empty")

// Document 待渲染的文档
type Document struct {
	Title    string
	Subject  string
	Markdown string
}

// Renderer 文档渲染器，每次渲染覆盖目标文件
type Renderer interface {
	Render(ctx context.Context, doc Document, path string) error
}

// ForPath 根据输出路径的扩展名选择渲染器
// .md / .markdown 直接写出 Markdown，其余输出 PDF
func ForPath(path string) Renderer {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return Markdown{}
	default:
		return NewPDF()
	}
}

// Markdown 原样写出 Markdown 内容
type Markdown struct{}

// Render 写出 Markdown 文件
func (Markdown) Render(ctx context.Context, doc Document, path string) error {
	if strings.TrimSpace(doc.Markdown) == "" {
		return ErrEmptyDocument
	}
	return WriteMarkdown(path, doc.Markdown)
}

// WriteMarkdown 写出（覆盖）Markdown 文件
func WriteMarkdown(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(content), 0644)
}
