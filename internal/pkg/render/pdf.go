package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"k8s.io/klog/v2"
)

const (
	lineHeight  = 5.5
	indentWidth = 6.0
	cellPadding = 1.5
)

var headingSizes = map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 11}

// PDF 基于 goldmark + fpdf 的 PDF 渲染器，使用内嵌的 DejaVu 字体输出 UTF-8 文本
type PDF struct {
	PageSize string
	FontSize float64
}

// NewPDF 创建 A4 版式的 PDF 渲染器
func NewPDF() *PDF {
	return &PDF{PageSize: "A4", FontSize: 11}
}

// Render 解析 Markdown 并排版输出 PDF
func (p *PDF) Render(ctx context.Context, doc Document, path string) error {
	if strings.TrimSpace(doc.Markdown) == "" {
		return ErrEmptyDocument
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	blocks := parseBlocks(doc.Markdown)
	klog.V(6).Infof("[PDF.Render] 开始排版: blocks=%d, path=%s", len(blocks), path)

	pdf := fpdf.New("P", "mm", p.PageSize, "")
	if err := registerFonts(pdf); err != nil {
		return fmt.Errorf("failed to load fonts: %w", err)
	}
	pdf.SetTitle(doc.Title, true)
	pdf.SetSubject(doc.Subject, true)
	pdf.SetCreator("ideamaker", true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	l := &layout{pdf: pdf, fontSize: p.FontSize}
	for _, b := range blocks {
		l.draw(b)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to lay out pdf: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}

	klog.V(6).Infof("[PDF.Render] 输出完成: %s", path)
	return nil
}

type layout struct {
	pdf      *fpdf.Fpdf
	fontSize float64
}

func (l *layout) width(indent float64) float64 {
	pageW, _ := l.pdf.GetPageSize()
	left, _, right, _ := l.pdf.GetMargins()
	return pageW - left - right - indent
}

func (l *layout) at(indent float64) {
	left, _, _, _ := l.pdf.GetMargins()
	l.pdf.SetX(left + indent)
}

func (l *layout) draw(b block) {
	indent := float64(b.depth) * indentWidth
	text := fitText(b.text)

	switch b.kind {
	case blockHeading:
		size := headingSizes[b.level]
		l.pdf.Ln(2)
		l.pdf.SetFont(fontBody, "B", size)
		l.at(0)
		l.pdf.MultiCell(l.width(0), size*0.5, text, "", "L", false)
		l.pdf.Ln(1.5)
	case blockParagraph:
		l.pdf.SetFont(fontBody, "", l.fontSize)
		l.at(indent)
		l.pdf.MultiCell(l.width(indent), lineHeight, text, "", "L", false)
		l.pdf.Ln(2)
	case blockQuote:
		l.pdf.SetFont(fontBody, "I", l.fontSize)
		l.pdf.SetTextColor(90, 90, 90)
		l.at(indent)
		l.pdf.MultiCell(l.width(indent), lineHeight, text, "L", "L", false)
		l.pdf.SetTextColor(0, 0, 0)
		l.pdf.Ln(2)
	case blockListItem:
		l.pdf.SetFont(fontBody, "", l.fontSize)
		l.at(indent - indentWidth)
		l.pdf.CellFormat(indentWidth, lineHeight, b.marker, "", 0, "R", false, 0, "")
		l.pdf.MultiCell(l.width(indent), lineHeight, " "+text, "", "L", false)
		l.pdf.Ln(0.8)
	case blockCode:
		l.pdf.SetFont(fontCode, "", l.fontSize-2)
		l.pdf.SetFillColor(244, 244, 244)
		l.at(indent)
		l.pdf.MultiCell(l.width(indent), lineHeight-0.8, text, "", "L", true)
		l.pdf.Ln(2)
	case blockTable:
		l.table(b.rows, indent)
		l.pdf.Ln(2)
	case blockRule:
		left, _, right, _ := l.pdf.GetMargins()
		pageW, _ := l.pdf.GetPageSize()
		y := l.pdf.GetY() + 1
		l.pdf.SetDrawColor(180, 180, 180)
		l.pdf.Line(left, y, pageW-right, y)
		l.pdf.Ln(3)
	}
}

// table 等宽列排版，单元格内自动换行，首行为表头
func (l *layout) table(rows [][]string, indent float64) {
	columns := 0
	for _, row := range rows {
		columns = max(columns, len(row))
	}
	if columns == 0 {
		return
	}

	left, _, _, _ := l.pdf.GetMargins()
	_, pageH := l.pdf.GetPageSize()
	_, _, _, bottom := l.pdf.GetMargins()
	colW := l.width(indent) / float64(columns)
	size := l.fontSize - 1
	l.pdf.SetDrawColor(160, 160, 160)
	l.pdf.SetFillColor(235, 235, 235)

	for i, row := range rows {
		style := ""
		if i == 0 {
			style = "B"
		}
		l.pdf.SetFont(fontBody, style, size)

		cells := make([]string, columns)
		height := lineHeight
		for j := range cells {
			if j < len(row) {
				cells[j] = fitText(row[j])
			}
			lines := len(l.pdf.SplitText(cells[j], colW-2*cellPadding))
			height = max(height, float64(max(lines, 1))*lineHeight)
		}

		y := l.pdf.GetY()
		if y+height > pageH-bottom {
			l.pdf.AddPage()
			y = l.pdf.GetY()
		}
		for j, cell := range cells {
			x := left + indent + float64(j)*colW
			if i == 0 {
				l.pdf.Rect(x, y, colW, height, "FD")
			} else {
				l.pdf.Rect(x, y, colW, height, "D")
			}
			l.pdf.SetXY(x+cellPadding, y)
			l.pdf.MultiCell(colW-2*cellPadding, lineHeight, cell, "", "L", false)
		}
		l.pdf.SetXY(left, y+height)
	}
}
