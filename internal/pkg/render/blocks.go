package render

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

type blockKind int

const (
	blockHeading blockKind = iota
	blockParagraph
	blockListItem
	blockCode
	blockQuote
	blockRule
	blockTable
)

// block 排版前的扁平化文档块
type block struct {
	kind   blockKind
	level  int    // 标题级别
	depth  int    // 列表 / 引用嵌套深度
	marker string // 列表项标记，如 "•" 或 "3."
	text   string
	rows   [][]string // 表格行，首行为表头
}

// parseBlocks 解析 Markdown 并展开为顺序排列的文档块
func parseBlocks(markdown string) []block {
	src := []byte(markdown)
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	root := md.Parser().Parse(text.NewReader(src))

	c := &collector{src: src}
	c.walk(root, 0, false)
	return c.blocks
}

type collector struct {
	src    []byte
	blocks []block
}

func (c *collector) walk(n ast.Node, depth int, quoted bool) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		c.node(child, depth, quoted)
	}
}

func (c *collector) node(n ast.Node, depth int, quoted bool) {
	switch n := n.(type) {
	case *ast.Heading:
		c.blocks = append(c.blocks, block{kind: blockHeading, level: n.Level, text: c.inline(n)})
	case *ast.Paragraph, *ast.TextBlock:
		kind := blockParagraph
		if quoted {
			kind = blockQuote
		}
		c.blocks = append(c.blocks, block{kind: kind, depth: depth, text: c.inline(n)})
	case *ast.List:
		index := n.Start
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			marker := "•"
			if n.IsOrdered() {
				marker = strconv.Itoa(index) + "."
				index++
			}
			c.listItem(item, marker, depth+1, quoted)
		}
	case *ast.FencedCodeBlock:
		c.blocks = append(c.blocks, block{kind: blockCode, depth: depth, text: c.lines(n)})
	case *ast.CodeBlock:
		c.blocks = append(c.blocks, block{kind: blockCode, depth: depth, text: c.lines(n)})
	case *ast.HTMLBlock:
		c.blocks = append(c.blocks, block{kind: blockCode, depth: depth, text: c.lines(n)})
	case *ast.Blockquote:
		c.walk(n, depth+1, true)
	case *ast.ThematicBreak:
		c.blocks = append(c.blocks, block{kind: blockRule})
	case *east.Table:
		c.blocks = append(c.blocks, block{kind: blockTable, depth: depth, rows: c.tableRows(n)})
	default:
		c.walk(n, depth, quoted)
	}
}

// listItem 第一个段落带标记输出，其余子块按嵌套深度处理
func (c *collector) listItem(item ast.Node, marker string, depth int, quoted bool) {
	first := true
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			if first {
				c.blocks = append(c.blocks, block{kind: blockListItem, depth: depth, marker: marker, text: c.inline(child)})
				first = false
				continue
			}
		}
		c.node(child, depth, quoted)
	}
	if first {
		c.blocks = append(c.blocks, block{kind: blockListItem, depth: depth, marker: marker})
	}
}

// tableRows 表头与数据行统一展开为单元格文本
func (c *collector) tableRows(table *east.Table) [][]string {
	rows := make([][]string, 0)
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		cells := make([]string, 0, len(table.Alignments))
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, c.inline(cell))
		}
		rows = append(rows, cells)
	}
	return rows
}

func (c *collector) lines(n ast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(c.src))
	}
	return strings.TrimRight(b.String(), "\n")
}

// inline 提取行内节点的纯文本
func (c *collector) inline(n ast.Node) string {
	var b strings.Builder
	var visit func(ast.Node)
	visit = func(n ast.Node) {
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			switch child := child.(type) {
			case *ast.Text:
				b.Write(child.Segment.Value(c.src))
				if child.HardLineBreak() {
					b.WriteString("\n")
				} else if child.SoftLineBreak() {
					b.WriteString(" ")
				}
			case *ast.String:
				b.Write(child.Value)
			case *ast.AutoLink:
				b.Write(child.Label(c.src))
			case *east.TaskCheckBox:
				if child.IsChecked {
					b.WriteString("[x] ")
				} else {
					b.WriteString("[ ] ")
				}
			case *ast.RawHTML:
			default:
				visit(child)
			}
		}
	}
	visit(n)
	return strings.TrimSpace(b.String())
}
