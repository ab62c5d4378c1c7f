package render

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `# Project Idea
A distributed task scheduler.

# Research Information
uses leader election
Raft-based

## Components
- API server
- Worker
  1. pull
  2. ack

> keep it simple

` + "```go\nfunc main() {}\n```" + `

---
`

func TestParseBlocks(t *testing.T) {
	blocks := parseBlocks(sample)

	kinds := make([]blockKind, 0, len(blocks))
	for _, b := range blocks {
		kinds = append(kinds, b.kind)
	}
	assert.Equal(t, []blockKind{
		blockHeading, blockParagraph,
		blockHeading, blockParagraph,
		blockHeading,
		blockListItem, blockListItem, blockListItem, blockListItem,
		blockQuote,
		blockCode,
		blockRule,
	}, kinds)

	assert.Equal(t, 1, blocks[0].level)
	assert.Equal(t, "Project Idea", blocks[0].text)
	assert.Equal(t, "uses leader election Raft-based", blocks[3].text)
	assert.Equal(t, 2, blocks[4].level)

	assert.Equal(t, "•", blocks[5].marker)
	assert.Equal(t, 1, blocks[5].depth)
	assert.Equal(t, "1.", blocks[7].marker)
	assert.Equal(t, 2, blocks[7].depth)
	assert.Equal(t, "ack", blocks[8].text)

	assert.Equal(t, "keep it simple", blocks[9].text)
	assert.Equal(t, "func main() {}", blocks[10].text)
}

func TestParseBlocks_InlineFormatting(t *testing.T) {
	blocks := parseBlocks("Use **Go** and `klog` with [eino](https://example.com).")
	require.Len(t, blocks, 1)
	assert.Equal(t, "Use Go and klog with eino.", blocks[0].text)
}

func TestParseBlocks_Table(t *testing.T) {
	blocks := parseBlocks("| Component | Technology |\n|---|---|\n| API | Go **1.24** |\n| Queue | ~~Kafka~~ NATS |\n")
	require.Len(t, blocks, 1)

	assert.Equal(t, blockTable, blocks[0].kind)
	assert.Equal(t, [][]string{
		{"Component", "Technology"},
		{"API", "Go 1.24"},
		{"Queue", "Kafka NATS"},
	}, blocks[0].rows)
}

func TestParseBlocks_TaskList(t *testing.T) {
	blocks := parseBlocks("- [x] write tests\n- [ ] deploy\n")
	require.Len(t, blocks, 2)
	assert.Equal(t, "[x] write tests", blocks[0].text)
	assert.Equal(t, "[ ] deploy", blocks[1].text)
}

func TestFitText(t *testing.T) {
	assert.Equal(t, "Client → Server 日本語", fitText("Client → Server 日本語"))
	assert.Equal(t, "Deploy \uFFFD fast", fitText("Deploy 🚀 fast"))
}

func TestForPath(t *testing.T) {
	assert.IsType(t, Markdown{}, ForPath("out/doc.md"))
	assert.IsType(t, Markdown{}, ForPath("DOC.MARKDOWN"))
	assert.IsType(t, &PDF{}, ForPath("project_documentation.pdf"))
	assert.IsType(t, &PDF{}, ForPath("noext"))
}

func TestMarkdown_Render(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doc.md")

	require.NoError(t, Markdown{}.Render(context.Background(), Document{Markdown: "# A\nfirst"}, path))
	require.NoError(t, Markdown{}.Render(context.Background(), Document{Markdown: "# B\nsecond"}, path))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# B\nsecond", string(got), "渲染应覆盖已有文件")

	assert.ErrorIs(t, Markdown{}.Render(context.Background(), Document{Markdown: "  \n"}, path), ErrEmptyDocument)
}

func TestPDF_Render(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project_documentation.pdf")

	err := NewPDF().Render(context.Background(), Document{
		Title:    "Project Documentation",
		Subject:  "task scheduler",
		Markdown: sample,
	}, path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestPDF_RenderEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	err := NewPDF().Render(context.Background(), Document{}, path)
	assert.ErrorIs(t, err, ErrEmptyDocument)
	assert.NoFileExists(t, path)
}

func TestPDF_RenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewPDF().Render(ctx, Document{Markdown: "# x"}, filepath.Join(t.TempDir(), "x.pdf"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPDF_RenderUnicode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unicode.pdf")

	markdown := "# Client → Server 日本語\n" +
		"Ünïcödé arrows → ← and Greek λ, Cyrillic Ж.\n\n" +
		"- Deploy 🚀 fast\n\n" +
		"| Layer | Note |\n|---|---|\n| Edge | Client → Server 日本語 |\n\n" +
		"```\nfn → ok\n```\n"

	err := NewPDF().Render(context.Background(), Document{Title: "Project Documentation", Subject: "日本語", Markdown: markdown}, path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
	assert.Contains(t, string(data), "DejaVu", "应内嵌 UTF-8 字体")
}
