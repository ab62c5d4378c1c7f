package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	"k8s.io/klog/v2"

	"github.com/opendeepwiki/ideamaker/internal/pkg/search"
	"github.com/opendeepwiki/ideamaker/internal/pkg/terms"
)

// SearchInternetToolName 搜索工具名称
const SearchInternetToolName = "search_internet"

// SearchInternetTool 互联网搜索工具
// 实现 Eino 的 tool.InvokableTool 接口，供研究角色调用
type SearchInternetTool struct {
	searcher search.Searcher
	progress io.Writer
}

// SearchInternetArgs 工具参数
type SearchInternetArgs struct {
	KeyTerms []string `json:"key_terms"`
}

// NewSearchInternetTool 创建搜索工具
// progress 用于输出面向用户的进度信息，可为 nil
func NewSearchInternetTool(searcher search.Searcher, progress io.Writer) *SearchInternetTool {
	if progress == nil {
		progress = io.Discard
	}
	return &SearchInternetTool{searcher: searcher, progress: progress}
}

// Info 返回工具信息
func (t *SearchInternetTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: SearchInternetToolName,
		Desc: "Search the internet for the given key terms and return snippets from the top 5 results, one per line.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"key_terms": {
				Type:     schema.Array,
				Desc:     "Key terms describing the project, joined into a single search query",
				ElemInfo: &schema.ParameterInfo{Type: schema.String},
				Required: true,
			},
		}),
	}, nil
}

// InvokableRun 执行搜索并返回拼接后的结果摘要
func (t *SearchInternetTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	klog.V(6).Infof("[SearchInternetTool] 执行搜索: arguments=%s", argumentsInJSON)

	var args SearchInternetArgs
	if err := json.Unmarshal([]byte(argumentsInJSON), &args); err != nil {
		klog.Errorf("[SearchInternetTool] 参数解析失败: %v", err)
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	fmt.Fprintf(t.progress, "Searching the internet for: %s\n", terms.Query(args.KeyTerms))

	snippets, err := search.Snippets(ctx, t.searcher, args.KeyTerms)
	if err != nil {
		return "", err
	}

	klog.V(6).Infof("[SearchInternetTool] 搜索完成: 结果长度=%d", len(snippets))
	return snippets, nil
}
