// Package search 提供互联网搜索能力，研究角色通过它获取结果摘要
package search

import (
	"context"
	"errors"
	"strings"

	"k8s.io/klog/v2"

	"github.com/opendeepwiki/ideamaker/internal/pkg/terms"
)

// MaxResults 单次查询使用的结果条数上限
const MaxResults = 5

// 错误定义
var (
	// ErrSearchFailed 搜索后端返回错误
	ErrSearchFailed = errors.New("search failed")

	// ErrEmptyQuery 查询为空
	ErrEmptyQuery = errors.New("empty search query")
)

// Result 单条搜索结果
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Searcher 搜索后端
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// Snippets 以关键词组成查询，返回最多 MaxResults 条结果摘要，以换行拼接
func Snippets(ctx context.Context, s Searcher, keyTerms []string) (string, error) {
	query := strings.TrimSpace(terms.Query(keyTerms))
	if query == "" {
		return "", ErrEmptyQuery
	}

	results, err := s.Search(ctx, query, MaxResults)
	if err != nil {
		klog.Errorf("[search.Snippets] 搜索失败: query=%s, err=%v", query, err)
		return "", err
	}
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}

	snippets := make([]string, 0, len(results))
	for _, r := range results {
		snippets = append(snippets, r.Snippet)
	}

	klog.V(6).Infof("[search.Snippets] query=%s, results=%d", query, len(results))
	return strings.Join(snippets, "\n"), nil
}
