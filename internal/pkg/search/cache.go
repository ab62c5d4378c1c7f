package search

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"k8s.io/klog/v2"
)

// Cached 为 Searcher 增加查询结果缓存
// 研究角色在同一次运行中可能以相同关键词多次调用搜索工具
type Cached struct {
	next  Searcher
	cache *lru.Cache[string, []Result]
}

// NewCached 创建带缓存的 Searcher，size <= 0 时使用 32
func NewCached(next Searcher, size int) (*Cached, error) {
	if size <= 0 {
		size = 32
	}
	cache, err := lru.New[string, []Result](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create search cache: %w", err)
	}
	return &Cached{next: next, cache: cache}, nil
}

// Search 命中缓存时直接返回，失败结果不缓存
func (c *Cached) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	key := fmt.Sprintf("%d|%s", maxResults, query)
	if results, ok := c.cache.Get(key); ok {
		klog.V(6).Infof("[search.Cached] 命中缓存: query=%s", query)
		return results, nil
	}

	results, err := c.next.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, results)
	return results, nil
}
