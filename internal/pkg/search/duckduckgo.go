package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"k8s.io/klog/v2"
)

const (
	defaultDuckDuckGoURL = "https://html.duckduckgo.com/html/"
	userAgent            = "Mozilla/5.0 (compatible; ideamaker/1.0)"
)

// DuckDuckGo 基于 DuckDuckGo HTML 接口的 Searcher
type DuckDuckGo struct {
	baseURL string
	client  *http.Client
}

// NewDuckDuckGo 创建 DuckDuckGo 搜索客户端
// baseURL 为空时使用官方 HTML 接口；timeout 为 0 时不设置超时
func NewDuckDuckGo(baseURL string, timeout time.Duration) *DuckDuckGo {
	if baseURL == "" {
		baseURL = defaultDuckDuckGoURL
	}
	return &DuckDuckGo{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Search 执行搜索，返回最多 maxResults 条结果（maxResults <= 0 表示不限制）
func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	klog.V(6).Infof("[DuckDuckGo.Search] 开始搜索: query=%s, max=%d", query, maxResults)

	form := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrSearchFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	results, err := parseResults(resp.Body, maxResults)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	klog.V(6).Infof("[DuckDuckGo.Search] 搜索完成: results=%d", len(results))
	return results, nil
}

// parseResults 解析结果页面
// 结果标题为 a.result__a，摘要为 .result__snippet，广告块 .result--ad 跳过
func parseResults(r io.Reader, maxResults int) ([]Result, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case hasClass(n, "result--ad"):
				return
			case n.Data == "a" && hasClass(n, "result__a"):
				if maxResults <= 0 || len(results) < maxResults {
					results = append(results, Result{
						Title: textOf(n),
						URL:   resolveHref(attr(n, "href")),
					})
				}
				return
			case hasClass(n, "result__snippet"):
				if len(results) > 0 && results[len(results)-1].Snippet == "" {
					results[len(results)-1].Snippet = textOf(n)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return results, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// resolveHref 还原 DuckDuckGo 跳转链接中的真实地址
func resolveHref(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}
