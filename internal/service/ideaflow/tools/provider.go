package tools

import (
	"fmt"

	"github.com/cloudwego/eino/components/tool"
)

// Provider 按名称提供工作流可用的工具，实现 roles.ToolProvider
type Provider struct {
	searchInternet *SearchInternetTool
}

// NewProvider 创建工具提供者
func NewProvider(searchInternet *SearchInternetTool) *Provider {
	return &Provider{searchInternet: searchInternet}
}

// GetTool 获取指定名称的工具
func (p *Provider) GetTool(name string) (tool.BaseTool, error) {
	switch name {
	case SearchInternetToolName:
		if p.searchInternet == nil {
			return nil, fmt.Errorf("tool not configured: %s", name)
		}
		return p.searchInternet, nil
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// ListTools 列出所有可用工具名称
func (p *Provider) ListTools() []string {
	return []string{SearchInternetToolName}
}
