package roles

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/compose"
	"k8s.io/klog/v2"
)

// ToolProvider 按名称提供工具
type ToolProvider interface {
	GetTool(name string) (tool.BaseTool, error)
	ListTools() []string
}

// Role 绑定了生成能力（以及可选工具）的角色，构造后不可变
type Role struct {
	Definition
	Model model.ToolCallingChatModel
	Tools []tool.BaseTool
}

// Build 使用内置定义构建全部固定角色
// tools 为 nil 时，声明了工具的角色会构建失败
func Build(chatModel model.ToolCallingChatModel, tools ToolProvider) (map[string]*Role, error) {
	defs, err := Builtin()
	if err != nil {
		return nil, err
	}

	roles := make(map[string]*Role, len(defs))
	for _, def := range defs {
		role := &Role{Definition: *def, Model: chatModel}
		for _, name := range def.Tools {
			if tools == nil {
				return nil, fmt.Errorf("%w: %s (role %s)", ErrToolNotFound, name, def.Name)
			}
			t, err := tools.GetTool(name)
			if err != nil {
				return nil, fmt.Errorf("%w: %s (role %s, available: %s): %v",
					ErrToolNotFound, name, def.Name, strings.Join(tools.ListTools(), ", "), err)
			}
			role.Tools = append(role.Tools, t)
		}
		roles[def.Name] = role
	}

	klog.V(6).Infof("[roles.Build] 角色构建完成: count=%d", len(roles))
	return roles, nil
}

// Agent 创建该角色对应的 ChatModelAgent
func (r *Role) Agent(ctx context.Context) (adk.Agent, error) {
	cfg := &adk.ChatModelAgentConfig{
		Name:          r.Name,
		Description:   r.Description,
		Instruction:   r.Instruction,
		Model:         r.Model,
		MaxIterations: r.MaxIterations,
	}
	if len(r.Tools) > 0 {
		cfg.ToolsConfig = adk.ToolsConfig{
			ToolsNodeConfig: compose.ToolsNodeConfig{
				Tools: r.Tools,
			},
		}
	}

	agent, err := adk.NewChatModelAgent(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s agent: %w", r.Name, err)
	}
	return agent, nil
}
