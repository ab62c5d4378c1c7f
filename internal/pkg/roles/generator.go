package roles

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/schema"
	"k8s.io/klog/v2"
)

// Generator 生成能力：以角色和消息序列为输入，返回响应消息序列
// 响应的最后一条消息即为可用文本
type Generator interface {
	Generate(ctx context.Context, role *Role, messages []*schema.Message) ([]*schema.Message, error)
}

// AgentGenerator 通过 Eino ADK Runner 执行角色
type AgentGenerator struct{}

// Generate 运行角色对应的 Agent，收集所有输出消息（包括工具调用与工具结果）
func (AgentGenerator) Generate(ctx context.Context, role *Role, messages []*schema.Message) ([]*schema.Message, error) {
	if role == nil {
		return nil, fmt.Errorf("%w: nil role", ErrRoleNotFound)
	}

	agent, err := role.Agent(ctx)
	if err != nil {
		return nil, err
	}

	runner := adk.NewRunner(ctx, adk.RunnerConfig{Agent: agent})
	iter := runner.Run(ctx, messages)

	out := make([]*schema.Message, 0)
	for {
		select {
		case <-ctx.Done():
			return out, fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		event, ok := iter.Next()
		if !ok {
			break
		}
		if event.Err != nil {
			klog.Errorf("[AgentGenerator.Generate] 角色 %s 执行出错: %v", role.Name, event.Err)
			return out, event.Err
		}
		if event.Output != nil && event.Output.MessageOutput != nil && event.Output.MessageOutput.Message != nil {
			msg := event.Output.MessageOutput.Message
			out = append(out, msg)
			klog.V(6).Infof("[AgentGenerator.Generate] [%s] 收到消息: role=%s, contentLength=%d", role.Name, msg.Role, len(msg.Content))
		}
		if event.Action != nil && event.Action.Exit {
			break
		}
	}

	return out, nil
}

// LastContent 返回响应中最后一条消息的内容
// 响应为空或最后一条消息内容为空时返回 ErrNoAgentOutput
func LastContent(messages []*schema.Message) (string, error) {
	if len(messages) == 0 {
		return "", ErrNoAgentOutput
	}
	last := messages[len(messages)-1]
	if last == nil || last.Content == "" {
		return "", ErrNoAgentOutput
	}
	return last.Content, nil
}
