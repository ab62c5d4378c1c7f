package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"k8s.io/klog/v2"

	"github.com/opendeepwiki/ideamaker/config"
)

// ErrModelNotConfigured 未指定模型名称
var ErrModelNotConfigured = errors.New("model name is not configured")

// NewChatModel 根据显式传入的配置创建 OpenAI 兼容的 ChatModel
// modelName 非空时覆盖 cfg.Model（命令行 --model）
// 返回: 实现了 model.ToolCallingChatModel 接口的实例
func NewChatModel(ctx context.Context, cfg config.LLMConfig, modelName string) (model.ToolCallingChatModel, error) {
	if modelName == "" {
		modelName = cfg.Model
	}
	if modelName == "" {
		return nil, ErrModelNotConfigured
	}

	chatCfg := &openai.ChatModelConfig{
		BaseURL: cfg.APIURL,
		APIKey:  cfg.APIKey,
		Model:   modelName,
	}
	if cfg.MaxTokens > 0 {
		maxTokens := cfg.MaxTokens
		chatCfg.MaxTokens = &maxTokens
	}

	chatModel, err := openai.NewChatModel(ctx, chatCfg)
	if err != nil {
		klog.Errorf("[llm.NewChatModel] 创建 ChatModel 失败: %v", err)
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	klog.V(6).Infof("[llm.NewChatModel] ChatModel 创建成功: model=%s, baseURL=%s", modelName, cfg.APIURL)
	return chatModel, nil
}
