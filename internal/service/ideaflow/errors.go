package ideaflow

import "errors"

// 工作流错误类型，调用方通过 errors.Is 区分
var (
	// ErrRuntimeUnavailable 本地模型运行时未安装
	ErrRuntimeUnavailable = errors.New("'ollama' is not installed")
	// ErrModelUnavailable 指定模型未安装
	ErrModelUnavailable = errors.New("model is not installed")
	// ErrGenerationFailed 某个角色生成失败
	ErrGenerationFailed = errors.New("generation failed")
	// ErrRenderFailed 文档渲染失败
	ErrRenderFailed = errors.New("render failed")

	// ErrArtifactAlreadySet 产物重复写入
	ErrArtifactAlreadySet = errors.New("artifact already set")
	// ErrArtifactNotReady 产物尚未生成
	ErrArtifactNotReady = errors.New("artifact not ready")
	// ErrRoleMissing 工作流依赖的角色未注册
	ErrRoleMissing = errors.New("role is not registered")
)
