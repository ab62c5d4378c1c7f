// Package roles 定义工作流中固定的角色（Agent），并负责将其绑定到生成能力
package roles

import "errors"

// 错误定义
var (
	// ErrRoleNotFound 角色不存在
	ErrRoleNotFound = errors.New("role not found")

	// ErrInvalidConfig 角色定义无效
	ErrInvalidConfig = errors.New("invalid role config")

	// ErrInvalidName 角色名称格式无效
	ErrInvalidName = errors.New("invalid role name")

	// ErrToolNotFound 工具不存在
	ErrToolNotFound = errors.New("tool not found")

	// ErrNoAgentOutput 角色未产生任何输出
	ErrNoAgentOutput = errors.New("agent produced no output")
)
