// Package ollama 检查本地模型运行时是否可用
package ollama

import (
	"context"
	"os/exec"
	"strings"

	"k8s.io/klog/v2"
)

// Probe 本地模型运行时探测
type Probe interface {
	// Installed 运行时是否已安装且可执行
	Installed(ctx context.Context) bool
	// HasModel 指定模型是否出现在本地模型列表中
	HasModel(ctx context.Context, name string) bool
}

// Runner 执行外部命令并返回标准输出
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner 使用 os/exec 执行命令
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// CLIProbe 通过 ollama 命令行进行探测，不做重试
type CLIProbe struct {
	Binary string
	Run    Runner
}

// NewCLIProbe 创建命令行探测器
func NewCLIProbe() *CLIProbe {
	return &CLIProbe{Binary: "ollama", Run: ExecRunner}
}

// Installed 执行 `ollama --version`，退出码为 0 即视为已安装
func (p *CLIProbe) Installed(ctx context.Context) bool {
	if _, err := p.Run(ctx, p.Binary, "--version"); err != nil {
		klog.V(6).Infof("[CLIProbe.Installed] %s 不可用: %v", p.Binary, err)
		return false
	}
	return true
}

// HasModel 执行 `ollama list`，任意一行包含模型名即视为已安装
func (p *CLIProbe) HasModel(ctx context.Context, name string) bool {
	out, err := p.Run(ctx, p.Binary, "list")
	if err != nil {
		klog.V(6).Infof("[CLIProbe.HasModel] %s list 执行失败: %v", p.Binary, err)
		return false
	}

	for _, line := range strings.Split(string(out), "\n") {
		if strings.Contains(line, name) {
			return true
		}
	}
	return false
}
