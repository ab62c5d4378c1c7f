// Package ideaflow 按固定顺序调用各角色，生成项目创意文档
package ideaflow

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/opendeepwiki/ideamaker/config"
	"github.com/opendeepwiki/ideamaker/internal/pkg/ollama"
	"github.com/opendeepwiki/ideamaker/internal/pkg/render"
	"github.com/opendeepwiki/ideamaker/internal/pkg/roles"
)

const (
	DefaultOutputPath   = "project_documentation.pdf"
	DefaultMarkdownPath = "project_documentation.md"
	DefaultModel        = "llama3.2"
	documentTitle       = "Project Documentation"
)

// RunOptions 单次运行参数
type RunOptions struct {
	Theme      string
	Model      string
	OutputPath string
}

// Result 运行结果
type Result struct {
	RunID        string
	MarkdownPath string
	OutputPath   string
	Document     string
}

// Workflow 工作流编排器
type Workflow struct {
	generator roles.Generator
	roles     map[string]*roles.Role
	probe     ollama.Probe
	renderFor func(path string) render.Renderer
	progress  io.Writer
	cfg       config.WorkflowConfig
}

// Option 工作流可选配置
type Option func(*Workflow)

// WithProgress 设置面向用户的进度输出
func WithProgress(w io.Writer) Option {
	return func(wf *Workflow) { wf.progress = w }
}

// WithRenderer 固定使用指定渲染器，默认按输出文件扩展名选择
func WithRenderer(r render.Renderer) Option {
	return func(wf *Workflow) {
		wf.renderFor = func(string) render.Renderer { return r }
	}
}

// New 创建工作流
func New(cfg config.WorkflowConfig, generator roles.Generator, registry map[string]*roles.Role, probe ollama.Probe, opts ...Option) *Workflow {
	wf := &Workflow{
		generator: generator,
		roles:     registry,
		probe:     probe,
		renderFor: render.ForPath,
		progress:  io.Discard,
		cfg:       cfg,
	}
	for _, opt := range opts {
		opt(wf)
	}
	if wf.cfg.MarkdownPath == "" {
		wf.cfg.MarkdownPath = DefaultMarkdownPath
	}
	return wf
}

// Run 执行完整工作流
// 前置检查失败时不调用任何角色；任一阶段失败时后续阶段不再执行，也不写出任何文件
func (w *Workflow) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.OutputPath == "" {
		opts.OutputPath = DefaultOutputPath
	}
	runID := uuid.NewString()
	klog.V(6).Infof("[Workflow.Run] [%s] 开始运行: theme=%q, model=%s, output=%s", runID, opts.Theme, opts.Model, opts.OutputPath)

	if !w.probe.Installed(ctx) {
		fmt.Fprintln(w.progress, "Error: 'ollama' is not installed. Please install it and try again.")
		return nil, ErrRuntimeUnavailable
	}
	if !w.probe.HasModel(ctx, opts.Model) {
		fmt.Fprintf(w.progress, "Error: Model '%s' is not installed. Please run 'ollama pull %s' to install it.\n", opts.Model, opts.Model)
		return nil, fmt.Errorf("%w: %s (run 'ollama pull %s')", ErrModelUnavailable, opts.Model, opts.Model)
	}

	stages, err := Stages(w.generator, w.roles)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(w.progress, "Running project workflow...")
	state := NewState(opts.Theme)
	for i, stage := range stages {
		fmt.Fprintf(w.progress, "[%d/%d] %s...\n", i+1, len(stages), stage.Name)
		if err := w.runStage(ctx, stage, state); err != nil {
			klog.Errorf("[Workflow.Run] [%s] 阶段 %s 失败: %v", runID, stage.Produces, err)
			return nil, fmt.Errorf("%w: %s: %w", ErrGenerationFailed, stage.Produces, err)
		}
	}

	document, err := AssembleDocument(state)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	result := &Result{
		RunID:        runID,
		MarkdownPath: w.cfg.MarkdownPath,
		OutputPath:   opts.OutputPath,
		Document:     document,
	}

	if err := render.WriteMarkdown(result.MarkdownPath, document); err != nil {
		return nil, fmt.Errorf("%w: write %s: %w", ErrRenderFailed, result.MarkdownPath, err)
	}

	subject := "run " + runID
	if opts.Theme != "" {
		subject = fmt.Sprintf("%s (run %s)", opts.Theme, runID)
	}
	doc := render.Document{Title: documentTitle, Subject: subject, Markdown: document}
	if err := w.renderFor(opts.OutputPath).Render(ctx, doc, opts.OutputPath); err != nil {
		klog.Errorf("[Workflow.Run] [%s] 渲染失败: %v", runID, err)
		return nil, fmt.Errorf("%w: %s (partial markdown kept at %s): %w", ErrRenderFailed, opts.OutputPath, result.MarkdownPath, err)
	}

	fmt.Fprintf(w.progress, "Project workflow completed and documentation generated: %s\n", opts.OutputPath)
	klog.V(6).Infof("[Workflow.Run] [%s] 运行完成", runID)
	return result, nil
}

func (w *Workflow) runStage(ctx context.Context, stage Stage, state *State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.cfg.StepTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.cfg.StepTimeout)
		defer cancel()
	}
	return stage.Run(ctx, state)
}
