package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/opendeepwiki/ideamaker/config"
	"github.com/opendeepwiki/ideamaker/internal/pkg/llm"
	"github.com/opendeepwiki/ideamaker/internal/pkg/ollama"
	"github.com/opendeepwiki/ideamaker/internal/pkg/roles"
	"github.com/opendeepwiki/ideamaker/internal/pkg/search"
	"github.com/opendeepwiki/ideamaker/internal/service/ideaflow"
	"github.com/opendeepwiki/ideamaker/internal/service/ideaflow/tools"
)

type rootOptions struct {
	configPath string
	theme      string
	output     string
	model      string
}

// newRootCmd 创建根命令，out 接收面向用户的输出
func newRootCmd(out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "ideamaker",
		Short:         "Generate, research, design, test and plan deployment for a software project idea",
		Long:          "Run a project workflow to generate, research, design, test, deploy, and document a software project idea.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), out, opts, probeFactory)
		},
	}
	cmd.SetOut(out)

	flags := cmd.Flags()
	flags.StringVar(&opts.theme, "theme", "", "Specific theme for the project idea.")
	flags.StringVar(&opts.output, "output", ideaflow.DefaultOutputPath, "Name of the output PDF file.")
	flags.StringVar(&opts.model, "model", ideaflow.DefaultModel, "Model to use for the agents.")
	flags.StringVar(&opts.configPath, "config", "", "config file (default: $CONFIG_PATH or ./config.yaml)")

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)

	return cmd
}

// probeFactory 测试中替换为假的运行时探测
var probeFactory = func() ollama.Probe { return ollama.NewCLIProbe() }

// reportedError 已向用户输出过的错误，main 不再重复输出
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error { return &reportedError{err: err} }

// execute 执行命令并返回退出码，命令行解析等未输出过的错误写入 errOut
func execute(cmd *cobra.Command, errOut io.Writer) int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	var r *reportedError
	if !errors.As(err, &r) {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		fmt.Fprintf(errOut, "Run '%s --help' for usage.\n", cmd.CommandPath())
	}
	return 1
}

func run(ctx context.Context, out io.Writer, opts *rootOptions, newProbe func() ollama.Probe) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(out, "An error occurred: %v\n", err)
		return reported(err)
	}
	if missing := cfg.LLM.Missing(); len(missing) > 0 {
		fmt.Fprintf(out, "Error: Missing environment variables: %s\n", strings.Join(missing, ", "))
		return reported(fmt.Errorf("%w: %s", config.ErrMissingConfiguration, strings.Join(missing, ", ")))
	}

	workflow, err := buildWorkflow(ctx, cfg, opts.model, out, newProbe())
	if err != nil {
		fmt.Fprintf(out, "An error occurred: %v\n", err)
		return reported(err)
	}

	_, err = workflow.Run(ctx, ideaflow.RunOptions{
		Theme:      opts.theme,
		Model:      opts.model,
		OutputPath: opts.output,
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ideaflow.ErrRuntimeUnavailable), errors.Is(err, ideaflow.ErrModelUnavailable):
		// 工作流已输出修复提示
		return reported(err)
	default:
		fmt.Fprintf(out, "An error occurred: %v\n", err)
		return reported(err)
	}
}

// buildWorkflow 组装搜索、工具、角色与生成能力
func buildWorkflow(ctx context.Context, cfg *config.Config, modelName string, out io.Writer, probe ollama.Probe) (*ideaflow.Workflow, error) {
	searcher, err := search.NewCached(search.NewDuckDuckGo(cfg.Search.BaseURL, cfg.Search.Timeout), cfg.Search.CacheSize)
	if err != nil {
		return nil, err
	}
	provider := tools.NewProvider(tools.NewSearchInternetTool(searcher, out))
	klog.V(6).Infof("[buildWorkflow] 可用工具: %v", provider.ListTools())

	chatModel, err := llm.NewChatModel(ctx, cfg.LLM, modelName)
	if err != nil {
		return nil, err
	}

	registry, err := roles.Build(chatModel, provider)
	if err != nil {
		return nil, err
	}

	return ideaflow.New(cfg.Workflow, roles.AgentGenerator{}, registry, probe, ideaflow.WithProgress(out)), nil
}
