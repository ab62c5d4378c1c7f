package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

// 必填的推理服务配置项（环境变量名）
const (
	EnvAPIKey    = "OPENAI_API_KEY"
	EnvModelName = "OPENAI_MODEL_NAME"
	EnvBaseURL   = "OPENAI_BASE_URL"
)

// ErrMissingConfiguration 必填配置缺失
var ErrMissingConfiguration = errors.New("missing configuration")

type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	Search   SearchConfig   `yaml:"search"`
	Workflow WorkflowConfig `yaml:"workflow"`
}

type LLMConfig struct {
	APIURL    string `yaml:"api_url"`
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

type SearchConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	CacheSize int           `yaml:"cache_size"`
}

type WorkflowConfig struct {
	MarkdownPath string        `yaml:"markdown_path"`
	StepTimeout  time.Duration `yaml:"step_timeout"` // 0 表示不限制
}

// Default 返回默认配置
// LLM 三项必填配置没有默认值，必须由配置文件或环境变量提供
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			MaxTokens: 4096,
		},
		Search: SearchConfig{
			BaseURL:   "https://html.duckduckgo.com/html/",
			Timeout:   15 * time.Second,
			CacheSize: 32,
		},
		Workflow: WorkflowConfig{
			MarkdownPath: "project_documentation.md",
		},
	}
}

// Load 加载配置
// 优先级：环境变量 > .env 文件 > 配置文件 > 默认值
// path 为空时依次尝试 CONFIG_PATH 与 config.yaml，文件不存在不视为错误
func Load(path string) (*Config, error) {
	config := Default()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	explicit := path != ""
	if path == "" {
		path = "config.yaml"
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, err
		}
		klog.V(6).Infof("[config.Load] 已读取配置文件: %s", path)
	case explicit || !os.IsNotExist(err):
		return nil, err
	}

	// .env 中的值不会覆盖已存在的环境变量
	if err := godotenv.Load(); err == nil {
		klog.V(6).Infof("[config.Load] 已加载 .env")
	}

	applyEnv(config)
	return config, nil
}

func applyEnv(config *Config) {
	// 环境变量优先级高于配置文件
	if apiKey := os.Getenv(EnvAPIKey); apiKey != "" {
		config.LLM.APIKey = apiKey
	}
	if baseURL := os.Getenv(EnvBaseURL); baseURL != "" {
		config.LLM.APIURL = baseURL
	}
	if model := os.Getenv(EnvModelName); model != "" {
		config.LLM.Model = model
	}
	if maxTokens := os.Getenv("OPENAI_MAX_TOKENS"); maxTokens != "" {
		if n, err := strconv.Atoi(maxTokens); err == nil {
			config.LLM.MaxTokens = n
		}
	}
	if searchURL := os.Getenv("SEARCH_BASE_URL"); searchURL != "" {
		config.Search.BaseURL = searchURL
	}
}

// Missing 返回缺失的必填配置项名称，顺序固定
func (c LLMConfig) Missing() []string {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, EnvAPIKey)
	}
	if c.Model == "" {
		missing = append(missing, EnvModelName)
	}
	if c.APIURL == "" {
		missing = append(missing, EnvBaseURL)
	}
	return missing
}
