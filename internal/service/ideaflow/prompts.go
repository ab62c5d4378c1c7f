package ideaflow

import (
	"fmt"
	"strings"
)

// IdeaPrompt 构造创意提示词，始终要求只给出一个创意
func IdeaPrompt(theme string) string {
	if strings.TrimSpace(theme) == "" {
		return "Generate a new interesting software project idea (only one)."
	}
	return fmt.Sprintf("Generate a new interesting software project idea (only one) about %s.", theme)
}

// ResearchPrompt 研究提示词，只包含提取出的关键词，不包含创意原文
func ResearchPrompt(keyTerms []string) string {
	return "Search the internet for: " + strings.Join(keyTerms, ", ")
}

func DesignPrompt(idea string) string {
	return fmt.Sprintf("Design a schema for the project: %s. Talk about the tools, technologies, and architecture. Be very organized.", idea)
}

func TestingPrompt(schema string) string {
	return fmt.Sprintf("Generate unit tests for the project based on the design: %s", schema)
}

func DeploymentPrompt(idea string) string {
	return fmt.Sprintf("Provide deployment strategies for the project: %s. Include CI/CD pipelines and best practices.", idea)
}
