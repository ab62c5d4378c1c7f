package roles

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var validNamePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// Parser 角色定义解析器
type Parser struct {
	maxNameLen        int
	maxDescriptionLen int
	maxInstructionLen int
}

// NewParser 创建解析器
func NewParser() *Parser {
	return &Parser{
		maxNameLen:        64,
		maxDescriptionLen: 1024,
		maxInstructionLen: 100 * 1024, // 100KB
	}
}

// Parse 解析 YAML 内容
// source 仅用于错误信息与日志
func (p *Parser) Parse(content []byte, source string) (*Definition, error) {
	def := &Definition{}
	if err := yaml.Unmarshal(content, def); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, source, err)
	}
	def.Source = source
	def.Instruction = strings.TrimSpace(def.Instruction)

	if err := p.Validate(def); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return def, nil
}

// Validate 校验角色定义
func (p *Parser) Validate(def *Definition) error {
	if def.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidName)
	}
	if len(def.Name) > p.maxNameLen {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, p.maxNameLen)
	}
	if !validNamePattern.MatchString(def.Name) || def.Name[0] == '-' || def.Name[len(def.Name)-1] == '-' {
		return fmt.Errorf("%w: name must contain only lowercase letters, numbers, underscores and hyphens", ErrInvalidName)
	}

	if def.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidConfig)
	}
	if len(def.Description) > p.maxDescriptionLen {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidConfig, p.maxDescriptionLen)
	}

	if def.Instruction == "" {
		return fmt.Errorf("%w: instruction is required", ErrInvalidConfig)
	}
	if len(def.Instruction) > p.maxInstructionLen {
		return fmt.Errorf("%w: instruction exceeds %d characters", ErrInvalidConfig, p.maxInstructionLen)
	}

	if def.MaxIterations <= 0 {
		return fmt.Errorf("%w: maxIterations must be positive", ErrInvalidConfig)
	}
	if def.MaxIterations > 100 {
		return fmt.Errorf("%w: maxIterations cannot exceed 100", ErrInvalidConfig)
	}

	return nil
}
