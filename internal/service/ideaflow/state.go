package ideaflow

import (
	"fmt"
	"strings"
	"sync"
)

// Artifact 工作流产物名称
type Artifact string

const (
	ArtifactIdea           Artifact = "idea"
	ArtifactKeyTerms       Artifact = "key-terms"
	ArtifactResearch       Artifact = "research"
	ArtifactSchema         Artifact = "schema"
	ArtifactTests          Artifact = "tests"
	ArtifactDeploymentPlan Artifact = "deployment-plan"
)

// State 一次运行中累积的产物
// 每个产物只能写入一次，读取未生成的产物返回 ErrArtifactNotReady
type State struct {
	mu       sync.RWMutex
	theme    string
	texts    map[Artifact]string
	keyTerms []string
	order    []Artifact
}

// NewState 创建运行状态，theme 为空表示不限定主题
func NewState(theme string) *State {
	return &State{
		theme: theme,
		texts: make(map[Artifact]string),
	}
}

// Theme 返回本次运行的主题
func (s *State) Theme() string {
	return s.theme
}

// Set 写入文本产物
func (s *State) Set(name Artifact, value string) error {
	if name == ArtifactKeyTerms {
		return s.SetKeyTerms(strings.Fields(value))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.has(name) {
		return fmt.Errorf("%w: %s", ErrArtifactAlreadySet, name)
	}
	s.texts[name] = value
	s.order = append(s.order, name)
	return nil
}

// Get 读取文本产物
func (s *State) Get(name Artifact) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.has(name) {
		return "", fmt.Errorf("%w: %s", ErrArtifactNotReady, name)
	}
	if name == ArtifactKeyTerms {
		return strings.Join(s.keyTerms, " "), nil
	}
	return s.texts[name], nil
}

// SetKeyTerms 写入关键词产物
func (s *State) SetKeyTerms(keyTerms []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.has(ArtifactKeyTerms) {
		return fmt.Errorf("%w: %s", ErrArtifactAlreadySet, ArtifactKeyTerms)
	}
	s.keyTerms = append(make([]string, 0, len(keyTerms)), keyTerms...)
	s.order = append(s.order, ArtifactKeyTerms)
	return nil
}

// KeyTerms 读取关键词产物（返回副本）
func (s *State) KeyTerms() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.has(ArtifactKeyTerms) {
		return nil, fmt.Errorf("%w: %s", ErrArtifactNotReady, ArtifactKeyTerms)
	}
	return append([]string(nil), s.keyTerms...), nil
}

// Produced 按生成顺序返回已写入的产物
func (s *State) Produced() []Artifact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Artifact(nil), s.order...)
}

func (s *State) has(name Artifact) bool {
	for _, a := range s.order {
		if a == name {
			return true
		}
	}
	return false
}
