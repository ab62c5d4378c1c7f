package ideaflow

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"
	"k8s.io/klog/v2"

	"github.com/opendeepwiki/ideamaker/internal/pkg/roles"
	"github.com/opendeepwiki/ideamaker/internal/pkg/terms"
)

// Stage 流水线中的一个阶段
// Run 只读取先前阶段的产物，并写入 Produces
type Stage struct {
	Name     string
	Produces Artifact
	Run      func(ctx context.Context, state *State) error
}

// Stages 返回固定顺序的流水线：
// idea -> key-terms -> research -> schema -> tests -> deployment-plan
func Stages(gen roles.Generator, registry map[string]*roles.Role) ([]Stage, error) {
	for _, name := range []string{roles.RoleIdea, roles.RoleResearch, roles.RoleDesign, roles.RoleTesting, roles.RoleDeployment} {
		if registry[name] == nil {
			return nil, fmt.Errorf("%w: %s", ErrRoleMissing, name)
		}
	}

	return []Stage{
		generate(gen, registry[roles.RoleIdea], "Generating project idea", ArtifactIdea, func(s *State) (string, error) {
			return IdeaPrompt(s.Theme()), nil
		}),
		{
			Name:     "Extracting key terms",
			Produces: ArtifactKeyTerms,
			Run: func(ctx context.Context, s *State) error {
				idea, err := s.Get(ArtifactIdea)
				if err != nil {
					return err
				}
				keyTerms := terms.Extract(idea)
				klog.V(6).Infof("[Stages] 关键词提取完成: %v", keyTerms)
				return s.SetKeyTerms(keyTerms)
			},
		},
		generate(gen, registry[roles.RoleResearch], "Researching", ArtifactResearch, func(s *State) (string, error) {
			keyTerms, err := s.KeyTerms()
			if err != nil {
				return "", err
			}
			return ResearchPrompt(keyTerms), nil
		}),
		generate(gen, registry[roles.RoleDesign], "Designing project schema", ArtifactSchema, func(s *State) (string, error) {
			idea, err := s.Get(ArtifactIdea)
			if err != nil {
				return "", err
			}
			return DesignPrompt(idea), nil
		}),
		generate(gen, registry[roles.RoleTesting], "Generating unit tests", ArtifactTests, func(s *State) (string, error) {
			design, err := s.Get(ArtifactSchema)
			if err != nil {
				return "", err
			}
			return TestingPrompt(design), nil
		}),
		generate(gen, registry[roles.RoleDeployment], "Planning deployment", ArtifactDeploymentPlan, func(s *State) (string, error) {
			idea, err := s.Get(ArtifactIdea)
			if err != nil {
				return "", err
			}
			return DeploymentPrompt(idea), nil
		}),
	}, nil
}

// generate 构造调用单个角色的阶段：一条用户消息输入，取最后一条消息内容作为产物
func generate(gen roles.Generator, role *roles.Role, name string, produces Artifact, prompt func(*State) (string, error)) Stage {
	return Stage{
		Name:     name,
		Produces: produces,
		Run: func(ctx context.Context, s *State) error {
			content, err := prompt(s)
			if err != nil {
				return err
			}

			klog.V(6).Infof("[Stages] 调用角色 %s: promptLength=%d", role.Name, len(content))
			out, err := gen.Generate(ctx, role, []*schema.Message{schema.UserMessage(content)})
			if err != nil {
				return fmt.Errorf("%s: %w", role.Name, err)
			}

			text, err := roles.LastContent(out)
			if err != nil {
				return fmt.Errorf("%s: %w", role.Name, err)
			}
			return s.Set(produces, text)
		},
	}
}
