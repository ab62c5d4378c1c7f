package roles

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatModel struct {
	reply  string
	err    error
	inputs [][]*schema.Message
}

func (m *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	return schema.AssistantMessage(m.reply, nil), nil
}

func (m *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	return schema.StreamReaderFromArray([]*schema.Message{schema.AssistantMessage(m.reply, nil)}), nil
}

func (m *fakeChatModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return m, nil
}

type fakeTool struct{ name string }

func (t *fakeTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{Name: t.name, Desc: "fake"}, nil
}

func (t *fakeTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	return "ok", nil
}

type fakeToolProvider struct{ names []string }

func (p fakeToolProvider) ListTools() []string {
	if p.names == nil {
		return []string{"search_internet"}
	}
	return p.names
}

func (p fakeToolProvider) GetTool(name string) (tool.BaseTool, error) {
	if name == "search_internet" && p.names == nil {
		return &fakeTool{name: name}, nil
	}
	return nil, errors.New("unknown tool")
}

func TestBuiltin(t *testing.T) {
	defs, err := Builtin()
	require.NoError(t, err)

	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
		assert.NotEmpty(t, def.Instruction, "角色 %s 缺少指令", def.Name)
	}
	assert.ElementsMatch(t, []string{
		RoleIdea, RoleResearch, RoleDesign, RoleTesting, RoleDeployment, RoleDocumentation,
	}, names)
}

func TestBuild(t *testing.T) {
	chatModel := &fakeChatModel{}
	roles, err := Build(chatModel, fakeToolProvider{})
	require.NoError(t, err)
	require.Len(t, roles, 6)

	research := roles[RoleResearch]
	require.NotNil(t, research)
	assert.True(t, research.HasTool("search_internet"))
	require.Len(t, research.Tools, 1)

	for name, role := range roles {
		assert.Same(t, chatModel, role.Model, "角色 %s 应共享同一个生成能力", name)
		if name != RoleResearch {
			assert.Empty(t, role.Tools, "只有研究角色绑定搜索工具")
		}
	}
	assert.Equal(t, "Generate a new interesting software project idea.", roles[RoleIdea].Instruction)
}

func TestBuild_MissingTool(t *testing.T) {
	_, err := Build(&fakeChatModel{}, nil)
	assert.ErrorIs(t, err, ErrToolNotFound)
}

func TestBuild_UnknownToolListsAvailable(t *testing.T) {
	_, err := Build(&fakeChatModel{}, fakeToolProvider{names: []string{"read_file", "list_dir"}})
	require.ErrorIs(t, err, ErrToolNotFound)
	assert.Contains(t, err.Error(), "search_internet (role research, available: read_file, list_dir)")
}

func TestParser_Validate(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name    string
		def     *Definition
		wantErr error
	}{
		{"valid", &Definition{Name: "idea", Description: "d", Instruction: "i", MaxIterations: 1}, nil},
		{"empty name", &Definition{Description: "d", Instruction: "i", MaxIterations: 1}, ErrInvalidName},
		{"upper case name", &Definition{Name: "Idea", Description: "d", Instruction: "i", MaxIterations: 1}, ErrInvalidName},
		{"leading hyphen", &Definition{Name: "-idea", Description: "d", Instruction: "i", MaxIterations: 1}, ErrInvalidName},
		{"no description", &Definition{Name: "idea", Instruction: "i", MaxIterations: 1}, ErrInvalidConfig},
		{"no instruction", &Definition{Name: "idea", Description: "d", MaxIterations: 1}, ErrInvalidConfig},
		{"zero iterations", &Definition{Name: "idea", Description: "d", Instruction: "i"}, ErrInvalidConfig},
		{"too many iterations", &Definition{Name: "idea", Description: "d", Instruction: "i", MaxIterations: 101}, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parser.Validate(tt.def)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParser_Parse(t *testing.T) {
	content := `name: research
description: Research Assistant
instruction: |
  Look things up.
tools:
  - search_internet
maxIterations: 4
`
	def, err := NewParser().Parse([]byte(content), "research.yaml")
	require.NoError(t, err)

	assert.Equal(t, "research", def.Name)
	assert.Equal(t, "Look things up.", def.Instruction)
	assert.Equal(t, []string{"search_internet"}, def.Tools)
	assert.Equal(t, 4, def.MaxIterations)
	assert.Equal(t, "research.yaml", def.Source)

	_, err = NewParser().Parse([]byte("name: [unclosed"), "bad.yaml")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLastContent(t *testing.T) {
	_, err := LastContent(nil)
	assert.ErrorIs(t, err, ErrNoAgentOutput)

	_, err = LastContent([]*schema.Message{schema.AssistantMessage("", nil)})
	assert.ErrorIs(t, err, ErrNoAgentOutput)

	got, err := LastContent([]*schema.Message{
		schema.AssistantMessage("first", nil),
		schema.AssistantMessage("last", nil),
	})
	require.NoError(t, err)
	assert.Equal(t, "last", got)
}

func TestAgentGenerator_Generate(t *testing.T) {
	chatModel := &fakeChatModel{reply: "A distributed task scheduler."}
	roles, err := Build(chatModel, fakeToolProvider{})
	require.NoError(t, err)

	out, err := AgentGenerator{}.Generate(context.Background(), roles[RoleIdea], []*schema.Message{
		schema.UserMessage("Generate a new interesting software project idea (only one)."),
	})
	require.NoError(t, err)

	content, err := LastContent(out)
	require.NoError(t, err)
	assert.Equal(t, "A distributed task scheduler.", content)

	require.NotEmpty(t, chatModel.inputs)
	var joined strings.Builder
	for _, msg := range chatModel.inputs[0] {
		joined.WriteString(msg.Content)
		joined.WriteString("\n")
	}
	assert.Contains(t, joined.String(), roles[RoleIdea].Instruction)
	assert.Contains(t, joined.String(), "(only one)")
}

func TestAgentGenerator_GenerateError(t *testing.T) {
	chatModel := &fakeChatModel{err: errors.New("connection refused")}
	roles, err := Build(chatModel, fakeToolProvider{})
	require.NoError(t, err)

	_, err = AgentGenerator{}.Generate(context.Background(), roles[RoleDesign], []*schema.Message{
		schema.UserMessage("design it"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
