package roles

// 固定角色名称
const (
	RoleIdea          = "idea"
	RoleResearch      = "research"
	RoleDesign        = "design"
	RoleTesting       = "testing"
	RoleDeployment    = "deployment"
	RoleDocumentation = "documentation"
)

// Definition 角色定义（从内置 YAML 加载）
type Definition struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`

	// 行为配置
	Instruction   string   `yaml:"instruction" json:"instruction"`      // System Prompt
	Tools         []string `yaml:"tools" json:"tools"`                  // 工具名称列表
	MaxIterations int      `yaml:"maxIterations" json:"max_iterations"` // 最大迭代次数

	Source string `yaml:"-" json:"source"` // 定义来源（运行时填充）
}

// HasTool 检查角色是否配置了指定工具
func (d *Definition) HasTool(toolName string) bool {
	for _, t := range d.Tools {
		if t == toolName {
			return true
		}
	}
	return false
}
