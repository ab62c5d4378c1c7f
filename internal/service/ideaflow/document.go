package ideaflow

import (
	"fmt"
	"strings"
)

// Section 文档章节与其来源产物
type Section struct {
	Heading  string
	Artifact Artifact
}

// Sections 文档章节，顺序固定
var Sections = []Section{
	{Heading: "Project Idea", Artifact: ArtifactIdea},
	{Heading: "Research Information", Artifact: ArtifactResearch},
	{Heading: "Project Schema", Artifact: ArtifactSchema},
	{Heading: "Testing Information", Artifact: ArtifactTests},
	{Heading: "Deployment Strategies", Artifact: ArtifactDeploymentPlan},
}

// AssembleDocument 按固定章节顺序拼接文档
func AssembleDocument(state *State) (string, error) {
	var doc strings.Builder
	for i, section := range Sections {
		content, err := state.Get(section.Artifact)
		if err != nil {
			return "", err
		}
		if i > 0 {
			doc.WriteString("\n")
		}
		doc.WriteString(fmt.Sprintf("# %s\n%s\n", section.Heading, strings.TrimSpace(content)))
	}
	return doc.String(), nil
}
