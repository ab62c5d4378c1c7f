package roles

import (
	"embed"
	"fmt"
	"path"
	"sort"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Builtin 加载内置的角色定义，按文件名排序
func Builtin() ([]*Definition, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	parser := NewParser()
	defs := make([]*Definition, 0, len(entries))
	for _, entry := range entries {
		file := path.Join("builtin", entry.Name())
		content, err := builtinFS.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		def, err := parser.Parse(content, file)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}
