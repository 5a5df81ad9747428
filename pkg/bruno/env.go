package bruno

import (
	"strings"

	"github.com/getmockd/brumigrate/pkg/workspace"
)

// ParseEnvironmentContent scans an environment .yml document line by line.
//
// This is not a YAML parser. A trimmed line starting with "variables:" opens
// the variable section and every later trimmed line starting with "- name:"
// is taken as a variable, whatever its indentation or enclosing key. The
// environment name is the first unindented "name:" line, or stem.
func ParseEnvironmentContent(stem string, content []byte) *workspace.Node {
	lines := strings.Split(string(content), "\n")

	env := &workspace.Node{
		Name:      stem,
		Kind:      workspace.KindEnvironment,
		Variables: []string{},
	}

	inVariables := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "variables:") {
			inVariables = true
			continue
		}
		if inVariables && strings.HasPrefix(line, "- name:") {
			env.Variables = append(env.Variables, strings.TrimSpace(strings.ReplaceAll(line, "- name:", "")))
		}
	}

	for _, line := range lines {
		if strings.HasPrefix(line, "name:") {
			env.Name = strings.TrimSpace(strings.ReplaceAll(line, "name:", ""))
			break
		}
	}
	return env
}
