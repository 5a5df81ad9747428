package bruno

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/getmockd/brumigrate/pkg/workspace"
)

func TestParseEnvironmentContent(t *testing.T) {
	content := `# exported from postman
name: Development
color: blue
variables:
  - name: baseUrl
    value: https://api.example.com
  - name: token
    value: secret
    enabled: true
  - name: timeout
    value: 30
`
	env := ParseEnvironmentContent("dev", []byte(content))
	assert.Equal(t, "Development", env.Name)
	assert.Equal(t, workspace.KindEnvironment, env.Kind)
	assert.Equal(t, []string{"baseUrl", "token", "timeout"}, env.Variables)
}

func TestParseEnvironmentContent_NameFallback(t *testing.T) {
	content := "  name: indented\nvariables:\n- name: a\n"
	env := ParseEnvironmentContent("staging", []byte(content))
	assert.Equal(t, "staging", env.Name)
	assert.Equal(t, []string{"a"}, env.Variables)
}

func TestParseEnvironmentContent_NamesBeforeSectionIgnored(t *testing.T) {
	content := "name: qa\nheaders:\n  - name: X-Trace\nvariables:\n  - name: one\nsecrets:\n  - name: two\n"
	env := ParseEnvironmentContent("qa", []byte(content))
	// Lossy: the scanner never leaves the variables section.
	assert.Equal(t, []string{"one", "two"}, env.Variables)
}

func TestParseEnvironmentContent_Empty(t *testing.T) {
	env := ParseEnvironmentContent("empty", nil)
	assert.Equal(t, "empty", env.Name)
	assert.Empty(t, env.Variables)
	assert.Equal(t, 0, env.VariableCount())
}

func TestParseEnvironmentContent_CRLF(t *testing.T) {
	env := ParseEnvironmentContent("win", []byte("name: Win\r\nvariables:\r\n  - name: a\r\n"))
	assert.Equal(t, "Win", env.Name)
	assert.Equal(t, []string{"a"}, env.Variables)
}
