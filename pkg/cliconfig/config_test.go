package cliconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid defaults", mutate: func(*Config) {}},
		{name: "timeout negative", mutate: func(c *Config) { c.Timeout = -1 }, wantErr: "timeout -1 is out of range"},
		{name: "timeout too high", mutate: func(c *Config) { c.Timeout = 9999 }, wantErr: "timeout 9999 is out of range"},
		{name: "concurrency too high", mutate: func(c *Config) { c.Concurrency = 100 }, wantErr: "concurrency 100 is out of range"},
		{name: "relative api url", mutate: func(c *Config) { c.PostmanAPIURL = "api.getpostman.com" }, wantErr: "not an absolute URL"},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "logFormat \"xml\""},
		{name: "json log format", mutate: func(c *Config) { c.LogFormat = "JSON" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewDefault(t *testing.T) {
	cfg := NewDefault()
	assert.Equal(t, "https://api.getpostman.com", cfg.PostmanAPIURL)
	assert.Equal(t, DefaultPostmanExportFolder, cfg.PostmanExportFolder)
	assert.True(t, cfg.ExportPostmanData)
	assert.True(t, cfg.ImportGlobalVariables)
	assert.False(t, cfg.ExportWorkspaceList)
	assert.Equal(t, SourceDefault, cfg.Sources["brunoWorkspaceFolder"])
}

func TestMergeConfig(t *testing.T) {
	t.Run("merges non-zero values", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, &Config{
			PostmanExportFolder: "exports",
			Timeout:             10,
		}, SourceLocal)

		assert.Equal(t, "exports", target.PostmanExportFolder)
		assert.Equal(t, 10, target.Timeout)
		assert.Equal(t, SourceLocal, target.Sources["postmanExportFolder"])
		assert.Equal(t, SourceDefault, target.Sources["logLevel"])
	})

	t.Run("explicit false with SetFields", func(t *testing.T) {
		target := NewDefault()
		target.SkipAlreadyExported = true
		MergeConfig(target, &Config{SetFields: map[string]bool{"skipAlreadyExported": true}}, SourceLocal)
		assert.False(t, target.SkipAlreadyExported)
		assert.Equal(t, SourceLocal, target.Sources["skipAlreadyExported"])
	})

	t.Run("false without SetFields is ignored", func(t *testing.T) {
		target := NewDefault()
		target.ExportPostmanData = true
		MergeConfig(target, &Config{}, SourceLocal)
		assert.True(t, target.ExportPostmanData)
	})

	t.Run("nil source is no-op", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, nil, SourceLocal)
		assert.Equal(t, NewDefault().PostmanAPIURL, target.PostmanAPIURL)
	})
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, ".brumigraterc.yaml"), `
exportPostmanData: true
skipAlreadyExported: false
brunoWorkspaceFolder: /data/bruno
validationWorkspace: Petstore
`)
	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.True(t, cfg.ExportPostmanData)
	assert.Equal(t, "/data/bruno", cfg.BrunoWorkspaceFolder)
	assert.Equal(t, map[string]bool{
		"exportPostmanData":    true,
		"skipAlreadyExported":  true,
		"brunoWorkspaceFolder": true,
		"validationWorkspace":  true,
	}, cfg.SetFields)
}

func TestLoadConfigFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfigFile(writeFile(t, filepath.Join(dir, "list.yaml"), "- a\n- b\n"))
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 1, cerr.Line)
	assert.Contains(t, err.Error(), "(line 1, column 1): config must be a mapping")

	_, err = LoadConfigFile(writeFile(t, filepath.Join(dir, "type.yaml"), "timeout: soon\n"))
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Message, "soon")

	_, err = LoadConfigFile(writeFile(t, filepath.Join(dir, "syntax.yaml"), "a: [\n"))
	require.ErrorAs(t, err, &cerr)

	cfg, err := LoadConfigFile(writeFile(t, filepath.Join(dir, "empty.yaml"), ""))
	require.NoError(t, err)
	assert.Empty(t, cfg.SetFields)
}

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv(EnvExportPostmanData, "YES")
	t.Setenv("skip_already_exported", "true")
	t.Setenv(EnvBrunoWorkspaceFolder, "/new")
	t.Setenv("bruno_workspace_folder", "/legacy")
	t.Setenv(EnvTimeout, "not-a-number")

	cfg := NewDefault()
	LoadEnvConfig(cfg)

	assert.True(t, cfg.ExportPostmanData)
	assert.True(t, cfg.SkipAlreadyExported)
	assert.Equal(t, "/new", cfg.BrunoWorkspaceFolder)
	assert.Equal(t, SourceEnv, cfg.Sources["skipAlreadyExported"])
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, SourceDefault, cfg.Sources["timeout"])
}

func TestLoadAll_Precedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".brumigraterc.yml"), "postmanExportFolder: from-local\nlogLevel: debug\n")
	t.Setenv(EnvLogLevel, "error")

	cfg, err := LoadAll(LoadOptions{Dir: dir, SkipGlobal: true})
	require.NoError(t, err)
	assert.Equal(t, "from-local", cfg.PostmanExportFolder)
	assert.Equal(t, SourceLocal, cfg.Sources["postmanExportFolder"])
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, SourceEnv, cfg.Sources["logLevel"])
}

func TestLoadAll_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".brumigraterc.yaml"), "postmanExportFolder: ignored\n")
	explicit := writeFile(t, filepath.Join(t.TempDir(), "ci.yaml"), "validationWorkspace: CI\n")

	cfg, err := LoadAll(LoadOptions{ConfigFile: explicit, Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, "CI", cfg.ValidationWorkspace)
	assert.Equal(t, SourceFile, cfg.Sources["validationWorkspace"])
	assert.Equal(t, DefaultPostmanExportFolder, cfg.PostmanExportFolder)

	_, err = LoadAll(LoadOptions{ConfigFile: filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)
}

func TestLoadAll_BadLocalFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".brumigraterc.yaml"), "timeout: [\n")
	_, err := LoadAll(LoadOptions{Dir: dir, SkipGlobal: true})
	var cerr *ConfigError
	assert.ErrorAs(t, err, &cerr)
}

func TestRequireAPIKey(t *testing.T) {
	cfg := NewDefault()
	_, err := cfg.RequireAPIKey()
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	cfg.APIKeyFile = writeFile(t, filepath.Join(t.TempDir(), "key"), "  PMAK-file\n")
	key, err := cfg.RequireAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "PMAK-file", key)

	cfg.PostmanAPIKey = "PMAK-direct"
	key, err = cfg.RequireAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "PMAK-direct", key)

	cfg = NewDefault()
	cfg.APIKeyFile = filepath.Join(t.TempDir(), "absent")
	_, err = cfg.RequireAPIKey()
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"true", "TRUE", "1", "yes", " Yes "} {
		assert.True(t, ParseBool(v), v)
	}
	for _, v := range []string{"false", "0", "no", "", "on"} {
		assert.False(t, ParseBool(v), v)
	}
}
