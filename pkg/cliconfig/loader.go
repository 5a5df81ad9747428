package cliconfig

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	// GlobalConfigDir is the directory for global config
	GlobalConfigDir = "brumigrate"
)

// LocalConfigFileNames are the names to search for local config (in order).
var LocalConfigFileNames = []string{".brumigraterc.yaml", ".brumigraterc.yml"}

// GlobalConfigFileNames are the names to search for global config (in order).
var GlobalConfigFileNames = []string{"config.yaml", "config.yml"}

// FindLocalConfig searches for .brumigraterc.yaml or .brumigraterc.yml in dir.
func FindLocalConfig(dir string) string {
	for _, name := range LocalConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// FindGlobalConfig returns the path to the global config file.
// Returns empty string if not found.
func FindGlobalConfig() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	for _, name := range GlobalConfigFileNames {
		path := filepath.Join(configDir, GlobalConfigDir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadConfigFile loads a Config from a YAML file. SetFields lists the
// top-level keys present in the file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, &ConfigError{Path: path, Message: err.Error()}
	}

	cfg := Config{Sources: make(map[string]string), SetFields: make(map[string]bool)}
	if len(node.Content) == 0 {
		return &cfg, nil
	}
	doc := node.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, &ConfigError{Path: path, Line: doc.Line, Column: doc.Column, Message: "config must be a mapping"}
	}
	if err := doc.Decode(&cfg); err != nil {
		cerr := &ConfigError{Path: path, Message: err.Error()}
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
			cerr.Message = typeErr.Errors[0]
		}
		return nil, cerr
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		cfg.SetFields[doc.Content[i].Value] = true
	}
	return &cfg, nil
}

// ConfigError represents a configuration file error with location info.
type ConfigError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *ConfigError) Error() string {
	if e.Line > 0 {
		return e.Path + " (line " + strconv.Itoa(e.Line) + ", column " + strconv.Itoa(e.Column) + "): " + e.Message
	}
	return e.Path + ": " + e.Message
}

// LoadOptions controls which files LoadAll reads.
type LoadOptions struct {
	// ConfigFile, when set, replaces the global and local lookup.
	ConfigFile string
	// Dir is searched for a local config file. Defaults to the working directory.
	Dir string
	// SkipGlobal disables the user-level config file.
	SkipGlobal bool
}

// LoadAll loads configuration from all sources and merges them.
// Precedence: env > local config > global config > defaults. Flags are
// applied by the caller on top of the result.
func LoadAll(opts LoadOptions) (*Config, error) {
	cfg := NewDefault()

	if opts.ConfigFile != "" {
		fileCfg, err := LoadConfigFile(opts.ConfigFile)
		if err != nil {
			return nil, err
		}
		MergeConfig(cfg, fileCfg, SourceFile)
		LoadEnvConfig(cfg)
		return cfg, nil
	}

	if !opts.SkipGlobal {
		if path := FindGlobalConfig(); path != "" {
			globalCfg, err := LoadConfigFile(path)
			if err != nil {
				return nil, err
			}
			MergeConfig(cfg, globalCfg, SourceGlobal)
		}
	}

	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
	}
	if path := FindLocalConfig(dir); path != "" {
		localCfg, err := LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		MergeConfig(cfg, localCfg, SourceLocal)
	}

	LoadEnvConfig(cfg)
	return cfg, nil
}
