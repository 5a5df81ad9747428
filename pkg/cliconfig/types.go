// Package cliconfig provides configuration types and loading for the
// brumigrate CLI.
package cliconfig

// Config represents the complete configuration for the brumigrate CLI.
// Configuration values can come from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Local config file (.brumigraterc.yaml in current directory)
// 4. Global config file (~/.config/brumigrate/config.yaml)
// 5. Default values (lowest priority)
type Config struct {
	// Export settings
	ExportWorkspaceList bool `yaml:"exportWorkspaceList" json:"exportWorkspaceList"`
	ExportPostmanData   bool `yaml:"exportPostmanData" json:"exportPostmanData"`
	SkipAlreadyExported bool `yaml:"skipAlreadyExported" json:"skipAlreadyExported"`
	Concurrency         int  `yaml:"concurrency" json:"concurrency"`

	// Import settings
	ImportGlobalVariables bool `yaml:"importGlobalVariables" json:"importGlobalVariables"`

	// Postman API settings
	PostmanAPIURL string `yaml:"postmanApiUrl" json:"postmanApiUrl"`
	PostmanAPIKey string `yaml:"postmanApiKey,omitempty" json:"-"`
	APIKeyFile    string `yaml:"apiKeyFile,omitempty" json:"apiKeyFile,omitempty"`
	Timeout       int    `yaml:"timeout" json:"timeout"`

	// Folders
	PostmanExportFolder  string `yaml:"postmanExportFolder" json:"postmanExportFolder"`
	BrunoWorkspaceFolder string `yaml:"brunoWorkspaceFolder" json:"brunoWorkspaceFolder"`
	ValidationWorkspace  string `yaml:"validationWorkspace,omitempty" json:"validationWorkspace,omitempty"`

	// Logging settings
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`
	LogFile   string `yaml:"logFile,omitempty" json:"logFile,omitempty"`

	// Sources tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-" json:"-"`

	// SetFields records the keys present in a loaded file, so an explicit
	// false can override a true from a lower layer.
	SetFields map[string]bool `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFile    = "file"
	SourceFlag    = "flag"
)
