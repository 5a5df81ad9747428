package cliconfig

import "github.com/getmockd/brumigrate/pkg/postmanapi"

// DefaultPostmanExportFolder is where exported Postman workspaces are written.
const DefaultPostmanExportFolder = "output"

// DefaultBrunoWorkspaceFolder is the root holding imported Bruno workspaces.
const DefaultBrunoWorkspaceFolder = "bruno"

// DefaultTimeout is the Postman API timeout in seconds.
const DefaultTimeout = 30

// DefaultConcurrency is the number of parallel downloads per workspace.
const DefaultConcurrency = 4

// DefaultLogLevel only surfaces warnings and errors.
const DefaultLogLevel = "warn"

// DefaultLogFormat is human-readable text.
const DefaultLogFormat = "text"

// NewDefault creates a new Config with default values.
func NewDefault() *Config {
	cfg := &Config{
		ExportPostmanData:     true,
		ImportGlobalVariables: true,
		PostmanAPIURL:         postmanapi.DefaultBaseURL,
		Timeout:               DefaultTimeout,
		Concurrency:           DefaultConcurrency,
		PostmanExportFolder:   DefaultPostmanExportFolder,
		BrunoWorkspaceFolder:  DefaultBrunoWorkspaceFolder,
		LogLevel:              DefaultLogLevel,
		LogFormat:             DefaultLogFormat,
		Sources:               make(map[string]string),
	}
	for _, key := range []string{
		"exportWorkspaceList", "exportPostmanData", "skipAlreadyExported",
		"concurrency", "importGlobalVariables", "postmanApiUrl", "timeout",
		"postmanExportFolder", "brunoWorkspaceFolder", "logLevel", "logFormat",
	} {
		cfg.Sources[key] = SourceDefault
	}
	return cfg
}
