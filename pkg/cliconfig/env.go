package cliconfig

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names
const (
	EnvExportWorkspaceList   = "BRUMIGRATE_EXPORT_WORKSPACE_LIST"
	EnvExportPostmanData     = "BRUMIGRATE_EXPORT_POSTMAN_DATA"
	EnvSkipAlreadyExported   = "BRUMIGRATE_SKIP_ALREADY_EXPORTED"
	EnvConcurrency           = "BRUMIGRATE_CONCURRENCY"
	EnvImportGlobalVariables = "BRUMIGRATE_IMPORT_GLOBAL_VARIABLES"
	EnvPostmanAPIURL         = "BRUMIGRATE_POSTMAN_API_URL"
	EnvPostmanAPIKey         = "BRUMIGRATE_POSTMAN_API_KEY"
	EnvAPIKeyFile            = "BRUMIGRATE_API_KEY_FILE"
	EnvTimeout               = "BRUMIGRATE_TIMEOUT"
	EnvPostmanExportFolder   = "BRUMIGRATE_POSTMAN_EXPORT_FOLDER"
	EnvBrunoWorkspaceFolder  = "BRUMIGRATE_BRUNO_WORKSPACE_FOLDER"
	EnvValidationWorkspace   = "BRUMIGRATE_VALIDATION_WORKSPACE"
	EnvLogLevel              = "BRUMIGRATE_LOG_LEVEL"
	EnvLogFormat             = "BRUMIGRATE_LOG_FORMAT"
	EnvLogFile               = "BRUMIGRATE_LOG_FILE"
	EnvConfig                = "BRUMIGRATE_CONFIG"
)

// legacyEnv maps BRUMIGRATE_* names to the lowercase names older migration
// scripts exported. The BRUMIGRATE_* name wins when both are set.
var legacyEnv = map[string]string{
	EnvExportWorkspaceList:   "export_workspace_list",
	EnvExportPostmanData:     "export_postman_data",
	EnvSkipAlreadyExported:   "skip_already_exported",
	EnvImportGlobalVariables: "import_global_variables_to_bruno",
	EnvPostmanAPIURL:         "postman_api_url",
	EnvPostmanAPIKey:         "postman_api_key",
	EnvPostmanExportFolder:   "postman_export_folder",
	EnvBrunoWorkspaceFolder:  "bruno_workspace_folder",
	EnvValidationWorkspace:   "validation_workspace",
}

func lookupEnv(name string) (string, bool) {
	if v := os.Getenv(name); v != "" {
		return v, true
	}
	if legacy, ok := legacyEnv[name]; ok {
		if v := os.Getenv(legacy); v != "" {
			return v, true
		}
	}
	return "", false
}

// ParseBool accepts true/1/yes in any case; everything else is false.
func ParseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// LoadEnvConfig loads configuration from environment variables.
// It only sets values that are present in the environment.
func LoadEnvConfig(cfg *Config) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	envBool := func(name, key string, dst *bool) {
		if v, ok := lookupEnv(name); ok {
			*dst = ParseBool(v)
			cfg.Sources[key] = SourceEnv
		}
	}
	envString := func(name, key string, dst *string) {
		if v, ok := lookupEnv(name); ok {
			*dst = v
			cfg.Sources[key] = SourceEnv
		}
	}
	envInt := func(name, key string, dst *int) {
		if v, ok := lookupEnv(name); ok {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
				cfg.Sources[key] = SourceEnv
			}
		}
	}

	envBool(EnvExportWorkspaceList, "exportWorkspaceList", &cfg.ExportWorkspaceList)
	envBool(EnvExportPostmanData, "exportPostmanData", &cfg.ExportPostmanData)
	envBool(EnvSkipAlreadyExported, "skipAlreadyExported", &cfg.SkipAlreadyExported)
	envInt(EnvConcurrency, "concurrency", &cfg.Concurrency)
	envBool(EnvImportGlobalVariables, "importGlobalVariables", &cfg.ImportGlobalVariables)
	envString(EnvPostmanAPIURL, "postmanApiUrl", &cfg.PostmanAPIURL)
	envString(EnvPostmanAPIKey, "postmanApiKey", &cfg.PostmanAPIKey)
	envString(EnvAPIKeyFile, "apiKeyFile", &cfg.APIKeyFile)
	envInt(EnvTimeout, "timeout", &cfg.Timeout)
	envString(EnvPostmanExportFolder, "postmanExportFolder", &cfg.PostmanExportFolder)
	envString(EnvBrunoWorkspaceFolder, "brunoWorkspaceFolder", &cfg.BrunoWorkspaceFolder)
	envString(EnvValidationWorkspace, "validationWorkspace", &cfg.ValidationWorkspace)
	envString(EnvLogLevel, "logLevel", &cfg.LogLevel)
	envString(EnvLogFormat, "logFormat", &cfg.LogFormat)
	envString(EnvLogFile, "logFile", &cfg.LogFile)
}

// GetConfigFileFromEnv returns the explicit config file path, if any.
func GetConfigFileFromEnv() string {
	return os.Getenv(EnvConfig)
}
