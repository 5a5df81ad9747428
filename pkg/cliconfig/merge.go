package cliconfig

// MergeConfig merges source config into target, updating sources tracking.
// Only non-zero values from source are applied; booleans are applied when
// they are listed in source.SetFields, or when true if SetFields is nil.
func MergeConfig(target, source *Config, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	mergeBool := func(key string, dst *bool, src bool) {
		if boolIsSet(source, key, src) {
			*dst = src
			target.Sources[key] = sourceType
		}
	}
	mergeString := func(key string, dst *string, src string) {
		if src != "" {
			*dst = src
			target.Sources[key] = sourceType
		}
	}
	mergeInt := func(key string, dst *int, src int) {
		if src != 0 {
			*dst = src
			target.Sources[key] = sourceType
		}
	}

	mergeBool("exportWorkspaceList", &target.ExportWorkspaceList, source.ExportWorkspaceList)
	mergeBool("exportPostmanData", &target.ExportPostmanData, source.ExportPostmanData)
	mergeBool("skipAlreadyExported", &target.SkipAlreadyExported, source.SkipAlreadyExported)
	mergeInt("concurrency", &target.Concurrency, source.Concurrency)
	mergeBool("importGlobalVariables", &target.ImportGlobalVariables, source.ImportGlobalVariables)

	mergeString("postmanApiUrl", &target.PostmanAPIURL, source.PostmanAPIURL)
	mergeString("postmanApiKey", &target.PostmanAPIKey, source.PostmanAPIKey)
	mergeString("apiKeyFile", &target.APIKeyFile, source.APIKeyFile)
	mergeInt("timeout", &target.Timeout, source.Timeout)

	mergeString("postmanExportFolder", &target.PostmanExportFolder, source.PostmanExportFolder)
	mergeString("brunoWorkspaceFolder", &target.BrunoWorkspaceFolder, source.BrunoWorkspaceFolder)
	mergeString("validationWorkspace", &target.ValidationWorkspace, source.ValidationWorkspace)

	mergeString("logLevel", &target.LogLevel, source.LogLevel)
	mergeString("logFormat", &target.LogFormat, source.LogFormat)
	mergeString("logFile", &target.LogFile, source.LogFile)
}

// boolIsSet reports whether a boolean field identified by its YAML key was
// explicitly set in the source config. Without SetFields only true counts.
func boolIsSet(cfg *Config, yamlKey string, value bool) bool {
	if cfg.SetFields != nil {
		return cfg.SetFields[yamlKey]
	}
	return value
}
