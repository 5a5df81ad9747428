package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/brumigrate/internal/id"
	"github.com/getmockd/brumigrate/pkg/cliconfig"
	"github.com/getmockd/brumigrate/pkg/logging"
)

var (
	// Persistent flags available to all subcommands
	jsonOutput  bool
	configFile  string
	logLevel    string
	logFormat   string
	logFile     string
	postmanDir  string
	brunoDir    string
	apiURL      string
	apiKeyFile  string
	apiTimeout  int
	concurrency int

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// Resolved once per invocation by loadRuntime.
var (
	cfg      *cliconfig.Config
	logger   = logging.Nop()
	runID    string
	closeLog = func() error { return nil }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "brumigrate",
	Short: "brumigrate moves Postman workspaces to Bruno and verifies the result",
	Long: `brumigrate exports Postman workspaces through the Postman API, fixes up the
Bruno workspace produced by importing them, and validates the migration by
parsing both trees and comparing request, folder and variable counts.

Configuration can be provided via flags, environment variables (BRUMIGRATE_*),
or a configuration file. brumigrate reads .brumigraterc.yaml in the current
directory and config.yaml in the user config directory under brumigrate/.`,
	SilenceUsage:       true,
	SilenceErrors:      true, // We handle errors in Execute()
	PersistentPreRunE:  loadRuntime,
	PersistentPostRunE: func(*cobra.Command, []string) error { return closeLog() },
}

// Execute runs the command line in os.Args and returns the process exit code.
func Execute() int {
	return ExecuteArgs(os.Args[1:], os.Stdout, os.Stderr)
}

// ExecuteArgs runs rootCmd with args, writing to stdout and stderr, and
// returns the exit code.
func ExecuteArgs(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	_ = closeLog()
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
	pf.StringVar(&configFile, "config", "", "Config file (default: .brumigraterc.yaml, then the user config)")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "Log format: text or json")
	pf.StringVar(&logFile, "log-file", "", "Also write JSON logs to this file")
	pf.StringVar(&postmanDir, "postman-dir", "", "Folder holding exported Postman workspaces")
	pf.StringVar(&brunoDir, "bruno-dir", "", "Folder holding Bruno workspaces")
	pf.StringVar(&apiURL, "api-url", "", "Postman API base URL")
	pf.StringVar(&apiKeyFile, "api-key-file", "", "File containing the Postman API key")
	pf.IntVar(&apiTimeout, "timeout", 0, "Postman API timeout in seconds")
	pf.IntVar(&concurrency, "concurrency", 0, "Parallel downloads per workspace")
}

// loadRuntime resolves configuration, applies flags on top and builds the
// logger shared by the subcommand.
func loadRuntime(cmd *cobra.Command, _ []string) error {
	path := configFile
	if path == "" {
		path = cliconfig.GetConfigFileFromEnv()
	}
	loaded, err := cliconfig.LoadAll(cliconfig.LoadOptions{ConfigFile: path})
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyPersistentFlags(cmd, loaded)
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg = loaded

	log, closer, err := logging.Open(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: cmd.ErrOrStderr(),
		File:   cfg.LogFile,
	})
	if err != nil {
		return err
	}
	runID = id.RunID()
	logger = log.With("run", id.Short(runID))
	closeLog = onceCloser(closer)
	return nil
}

func onceCloser(fn func() error) func() error {
	done := false
	return func() error {
		if done {
			return nil
		}
		done = true
		return fn()
	}
}

// applyPersistentFlags copies explicitly set persistent flags into c.
func applyPersistentFlags(cmd *cobra.Command, c *cliconfig.Config) {
	setString(cmd, "log-level", "logLevel", logLevel, &c.LogLevel, c)
	setString(cmd, "log-format", "logFormat", logFormat, &c.LogFormat, c)
	setString(cmd, "log-file", "logFile", logFile, &c.LogFile, c)
	setString(cmd, "postman-dir", "postmanExportFolder", postmanDir, &c.PostmanExportFolder, c)
	setString(cmd, "bruno-dir", "brunoWorkspaceFolder", brunoDir, &c.BrunoWorkspaceFolder, c)
	setString(cmd, "api-url", "postmanApiUrl", apiURL, &c.PostmanAPIURL, c)
	setString(cmd, "api-key-file", "apiKeyFile", apiKeyFile, &c.APIKeyFile, c)
	setInt(cmd, "timeout", "timeout", apiTimeout, &c.Timeout, c)
	setInt(cmd, "concurrency", "concurrency", concurrency, &c.Concurrency, c)
}

func setString(cmd *cobra.Command, flag, key, value string, dst *string, c *cliconfig.Config) {
	if cmd.Flags().Changed(flag) {
		*dst = value
		c.Sources[key] = cliconfig.SourceFlag
	}
}

func setInt(cmd *cobra.Command, flag, key string, value int, dst *int, c *cliconfig.Config) {
	if cmd.Flags().Changed(flag) {
		*dst = value
		c.Sources[key] = cliconfig.SourceFlag
	}
}

func setBool(cmd *cobra.Command, flag, key string, value bool, dst *bool, c *cliconfig.Config) {
	if cmd.Flags().Changed(flag) {
		*dst = value
		c.Sources[key] = cliconfig.SourceFlag
	}
}

// componentLogger returns the shared logger tagged with a component name.
func componentLogger(name string) *slog.Logger {
	return logging.Component(logger, name)
}
