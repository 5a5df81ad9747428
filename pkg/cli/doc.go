// Package cli provides the command-line interface for brumigrate.
//
// Commands:
//   - export: download Postman workspaces through the Postman API
//   - refactor: fix up a Bruno workspace after importing a Postman export
//   - validate: compare a Postman export with its Bruno migration and
//     write a CSV report, optionally JUnit XML
//   - config: display the effective configuration and where each value
//     came from
//   - version: show version information
//
// Configuration is resolved once per invocation in the root command's
// PersistentPreRunE (defaults, global file, local .brumigraterc.yaml,
// environment, flags) and passed into the packages that do the work.
package cli
