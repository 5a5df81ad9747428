// Package util provides shared filesystem helpers used by the workspace
// parsers and the exporter.
//
//   - DirExists / FileExists: explicit existence checks for best-effort parsing
//   - GlobFiles: sorted, non-recursive file enumeration inside one directory
//   - SafeFileName: turn a workspace or collection name into a file name
package util
