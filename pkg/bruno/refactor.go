package bruno

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ohler55/ojg/oj"
	"gopkg.in/yaml.v3"

	"github.com/getmockd/brumigrate/pkg/logging"
)

// WorkspaceFile is the workspace descriptor Bruno keeps at the workspace root.
const WorkspaceFile = "workspace.yml"

// ErrWorkspaceNotFound is returned when the Bruno workspace directory is missing.
var ErrWorkspaceNotFound = errors.New("bruno workspace not found")

// CollectionConfig is the bruno.json written at a collection root.
type CollectionConfig struct {
	Version string   `json:"version"`
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Ignore  []string `json:"ignore"`
}

// workspaceCollection is one entry of the collections list in workspace.yml.
type workspaceCollection struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Refactor turns a workspace freshly imported from Postman into a single
// Bruno collection named after the workspace.
//
// An import produces <bruno>/<ws>/collections/<ws>/<collection>/ with a
// collection.bru and bruno.json per imported collection. Refactor demotes
// those to folders, writes the collection root files and points
// workspace.yml at the merged collection.
type Refactor struct {
	brunoRoot     string
	exportRoot    string
	importGlobals bool
	log           *slog.Logger
}

// RefactorOption configures a Refactor.
type RefactorOption func(*Refactor)

// WithRefactorLogger sets the logger used to report each step.
func WithRefactorLogger(log *slog.Logger) RefactorOption {
	return func(r *Refactor) {
		if log != nil {
			r.log = log
		}
	}
}

// WithGlobalVariables controls whether Postman global variables are copied
// into collection.bru. Enabled by default.
func WithGlobalVariables(enabled bool) RefactorOption {
	return func(r *Refactor) {
		r.importGlobals = enabled
	}
}

// NewRefactor creates a Refactor. brunoRoot holds one directory per Bruno
// workspace; exportRoot is where the Postman export of the same workspace
// lives, used to read global_variables.json.
func NewRefactor(brunoRoot, exportRoot string, opts ...RefactorOption) *Refactor {
	r := &Refactor{
		brunoRoot:     brunoRoot,
		exportRoot:    exportRoot,
		importGlobals: true,
		log:           logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run applies every fix-up to the named workspace.
func (r *Refactor) Run(workspaceName string) error {
	workspacePath := filepath.Join(r.brunoRoot, workspaceName)
	if info, err := os.Stat(workspacePath); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrWorkspaceNotFound, workspacePath)
	}

	collectionPath := filepath.Join(workspacePath, CollectionsDir, workspaceName)
	if err := r.demoteCollections(collectionPath); err != nil {
		return err
	}
	if err := os.MkdirAll(collectionPath, 0o755); err != nil {
		return fmt.Errorf("failed to create collection directory: %w", err)
	}
	if err := r.writeCollectionConfig(collectionPath, workspaceName); err != nil {
		return err
	}
	var globalsPath string
	if r.importGlobals {
		globalsPath = filepath.Join(r.exportRoot, workspaceName, "global_variables.json")
	}
	if err := r.writeCollectionBru(collectionPath, globalsPath); err != nil {
		return err
	}
	return r.updateWorkspaceFile(workspacePath, workspaceName)
}

// demoteCollections renames collection.bru to folder.bru and removes
// bruno.json in every immediate sub-directory of collectionPath.
func (r *Refactor) demoteCollections(collectionPath string) error {
	entries, err := os.ReadDir(collectionPath)
	if err != nil {
		if os.IsNotExist(err) {
			r.log.Warn("collections path does not exist", "path", collectionPath)
			return nil
		}
		return fmt.Errorf("failed to list collections: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(collectionPath, entry.Name())

		marker := filepath.Join(dir, CollectionMarker)
		if _, err := os.Stat(marker); err == nil {
			renamed := filepath.Join(dir, FolderMarker)
			if err := os.Rename(marker, renamed); err != nil {
				return fmt.Errorf("failed to rename %s: %w", marker, err)
			}
			r.log.Info("renamed collection marker", "from", marker, "to", renamed)
		}

		config := filepath.Join(dir, "bruno.json")
		if err := os.Remove(config); err == nil {
			r.log.Info("removed nested bruno.json", "path", config)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", config, err)
		}
	}
	return nil
}

func (r *Refactor) writeCollectionConfig(collectionPath, name string) error {
	data, err := json.MarshalIndent(CollectionConfig{
		Version: "1",
		Name:    name,
		Type:    "collection",
		Ignore:  []string{"node_modules", ".git"},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode bruno.json: %w", err)
	}
	path := filepath.Join(collectionPath, "bruno.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write bruno.json: %w", err)
	}
	r.log.Info("created bruno.json", "path", path)
	return nil
}

// writeCollectionBru writes collection.bru with the Postman global
// variables as a vars:pre-request block. A missing or malformed globals
// file yields an empty block, as does an empty globalsPath.
func (r *Refactor) writeCollectionBru(collectionPath, globalsPath string) error {
	var values []any
	if globalsPath == "" {
		r.log.Debug("global variables import disabled")
	} else if data, err := os.ReadFile(globalsPath); err != nil {
		r.log.Warn("global variables file not found", "path", globalsPath)
	} else {
		var doc any
		if err := oj.Unmarshal(data, &doc); err != nil {
			r.log.Error("failed to parse global variables", "path", globalsPath, "error", err)
		} else if obj, ok := doc.(map[string]any); ok {
			values, _ = obj["values"].([]any)
		}
	}

	path := filepath.Join(collectionPath, CollectionMarker)
	if err := os.WriteFile(path, []byte(RenderPreRequestVars(values)), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", CollectionMarker, err)
	}
	r.log.Info("created collection.bru with global variables", "path", path, "count", len(values))
	return nil
}

// RenderPreRequestVars renders Postman {key, value} entries as a
// vars:pre-request block, one "key: value" line per entry.
func RenderPreRequestVars(values []any) string {
	var b strings.Builder
	b.WriteString("vars:pre-request{")
	for _, v := range values {
		entry, _ := v.(map[string]any)
		b.WriteString("\n")
		b.WriteString(scalar(entry["key"]))
		b.WriteString(": ")
		b.WriteString(scalar(entry["value"]))
	}
	b.WriteString("\n}")
	return b.String()
}

func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// updateWorkspaceFile replaces the collections list of workspace.yml with
// the single merged collection, keeping every other key as written.
func (r *Refactor) updateWorkspaceFile(workspacePath, name string) error {
	path := filepath.Join(workspacePath, WorkspaceFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", WorkspaceFile, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse %s: %w", WorkspaceFile, err)
	}
	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("failed to update %s: top level is not a mapping", WorkspaceFile)
	}

	var collections yaml.Node
	if err := collections.Encode([]workspaceCollection{{
		Name: name,
		Path: filepath.Join(CollectionsDir, name),
	}}); err != nil {
		return fmt.Errorf("failed to encode collections: %w", err)
	}
	setMappingValue(root, "collections", &collections)

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", WorkspaceFile, err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", WorkspaceFile, err)
	}
	r.log.Info("updated workspace file", "path", path)
	return nil
}

func setMappingValue(mapping *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = value
			return
		}
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}
