package postmanapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/getmockd/brumigrate/pkg/logging"
	"github.com/getmockd/brumigrate/pkg/postman"
	"github.com/getmockd/brumigrate/pkg/util"
)

// ItemKind names what an ItemResult exported.
type ItemKind string

const (
	KindWorkspaceList   ItemKind = "workspace_list"
	KindGlobalVariables ItemKind = "global_variables"
	KindCollection      ItemKind = "collection"
	KindEnvironment     ItemKind = "environment"
)

// WorkspaceListFile is written at the export root by ExportWorkspaceList.
const WorkspaceListFile = "workspaces.json"

// Global variable documents are tagged with a fixed name and id so they can
// be imported like an environment.
const (
	globalsName = "Globals"
	globalsID   = "sampleid"
)

// ItemResult is the outcome of exporting one item. Err is set when the item
// failed; the rest of the batch is unaffected.
type ItemResult struct {
	Kind    ItemKind `json:"kind"`
	Name    string   `json:"name"`
	Path    string   `json:"path,omitempty"`
	Skipped bool     `json:"skipped,omitempty"`
	Err     error    `json:"-"`
}

// Failed reports whether the item failed.
func (r ItemResult) Failed() bool { return r.Err != nil }

// MarshalJSON renders Err as a string.
func (r ItemResult) MarshalJSON() ([]byte, error) {
	type alias ItemResult
	out := struct {
		alias
		Error string `json:"error,omitempty"`
	}{alias: alias(r)}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return json.Marshal(out)
}

// Exporter writes Postman workspaces to disk:
//
//	<root>/<workspace>/collections/<name>.json
//	<root>/<workspace>/environments/<name>.json
//	<root>/<workspace>/global_variables.json
type Exporter struct {
	client       Client
	root         string
	skipExisting bool
	concurrency  int
	log          *slog.Logger
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithSkipExisting leaves files that already exist untouched.
func WithSkipExisting(skip bool) ExporterOption {
	return func(e *Exporter) {
		e.skipExisting = skip
	}
}

// WithConcurrency bounds the number of parallel downloads per workspace.
func WithConcurrency(n int) ExporterOption {
	return func(e *Exporter) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithLogger sets the logger used for progress and failures.
func WithLogger(log *slog.Logger) ExporterOption {
	return func(e *Exporter) {
		if log != nil {
			e.log = log
		}
	}
}

// NewExporter creates an exporter writing under root.
func NewExporter(client Client, root string, opts ...ExporterOption) *Exporter {
	e := &Exporter{
		client:      client,
		root:        root,
		concurrency: 4,
		log:         logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WorkspacePath returns the directory a workspace is exported to.
func (e *Exporter) WorkspacePath(name string) string {
	return filepath.Join(e.root, util.SafeFileName(name))
}

// ExportWorkspaceList writes the list of workspaces to <root>/workspaces.json.
func (e *Exporter) ExportWorkspaceList(ctx context.Context) ([]WorkspaceRef, ItemResult) {
	path := filepath.Join(e.root, WorkspaceListFile)
	result := ItemResult{Kind: KindWorkspaceList, Name: "workspaces", Path: path}

	workspaces, err := e.client.ListWorkspaces(ctx)
	if err != nil {
		result.Err = fmt.Errorf("failed to list workspaces: %w", err)
		return nil, result
	}
	result.Err = writeJSON(path, map[string]any{"workspaces": workspaces})
	return workspaces, result
}

// ExportAll exports every workspace whose name is in names, or every
// workspace when names is empty. Listing failures are returned as an error;
// per-item failures are reported in the results.
func (e *Exporter) ExportAll(ctx context.Context, names []string) ([]ItemResult, error) {
	workspaces, err := e.client.ListWorkspaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	var results []ItemResult
	for _, ws := range workspaces {
		if len(wanted) > 0 && !wanted[ws.Name] {
			continue
		}
		items, err := e.ExportWorkspace(ctx, ws.ID)
		if err != nil {
			e.log.Error("failed to export workspace", "workspace", ws.Name, "error", err)
			results = append(results, ItemResult{Kind: KindWorkspaceList, Name: ws.Name, Err: err})
			continue
		}
		results = append(results, items...)
	}
	return results, nil
}

// ExportWorkspace exports the global variables, collections and
// environments of one workspace, in that order. The error is non-nil only
// when the workspace itself cannot be fetched.
func (e *Exporter) ExportWorkspace(ctx context.Context, id string) ([]ItemResult, error) {
	ws, err := e.client.GetWorkspace(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace %s: %w", id, err)
	}
	dir := e.WorkspacePath(ws.Name)

	type job struct {
		kind ItemKind
		name string
		path string
		run  func(context.Context, string) error
	}

	jobs := []job{{
		kind: KindGlobalVariables,
		name: globalsName,
		path: filepath.Join(dir, postman.GlobalVariablesFile),
		run: func(ctx context.Context, path string) error {
			return e.exportGlobals(ctx, ws.ID, path)
		},
	}}
	for _, ref := range ws.Collections {
		jobs = append(jobs, job{
			kind: KindCollection,
			name: ref.Name,
			path: filepath.Join(dir, postman.CollectionsDir, util.SafeFileName(ref.Name)+".json"),
			run: func(ctx context.Context, path string) error {
				doc, err := e.client.GetCollection(ctx, refUID(ref))
				if err != nil {
					return err
				}
				return writeRaw(path, doc)
			},
		})
	}
	for _, ref := range ws.Environments {
		jobs = append(jobs, job{
			kind: KindEnvironment,
			name: ref.Name,
			path: filepath.Join(dir, postman.EnvironmentsDir, util.SafeFileName(ref.Name)+".json"),
			run: func(ctx context.Context, path string) error {
				doc, err := e.client.GetEnvironment(ctx, refUID(ref))
				if err != nil {
					return err
				}
				return writeRaw(path, doc)
			},
		})
	}

	results := make([]ItemResult, len(jobs))
	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i, j := range jobs {
		results[i] = ItemResult{Kind: j.kind, Name: j.name, Path: j.path}
		if e.skipExisting && util.FileExists(j.path) {
			results[i].Skipped = true
			e.log.Info("skipping already exported item", "kind", j.kind, "name", j.name, "path", j.path)
			continue
		}
		g.Go(func() error {
			if err := j.run(ctx, j.path); err != nil {
				results[i].Err = err
				e.log.Error("failed to export item", "workspace", ws.Name, "kind", j.kind, "name", j.name, "error", err)
				return nil
			}
			e.log.Info("exported item", "workspace", ws.Name, "kind", j.kind, "name", j.name, "path", j.path)
			return nil
		})
	}
	_ = g.Wait()
	return results, nil
}

func (e *Exporter) exportGlobals(ctx context.Context, workspaceID, path string) error {
	doc, err := e.client.GetGlobalVariables(ctx, workspaceID)
	if err != nil {
		return err
	}
	doc["name"] = globalsName
	doc["id"] = globalsID
	return writeJSON(path, doc)
}

// refUID prefers the uid the API uses for item endpoints, falling back to id.
func refUID(ref ItemRef) string {
	if ref.UID != "" {
		return ref.UID
	}
	return ref.ID
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	return writeFile(path, data)
}

func writeRaw(path string, doc json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, doc, "", "  "); err != nil {
		return fmt.Errorf("failed to format %s: %w", filepath.Base(path), err)
	}
	return writeFile(path, buf.Bytes())
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
