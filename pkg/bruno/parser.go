// Package bruno parses a Bruno workspace directory into the normalized
// workspace tree and rewrites freshly imported workspaces into the layout
// Bruno expects.
package bruno

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/getmockd/brumigrate/pkg/logging"
	"github.com/getmockd/brumigrate/pkg/util"
	"github.com/getmockd/brumigrate/pkg/workspace"
)

// Layout names under a Bruno workspace root.
const (
	CollectionsDir  = "collections"
	EnvironmentsDir = "environments"
)

// Parser reads a Bruno workspace.
type Parser struct {
	root            string
	collectionsPath string
	environmentPath string
	log             *slog.Logger
	warnings        []workspace.Warning
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for warnings.
func WithLogger(log *slog.Logger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// NewParser creates a parser for the Bruno workspace at root.
func NewParser(root string, opts ...Option) *Parser {
	p := &Parser{
		root:            root,
		collectionsPath: filepath.Join(root, CollectionsDir),
		environmentPath: filepath.Join(root, EnvironmentsDir),
		log:             logging.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Root returns the workspace root.
func (p *Parser) Root() string { return p.root }

// Warnings returns the problems met by previous calls, in order.
func (p *Parser) Warnings() []workspace.Warning {
	return p.warnings
}

// Parse builds the complete workspace summary. Bruno has no global
// variables, so Globals is always nil.
func (p *Parser) Parse() *workspace.Summary {
	return &workspace.Summary{
		Root:         p.root,
		Collections:  p.Collections(),
		Environments: p.Environments(),
	}
}

// Collections returns one node per sub-directory of collections/ that holds
// a collection.bru file, in directory order.
func (p *Parser) Collections() []*workspace.Node {
	entries, err := os.ReadDir(p.collectionsPath)
	if err != nil {
		if !os.IsNotExist(err) {
			p.warn(p.collectionsPath, "failed to list collections: "+err.Error())
		}
		return []*workspace.Node{}
	}

	collections := make([]*workspace.Node, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(p.collectionsPath, entry.Name())
		if !util.FileExists(filepath.Join(dir, CollectionMarker)) {
			continue
		}
		collections = append(collections, p.buildCollection(dir))
	}
	return collections
}

func (p *Parser) buildCollection(dir string) *workspace.Node {
	meta := p.ParseFile(filepath.Join(dir, CollectionMarker))
	collection := &workspace.Node{
		Name:      filepath.Base(dir),
		Path:      dir,
		Kind:      workspace.KindCollection,
		Variables: meta.Variables,
	}
	p.scan(collection, dir)
	collection.Aggregate()
	return collection
}

// scan counts the requests of dir into owner and attaches folder
// sub-directories as children. A sub-directory without folder.bru is
// walked as if its content sat directly in dir.
func (p *Parser) scan(owner *workspace.Node, dir string) {
	for _, file := range util.GlobFiles(dir, "*.bru") {
		base := filepath.Base(file)
		if base == CollectionMarker || base == FolderMarker {
			continue
		}
		if p.ParseFile(file).IsRequest {
			owner.DirectRequests++
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		p.warn(dir, "failed to list directory: "+err.Error())
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sub := filepath.Join(dir, entry.Name())
		marker := filepath.Join(sub, FolderMarker)
		if !util.FileExists(marker) {
			p.scan(owner, sub)
			continue
		}

		// Without meta.name the folder takes the directory name, not "folder".
		folder := &workspace.Node{
			Name: ParseBru(entry.Name(), p.read(marker)).Name,
			Path: sub,
			Kind: workspace.KindFolder,
		}
		p.scan(folder, sub)
		owner.Children = append(owner.Children, folder)
	}
}

// ParseFile reads and parses one .bru file. An unreadable file is treated
// as empty content.
func (p *Parser) ParseFile(path string) File {
	f := ParseBru(util.Stem(path), p.read(path))
	f.Path = path
	return f
}

// Environments parses every environments/*.yml file.
func (p *Parser) Environments() []*workspace.Node {
	files := util.GlobFiles(p.environmentPath, "*.yml")
	environments := make([]*workspace.Node, 0, len(files))
	for _, file := range files {
		environments = append(environments, p.ParseEnvironment(file))
	}
	return environments
}

// ParseEnvironment reads and scans one environment file.
func (p *Parser) ParseEnvironment(path string) *workspace.Node {
	env := ParseEnvironmentContent(util.Stem(path), p.read(path))
	env.Path = path
	return env
}

func (p *Parser) read(path string) []byte {
	content, err := os.ReadFile(path)
	if err != nil {
		p.warn(path, "failed to read file: "+err.Error())
		return nil
	}
	return content
}

func (p *Parser) warn(path, msg string) {
	p.warnings = append(p.warnings, workspace.Warning{Path: path, Message: msg})
	p.log.Warn("skipping unreadable bruno content", "path", path, "reason", msg)
}
