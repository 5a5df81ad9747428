package postman

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/getmockd/brumigrate/pkg/logging"
	"github.com/getmockd/brumigrate/pkg/util"
	"github.com/getmockd/brumigrate/pkg/workspace"
)

// Layout names under a Postman workspace root.
const (
	CollectionsDir      = "collections"
	EnvironmentsDir     = "environments"
	GlobalVariablesFile = "global_variables.json"
)

// GlobalVariablesName is the display name of the global-variable record.
const GlobalVariablesName = "Global Variables"

// unnamedFolder is used for folders that declare no name.
const unnamedFolder = "Unnamed"

var (
	infoNamePath = jp.MustParseString("$.info.name")
	infoIDPath   = jp.MustParseString("$.info._postman_id")
	itemsPath    = jp.MustParseString("$.item")
	namePath     = jp.MustParseString("$.name")
	valuesPath   = jp.MustParseString("$.values")
)

// Parser reads a Postman workspace export.
type Parser struct {
	root            string
	collectionsPath string
	environmentPath string
	globalsPath     string
	log             *slog.Logger
	schemaCheck     bool
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

// WithSchemaCheck enables or disables the structural check of collection
// documents. It is enabled by default.
func WithSchemaCheck(enabled bool) Option {
	return func(p *Parser) {
		p.schemaCheck = enabled
	}
}

// NewParser creates a parser for the workspace export at root.
func NewParser(root string, opts ...Option) *Parser {
	p := &Parser{
		root:            root,
		collectionsPath: filepath.Join(root, CollectionsDir),
		environmentPath: filepath.Join(root, EnvironmentsDir),
		globalsPath:     filepath.Join(root, GlobalVariablesFile),
		log:             logging.Nop(),
		schemaCheck:     true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Root returns the workspace root.
func (p *Parser) Root() string { return p.root }

// CollectionsPath returns the collections directory.
func (p *Parser) CollectionsPath() string { return p.collectionsPath }

// EnvironmentsPath returns the environments directory.
func (p *Parser) EnvironmentsPath() string { return p.environmentPath }

// Warnings returns the problems met by previous calls, in order.
func (p *Parser) Warnings() []workspace.Warning {
	return p.warnings
}

// Parse builds the complete workspace summary.
func (p *Parser) Parse() *workspace.Summary {
	return &workspace.Summary{
		Root:         p.root,
		Collections:  p.Collections(),
		Environments: p.Environments(),
		Globals:      p.GlobalVariables(),
	}
}

// Collections parses every collections/*.json file. Files that cannot be
// read or decoded are skipped.
func (p *Parser) Collections() []*workspace.Node {
	files := util.GlobFiles(p.collectionsPath, "*.json")
	collections := make([]*workspace.Node, 0, len(files))
	for _, file := range files {
		doc, ok := p.load(file)
		if !ok {
			continue
		}
		if p.schemaCheck {
			if err := checkCollection(doc); err != nil {
				p.warn(file, "collection does not match the expected structure: "+err.Error())
			}
		}
		collections = append(collections, BuildCollection(doc, file))
	}
	return collections
}

// BuildCollection converts a decoded collection document into a collection
// node. The node name comes from info.name, falling back to the file stem.
func BuildCollection(doc any, path string) *workspace.Node {
	collection := &workspace.Node{
		Name: firstString(infoNamePath, doc, util.Stem(path)),
		Path: path,
		Kind: workspace.KindCollection,
		ID:   firstString(infoIDPath, doc, ""),
	}
	items, _ := first(itemsPath, doc).([]any)
	walkItems(collection, items, "")
	collection.Aggregate()
	return collection
}

// walkItems classifies items depth-first, counting requests on parent and
// attaching folders as children. Folder paths are item paths joined by "/".
func walkItems(parent *workspace.Node, items []any, parentPath string) {
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		if _, isRequest := item["request"]; isRequest {
			parent.DirectRequests++
			continue
		}

		nested, isFolder := item["item"]
		if !isFolder {
			continue
		}

		name := stringValue(item["name"], unnamedFolder)
		path := name
		if parentPath != "" {
			path = parentPath + "/" + name
		}

		folder := &workspace.Node{
			Name: name,
			Path: path,
			Kind: workspace.KindFolder,
			ID:   stringValue(item["id"], ""),
		}
		children, _ := nested.([]any)
		walkItems(folder, children, path)
		parent.Children = append(parent.Children, folder)
	}
}

// Environments parses every environments/*.json file.
func (p *Parser) Environments() []*workspace.Node {
	files := util.GlobFiles(p.environmentPath, "*.json")
	environments := make([]*workspace.Node, 0, len(files))
	for _, file := range files {
		doc, ok := p.load(file)
		if !ok {
			continue
		}
		environments = append(environments, &workspace.Node{
			Name:      firstString(namePath, doc, util.Stem(file)),
			Path:      file,
			Kind:      workspace.KindEnvironment,
			Variables: variableKeys(doc),
		})
	}
	return environments
}

// GlobalVariables parses global_variables.json. It returns nil when the file
// does not exist or cannot be decoded.
func (p *Parser) GlobalVariables() *workspace.Node {
	if !util.FileExists(p.globalsPath) {
		return nil
	}
	doc, ok := p.load(p.globalsPath)
	if !ok {
		return nil
	}
	return &workspace.Node{
		Name:      GlobalVariablesName,
		Path:      p.globalsPath,
		Kind:      workspace.KindGlobalVariables,
		Variables: variableKeys(doc),
	}
}

// variableKeys flattens the values array to its key fields. Order and
// duplicates are preserved; entries without a key contribute "".
func variableKeys(doc any) []string {
	values, _ := first(valuesPath, doc).([]any)
	keys := make([]string, 0, len(values))
	for _, v := range values {
		entry, _ := v.(map[string]any)
		keys = append(keys, stringValue(entry["key"], ""))
	}
	return keys
}

func (p *Parser) load(path string) (any, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		p.warn(path, "failed to read file: "+err.Error())
		return nil, false
	}
	var doc any
	if err := oj.Unmarshal(data, &doc); err != nil {
		p.warn(path, "failed to parse JSON: "+err.Error())
		return nil, false
	}
	return doc, true
}

func (p *Parser) warn(path, msg string) {
	p.warnings = append(p.warnings, workspace.Warning{Path: path, Message: msg})
	p.log.Warn("skipping malformed postman content", "path", path, "reason", msg)
}

func first(x jp.Expr, doc any) any {
	if results := x.Get(doc); len(results) > 0 {
		return results[0]
	}
	return nil
}

func firstString(x jp.Expr, doc any, fallback string) string {
	return stringValue(first(x, doc), fallback)
}

func stringValue(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}
