package bruno

import (
	"regexp"
	"strings"
)

// Marker files that turn a directory into a collection root or a folder.
const (
	CollectionMarker = "collection.bru"
	FolderMarker     = "folder.bru"
)

// Methods are the block names that mark a .bru file as a request, in the
// order they are tried.
var Methods = []string{"get", "post", "put", "patch", "delete", "head", "options"}

var varLinePattern = regexp.MustCompile(`(\w+)\s*:\s*([^\n]*)`)

// File is the metadata extracted from one .bru file.
type File struct {
	Name      string   `json:"name"`
	Path      string   `json:"path"`
	Type      string   `json:"type"`
	IsRequest bool     `json:"isRequest"`
	Method    string   `json:"method,omitempty"`
	Variables []string `json:"variables,omitempty"`
}

// ParseBru extracts metadata from the content of a .bru file. stem is used
// as the name when the meta block declares none. Malformed content degrades
// to defaults and never fails.
func ParseBru(stem string, content []byte) File {
	f := File{Name: stem, Type: "unknown"}
	blocks := Lex(content)

	for _, b := range blocks {
		if b.Name != "meta" || !b.Terminated {
			continue
		}
		if name := metaValue(b.Body, "name"); name != "" {
			f.Name = name
		}
		if typ := metaValue(b.Body, "type"); typ != "" {
			f.Type = typ
		}
		break
	}

methods:
	for _, method := range Methods {
		for _, b := range blocks {
			if b.Name == method && b.LineStart && b.Spaced {
				f.IsRequest = true
				f.Method = strings.ToUpper(method)
				break methods
			}
		}
	}

	for _, b := range blocks {
		if !b.Terminated || !isVarsBlock(b.Name) {
			continue
		}
		for _, m := range varLinePattern.FindAllStringSubmatch(b.Body, -1) {
			f.Variables = append(f.Variables, m[1])
		}
	}
	return f
}

// metaValue returns the rest of the line after the first "key:" in body.
func metaValue(body, key string) string {
	idx := strings.Index(body, key+":")
	if idx < 0 {
		return ""
	}
	rest := body[idx+len(key)+1:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	return strings.TrimSpace(rest)
}

// isVarsBlock matches "vars" and "vars:<qualifier>" where the qualifier is
// made of word characters and dashes.
func isVarsBlock(name string) bool {
	if name == "vars" {
		return true
	}
	qualifier, ok := strings.CutPrefix(name, "vars:")
	if !ok || qualifier == "" {
		return false
	}
	for i := 0; i < len(qualifier); i++ {
		if qualifier[i] == ':' {
			return false
		}
	}
	return true
}
