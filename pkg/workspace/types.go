// Package workspace defines the normalized tree shared by the Postman and
// Bruno parsers. Both parsers produce a Summary; the migration validator
// consumes two of them without knowing which format they came from.
package workspace

// Kind identifies the structural role of a Node.
type Kind string

const (
	KindCollection      Kind = "collection"
	KindFolder          Kind = "folder"
	KindEnvironment     Kind = "environment"
	KindGlobalVariables Kind = "global_variables"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Node is one collection, folder, environment or global-variable record.
// Requests are never modelled individually; they only contribute to the
// counts of their ancestors.
type Node struct {
	// Name as declared in the source format.
	Name string `json:"name"`

	// Path is an opaque location (file path or item path) used for reporting.
	Path string `json:"path"`

	Kind Kind `json:"type"`

	// ID is the identifier the source declares, if any.
	ID string `json:"id,omitempty"`

	DirectRequests int `json:"directRequestCount"`
	TotalRequests  int `json:"requestCount"`
	DirectFolders  int `json:"directFolderCount"`
	TotalFolders   int `json:"folderCount"`

	// Children holds sub-folders in traversal order.
	Children []*Node `json:"folders,omitempty"`

	// Variables holds declared variable names, duplicates included.
	Variables []string `json:"variables,omitempty"`
}

// VariableCount returns the number of declared variables.
func (n *Node) VariableCount() int {
	if n == nil {
		return 0
	}
	return len(n.Variables)
}

// Summary is the parsed form of one workspace root.
type Summary struct {
	// Root is the workspace directory the summary was built from.
	Root string `json:"workspacePath"`

	Collections  []*Node `json:"collections"`
	Environments []*Node `json:"environments"`

	// Globals is nil when the format has no global variables or none were found.
	Globals *Node `json:"globalVariables,omitempty"`
}

// TotalRequests sums request counts across all collections.
func (s *Summary) TotalRequests() int {
	total := 0
	for _, c := range s.Collections {
		total += c.TotalRequests
	}
	return total
}

// TotalFolders sums folder counts across all collections.
func (s *Summary) TotalFolders() int {
	total := 0
	for _, c := range s.Collections {
		total += c.TotalFolders
	}
	return total
}

// Warning records a file a parser skipped or could only partly read.
type Warning struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}
