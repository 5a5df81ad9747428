// Package postman parses a Postman workspace export into the normalized
// workspace tree.
//
// The expected layout under the workspace root is:
//
//	collections/*.json       one Postman Collection v2.x document per file
//	environments/*.json      {name, values: [{key, value}]}
//	global_variables.json    {values: [{key, value}]} (optional)
//
// Parsing is best-effort over what exists: missing directories produce empty
// results and unreadable or malformed files are skipped with a warning.
//
// # Folder or request
//
// An item carrying a "request" key is a request, even if it also carries
// "item". An item carrying "item" and no "request" is a folder. Key presence
// is what counts, so documents are decoded into a generic tree rather than
// typed structs:
//
//	p := postman.NewParser("output/petstore", postman.WithLogger(log))
//	summary := p.Parse()
//	for _, c := range summary.Collections {
//	    fmt.Println(c.Name, c.TotalRequests, c.TotalFolders)
//	}
package postman
