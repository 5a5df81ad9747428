// Package migration compares a parsed source workspace with its migrated
// target and produces an ordered list of validation records.
//
// Nodes are paired by normalized name only. Folders are matched against the
// flattened folder list of the paired collection, not against their parent's
// children, so a folder that was moved within its collection still matches.
// Two folders sharing a normalized name both pair with the first target.
package migration

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/getmockd/brumigrate/pkg/logging"
	"github.com/getmockd/brumigrate/pkg/workspace"
)

var normalizer = strings.NewReplacer(" ", "", "_", "", "-", "")

// Normalize lowercases name and strips spaces, underscores and dashes.
func Normalize(name string) string {
	return normalizer.Replace(strings.ToLower(name))
}

// Validator compares two workspace summaries.
type Validator struct {
	source *workspace.Summary
	target *workspace.Summary
	log    *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger used for match tracing.
func WithLogger(log *slog.Logger) Option {
	return func(v *Validator) {
		if log != nil {
			v.log = log
		}
	}
}

// NewValidator creates a validator for a source workspace and its target.
// A nil summary is treated as an empty workspace.
func NewValidator(source, target *workspace.Summary, opts ...Option) *Validator {
	if source == nil {
		source = &workspace.Summary{}
	}
	if target == nil {
		target = &workspace.Summary{}
	}
	v := &Validator{source: source, target: target, log: logging.Nop()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Run produces the records for the whole workspace: the collection count,
// each collection with its folders, the environment count, each
// environment and finally the global variables.
func (v *Validator) Run() []Record {
	records := v.validateCollections()
	return append(records, v.validateEnvironments()...)
}

func (v *Validator) validateCollections() []Record {
	src, dst := v.source.Collections, v.target.Collections

	records := []Record{compare(TypeWorkspace,
		filepath.Join(v.source.Root, "collections"),
		filepath.Join(v.target.Root, "collections"),
		len(src), len(dst),
		"Collection count in workspace",
	)}

	for _, sc := range src {
		tc := findByName(sc.Name, dst)
		if tc == nil {
			v.log.Debug("collection not matched", "name", sc.Name)
			records = append(records, notFound(TypeCollection, sc.Path, sc.TotalRequests,
				fmt.Sprintf("Collection '%s' not found in Bruno", sc.Name)))
			continue
		}
		v.log.Debug("collection matched", "source", sc.Path, "target", tc.Path)
		records = append(records,
			compare(TypeCollection, sc.Path, tc.Path, sc.TotalRequests, tc.TotalRequests,
				fmt.Sprintf("Request count in collection '%s'", sc.Name)),
			compare(TypeCollection, sc.Path, tc.Path, sc.TotalFolders, tc.TotalFolders,
				fmt.Sprintf("Folder count in collection '%s'", sc.Name)),
		)
		records = append(records, v.validateFolders(sc, tc)...)
	}
	return records
}

func (v *Validator) validateFolders(source, target *workspace.Node) []Record {
	targetFolders := target.Flatten()

	var records []Record
	for _, sf := range source.Flatten() {
		tf := findByName(sf.Name, targetFolders)
		if tf == nil {
			records = append(records, notFound(TypeFolder, sf.Path, sf.TotalRequests,
				fmt.Sprintf("Folder '%s' not found in Bruno", sf.Name)))
			continue
		}
		records = append(records, compare(TypeFolder, sf.Path, tf.Path, sf.TotalRequests, tf.TotalRequests,
			fmt.Sprintf("Request count in folder '%s'", sf.Name)))
	}
	return records
}

func (v *Validator) validateEnvironments() []Record {
	src, dst := v.source.Environments, v.target.Environments

	records := []Record{compare(TypeEnvironment,
		filepath.Join(v.source.Root, "environments"),
		filepath.Join(v.target.Root, "environments"),
		len(src), len(dst),
		"Environment count",
	)}

	for _, se := range src {
		te := findByName(se.Name, dst)
		if te == nil {
			records = append(records, notFound(TypeEnvironment, se.Path, se.VariableCount(),
				fmt.Sprintf("Environment '%s' not found in Bruno", se.Name)))
			continue
		}
		records = append(records, compare(TypeEnvironment, se.Path, te.Path, se.VariableCount(), te.VariableCount(),
			fmt.Sprintf("Variable count in environment '%s'", se.Name)))
	}

	if g := v.source.Globals; g != nil {
		records = append(records, Record{
			SourcePath:  g.Path,
			TargetPath:  NotApplicable,
			Type:        TypeGlobalVariables,
			SourceCount: g.VariableCount(),
			Status:      StatusInfo,
			Description: "Global variables (Bruno does not have direct equivalent)",
		})
	}
	return records
}

// findByName returns the first candidate whose normalized name equals
// the normalized name.
func findByName(name string, candidates []*workspace.Node) *workspace.Node {
	key := Normalize(name)
	for _, c := range candidates {
		if Normalize(c.Name) == key {
			return c
		}
	}
	return nil
}
