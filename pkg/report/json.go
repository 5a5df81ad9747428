package report

import (
	"github.com/getmockd/brumigrate/pkg/migration"
	"github.com/getmockd/brumigrate/pkg/workspace"
)

// Document is the machine-readable form of a validation run.
type Document struct {
	RunID    string              `json:"runId"`
	Source   string              `json:"source"`
	Target   string              `json:"target"`
	Summary  migration.Summary   `json:"summary"`
	Records  []migration.Record  `json:"records"`
	Warnings []workspace.Warning `json:"warnings,omitempty"`
}

// NewDocument assembles a Document. The summary is computed over all
// records even when only a filtered subset is included.
func NewDocument(runID, source, target string, all, shown []migration.Record) Document {
	if shown == nil {
		shown = []migration.Record{}
	}
	return Document{
		RunID:   runID,
		Source:  source,
		Target:  target,
		Summary: migration.Summarize(all),
		Records: shown,
	}
}
