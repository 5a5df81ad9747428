package migration

// Status is the outcome of one validation record.
type Status string

const (
	StatusPass Status = "Pass"
	StatusFail Status = "Fail"
	// StatusInfo marks records reported for awareness only. They never
	// count as failures.
	StatusInfo Status = "Info"
)

// RecordType names the level a record validates.
type RecordType string

const (
	TypeWorkspace       RecordType = "workspace"
	TypeCollection      RecordType = "collection"
	TypeFolder          RecordType = "folder"
	TypeEnvironment     RecordType = "environment"
	TypeGlobalVariables RecordType = "global_variables"
)

// Placeholder target paths.
const (
	NotFound      = "NOT FOUND"
	NotApplicable = "N/A"
)

// Record is one comparison between a source and a target node.
type Record struct {
	SourcePath  string     `json:"sourcePath"`
	TargetPath  string     `json:"targetPath"`
	Type        RecordType `json:"type"`
	SourceCount int        `json:"sourceCount"`
	TargetCount int        `json:"targetCount"`
	Status      Status     `json:"status"`
	Description string     `json:"description"`
}

// compare builds a Pass or Fail record from two counts.
func compare(typ RecordType, sourcePath, targetPath string, sourceCount, targetCount int, description string) Record {
	status := StatusFail
	if sourceCount == targetCount {
		status = StatusPass
	}
	return Record{
		SourcePath:  sourcePath,
		TargetPath:  targetPath,
		Type:        typ,
		SourceCount: sourceCount,
		TargetCount: targetCount,
		Status:      status,
		Description: description,
	}
}

func notFound(typ RecordType, sourcePath string, sourceCount int, description string) Record {
	return Record{
		SourcePath:  sourcePath,
		TargetPath:  NotFound,
		Type:        typ,
		SourceCount: sourceCount,
		Status:      StatusFail,
		Description: description,
	}
}

// Summary aggregates the statuses of a validation run.
type Summary struct {
	Total       int     `json:"total"`
	Passed      int     `json:"passed"`
	Failed      int     `json:"failed"`
	Info        int     `json:"info"`
	SuccessRate float64 `json:"successRate"`
}

// Summarize counts records per status. SuccessRate is Passed/Total as a
// percentage, or 0 for an empty run.
func Summarize(records []Record) Summary {
	s := Summary{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case StatusPass:
			s.Passed++
		case StatusFail:
			s.Failed++
		case StatusInfo:
			s.Info++
		}
	}
	if s.Total > 0 {
		s.SuccessRate = float64(s.Passed) / float64(s.Total) * 100
	}
	return s
}

// HasFailures reports whether any record failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Failures returns the failed records in order.
func Failures(records []Record) []Record {
	var out []Record
	for _, r := range records {
		if r.Status == StatusFail {
			out = append(out, r)
		}
	}
	return out
}
