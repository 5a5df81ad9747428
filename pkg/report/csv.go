// Package report renders validation records: a CSV report, a console
// summary, a JUnit XML file for CI and a JSON document.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/getmockd/brumigrate/pkg/migration"
)

// Columns is the CSV header row.
var Columns = []string{
	"postman_item_path",
	"bruno_path",
	"type",
	"postman_count",
	"bruno_count",
	"validation_status",
	"description",
}

// WriteCSV writes the header and one row per record.
func WriteCSV(w io.Writer, records []migration.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.SourcePath,
			r.TargetPath,
			string(r.Type),
			strconv.Itoa(r.SourceCount),
			strconv.Itoa(r.TargetCount),
			string(r.Status),
			r.Description,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes records to path, creating parent directories. It
// writes nothing and returns false when there are no records.
func WriteCSVFile(path string, records []migration.Record) (bool, error) {
	if len(records) == 0 {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create report directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("failed to create report: %w", err)
	}
	if err := WriteCSV(f, records); err != nil {
		_ = f.Close()
		return false, fmt.Errorf("failed to write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("failed to write report: %w", err)
	}
	return true, nil
}
