package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/beevik/etree"

	"github.com/getmockd/brumigrate/pkg/migration"
)

// JUnit renders records as a JUnit XML document with one testsuite per
// record type, in order of first appearance. Fail records carry a
// <failure>, Info records a <skipped>.
func JUnit(name string, records []migration.Record) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("testsuites")
	root.CreateAttr("name", name)

	summary := migration.Summarize(records)
	root.CreateAttr("tests", strconv.Itoa(summary.Total))
	root.CreateAttr("failures", strconv.Itoa(summary.Failed))
	root.CreateAttr("skipped", strconv.Itoa(summary.Info))

	suites := map[migration.RecordType]*etree.Element{}
	counts := map[migration.RecordType]*migration.Summary{}
	var order []migration.RecordType

	for _, r := range records {
		suite, ok := suites[r.Type]
		if !ok {
			suite = root.CreateElement("testsuite")
			suite.CreateAttr("name", string(r.Type))
			suites[r.Type] = suite
			counts[r.Type] = &migration.Summary{}
			order = append(order, r.Type)
		}
		c := counts[r.Type]
		c.Total++

		tc := suite.CreateElement("testcase")
		tc.CreateAttr("classname", string(r.Type))
		tc.CreateAttr("name", r.Description)
		tc.CreateAttr("file", r.SourcePath)

		switch r.Status {
		case migration.StatusFail:
			c.Failed++
			failure := tc.CreateElement("failure")
			failure.CreateAttr("message", fmt.Sprintf("postman %d, bruno %d", r.SourceCount, r.TargetCount))
			failure.SetText(fmt.Sprintf("source: %s\ntarget: %s", r.SourcePath, r.TargetPath))
		case migration.StatusInfo:
			c.Info++
			tc.CreateElement("skipped").CreateAttr("message", "informational")
		}
	}

	for _, typ := range order {
		suite, c := suites[typ], counts[typ]
		suite.CreateAttr("tests", strconv.Itoa(c.Total))
		suite.CreateAttr("failures", strconv.Itoa(c.Failed))
		suite.CreateAttr("skipped", strconv.Itoa(c.Info))
	}

	doc.Indent(2)
	return doc
}

// WriteJUnit writes the JUnit document for records to w.
func WriteJUnit(w io.Writer, name string, records []migration.Record) error {
	_, err := JUnit(name, records).WriteTo(w)
	return err
}

// WriteJUnitFile writes the JUnit document to path, creating parent
// directories.
func WriteJUnitFile(path, name string, records []migration.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := JUnit(name, records).WriteToFile(path); err != nil {
		return fmt.Errorf("failed to write junit report: %w", err)
	}
	return nil
}
