package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/getmockd/brumigrate/pkg/migration"
)

const ruleWidth = 60

var (
	banner = strings.Repeat("=", ruleWidth)
	rule   = strings.Repeat("-", ruleWidth)
	upper  = cases.Upper(language.Und)
)

var (
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"})
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"}).Bold(true)
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#58A6FF"})
	titleStyle = lipgloss.NewStyle().Bold(true)
)

// Header renders the banner printed before validation starts.
func Header(source, target, output string) string {
	lines := []string{
		banner,
		"MIGRATION VALIDATION",
		banner,
		"Postman workspace: " + source,
		"Bruno workspace:   " + target,
		"Output file:       " + output,
		banner,
	}
	return strings.Join(lines, "\n")
}

// FormatSummary renders the summary block. With styled set, the title and
// the status lines are colored for terminal output.
func FormatSummary(s migration.Summary, styled bool) string {
	paint := func(st lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return st.Render(text)
	}

	lines := []string{
		banner,
		paint(titleStyle, "VALIDATION SUMMARY"),
		banner,
		fmt.Sprintf("Total Validations: %d", s.Total),
		paint(passStyle, fmt.Sprintf("Passed:            %d", s.Passed)),
		paint(failStyle, fmt.Sprintf("Failed:            %d", s.Failed)),
		paint(infoStyle, fmt.Sprintf("Info:              %d", s.Info)),
		fmt.Sprintf("Success Rate:      %.2f%%", s.SuccessRate),
		banner,
	}
	return strings.Join(lines, "\n")
}

// WriteFailures lists every failed record with its counts and source path.
// Nothing is written when no record failed.
func WriteFailures(w io.Writer, records []migration.Record) error {
	failed := migration.Failures(records)
	if len(failed) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "FAILED VALIDATIONS:\n%s\n", rule); err != nil {
		return err
	}
	for _, r := range failed {
		_, err := fmt.Fprintf(w, "  %s: %s\n    Postman: %d | Bruno: %d\n    Path: %s\n\n",
			upper.String(string(r.Type)), r.Description, r.SourceCount, r.TargetCount, r.SourcePath)
		if err != nil {
			return err
		}
	}
	return nil
}
