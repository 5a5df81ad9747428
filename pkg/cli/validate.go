package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/getmockd/brumigrate/pkg/bruno"
	"github.com/getmockd/brumigrate/pkg/cli/internal/output"
	"github.com/getmockd/brumigrate/pkg/migration"
	"github.com/getmockd/brumigrate/pkg/postman"
	"github.com/getmockd/brumigrate/pkg/report"
	"github.com/getmockd/brumigrate/pkg/util"
	"github.com/getmockd/brumigrate/pkg/workspace"
)

var (
	validateOutput  string
	validateJUnit   string
	validateWhere   string
	validateStrict  bool
	validateVerbose bool
	validatePostman string
	validateBruno   string
)

var validateCmd = &cobra.Command{
	Use:   "validate [workspace]",
	Short: "Validate a Postman to Bruno migration",
	Long: `Parse the exported Postman workspace and the migrated Bruno workspace,
compare request, folder and variable counts, and write a CSV report.

The workspace is looked up as <postman-dir>/<workspace> and
<bruno-dir>/<workspace>; --postman and --bruno point at the two roots
directly. The command exits with status 1 when any check fails.`,
	Example: `  brumigrate validate Petstore
  brumigrate validate Petstore -o results/validation.csv --junit junit.xml
  brumigrate validate --postman ./export/Petstore --bruno ./bruno/Petstore
  brumigrate validate Petstore --where 'status == "Fail" && type == "folder"'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringVarP(&validateOutput, "output", "o", "validation_report.csv", "Output CSV file path")
	f.StringVar(&validateJUnit, "junit", "", "Also write a JUnit XML report to this path")
	f.StringVar(&validateWhere, "where", "", "Only report records matching this expression")
	f.BoolVar(&validateStrict, "strict", false, "Fail when a parsed tree breaks the count aggregation law")
	f.BoolVarP(&validateVerbose, "verbose", "v", false, "Enable verbose output")
	f.StringVar(&validatePostman, "postman", "", "Postman workspace root (overrides <postman-dir>/<workspace>)")
	f.StringVar(&validateBruno, "bruno", "", "Bruno workspace root (overrides <bruno-dir>/<workspace>)")
	rootCmd.AddCommand(validateCmd)
}

// resolveWorkspaceRoots returns the Postman and Bruno roots to compare.
func resolveWorkspaceRoots(args []string) (string, string, error) {
	name := cfg.ValidationWorkspace
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" && (validatePostman == "" || validateBruno == "") {
		return "", "", ErrWorkspaceRequired
	}

	source, target := validatePostman, validateBruno
	if source == "" {
		source = filepath.Join(cfg.PostmanExportFolder, name)
	}
	if target == "" {
		target = filepath.Join(cfg.BrunoWorkspaceFolder, name)
	}
	if !util.DirExists(source) {
		return "", "", fmt.Errorf("postman workspace path does not exist: %s", source)
	}
	if !util.DirExists(target) {
		return "", "", fmt.Errorf("bruno workspace path does not exist: %s", target)
	}
	return source, target, nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	source, target, err := resolveWorkspaceRoots(args)
	if err != nil {
		return err
	}
	filter, err := migration.NewFilter(validateWhere)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	verbose := func(msg string) {
		if validateVerbose && !jsonOutput {
			fmt.Fprintln(out, msg)
		}
	}
	if !jsonOutput {
		fmt.Fprintln(out, report.Header(source, target, validateOutput))
		fmt.Fprintln(out)
	}

	verbose("Initializing validator...")
	pp := postman.NewParser(source, postman.WithLogger(componentLogger("postman")))
	bp := bruno.NewParser(target, bruno.WithLogger(componentLogger("bruno")))

	verbose("Parsing Postman workspace...")
	verbose("Parsing Bruno workspace...")
	var src, dst *workspace.Summary
	var g errgroup.Group
	g.Go(func() error {
		src = pp.Parse()
		return nil
	})
	g.Go(func() error {
		dst = bp.Parse()
		return nil
	})
	_ = g.Wait()

	if validateStrict {
		if err := src.CheckAggregation(); err != nil {
			return fmt.Errorf("postman tree: %w", err)
		}
		if err := dst.CheckAggregation(); err != nil {
			return fmt.Errorf("bruno tree: %w", err)
		}
	}

	verbose("Comparing structures...")
	if !jsonOutput {
		fmt.Fprintln(out, "Generating validation report...")
	}
	records := migration.NewValidator(src, dst, migration.WithLogger(componentLogger("validator"))).Run()
	summary := migration.Summarize(records)
	shown, err := filter.Apply(records)
	if err != nil {
		return err
	}

	written, err := report.WriteCSVFile(validateOutput, shown)
	if err != nil {
		return err
	}
	if validateJUnit != "" {
		if err := report.WriteJUnitFile(validateJUnit, "brumigrate", shown); err != nil {
			return err
		}
	}

	warnings := slices.Concat(pp.Warnings(), bp.Warnings())
	if jsonOutput {
		doc := report.NewDocument(runID, source, target, records, shown)
		doc.Warnings = warnings
		if err := output.JSON(out, doc); err != nil {
			return err
		}
	} else {
		printValidationResult(out, summary, shown, written, len(warnings))
	}

	if summary.HasFailures() {
		return &ExitError{Code: 1}
	}
	return nil
}

func printValidationResult(w io.Writer, summary migration.Summary, shown []migration.Record, written bool, warnings int) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, report.FormatSummary(summary, output.IsTerminal(w)))
	fmt.Fprintln(w)

	_ = report.WriteFailures(w, shown)

	if written {
		fmt.Fprintf(w, "CSV report generated: %s\n", validateOutput)
	} else {
		fmt.Fprintln(w, "No validation results to write.")
	}
	if warnings > 0 {
		output.Warn(w, "%d file(s) could not be read or parsed and were skipped", warnings)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Validation complete!")
	if summary.HasFailures() {
		fmt.Fprintf(w, "\nWARNING: %d validation(s) failed.\n", summary.Failed)
	} else {
		fmt.Fprintln(w, "\nSUCCESS: All validations passed!")
	}
}
