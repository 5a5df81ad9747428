package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/getmockd/brumigrate/pkg/cli/internal/output"
	"github.com/getmockd/brumigrate/pkg/postmanapi"
)

var (
	exportWorkspaces   []string
	exportInteractive  bool
	exportList         bool
	exportData         bool
	exportSkipExisting bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export Postman workspaces through the Postman API",
	Long: `Download collections, environments and global variables of Postman
workspaces into <postman-dir>/<workspace>/, the layout read by validate.

A failing item is reported and the rest of the export continues; the
command exits with status 1 if any item failed.`,
	Example: `  brumigrate export
  brumigrate export -w Petstore -w Billing --skip-existing
  brumigrate export --interactive
  brumigrate export --list --data=false`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringSliceVarP(&exportWorkspaces, "workspace", "w", nil, "Workspace name to export (repeatable; default: all)")
	f.BoolVarP(&exportInteractive, "interactive", "i", false, "Pick workspaces from a list")
	f.BoolVar(&exportList, "list", false, "Write the workspace list to <postman-dir>/workspaces.json")
	f.BoolVar(&exportData, "data", true, "Export collections, environments and global variables")
	f.BoolVar(&exportSkipExisting, "skip-existing", false, "Leave already exported files untouched")
	rootCmd.AddCommand(exportCmd)
}

func newPostmanClient() (postmanapi.Client, error) {
	key, err := cfg.RequireAPIKey()
	if err != nil {
		return nil, err
	}
	return postmanapi.NewClient(cfg.PostmanAPIURL,
		postmanapi.WithAPIKey(key),
		postmanapi.WithTimeout(time.Duration(cfg.Timeout)*time.Second),
	), nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	setBool(cmd, "list", "exportWorkspaceList", exportList, &cfg.ExportWorkspaceList, cfg)
	setBool(cmd, "data", "exportPostmanData", exportData, &cfg.ExportPostmanData, cfg)
	setBool(cmd, "skip-existing", "skipAlreadyExported", exportSkipExisting, &cfg.SkipAlreadyExported, cfg)

	client, err := newPostmanClient()
	if err != nil {
		return err
	}
	exp := postmanapi.NewExporter(client, cfg.PostmanExportFolder,
		postmanapi.WithSkipExisting(cfg.SkipAlreadyExported),
		postmanapi.WithConcurrency(cfg.Concurrency),
		postmanapi.WithLogger(componentLogger("exporter")),
	)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var results []postmanapi.ItemResult
	var workspaces []postmanapi.WorkspaceRef
	if cfg.ExportWorkspaceList || exportInteractive {
		var listResult postmanapi.ItemResult
		workspaces, listResult = exp.ExportWorkspaceList(ctx)
		if listResult.Err != nil {
			return listResult.Err
		}
		if cfg.ExportWorkspaceList {
			results = append(results, listResult)
		}
	}

	if cfg.ExportPostmanData {
		names := exportWorkspaces
		if exportInteractive {
			names, err = pickWorkspaces(workspaces)
			if err != nil {
				return err
			}
		}
		items, err := exp.ExportAll(ctx, names)
		if err != nil {
			return err
		}
		results = append(results, items...)
	}

	if err := printExportResults(cmd.OutOrStdout(), results); err != nil {
		return err
	}
	for _, r := range results {
		if r.Failed() {
			return &ExitError{Code: 1}
		}
	}
	return nil
}

// pickWorkspaces asks the user which workspaces to export.
func pickWorkspaces(workspaces []postmanapi.WorkspaceRef) ([]string, error) {
	if len(workspaces) == 0 {
		return nil, ErrNoWorkspaces
	}
	options := make([]huh.Option[string], len(workspaces))
	for i, ws := range workspaces {
		options[i] = huh.NewOption(ws.Name, ws.Name)
	}

	var selected []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Which workspaces should be exported?").
				Options(options...).
				Value(&selected).
				Validate(func(s []string) error {
					if len(s) == 0 {
						return ErrNoWorkspaces
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return nil, err
	}
	return selected, nil
}

func printExportResults(w io.Writer, results []postmanapi.ItemResult) error {
	if jsonOutput {
		if results == nil {
			results = []postmanapi.ItemResult{}
		}
		return output.JSON(w, map[string]any{"runId": runID, "results": results})
	}
	if len(results) == 0 {
		fmt.Fprintln(w, "Nothing exported.")
		return nil
	}

	var exported, skipped, failed int
	tw := output.Table(w)
	fmt.Fprintln(tw, "KIND\tNAME\tSTATUS\tPATH")
	for _, r := range results {
		status := "exported"
		switch {
		case r.Failed():
			status = "failed: " + r.Err.Error()
			failed++
		case r.Skipped:
			status = "skipped"
			skipped++
		default:
			exported++
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Kind, r.Name, status, r.Path)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nExported %d, skipped %d, failed %d\n", exported, skipped, failed)
	return nil
}
