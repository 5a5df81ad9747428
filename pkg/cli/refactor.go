package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/getmockd/brumigrate/pkg/bruno"
	"github.com/getmockd/brumigrate/pkg/cli/internal/output"
)

var refactorGlobals bool

var refactorCmd = &cobra.Command{
	Use:   "refactor <workspace>",
	Short: "Fix up a Bruno workspace after importing a Postman export",
	Long: `Merge the collections Bruno created while importing a Postman workspace
into one collection named after the workspace:

  - every imported collection.bru becomes folder.bru and its bruno.json is removed
  - the merged collection gets bruno.json and a collection.bru that carries the
    Postman global variables as a vars:pre-request block
  - workspace.yml lists only the merged collection`,
	Example: `  brumigrate refactor Petstore
  brumigrate refactor Petstore --globals=false`,
	Args: cobra.ExactArgs(1),
	RunE: runRefactor,
}

func init() {
	refactorCmd.Flags().BoolVar(&refactorGlobals, "globals", true, "Copy Postman global variables into collection.bru")
	rootCmd.AddCommand(refactorCmd)
}

func runRefactor(cmd *cobra.Command, args []string) error {
	setBool(cmd, "globals", "importGlobalVariables", refactorGlobals, &cfg.ImportGlobalVariables, cfg)

	name := args[0]
	r := bruno.NewRefactor(cfg.BrunoWorkspaceFolder, cfg.PostmanExportFolder,
		bruno.WithGlobalVariables(cfg.ImportGlobalVariables),
		bruno.WithRefactorLogger(componentLogger("refactor")),
	)
	if err := r.Run(name); err != nil {
		return err
	}

	collection := filepath.Join(cfg.BrunoWorkspaceFolder, name, bruno.CollectionsDir, name)
	if jsonOutput {
		return output.JSON(cmd.OutOrStdout(), map[string]any{
			"workspace":       name,
			"collection":      collection,
			"globalVariables": cfg.ImportGlobalVariables,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Refactored workspace %s\n  Collection: %s\n", name, collection)
	return nil
}
