package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/getmockd/brumigrate/pkg/cli/internal/output"
	"github.com/getmockd/brumigrate/pkg/cliconfig"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	Long: `Display the configuration brumigrate would use, after merging defaults,
config files, BRUMIGRATE_* environment variables and flags, together with
the source of every value. The API key is masked.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printConfig(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// maskKey keeps the last four characters of an API key.
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

func printConfig(w io.Writer, c *cliconfig.Config) error {
	shown := *c
	shown.PostmanAPIKey = maskKey(c.PostmanAPIKey)

	if jsonOutput {
		return output.JSON(w, map[string]any{
			"config":  shown,
			"apiKey":  shown.PostmanAPIKey,
			"sources": c.Sources,
		})
	}

	// Round-trip through a yaml node to list keys in declaration order.
	var node yaml.Node
	if err := node.Encode(&shown); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tw := output.Table(w)
	fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		source := c.Sources[key]
		if source == "" {
			source = cliconfig.SourceDefault
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", key, node.Content[i+1].Value, source)
	}
	return tw.Flush()
}
