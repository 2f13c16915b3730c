package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage opexport configuration file values.",
	Long: `Create, edit, and display the opexport configuration file.

The configuration stores connection and export settings:
- openproject.url / openproject.api_key
- export.user / export.location_field / export.page_size / export.timeout_seconds`,
	Example: `
  # Create default config in $HOME/.opexport.yaml
  opexport config create

  # Show active config and source file
  opexport config show

  # Open active config in editor (creates example if missing)
  opexport config edit
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
