package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"opexport/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values. The API key
is masked.`,
	Example: `
  # Show active configuration
  opexport config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		}
		fmt.Println("Configuration:")
		fmt.Printf("openproject.url: %s\n", cfg.OpenProject.URL)
		fmt.Printf("openproject.api_key: %s\n", maskSecret(cfg.OpenProject.APIKey))
		fmt.Printf("export.user: %s\n", cfg.Export.User)
		fmt.Printf("export.location_field: %s\n", cfg.Export.LocationField)
		fmt.Printf("export.page_size: %d\n", cfg.Export.PageSize)
		fmt.Printf("export.timeout_seconds: %d\n", cfg.Export.TimeoutSeconds)
	},
}

func maskSecret(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}
	return value[:2] + strings.Repeat("*", len(value)-4) + value[len(value)-2:]
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
