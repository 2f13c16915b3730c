package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"opexport/config"
	"opexport/output"
	"opexport/timesheet"
)

var (
	exportMonth      string
	exportUser       string
	exportBaseURL    string
	exportAPIKey     string
	exportLocationCF string
	exportPageSize   int
	exportTimeout    int
	exportFormat     string
	exportOutput     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export one month of OpenProject time entries to a timesheet report",
	Long: `Fetch all time entries for a user and month from OpenProject and write them
as a timesheet report.

Entries are retrieved page by page until the server reports no more, converted
from ISO 8601 durations to decimal hours, and ordered by date. The location
column is read from a configurable custom field and falls back to "remote".

Output format can be selected explicitly via --format or inferred from the
--output extension.`,
	Example: `
  # Export the current month for the authenticated user
  opexport export

  # Export January 2024 to Excel (default file name timesheet-2024-01.xlsx)
  opexport export --month 2024-01

  # Export for user 42 with the location custom field
  opexport export --month 2024-01 --user 42 --location-cf customField7

  # Write CSV explicitly
  opexport export --month 2024-01 --format csv --output ./timesheet.csv

  # Override connection settings from the command line
  opexport export --base-url https://openproject.example.com --api-key <key>
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyExportOverrides(cmd)

		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		month := timesheet.CurrentMonth()
		if strings.TrimSpace(exportMonth) != "" {
			month, err = timesheet.ParseMonth(exportMonth)
			if err != nil {
				return err
			}
		}

		outputPath := exportOutput
		if strings.TrimSpace(outputPath) == "" {
			outputPath = defaultOutputPath(month)
		}
		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = detectExportFormat(outputPath)
		}
		writer, err := output.WriterForFormat(format)
		if err != nil {
			return err
		}

		exporter, err := timesheet.NewExporter(timesheet.ExportConfig{
			BaseURL:       cfg.OpenProject.URL,
			APIKey:        cfg.OpenProject.APIKey,
			Month:         month,
			User:          cfg.Export.User,
			LocationField: cfg.Export.LocationField,
			PageSize:      cfg.Export.PageSize,
			Timeout:       time.Duration(cfg.Export.TimeoutSeconds) * time.Second,
			UserAgent:     "opexport",
		})
		if err != nil {
			return err
		}

		rows, err := exporter.Run(cmd.Context())
		if err != nil {
			color.Red("Export failed: %v", err)
			return err
		}

		if err := writer.Write(outputPath, rows); err != nil {
			return err
		}

		color.Green("Export completed. Rows: %d, Month: %s, Format: %s, File: %s", len(rows), month, format, outputPath)
		return nil
	},
}

// applyExportOverrides pushes changed flags into viper so the config layer
// validates the effective values, wherever they came from.
func applyExportOverrides(cmd *cobra.Command) {
	overrides := map[string]any{
		"base-url":    exportBaseURL,
		"api-key":     exportAPIKey,
		"user":        exportUser,
		"location-cf": exportLocationCF,
		"page-size":   exportPageSize,
		"timeout":     exportTimeout,
	}
	keys := map[string]string{
		"base-url":    config.KeyOpenProjectURL,
		"api-key":     config.KeyOpenProjectAPIKey,
		"user":        config.KeyExportUser,
		"location-cf": config.KeyExportLocationField,
		"page-size":   config.KeyExportPageSize,
		"timeout":     config.KeyExportTimeoutSeconds,
	}
	for flag, value := range overrides {
		if cmd.Flags().Changed(flag) {
			viper.Set(keys[flag], value)
		}
	}
}

func defaultOutputPath(month timesheet.Month) string {
	return fmt.Sprintf("timesheet-%s.xlsx", month)
}

func detectExportFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return "csv"
	case "pdf":
		return "pdf"
	case "xlsx", "xlsm", "xls":
		return "excel"
	default:
		return "excel"
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportMonth, "month", "m", "", "Month to export, format YYYY-MM (default: current month)")
	exportCmd.Flags().StringVar(&exportUser, "user", "", `User id or "me" (default: config export.user)`)
	exportCmd.Flags().StringVar(&exportBaseURL, "base-url", "", "OpenProject base URL, e.g. https://openproject.example.com")
	exportCmd.Flags().StringVar(&exportAPIKey, "api-key", "", "OpenProject API key")
	exportCmd.Flags().StringVar(&exportLocationCF, "location-cf", "", "Custom field key for Location, e.g. customField7")
	exportCmd.Flags().IntVar(&exportPageSize, "page-size", 0, "API page size (default: config export.page_size)")
	exportCmd.Flags().IntVar(&exportTimeout, "timeout", 0, "HTTP timeout in seconds (default: config export.timeout_seconds)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel|pdf (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default: ./timesheet-YYYY-MM.xlsx)")
}
