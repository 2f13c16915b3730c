package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"opexport/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "opexport",
	Short: "Export OpenProject monthly timesheets to Excel, CSV, or PDF.",
	Long: `
**********************************************
*               O P E X P O R T              *
**********************************************

This CLI retrieves all time entries for a user and month from an OpenProject
instance (API v3), normalizes them into report rows (date, decimal working
hours, location, composed work description), and writes a timesheet report.

Supported output formats:
- Excel: .xlsx
- CSV: .csv
- PDF: .pdf
`,
	Example: `
  # Create configuration file
  opexport config create

  # Export the current month for the authenticated user
  opexport export

  # Export January 2024 for user 42
  opexport export --month 2024-01 --user 42

  # Read the location from a custom field and write CSV
  opexport export --month 2024-01 --location-cf customField7 --output ./timesheet.csv
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.opexport.yaml, then ./.opexport.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".opexport" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".opexport")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found. Create one first with: opexport config create")
	}
}
