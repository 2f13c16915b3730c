package config

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyOpenProjectURL       = "openproject.url"
	KeyOpenProjectAPIKey    = "openproject.api_key"
	KeyExportUser           = "export.user"
	KeyExportLocationField  = "export.location_field"
	KeyExportPageSize       = "export.page_size"
	KeyExportTimeoutSeconds = "export.timeout_seconds"
)

// Environment variable names kept compatible with the classic exporter
// script, so existing shells keep working.
var envAliases = map[string]string{
	KeyOpenProjectURL:      "OPENPROJECT_BASE_URL",
	KeyOpenProjectAPIKey:   "OPENPROJECT_API_KEY",
	KeyExportUser:          "OPENPROJECT_USER",
	KeyExportLocationField: "OPENPROJECT_LOCATION_CF",
}

type Config struct {
	OpenProject OpenProjectConfig `mapstructure:"openproject" validate:"required"`
	Export      ExportConfig      `mapstructure:"export"`
}

type OpenProjectConfig struct {
	URL    string `mapstructure:"url" validate:"required,url"`
	APIKey string `mapstructure:"api_key" validate:"required"`
}

type ExportConfig struct {
	User           string `mapstructure:"user"`
	LocationField  string `mapstructure:"location_field"`
	PageSize       int    `mapstructure:"page_size" validate:"min=1,max=1000"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"min=1"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
	for key, env := range envAliases {
		_ = viper.BindEnv(key, env)
	}
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# opexport configuration
openproject:
  url: "https://openproject.example.com"
  api_key: ""

export:
  user: "me"
  location_field: ""
  page_size: 200
  timeout_seconds: 30
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateUser(cfg.Export.User); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyExportUser, "me")
	v.SetDefault(KeyExportLocationField, "")
	v.SetDefault(KeyExportPageSize, 200)
	v.SetDefault(KeyExportTimeoutSeconds, 30)
}

func validateUser(user string) error {
	user = strings.TrimSpace(user)
	if user == "" || user == "me" {
		return nil
	}
	id, err := strconv.Atoi(user)
	if err != nil || id <= 0 {
		return fmt.Errorf("validation failed: export.user must be \"me\" or a positive user id, got %q", user)
	}
	return nil
}
