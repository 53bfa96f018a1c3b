package sqlpager

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the process-wide pagination configuration.
type Config struct {
	// Dialect one of SupportedDialects, case-insensitive.
	Dialect string `mapstructure:"dbms" validate:"required"`
	// PageSize used when neither the call nor its Spec sets one.
	PageSize int `mapstructure:"page_size" validate:"gte=1"`
	// StrictCount see WithStrictCount.
	StrictCount bool `mapstructure:"strict_count"`
	// StatementsFile optional YAML file with statements, see LoadStatements.
	StatementsFile string `mapstructure:"statements_file"`
}

type fileConfig struct {
	Paging Config `mapstructure:"paging"`
}

// LoadConfig reads the "paging" section of the configuration file at path.
// Every key can be overridden by environment, e.g. PAGING_DBMS=postgresql.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("paging.dbms", "")
	v.SetDefault("paging.page_size", DefaultPageSize)
	v.SetDefault("paging.strict_count", false)
	v.SetDefault("paging.statements_file", "")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg fileConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Paging.Validate(); err != nil {
		return nil, err
	}

	return &cfg.Paging, nil
}

// Validate checks required fields. The dialect identifier itself is checked
// by the registry on first use.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}

	return nil
}

// LoadStatementsFile reads statements from StatementsFile.
func (c *Config) LoadStatementsFile() (*Statements, error) {
	if c.StatementsFile == "" {
		return nil, fmt.Errorf("statements file is not configured")
	}

	f, err := os.Open(c.StatementsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open statements file: %w", err)
	}
	defer f.Close()

	return LoadStatements(f)
}
