package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Header location: "scan" looks for the signature tokens, "fixed" uses HeaderFixedRow.
	HeaderStrategy    string   `mapstructure:"header_strategy" yaml:"header_strategy"`
	HeaderScanRows    int      `mapstructure:"header_scan_rows" yaml:"header_scan_rows"`
	HeaderFixedRow    int      `mapstructure:"header_fixed_row" yaml:"header_fixed_row"`
	SignatureTokens   []string `mapstructure:"signature_tokens" yaml:"signature_tokens"`
	UnknownDepartment string   `mapstructure:"unknown_department" yaml:"unknown_department"`

	// Date leniency
	ROCYears         bool `mapstructure:"roc_years" yaml:"roc_years"`
	ExcelSerialDates bool `mapstructure:"excel_serial_dates" yaml:"excel_serial_dates"`

	// Workers bounds concurrent sheet transcoding; 0 means GOMAXPROCS.
	Workers int `mapstructure:"workers" yaml:"workers"`

	// Export and output
	ExportEncoding  string `mapstructure:"export_encoding" yaml:"export_encoding"`
	ExportDelimiter string `mapstructure:"export_delimiter" yaml:"export_delimiter"`
	OutputFormat    string `mapstructure:"output_format" yaml:"output_format"`
	LogLevel        string `mapstructure:"log_level" yaml:"log_level"`
}

// Dir returns ~/.incidentloom.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".incidentloom"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.incidentloom/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults; command flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("INCIDENTLOOM")
	v.AutomaticEnv()

	v.SetDefault("header_strategy", "scan")
	v.SetDefault("header_scan_rows", 20)
	v.SetDefault("header_fixed_row", 0)
	v.SetDefault("signature_tokens", []string{"單號", "通報日期", "通報員編"})
	v.SetDefault("unknown_department", "未知單位")
	v.SetDefault("roc_years", true)
	v.SetDefault("excel_serial_dates", true)
	v.SetDefault("workers", 0)
	v.SetDefault("export_encoding", "utf-8-bom")
	v.SetDefault("export_delimiter", ",")
	v.SetDefault("output_format", "text")
	v.SetDefault("log_level", "warn")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		// a missing file leaves the defaults; a malformed one is an error
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
