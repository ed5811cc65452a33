package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/incidentloom-cli/internal/config"
	"github.com/KaramelBytes/incidentloom-cli/internal/export"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set IncidentLoom configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "header_strategy: %s\n", c.HeaderStrategy)
		fmt.Fprintf(out, "header_scan_rows: %d\n", c.HeaderScanRows)
		if c.HeaderStrategy == "fixed" {
			fmt.Fprintf(out, "header_fixed_row: %d\n", c.HeaderFixedRow)
		}
		fmt.Fprintf(out, "signature_tokens: %s\n", strings.Join(c.SignatureTokens, ","))
		fmt.Fprintf(out, "unknown_department: %s\n", c.UnknownDepartment)
		fmt.Fprintf(out, "roc_years: %t\n", c.ROCYears)
		fmt.Fprintf(out, "excel_serial_dates: %t\n", c.ExcelSerialDates)
		fmt.Fprintf(out, "workers: %d\n", c.Workers)
		fmt.Fprintf(out, "export_encoding: %s\n", c.ExportEncoding)
		fmt.Fprintf(out, "export_delimiter: %q\n", c.ExportDelimiter)
		fmt.Fprintf(out, "output_format: %s\n", c.OutputFormat)
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		if err := setConfigValue(c, args[0], args[1]); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func setConfigValue(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "header_strategy":
		switch strings.ToLower(val) {
		case "scan", "fixed":
			c.HeaderStrategy = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid header_strategy: %s (use scan or fixed)", val)
		}
	case "header_scan_rows":
		i, err := strconv.Atoi(val)
		if err != nil || i <= 0 {
			return fmt.Errorf("invalid int for header_scan_rows: %v", val)
		}
		c.HeaderScanRows = i
	case "header_fixed_row":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for header_fixed_row: %v", val)
		}
		c.HeaderFixedRow = i
	case "signature_tokens":
		var tokens []string
		for _, t := range strings.Split(val, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tokens = append(tokens, t)
			}
		}
		if len(tokens) == 0 {
			return fmt.Errorf("signature_tokens needs at least one token")
		}
		c.SignatureTokens = tokens
	case "unknown_department":
		c.UnknownDepartment = val
	case "roc_years", "excel_serial_dates":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for %s: %w", key, err)
		}
		if key == "roc_years" {
			c.ROCYears = b
		} else {
			c.ExcelSerialDates = b
		}
	case "workers":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for workers: %v", val)
		}
		c.Workers = i
	case "export_encoding":
		e, err := export.ParseEncoding(val)
		if err != nil {
			return err
		}
		c.ExportEncoding = string(e)
	case "export_delimiter":
		if _, err := parseDelimiter(val); err != nil {
			return err
		}
		c.ExportDelimiter = val
	case "output_format":
		switch strings.ToLower(val) {
		case "text", "markdown", "json", "yaml":
			c.OutputFormat = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid output_format: %s (use text|markdown|json|yaml)", val)
		}
	case "log_level":
		c.LogLevel = val
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
