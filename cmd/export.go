package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/KaramelBytes/incidentloom-cli/internal/export"
	"github.com/KaramelBytes/incidentloom-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	expFlags      ingestFlags
	expOutputPath string
	expEncoding   string
	expDelimiter  string
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the merged dataset as delimited text",
	Args:  requireFile,
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := exportOptions(cmd)
		if err != nil {
			return err
		}
		flt, err := buildFilter(&expFlags)
		if err != nil {
			return err
		}
		s, err := loadSession(cmd.Context(), cmd, args[0], &expFlags)
		if err != nil {
			return err
		}
		if warnNoUsableData(cmd, s) {
			return nil
		}
		view := flt.Apply(s.Dataset)

		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, view, opt); err != nil {
			return err
		}
		if expOutputPath == "" {
			_, err := cmd.OutOrStdout().Write(buf.Bytes())
			return err
		}
		if err := utils.SafeWriteFile(expOutputPath, buf.Bytes()); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d records to %s\n", view.Len(), expOutputPath)
		return nil
	},
}

func exportOptions(cmd *cobra.Command) (export.Options, error) {
	opt := export.DefaultOptions()
	enc, delim := expEncoding, expDelimiter
	if c, err := currentConfig(); err == nil {
		if !cmd.Flags().Changed("encoding") && c.ExportEncoding != "" {
			enc = c.ExportEncoding
		}
		if !cmd.Flags().Changed("delimiter") && c.ExportDelimiter != "" {
			delim = c.ExportDelimiter
		}
	}
	e, err := export.ParseEncoding(enc)
	if err != nil {
		return opt, err
	}
	opt.Encoding = e
	if opt.Delimiter, err = parseDelimiter(delim); err != nil {
		return opt, err
	}
	return opt, nil
}

func parseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "", ",", "comma":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %q (use ',' | ';' | 'tab')", s)
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addIngestFlags(exportCmd, &expFlags)
	exportCmd.Flags().StringVarP(&expOutputPath, "output", "o", "", "path of the exported file (stdout if omitted)")
	exportCmd.Flags().StringVar(&expEncoding, "encoding", "utf-8-bom", "output encoding: utf-8-bom|utf-8|big5")
	exportCmd.Flags().StringVar(&expDelimiter, "delimiter", ",", "field delimiter: ',' | ';' | 'tab'")
}
