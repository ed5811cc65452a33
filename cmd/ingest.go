package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/KaramelBytes/incidentloom-cli/internal/analysis"
	"github.com/KaramelBytes/incidentloom-cli/internal/ingest"
	"github.com/KaramelBytes/incidentloom-cli/internal/session"
	"github.com/KaramelBytes/incidentloom-cli/internal/utils"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	ingFlags      ingestFlags
	ingFormat     string
	ingOutputPath string
	ingRecords    bool
)

// ingestReport is the machine-readable result of one ingestion.
type ingestReport struct {
	Session *session.Session `json:"session" yaml:"session"`
	Summary analysis.Summary `json:"summary" yaml:"summary"`
	Records []ingest.Record  `json:"records,omitempty" yaml:"records,omitempty"`
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Ingest an incident workbook and summarize the merged dataset",
	Args:  requireFile,
	RunE: func(cmd *cobra.Command, args []string) error {
		flt, err := buildFilter(&ingFlags)
		if err != nil {
			return err
		}
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		s, err := loadSession(cmd.Context(), cmd, args[0], &ingFlags)
		if err != nil {
			return err
		}
		if warnNoUsableData(cmd, s) {
			return nil
		}
		view := flt.Apply(s.Dataset)
		sum := analysis.Summarize(view, time.Now())
		sum.Name = s.Name()

		var out []byte
		switch format {
		case "json", "yaml":
			rep := ingestReport{Session: s, Summary: sum}
			if ingRecords {
				rep.Records = view.Records()
			}
			if format == "json" {
				out, err = utils.PrettyJSON(rep)
			} else {
				out, err = yaml.Marshal(rep)
				if err != nil {
					err = fmt.Errorf("marshal yaml: %w", err)
				}
			}
			if err != nil {
				return err
			}
		case "markdown":
			sum.Log = s.Log
			out = []byte(sum.Markdown())
		default:
			var b strings.Builder
			writeText(&b, s, sum, !flt.IsZero())
			out = []byte(b.String())
		}

		if ingOutputPath != "" {
			if err := utils.SafeWriteFile(ingOutputPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s report to %s\n", format, ingOutputPath)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

// outputFormat resolves --format against the configured default.
func outputFormat(cmd *cobra.Command) (string, error) {
	f := ingFormat
	if !cmd.Flags().Changed("format") {
		if c, err := currentConfig(); err == nil && c.OutputFormat != "" {
			f = c.OutputFormat
		}
	}
	switch f = strings.ToLower(strings.TrimSpace(f)); f {
	case "", "text":
		return "text", nil
	case "md", "markdown":
		return "markdown", nil
	case "json", "yaml":
		return f, nil
	case "yml":
		return "yaml", nil
	default:
		return "", fmt.Errorf("unsupported --format: %s (use text|markdown|json|yaml)", f)
	}
}

func writeText(w io.Writer, s *session.Session, sum analysis.Summary, filtered bool) {
	fmt.Fprintf(w, "Workbook: %s\n", s.Name())
	for _, line := range s.Log.Lines() {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if filtered {
		fmt.Fprintf(w, "Records: %d of %d (filtered)\n", sum.Total, s.Dataset.Len())
	} else {
		fmt.Fprintf(w, "Records: %d\n", sum.Total)
	}
	if sum.TopCategory != "" {
		fmt.Fprintf(w, "Top category: %s\n", sum.TopCategory)
	}
	fmt.Fprintf(w, "This month: %d\n", sum.ThisMonth)
	if sum.MissingDates > 0 {
		fmt.Fprintf(w, "Without usable date: %d\n", sum.MissingDates)
	}
	if len(sum.ByCategory) > 0 {
		fmt.Fprintln(w, "By category:")
		for _, c := range sum.ByCategory {
			fmt.Fprintf(w, "  %-12s %d\n", c.Value, c.Count)
		}
	}
	if len(sum.ByYear) > 1 {
		fmt.Fprintln(w, "By year:")
		for _, c := range sum.ByYear {
			fmt.Fprintf(w, "  %-12s %d\n", c.Value, c.Count)
		}
	}
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	addIngestFlags(ingestCmd, &ingFlags)
	ingestCmd.Flags().StringVarP(&ingFormat, "format", "f", "text", "output format: text|markdown|json|yaml")
	ingestCmd.Flags().StringVarP(&ingOutputPath, "output", "o", "", "optional path to write the report")
	ingestCmd.Flags().BoolVar(&ingRecords, "records", false, "include every record in json/yaml output")
}
