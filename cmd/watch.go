package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/KaramelBytes/incidentloom-cli/internal/analysis"
	"github.com/KaramelBytes/incidentloom-cli/internal/session"
	"github.com/KaramelBytes/incidentloom-cli/internal/watch"
	"github.com/spf13/cobra"
)

var watchFlags ingestFlags

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Ingest a workbook and re-ingest it whenever it is saved",
	Args:  requireFile,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		p, err := buildPipeline(cmd, &watchFlags)
		if err != nil {
			return err
		}
		flt, err := buildFilter(&watchFlags)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
		var holder session.Holder
		s, err := session.Load(ctx, path, p)
		if err != nil {
			return err
		}
		holder.Replace(s)
		printSessionLog(cmd, s, flt)

		w := watch.New(path, func(ctx context.Context) {
			next, err := session.Load(ctx, path, p)
			if err != nil {
				fmt.Fprintf(errOut, "⚠ Reload failed: %v\n", err)
				return
			}
			prev := holder.Replace(next)
			fmt.Fprintf(out, "✓ Reloaded %s: %d → %d records\n", next.Name(), prev.Dataset.Len(), next.Dataset.Len())
			printSessionLog(cmd, next, flt)
		})
		fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", path)
		return w.Run(ctx)
	},
}

func printSessionLog(cmd *cobra.Command, s *session.Session, flt analysis.Filter) {
	if warnNoUsableData(cmd, s) {
		return
	}
	for _, line := range s.Log.Lines() {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", line)
	}
	if flt.IsZero() {
		fmt.Fprintf(cmd.OutOrStdout(), "Records: %d\n", s.Dataset.Len())
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Records: %d of %d (filtered)\n", flt.Apply(s.Dataset).Len(), s.Dataset.Len())
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addIngestFlags(watchCmd, &watchFlags)
}
