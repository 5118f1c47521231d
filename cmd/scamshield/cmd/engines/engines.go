package engines

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"scamshield/internal/app"
)

// Cmd represents the engines command
var Cmd = &cobra.Command{
	Use:   "engines",
	Short: "Probe the configured transcription engines",
	Long: `Probe the configured transcription engines and print their availability.

- Probes run against live endpoints and local binaries
- Results are cached briefly, so repeated runs are cheap`,
	Run: func(cmd *cobra.Command, args []string) {
		a := app.InitializeAnalyzer()
		defer a.Store().Close()

		orchestrator := a.Orchestrator()
		statuses := orchestrator.ProbeAll(context.Background())

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ENGINE\tAVAILABLE\tACCELERATED\tDETAIL")
		for _, name := range orchestrator.EngineNames() {
			status := statuses[name]
			fmt.Fprintf(w, "%s\t%v\t%v\t%s\n",
				name, status.Available, status.Accelerated, status.Detail)
		}
		w.Flush()
	},
}
