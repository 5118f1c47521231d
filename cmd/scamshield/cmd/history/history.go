package history

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"scamshield/internal/app"
)

var limit int

func init() {
	Cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries to show")
}

// Cmd represents the history command
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent analysis verdicts from the archive",
	Long: `Show recent analysis verdicts from the persistent archive,
most recent first.`,
	Run: func(cmd *cobra.Command, args []string) {
		a := app.InitializeAnalyzer()
		defer a.Store().Close()

		entries, err := a.Store().ListRecent(limit)
		if err != nil {
			log.Fatalf("failed to read history: %v", err)
		}
		if len(entries) == 0 {
			fmt.Println("no analyses recorded yet")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tRISK\tSCORE\tTYPE\tENGINE\tPREVIEW")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
				e.Timestamp.Format(time.DateTime),
				e.Verdict.RiskLevel,
				e.Verdict.AggregateScore,
				e.Verdict.ScamType,
				e.Verdict.EngineUsed,
				e.Preview)
		}
		w.Flush()
	},
}
