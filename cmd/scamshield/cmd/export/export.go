package export

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"scamshield/internal/app"
	"scamshield/internal/app/export"
)

var outputFilePath string
var limit int

func init() {
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath")
	Cmd.Flags().IntVarP(&limit, "limit", "n", 500, "maximum number of entries to export")

	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export recent analysis verdicts to excel",
	Long: `Export recent analysis verdicts to excel

- Entries come from the persistent archive, most recent first`,
	Run: func(cmd *cobra.Command, args []string) {
		a := app.InitializeAnalyzer()
		defer a.Store().Close()

		entries, err := a.Store().ListRecent(limit)
		if err != nil {
			log.Fatal(err)
		}

		if err := export.ToExcel(entries, outputFilePath); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("export finished, exported file path: %v\n", outputFilePath)
	},
}
