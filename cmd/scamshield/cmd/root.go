package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"scamshield/cmd/scamshield/cmd/analyze"
	"scamshield/cmd/scamshield/cmd/engines"
	"scamshield/cmd/scamshield/cmd/export"
	"scamshield/cmd/scamshield/cmd/history"
	"scamshield/cmd/scamshield/cmd/serve"
	"scamshield/cmd/scamshield/cmd/version"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scamshield",
	Short: "Analyze messages and voice recordings for fraud signals",
	Long: `Analyze messages and voice recordings for fraud signals.
- Score pasted text against known scam patterns
- Transcribe audio locally or remotely and score the transcript
- Keep a bounded history of recent verdicts, with a persistent archive`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(analyze.Cmd)
	rootCmd.AddCommand(engines.Cmd)
	rootCmd.AddCommand(history.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
