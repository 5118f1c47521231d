package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"scamshield/internal/app"
	"scamshield/internal/app/analyzer"
	"scamshield/internal/app/audio"
	"scamshield/internal/app/engine"
	"scamshield/internal/app/model"
)

var (
	text             string
	audioPath        string
	engineName       string
	language         string
	manualTranscript string
	asJSON           bool
)

func init() {
	Cmd.Flags().StringVarP(&text, "text", "t", "", "message text to analyze")
	Cmd.Flags().StringVarP(&audioPath, "audio", "a", "", "path to an audio recording to analyze")
	Cmd.Flags().StringVarP(&engineName, "engine", "e", "", "transcription engine to use (default: automatic selection)")
	Cmd.Flags().StringVarP(&language, "language", "l", "", "spoken language hint, e.g. en")
	Cmd.Flags().StringVarP(&manualTranscript, "manual-transcript", "m", "", "skip transcription and score this transcript instead")
	Cmd.Flags().BoolVar(&asJSON, "json", false, "print the verdict as JSON")

	Cmd.MarkFlagsOneRequired("text", "audio")
	Cmd.MarkFlagsMutuallyExclusive("text", "audio")
}

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a message or voice recording for fraud signals",
	Long: `Score a message or voice recording for fraud signals.

- Pass --text to score pasted message text directly
- Pass --audio to transcribe a recording first, then score the transcript
- Audio engines fall back automatically unless --engine pins one`,
	Run: func(cmd *cobra.Command, args []string) {
		a := app.InitializeAnalyzer()
		defer a.Store().Close()

		var verdict *model.RiskVerdict
		var err error
		if text != "" {
			verdict, err = a.AnalyzeText(context.Background(), text)
		} else {
			verdict, err = analyzeAudioFile(a, audioPath)
		}
		if err != nil {
			log.Fatalf("analysis failed: %v", err)
		}

		if asJSON {
			out, err := json.MarshalIndent(verdict, "", "  ")
			if err != nil {
				log.Fatalf("failed to encode verdict: %v", err)
			}
			fmt.Println(string(out))
			return
		}
		printVerdict(verdict)
	},
}

func analyzeAudioFile(a *analyzer.Analyzer, path string) (*model.RiskVerdict, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}

	src, err := audio.NewSource(data, "", path)
	if err != nil {
		return nil, err
	}

	progress := mpb.New(
		mpb.WithOutput(os.Stderr),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	bar := progress.AddBar(100,
		mpb.PrependDecorators(
			decor.Name("Analyzing ", decor.WC{W: 10}),
		),
		mpb.AppendDecorators(
			decor.NewPercentage("%d", decor.WCSyncSpace),
		),
	)

	opts := analyzer.AudioOptions{
		Language:         language,
		ManualTranscript: manualTranscript,
		Preference:       engine.Preference(engineName),
		Progress: func(events <-chan engine.ProgressEvent) {
			for ev := range events {
				bar.SetCurrent(int64(ev.Percent))
			}
		},
	}

	verdict, err := a.AnalyzeAudio(context.Background(), src, opts)
	if err != nil {
		bar.Abort(true)
		progress.Wait()
		return nil, err
	}

	bar.SetCurrent(100)
	progress.Wait()
	return verdict, nil
}

func printVerdict(v *model.RiskVerdict) {
	fmt.Printf("Risk level:  %s (%d/100)\n", v.RiskLevel, v.AggregateScore)
	fmt.Printf("Scam type:   %s\n", v.ScamType)
	if v.EngineUsed != "" {
		fmt.Printf("Engine:      %s\n", v.EngineUsed)
	}
	if v.Transcript != "" {
		fmt.Printf("Transcript:  %s\n", v.Transcript)
	}

	if len(v.Flags) > 0 {
		fmt.Println("\nFlags:")
		for _, f := range v.Flags {
			fmt.Printf("  - %s\n", f)
		}
	}
	if len(v.Advisories) > 0 {
		fmt.Println("\nAdvisories:")
		for _, adv := range v.Advisories {
			fmt.Printf("  - %s\n", adv)
		}
	}
	if len(v.Recommendations) > 0 {
		fmt.Println("\nRecommendations:")
		for _, r := range v.Recommendations {
			fmt.Printf("  - %s\n", r)
		}
	}

	if v.AudioFeatures != nil {
		fmt.Println("\nAudio features:")
		fmt.Printf("  duration: %.1fs, amplitude: %.3f, silence: %.0f%%, background noise: %v\n",
			v.AudioFeatures.DurationSeconds,
			v.AudioFeatures.AverageAmplitude,
			v.AudioFeatures.SilenceRatio*100,
			v.AudioFeatures.HasBackgroundNoise)
	}
}
