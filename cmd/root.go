package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-charts/config"
	"github.com/RyanBlaney/sonido-charts/logging"
	"github.com/RyanBlaney/sonido-charts/model"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "sonido-charts",
	Short: "Generate chord charts from audio and timed transcripts",
	Long: `sonido-charts turns a song and its timed transcript into a
fixed-width chord chart: chords are detected from the audio, the lyrics
are grouped into verses and choruses, and each chord is printed above
the word it sounds on.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logging.SetLevel(logging.DebugLevel)
		}
	},
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadFile(configPath)
}

// loadTranscript reads a transcript JSON file: either a full transcript
// document with a "segments" array or a bare array of segments
func loadTranscript(path string) ([]model.TranscriptSegment, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}

	var doc model.Transcript
	if err := json.Unmarshal(data, &doc); err == nil && len(doc.Segments) > 0 {
		return doc.Segments, nil
	}

	var segments []model.TranscriptSegment
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, fmt.Errorf("parsing transcript %s: %w", path, err)
	}
	return segments, nil
}
