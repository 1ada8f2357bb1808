package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-charts/pipeline"
)

var (
	renderTranscript string
	renderTitle      string
	renderOut        string
	renderExtended   bool
	renderJSON       bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderTranscript, "transcript", "t", "", "path to transcript JSON (required)")
	renderCmd.Flags().StringVar(&renderTitle, "title", "", "song title (defaults to the audio file name)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "write output to a file instead of stdout")
	renderCmd.Flags().BoolVar(&renderExtended, "extended", false, "use the extended chord catalog")
	renderCmd.Flags().BoolVar(&renderJSON, "json", false, "emit the full result as JSON instead of chart text")
	_ = renderCmd.MarkFlagRequired("transcript")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <audio file>",
	Short: "Render a chord chart from audio and a transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if renderExtended {
			cfg.Classifier.Catalog = "extended"
		}

		segments, err := loadTranscript(renderTranscript)
		if err != nil {
			return err
		}

		title := renderTitle
		if title == "" {
			base := filepath.Base(args[0])
			title = strings.TrimSuffix(base, filepath.Ext(base))
		}

		result, err := pipeline.New(cfg).ProcessFile(cmd.Context(), args[0], segments, title)
		if err != nil {
			return err
		}

		output := result.Chart
		if renderJSON {
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			output = string(data)
		}

		if renderOut != "" {
			return os.WriteFile(renderOut, []byte(output+"\n"), 0o644)
		}
		fmt.Println(output)
		return nil
	},
}
