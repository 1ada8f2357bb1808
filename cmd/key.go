package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-charts/chroma"
	"github.com/RyanBlaney/sonido-charts/tonal"
	"github.com/RyanBlaney/sonido-charts/transcode"
)

func init() {
	rootCmd.AddCommand(keyCmd)
}

var keyCmd = &cobra.Command{
	Use:   "key <audio file>",
	Short: "Estimate the musical key of a song",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		decoderConfig := transcode.DefaultDecoderConfig()
		decoderConfig.TargetSampleRate = cfg.Chroma.SampleRate

		audio, err := transcode.NewDecoder(decoderConfig).DecodeFile(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("decoding %s: %w", args[0], err)
		}

		extractor := chroma.NewExtractor(cfg.Chroma.SampleRate, cfg.Chroma.TuningFreq)
		frames, err := extractor.Frames(audio.PCM, cfg.Chroma.WindowSize, cfg.Chroma.HopSize)
		if err != nil {
			return err
		}

		fmt.Println(tonal.NewKeyEstimator().EstimateKey(frames))
		return nil
	},
}
