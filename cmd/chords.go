package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-charts/pipeline"
)

var chordsExtended bool

func init() {
	chordsCmd.Flags().BoolVar(&chordsExtended, "extended", false, "use the extended chord catalog")
	rootCmd.AddCommand(chordsCmd)
}

var chordsCmd = &cobra.Command{
	Use:   "chords <audio file>",
	Short: "Print the detected chord timeline as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if chordsExtended {
			cfg.Classifier.Catalog = "extended"
		}

		result, err := pipeline.New(cfg).ProcessFile(cmd.Context(), args[0], nil, "")
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(result.Chords, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}
