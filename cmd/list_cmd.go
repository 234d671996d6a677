package cmd

import (
	"fmt"
	"strings"

	"github.com/0chain/bucketxfer/model"
	"github.com/spf13/cobra"
)

var (
	exportCSV  bool
	outputPath string
)

var listCmd = &cobra.Command{
	Use:   "list [source|destination]",
	Short: "List the objects of one bucket, or export them to CSV",
	Long: `Lists every object of the source bucket (default) or the destination bucket. "spaces" and "s3"
are accepted for source and destination. With --export the listing is written as CSV to --output,
or to <bucket>_<side>_<timestamp>.csv when no output path is given.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"source", "destination", "spaces", "s3"},
	RunE: func(cmd *cobra.Command, args []string) error {
		side := model.SideSource
		if len(args) == 1 {
			var err error
			if side, err = parseSide(args[0]); err != nil {
				return err
			}
		}

		return runWith(cmd, model.RunMode{
			Kind:       model.RunList,
			Side:       side,
			Export:     exportCSV,
			OutputPath: outputPath,
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&exportCSV, "export", false, "write the listing as CSV instead of printing it")
	listCmd.Flags().StringVarP(&outputPath, "output", "o", "", "CSV output path")
	listCmd.Flags().Int("batch-size", 100, "listing page size (BATCH_SIZE)")
}

func parseSide(s string) (model.Side, error) {
	switch strings.ToLower(s) {
	case "source", "spaces", "src":
		return model.SideSource, nil
	case "destination", "s3", "dest", "dst":
		return model.SideDestination, nil
	}
	return "", fmt.Errorf("unknown bucket %q, expected source or destination", s)
}
