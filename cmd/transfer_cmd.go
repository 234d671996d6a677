package cmd

import (
	"github.com/0chain/bucketxfer/model"
	"github.com/spf13/cobra"
)

// flagKeys maps config keys to the flags that may override them.
var flagKeys = map[string]string{
	keyBatchSize:     "batch-size",
	keyMaxConcurrent: "concurrency",
	keyBatchPause:    "pause",
	keyRetryCount:    "retry",
	keyWorkDir:       "work-dir",
	keyMetricsFile:   "metrics-file",
	keyReportFile:    "report-file",
}

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Copy objects missing from the destination bucket",
	Long: `Lists the whole source bucket, then copies every object whose key is not present in the
destination. Directory markers (keys ending in "/") are skipped. A failed object is counted and
logged but never stops the run; listing failures and missing configuration exit with status 1.`,
	RunE: runTransfer,
}

func init() {
	rootCmd.AddCommand(transferCmd)
	addTransferFlags(transferCmd)
}

func addTransferFlags(c *cobra.Command) {
	c.Flags().Int("batch-size", 100, "listing page size (BATCH_SIZE)")
	c.Flags().Int("concurrency", 10, "number of objects copied concurrently in each window (MAX_CONCURRENT_TRANSFERS)")
	c.Flags().Duration("pause", 0, "pause between windows (BATCH_PAUSE, default 1s)")
	c.Flags().Int("retry", 0, "extra attempts per storage call on failure (RETRY_COUNT)")
	c.Flags().String("work-dir", "", "directory for spooled object bodies (WORK_DIR)")
	c.Flags().String("metrics-file", "", "write prometheus metrics in textfile format here (METRICS_FILE)")
	c.Flags().String("report-file", "", "write a yaml run report here (REPORT_FILE)")
}

func runTransfer(cmd *cobra.Command, args []string) error {
	return runWith(cmd, model.RunMode{Kind: model.RunTransfer})
}
