package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/0chain/bucketxfer/controller"
	zlogger "github.com/0chain/bucketxfer/logger"
	"github.com/0chain/bucketxfer/model"
	"github.com/0chain/bucketxfer/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile, envFile, configDir, logFile, logLevel string
	bSilent                                        bool

	rootCmd = &cobra.Command{
		Use:   "bucketxfer",
		Short: "Copy every object from one S3-compatible bucket to another",
		Long: `bucketxfer lists a source bucket (DigitalOcean Spaces by default) and copies each object that
is not yet present in the destination bucket (AWS S3 by default). Objects are copied in fixed
windows of concurrent transfers with a short pause between windows. Reruns only copy keys the
destination does not have yet; existing keys are never overwritten.`,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		RunE:              runTransfer,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "optional yaml config file, keys as the environment variables")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().StringVar(&configDir, "configDir", util.GetConfigDir(), "configuration directory")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this rotating file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&bSilent, "silent", false, "with --log-file, do not also log to the console")

	addTransferFlags(rootCmd)
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer zlogger.Sync()

	return rootCmd.ExecuteContext(ctx)
}

func setupLogging(cmd *cobra.Command, args []string) error {
	if err := loadEnvFile(envFile); err != nil {
		return err
	}
	if err := zlogger.SetLevel(logLevel); err != nil {
		return err
	}
	v, err := newViper(cfgFile, configDir)
	if err != nil {
		return err
	}
	logFile = resolveLogFile(v, logFile)
	if logFile != "" {
		if err := util.EnsureDir(filepath.Dir(logFile)); err != nil {
			return err
		}
		zlogger.SetLogFile(logFile, !bSilent)
	}
	return nil
}

// resolveLogFile prefers the --log-file flag, then LOG_FILE from the
// environment or the config file.
func resolveLogFile(v *viper.Viper, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return v.GetString(keyLogFile)
}

// loadAppConfig resolves environment, optional config file and command
// flags. The dotenv file has already been loaded by setupLogging.
func loadAppConfig(cmd *cobra.Command, mode model.RunMode) (model.AppConfig, error) {
	v, err := newViper(cfgFile, configDir)
	if err != nil {
		return model.AppConfig{}, err
	}
	if err := bindFlags(v, cmd); err != nil {
		return model.AppConfig{}, err
	}
	return LoadConfig(v, mode)
}

func runWith(cmd *cobra.Command, mode model.RunMode) error {
	cfg, err := loadAppConfig(cmd, mode)
	if err != nil {
		zlogger.Logger.Error(err)
		return err
	}
	return controller.Run(cmd.Context(), cfg, mode, cmd.OutOrStdout())
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for key, flag := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	return nil
}
