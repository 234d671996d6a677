package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/0chain/bucketxfer/migration"
	"github.com/0chain/bucketxfer/model"
	"github.com/0chain/bucketxfer/util"
	zerror "github.com/0chain/bucketxfer/zErrors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// config keys, looked up in the environment under their upper-case names
const (
	keySourceEndpoint  = "do_spaces_endpoint"
	keySourceAccessKey = "do_spaces_access_key_id"
	keySourceSecretKey = "do_spaces_secret_access_key"
	keySourceRegion    = "do_spaces_region"
	keySourceBucket    = "do_spaces_bucket_name"
	keySourceDriver    = "do_spaces_driver"
	keySourcePathStyle = "do_spaces_force_path_style"

	keyDestEndpoint  = "aws_endpoint"
	keyDestAccessKey = "aws_access_key_id"
	keyDestSecretKey = "aws_secret_access_key"
	keyDestRegion    = "aws_region"
	keyDestBucket    = "aws_s3_bucket_name"
	keyDestDriver    = "aws_driver"
	keyDestPathStyle = "aws_force_path_style"

	keyBatchSize     = "batch_size"
	keyMaxConcurrent = "max_concurrent_transfers"
	keyBatchPause    = "batch_pause"
	keyRetryCount    = "retry_count"
	keyWorkDir       = "work_dir"
	keyMetricsFile   = "metrics_file"
	keyReportFile    = "report_file"
	keyLogFile       = "log_file"
)

var (
	sourceRequired = []string{keySourceAccessKey, keySourceSecretKey, keySourceBucket}
	destRequired   = []string{keyDestAccessKey, keyDestSecretKey, keyDestBucket}
)

// loadEnvFile reads a dotenv file into the process environment. A missing
// file is not an error; variables already set are kept.
func loadEnvFile(file string) error {
	if file == "" {
		return nil
	}
	if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
		return zerror.New(zerror.InvalidConfigErrCode, fmt.Sprintf("parsing %v: %v", file, err))
	}
	return nil
}

func newViper(configFile, configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetFs(util.Fs)
	v.AutomaticEnv()

	v.SetDefault(keySourceRegion, "nyc3")
	v.SetDefault(keySourceDriver, model.DriverAWS)
	v.SetDefault(keyDestRegion, "us-east-1")
	v.SetDefault(keyDestDriver, model.DriverAWS)
	v.SetDefault(keyBatchSize, migration.DefaultBatchSize)
	v.SetDefault(keyMaxConcurrent, migration.DefaultMaxConcurrent)
	v.SetDefault(keyBatchPause, migration.DefaultBatchPause)
	v.SetDefault(keyRetryCount, 0)
	v.SetDefault(keyWorkDir, filepath.Join(configDir, "spool"))

	if configFile == "" {
		return v, nil
	}

	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil, zerror.New(zerror.MissingConfigErrCode, "config file not found: "+configFile)
		}
		return nil, zerror.New(zerror.InvalidConfigErrCode, fmt.Sprintf("parsing %v: %v", configFile, err))
	}
	return v, nil
}

func requiredKeys(mode model.RunMode) []string {
	if mode.Kind == model.RunList {
		if mode.Side == model.SideDestination {
			return destRequired
		}
		return sourceRequired
	}
	keys := append([]string{keySourceEndpoint}, sourceRequired...)
	return append(keys, destRequired...)
}

// LoadConfig resolves the full application config for mode. Every missing
// required key is reported in one error.
func LoadConfig(v *viper.Viper, mode model.RunMode) (model.AppConfig, error) {
	var cfg model.AppConfig

	var missing []string
	for _, k := range requiredKeys(mode) {
		if strings.TrimSpace(v.GetString(k)) == "" {
			missing = append(missing, strings.ToUpper(k))
		}
	}
	if len(missing) > 0 {
		return cfg, zerror.New(zerror.MissingConfigErrCode,
			"missing required environment variables: "+strings.Join(missing, ", "))
	}

	cfg = model.AppConfig{
		Source: model.EndpointConfig{
			Name:           string(model.SideSource),
			Driver:         v.GetString(keySourceDriver),
			EndpointURL:    v.GetString(keySourceEndpoint),
			AccessKey:      v.GetString(keySourceAccessKey),
			SecretKey:      v.GetString(keySourceSecretKey),
			Region:         v.GetString(keySourceRegion),
			BucketName:     v.GetString(keySourceBucket),
			ForcePathStyle: v.GetBool(keySourcePathStyle),
		},
		Destination: model.EndpointConfig{
			Name:           string(model.SideDestination),
			Driver:         v.GetString(keyDestDriver),
			EndpointURL:    v.GetString(keyDestEndpoint),
			AccessKey:      v.GetString(keyDestAccessKey),
			SecretKey:      v.GetString(keyDestSecretKey),
			Region:         v.GetString(keyDestRegion),
			BucketName:     v.GetString(keyDestBucket),
			ForcePathStyle: v.GetBool(keyDestPathStyle),
		},
		Batch: model.BatchConfig{
			BatchSize:     v.GetInt(keyBatchSize),
			MaxConcurrent: v.GetInt(keyMaxConcurrent),
			Pause:         v.GetDuration(keyBatchPause),
			RetryCount:    v.GetInt(keyRetryCount),
		},
		WorkDir:     v.GetString(keyWorkDir),
		MetricsFile: v.GetString(keyMetricsFile),
		ReportFile:  v.GetString(keyReportFile),
	}

	for _, d := range []string{cfg.Source.Driver, cfg.Destination.Driver} {
		if d != model.DriverAWS && d != model.DriverMinio {
			return cfg, zerror.New(zerror.InvalidConfigErrCode, fmt.Sprintf("unknown driver %q", d))
		}
	}
	if cfg.Batch.BatchSize <= 0 {
		return cfg, zerror.New(zerror.InvalidConfigErrCode, fmt.Sprintf("BATCH_SIZE must be positive, got %d", cfg.Batch.BatchSize))
	}
	if cfg.Batch.MaxConcurrent <= 0 {
		return cfg, zerror.New(zerror.InvalidConfigErrCode, fmt.Sprintf("MAX_CONCURRENT_TRANSFERS must be positive, got %d", cfg.Batch.MaxConcurrent))
	}
	if cfg.Batch.RetryCount < 0 {
		return cfg, zerror.New(zerror.InvalidConfigErrCode, fmt.Sprintf("RETRY_COUNT must not be negative, got %d", cfg.Batch.RetryCount))
	}
	if cfg.Batch.Pause < 0 {
		return cfg, zerror.New(zerror.InvalidConfigErrCode, "BATCH_PAUSE must not be negative")
	}

	return cfg, nil
}
