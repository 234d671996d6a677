package cmd

import (
	"os"
	"testing"
	"time"

	"github.com/0chain/bucketxfer/model"
	"github.com/0chain/bucketxfer/util"
	zerror "github.com/0chain/bucketxfer/zErrors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	util.Fs = afero.NewMemMapFs()
	os.Exit(m.Run())
}

var allVars = map[string]string{
	"DO_SPACES_ENDPOINT":          "https://nyc3.digitaloceanspaces.com",
	"DO_SPACES_ACCESS_KEY_ID":     "do-key",
	"DO_SPACES_SECRET_ACCESS_KEY": "do-secret",
	"DO_SPACES_BUCKET_NAME":       "spaces-bucket",
	"AWS_ACCESS_KEY_ID":           "aws-key",
	"AWS_SECRET_ACCESS_KEY":       "aws-secret",
	"AWS_S3_BUCKET_NAME":          "s3-bucket",
}

// setEnv sets every variable in vars except those in skip, and blanks the
// rest of the known keys so the host environment cannot leak in.
func setEnv(t *testing.T, vars map[string]string, skip ...string) {
	skipped := map[string]bool{}
	for _, k := range skip {
		skipped[k] = true
	}
	for _, k := range []string{"DO_SPACES_REGION", "AWS_REGION", "DO_SPACES_DRIVER", "AWS_DRIVER",
		"BATCH_SIZE", "MAX_CONCURRENT_TRANSFERS", "BATCH_PAUSE", "RETRY_COUNT", "WORK_DIR", "AWS_ENDPOINT"} {
		t.Setenv(k, "")
	}
	for k, v := range vars {
		if skipped[k] {
			t.Setenv(k, "")
			continue
		}
		t.Setenv(k, v)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	setEnv(t, allVars)

	v, err := newViper("", "/home/me/.bucketxfer")
	require.NoError(t, err)
	cfg, err := LoadConfig(v, model.RunMode{Kind: model.RunTransfer})
	require.NoError(t, err)

	assert.Equal(t, "https://nyc3.digitaloceanspaces.com", cfg.Source.EndpointURL)
	assert.Equal(t, "nyc3", cfg.Source.Region)
	assert.Equal(t, "spaces-bucket", cfg.Source.BucketName)
	assert.Equal(t, model.DriverAWS, cfg.Source.Driver)
	assert.Equal(t, "us-east-1", cfg.Destination.Region)
	assert.Equal(t, "", cfg.Destination.EndpointURL)
	assert.Equal(t, "s3-bucket", cfg.Destination.BucketName)
	assert.Equal(t, 100, cfg.Batch.BatchSize)
	assert.Equal(t, 10, cfg.Batch.MaxConcurrent)
	assert.Equal(t, time.Second, cfg.Batch.Pause)
	assert.Equal(t, 0, cfg.Batch.RetryCount)
	assert.Equal(t, "/home/me/.bucketxfer/spool", cfg.WorkDir)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setEnv(t, allVars)
	t.Setenv("BATCH_SIZE", "250")
	t.Setenv("MAX_CONCURRENT_TRANSFERS", "4")
	t.Setenv("BATCH_PAUSE", "250ms")
	t.Setenv("RETRY_COUNT", "3")
	t.Setenv("AWS_DRIVER", "minio")

	v, err := newViper("", "/cfg")
	require.NoError(t, err)
	cfg, err := LoadConfig(v, model.RunMode{Kind: model.RunTransfer})
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.Batch.BatchSize)
	assert.Equal(t, 4, cfg.Batch.MaxConcurrent)
	assert.Equal(t, 250*time.Millisecond, cfg.Batch.Pause)
	assert.Equal(t, 3, cfg.Batch.RetryCount)
	assert.Equal(t, model.DriverMinio, cfg.Destination.Driver)
}

func TestLoadConfig_Missing(t *testing.T) {
	tests := []struct {
		name    string
		mode    model.RunMode
		skip    []string
		wantErr bool
	}{
		{name: "transfer needs source endpoint", mode: model.RunMode{Kind: model.RunTransfer}, skip: []string{"DO_SPACES_ENDPOINT"}, wantErr: true},
		{name: "transfer needs destination keys", mode: model.RunMode{Kind: model.RunTransfer}, skip: []string{"AWS_ACCESS_KEY_ID", "AWS_S3_BUCKET_NAME"}, wantErr: true},
		{name: "list source ignores destination", mode: model.RunMode{Kind: model.RunList, Side: model.SideSource}, skip: []string{"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "AWS_S3_BUCKET_NAME"}},
		{name: "list destination ignores source", mode: model.RunMode{Kind: model.RunList, Side: model.SideDestination}, skip: []string{"DO_SPACES_ENDPOINT", "DO_SPACES_BUCKET_NAME"}},
		{name: "list destination needs its bucket", mode: model.RunMode{Kind: model.RunList, Side: model.SideDestination}, skip: []string{"AWS_S3_BUCKET_NAME"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, allVars, tt.skip...)

			v, err := newViper("", "/cfg")
			require.NoError(t, err)
			_, err = LoadConfig(v, tt.mode)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, zerror.IsMissingConfigError(err))
			for _, k := range tt.skip {
				assert.Contains(t, err.Error(), k)
			}
		})
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"BATCH_SIZE", "0"},
		{"MAX_CONCURRENT_TRANSFERS", "-2"},
		{"RETRY_COUNT", "-1"},
		{"DO_SPACES_DRIVER", "ftp"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			setEnv(t, allVars)
			t.Setenv(tt.key, tt.value)

			v, err := newViper("", "/cfg")
			require.NoError(t, err)
			_, err = LoadConfig(v, model.RunMode{Kind: model.RunTransfer})
			require.Error(t, err)
			assert.True(t, zerror.IsInvalidConfigError(err))
		})
	}
}

func TestNewViper_ConfigFile(t *testing.T) {
	setEnv(t, allVars, "AWS_S3_BUCKET_NAME")
	require.NoError(t, afero.WriteFile(util.Fs, "/etc/bucketxfer.yaml", []byte(
		"aws_s3_bucket_name: from-file\nmax_concurrent_transfers: 7\n"), 0644))

	v, err := newViper("/etc/bucketxfer.yaml", "/cfg")
	require.NoError(t, err)
	cfg, err := LoadConfig(v, model.RunMode{Kind: model.RunTransfer})
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Destination.BucketName)
	assert.Equal(t, 7, cfg.Batch.MaxConcurrent)
}

func TestNewViper_MissingConfigFile(t *testing.T) {
	_, err := newViper("/nope/config.yaml", "/cfg")
	require.Error(t, err)
	assert.True(t, zerror.IsMissingConfigError(err))
}

func TestLoadEnvFile(t *testing.T) {
	assert.NoError(t, loadEnvFile(""))
	assert.NoError(t, loadEnvFile("/definitely/missing/.env"))
}

func TestParseSide(t *testing.T) {
	for in, want := range map[string]model.Side{
		"source":      model.SideSource,
		"spaces":      model.SideSource,
		"destination": model.SideDestination,
		"S3":          model.SideDestination,
	} {
		got, err := parseSide(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}

	_, err := parseSide("gcs")
	assert.Error(t, err)
}

func TestResolveLogFile(t *testing.T) {
	require.NoError(t, afero.WriteFile(util.Fs, "/etc/logging.yaml", []byte("log_file: /var/log/from-file.log\n"), 0644))

	tests := []struct {
		name       string
		env        string
		configFile string
		flagValue  string
		want       string
	}{
		{name: "nothing set", want: ""},
		{name: "environment", env: "/var/log/from-env.log", want: "/var/log/from-env.log"},
		{name: "config file", configFile: "/etc/logging.yaml", want: "/var/log/from-file.log"},
		{name: "flag wins", env: "/var/log/from-env.log", configFile: "/etc/logging.yaml", flagValue: "/tmp/flag.log", want: "/tmp/flag.log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_FILE", tt.env)

			v, err := newViper(tt.configFile, "/cfg")
			require.NoError(t, err)
			assert.Equal(t, tt.want, resolveLogFile(v, tt.flagValue))
		})
	}
}
