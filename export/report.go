package export

import (
	"fmt"
	"path/filepath"

	"github.com/0chain/bucketxfer/migration"
	"github.com/0chain/bucketxfer/util"
	zerror "github.com/0chain/bucketxfer/zErrors"
	"github.com/go-yaml/yaml"
	"github.com/spf13/afero"
)

type FailedObject struct {
	Key    string `yaml:"key"`
	Reason string `yaml:"reason"`
}

// Report is the YAML run report written after a transfer.
type Report struct {
	RunID            string         `yaml:"run_id"`
	Source           string         `yaml:"source"`
	Destination      string         `yaml:"destination"`
	StartedAt        string         `yaml:"started_at"`
	TotalObjects     int            `yaml:"total_objects"`
	Transferred      int            `yaml:"transferred"`
	Skipped          int            `yaml:"skipped"`
	Errors           int            `yaml:"errors"`
	BytesTransferred int64          `yaml:"bytes_transferred"`
	BytesFormatted   string         `yaml:"bytes_formatted"`
	DurationSeconds  int64          `yaml:"duration_seconds"`
	RatePerMinute    string         `yaml:"rate_per_minute"`
	Failures         []FailedObject `yaml:"failures,omitempty"`
}

func NewReport(runID, source, destination string, sum migration.Summary) Report {
	r := Report{
		RunID:            runID,
		Source:           source,
		Destination:      destination,
		StartedAt:        util.ISOTime(sum.StartTime),
		TotalObjects:     sum.TotalObjects,
		Transferred:      sum.Transferred,
		Skipped:          sum.Skipped,
		Errors:           sum.Errors,
		BytesTransferred: sum.BytesTransferred,
		BytesFormatted:   util.FormatBytes(sum.BytesTransferred),
		DurationSeconds:  sum.DurationSeconds,
		RatePerMinute:    fmt.Sprintf("%.2f", sum.Rate),
	}
	for _, f := range sum.Failures {
		r.Failures = append(r.Failures, FailedObject{Key: f.Key, Reason: f.Reason})
	}
	return r
}

func WriteReport(path string, r Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return zerror.New(zerror.ExportFailedErrCode, err.Error())
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := util.EnsureDir(dir); err != nil {
			return zerror.New(zerror.ExportFailedErrCode, err.Error())
		}
	}
	if err := afero.WriteFile(util.Fs, path, data, 0644); err != nil {
		return zerror.New(zerror.ExportFailedErrCode, fmt.Sprintf("writing %v: %v", path, err))
	}
	return nil
}

func ReadReport(path string) (Report, error) {
	var r Report
	data, err := afero.ReadFile(util.Fs, path)
	if err != nil {
		return r, err
	}
	err = yaml.Unmarshal(data, &r)
	return r, err
}
