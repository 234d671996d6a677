package util

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
)

const configDirName = ".bucketxfer"

var byteUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// GetConfigDir returns the configuration directory, ~/.bucketxfer by default.
func GetConfigDir() string {
	home, err := homedir.Dir()
	if err != nil {
		return configDirName
	}
	return filepath.Join(home, configDirName)
}

// EnsureDir creates dir if it is missing.
func EnsureDir(dir string) error {
	return Fs.MkdirAll(dir, 0755)
}

// FormatBytes renders a size in binary units with at most two decimals, e.g. "1.5 KB".
func FormatBytes(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(byteUnits) {
		i = len(byteUnits) - 1
	}

	v := float64(bytes) / math.Pow(1024, float64(i))
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + byteUnits[i]
}

// ISOTime formats t as UTC ISO-8601 with millisecond precision.
func ISOTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// FileTimestamp is a timestamp safe to embed in file names.
func FileTimestamp(t time.Time) string {
	return strings.ReplaceAll(t.UTC().Format("2006-01-02T15:04:05"), ":", "-")
}
