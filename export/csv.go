package export

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	zlogger "github.com/0chain/bucketxfer/logger"
	"github.com/0chain/bucketxfer/model"
	"github.com/0chain/bucketxfer/types"
	"github.com/0chain/bucketxfer/util"
	zerror "github.com/0chain/bucketxfer/zErrors"
)

const csvHeader = "Index,Key,Size (Bytes),Size (Formatted),Last Modified,ETag"

// WriteCSV renders objects as CSV. The key column is always quoted since
// object keys routinely carry commas and quotes.
func WriteCSV(w io.Writer, objects []types.ObjectRecord) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(csvHeader + "\n"); err != nil {
		return err
	}

	for i, obj := range objects {
		row := strings.Join([]string{
			strconv.Itoa(i + 1),
			quote(obj.Key),
			strconv.FormatInt(obj.Size, 10),
			util.FormatBytes(obj.Size),
			util.ISOTime(obj.LastModified),
			csvField(strings.Trim(obj.ETag, `"`)),
		}, ",")
		if _, err := bw.WriteString(row + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// csvField quotes s only when it holds a delimiter, quote or line break.
func csvField(s string) string {
	if strings.ContainsAny(s, "\",\r\n") {
		return quote(s)
	}
	return s
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// DefaultCSVName is <bucket>_<side>_<timestamp>.csv.
func DefaultCSVName(bucket string, side model.Side, t time.Time) string {
	return fmt.Sprintf("%s_%s_%s.csv", bucket, side, util.FileTimestamp(t))
}

// ExportCSV writes objects to path, creating parent directories as needed.
func ExportCSV(objects []types.ObjectRecord, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := util.EnsureDir(dir); err != nil {
			return zerror.New(zerror.ExportFailedErrCode, err.Error())
		}
	}

	f, err := util.Fs.Create(path)
	if err != nil {
		return zerror.New(zerror.ExportFailedErrCode, err.Error())
	}
	defer f.Close()

	if err := WriteCSV(f, objects); err != nil {
		return zerror.New(zerror.ExportFailedErrCode, fmt.Sprintf("writing %v: %v", path, err))
	}

	zlogger.Logger.Infof("Exported %d objects to %v", len(objects), path)
	return nil
}
