package export

import (
	"fmt"
	"io"

	"github.com/0chain/bucketxfer/types"
	"github.com/0chain/bucketxfer/util"
)

// WriteListing prints a 1-indexed listing followed by a total line.
func WriteListing(w io.Writer, objects []types.ObjectRecord) error {
	var total int64
	for i, obj := range objects {
		total += obj.Size
		if _, err := fmt.Fprintf(w, "%d. %s (%s) - %s\n", i+1, obj.Key, util.FormatBytes(obj.Size), util.ISOTime(obj.LastModified)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\nTotal: %d objects (%s)\n", len(objects), util.FormatBytes(total))
	return err
}
