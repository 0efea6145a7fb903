// internal/dataset/write.go
package dataset

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/sonalkolhe/customer-segmentation-webapp/internal/model"
)

// WriteClusteredCSV streams the uploaded table back out with the assigned
// cluster labels appended. The caller's own columns and cell text are
// reproduced as they arrived; assignments are aligned with the dataset rows
// by input order. Nothing is written to disk; the caller owns the writer.
func WriteClusteredCSV(w io.Writer, ds *Dataset, assignments []model.Assignment) error {
	cw := csv.NewWriter(w)

	header := append(append(make([]string, 0, len(ds.Columns)+1), ds.Columns...), "Cluster")
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, row := range ds.Rows {
		rec := append(append(make([]string, 0, len(row)+1), row...), strconv.Itoa(assignments[i].ClusterID))
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
