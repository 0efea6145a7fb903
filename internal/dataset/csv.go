// internal/dataset/csv.go
package dataset

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	appErrors "github.com/sonalkolhe/customer-segmentation-webapp/internal/errors"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/model"
)

// CustomerReaderInterface defines what the service needs from an upload parser.
type CustomerReaderInterface interface {
	Read(r io.Reader) (*Dataset, error)
}

// Dataset is one validated upload: the typed records plus the raw table they
// were parsed from, kept so downloads can reproduce the caller's own columns.
// Rows are normalized to the header width and aligned with Customers.
type Dataset struct {
	Columns   []string
	Rows      [][]string
	Customers []model.Customer
}

// DefaultMaxRows caps dataset size when no explicit limit is configured.
const DefaultMaxRows = 100000

// CSVCustomerReader validates uploaded CSV content and decodes it into typed
// customer records, failing fast on any schema mismatch.
type CSVCustomerReader struct {
	MaxRows int
}

// Canonical column names, as they appear in the reference dataset.
const (
	colID       = "customerid"
	colGender   = "gender"
	colAge      = "age"
	colIncome   = "annual income (k$)"
	colSpending = "spending score (1-100)"
)

// headerAliases maps accepted header spellings to canonical columns. Headers
// are matched case-insensitively after trimming, in any order.
var headerAliases = map[string]string{
	"customerid":             colID,
	"customer id":            colID,
	"id":                     colID,
	"gender":                 colGender,
	"age":                    colAge,
	"annual income (k$)":     colIncome,
	"annual income":          colIncome,
	"income":                 colIncome,
	"spending score (1-100)": colSpending,
	"spending score":         colSpending,
	"score":                  colSpending,
}

// requiredColumns feed the clustering features and the summarizer. The
// customer identifier is optional; missing ids fall back to the row number.
var requiredColumns = []string{colGender, colAge, colIncome, colSpending}

// AllowedFile reports whether the uploaded filename has a supported extension.
func AllowedFile(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".csv")
}

// Read parses the whole upload. It returns ErrInvalidInput when required
// columns are missing, a numeric field does not parse, or no data rows exist.
func (cr *CSVCustomerReader) Read(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, appErrors.NewInvalidInput("file is empty")
		}
		return nil, appErrors.NewInvalidInput("unreadable CSV header: %v", err)
	}

	columns := make([]string, len(header))
	cols := map[string]int{}
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
		canonical, ok := headerAliases[strings.ToLower(columns[i])]
		if !ok {
			continue // columns outside the schema are ignored
		}
		if _, dup := cols[canonical]; !dup {
			cols[canonical] = i
		}
	}

	var missing []string
	for _, required := range requiredColumns {
		if _, ok := cols[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, appErrors.NewInvalidInput("missing required column(s): %s", strings.Join(missing, ", "))
	}

	maxRows := cr.MaxRows
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}

	customers := []model.Customer{}
	rows := [][]string{}
	row := 0
	for {
		rec, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, appErrors.NewInvalidInput("unreadable row %d: %v", row+1, err)
		}
		row++
		if row > maxRows {
			return nil, appErrors.NewInvalidInput("dataset exceeds the %d row limit", maxRows)
		}

		c := model.Customer{ID: row}
		if idx, ok := cols[colID]; ok {
			if v := field(rec, idx); v != "" {
				id, err := strconv.Atoi(v)
				if err != nil {
					return nil, appErrors.NewInvalidInput("row %d: customer id %q is not a number", row, v)
				}
				c.ID = id
			}
		}
		c.Gender = field(rec, cols[colGender])

		if c.Age, err = numericField(rec, cols[colAge], "age", row); err != nil {
			return nil, err
		}
		if c.AnnualIncome, err = numericField(rec, cols[colIncome], "annual income", row); err != nil {
			return nil, err
		}
		if c.SpendingScore, err = numericField(rec, cols[colSpending], "spending score", row); err != nil {
			return nil, err
		}

		raw := make([]string, len(columns))
		copy(raw, rec)
		rows = append(rows, raw)
		customers = append(customers, c)
	}

	if len(customers) == 0 {
		return nil, appErrors.NewInvalidInput("file has no data rows")
	}

	return &Dataset{Columns: columns, Rows: rows, Customers: customers}, nil
}

func field(rec []string, idx int) string {
	if idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func numericField(rec []string, idx int, name string, row int) (float64, error) {
	v := field(rec, idx)
	if v == "" {
		return 0, appErrors.NewInvalidInput("row %d: %s is empty", row, name)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, appErrors.NewInvalidInput("row %d: %s %q is not numeric", row, name, v)
	}
	// ParseFloat accepts spellings like "NaN" and "+Inf"; those poison the
	// standardized feature space, so they are invalid input here.
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, appErrors.NewInvalidInput("row %d: %s %q is not a finite number", row, name, v)
	}
	return f, nil
}

var _ CustomerReaderInterface = (*CSVCustomerReader)(nil)
