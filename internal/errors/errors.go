// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// ErrInvalidInput covers everything wrong with an upload itself: bad file
// type, missing columns, non-numeric values, empty dataset.
type ErrInvalidInput struct {
	Reason string
}

func (e *ErrInvalidInput) Error() string {
	return "invalid input: " + e.Reason
}

// Helper constructor
func NewInvalidInput(format string, args ...any) error {
	return &ErrInvalidInput{Reason: fmt.Sprintf(format, args...)}
}

// ErrClustering signals that K-Means could not run on the validated dataset,
// typically because fewer records than clusters were supplied.
type ErrClustering struct {
	Records int
	K       int
	Reason  string
}

func (e *ErrClustering) Error() string {
	if e.Reason != "" {
		return "clustering failed: " + e.Reason
	}
	return fmt.Sprintf("clustering failed: %d records is not enough for k=%d clusters", e.Records, e.K)
}

// Helper constructor
func NewClustering(records, k int) error {
	return &ErrClustering{Records: records, K: k}
}

// NewClusteringReason builds a ClusteringError with an explicit message.
func NewClusteringReason(format string, args ...any) error {
	return &ErrClustering{Reason: fmt.Sprintf(format, args...)}
}

// IsInvalidInput reports whether err is an ErrInvalidInput.
func IsInvalidInput(err error) bool {
	var e *ErrInvalidInput
	return errors.As(err, &e)
}

// IsClustering reports whether err is an ErrClustering.
func IsClustering(err error) bool {
	var e *ErrClustering
	return errors.As(err, &e)
}
