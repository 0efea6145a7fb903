// internal/controller/segment_controller.go
package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sonalkolhe/customer-segmentation-webapp/internal/cluster"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/dataset"
	appErrors "github.com/sonalkolhe/customer-segmentation-webapp/internal/errors"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/service"
)

type SegmentController struct {
	SegmentationService *service.SegmentationService
	MaxUploadBytes      int64
}

// Health reports liveness for load balancers and smoke tests.
func (c *SegmentController) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "UP",
		"service": "customer-segmentation",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// SegmentIncome clusters the uploaded CSV on annual income vs spending score.
func (c *SegmentController) SegmentIncome(w http.ResponseWriter, r *http.Request) {
	c.segment(w, r, cluster.IncomeVsSpending)
}

// SegmentAge clusters the uploaded CSV on age vs spending score.
func (c *SegmentController) SegmentAge(w http.ResponseWriter, r *http.Request) {
	c.segment(w, r, cluster.AgeVsSpending)
}

func (c *SegmentController) segment(w http.ResponseWriter, r *http.Request, pair cluster.FeaturePair) {
	file, header, err := c.uploadedFile(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	defer file.Close()

	opts := service.AnalyzeOptions{Features: pair}
	if kStr := r.FormValue("k"); kStr != "" {
		k, err := strconv.Atoi(kStr)
		if err != nil {
			writeError(w, appErrors.NewInvalidInput("k %q is not a number", kStr))
			return
		}
		opts.K = k
	}

	report, err := c.SegmentationService.Analyze(file, opts)
	if err != nil {
		log.Println("❌ analysis failed:", err)
		writeError(w, err)
		return
	}

	if strings.EqualFold(r.URL.Query().Get("format"), "csv") {
		name := "clustered_" + filepath.Base(header.Filename)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		if err := c.SegmentationService.WriteClusteredCSV(w, report); err != nil {
			log.Println("❌ streaming clustered csv:", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// uploadedFile pulls the multipart "file" field, enforcing the size cap and
// the .csv extension. The upload stays in memory or a temp part; it is never
// persisted by us.
func (c *SegmentController) uploadedFile(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if c.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, c.MaxUploadBytes)
	}
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return nil, nil, appErrors.NewInvalidInput("invalid upload: %v", err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, appErrors.NewInvalidInput("no file part in the request")
	}
	if header.Filename == "" {
		file.Close()
		return nil, nil, appErrors.NewInvalidInput("no file selected")
	}
	if !dataset.AllowedFile(header.Filename) {
		file.Close()
		return nil, nil, appErrors.NewInvalidInput("invalid file type, please upload a CSV")
	}
	return file, header, nil
}

// writeError maps the error taxonomy onto statuses: invalid input 400,
// clustering 422, anything unexpected 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case appErrors.IsInvalidInput(err):
		status = http.StatusBadRequest
	case appErrors.IsClustering(err):
		status = http.StatusUnprocessableEntity
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}
