// internal/handler/page_handler.go
package handler

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gorilla/sessions"

	"github.com/sonalkolhe/customer-segmentation-webapp/internal/cluster"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/dataset"
	appErrors "github.com/sonalkolhe/customer-segmentation-webapp/internal/errors"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/model"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/service"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

const sessionName = "segmentation-session"

// PageHandler serves the upload form and the rendered dashboard. Failed
// uploads flash a message and bounce back to the form; partial results are
// never shown.
type PageHandler struct {
	Service        *service.SegmentationService
	Store          *sessions.CookieStore
	MaxUploadBytes int64
}

type indexData struct {
	Flashes []string
}

type dashboardData struct {
	ReportID  string
	ChartJSON template.JS
	KPIs      model.KPIBlock
	Insights  []model.SegmentSummary
	K         int
}

// Index renders the upload form along with any flash messages left by a
// failed analysis.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, sessionName)

	var flashes []string
	for _, f := range session.Flashes() {
		if s, ok := f.(string); ok {
			flashes = append(flashes, s)
		}
	}
	// Flashes() consumes the messages; Save persists the removal.
	if err := session.Save(r, w); err != nil {
		log.Println("⚠️ failed to save session:", err)
	}

	render(w, "index.html", indexData{Flashes: flashes})
}

// Analyze handles the upload form post: runs the pipeline and renders the
// dashboard, or flashes the failure and redirects home. With ?format=csv it
// streams the clustered records back as a download instead.
func (h *PageHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if h.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	}
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		h.flashAndRedirect(w, r, "Error processing file: upload too large or malformed")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.flashAndRedirect(w, r, "No file part in the request")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		h.flashAndRedirect(w, r, "No file selected")
		return
	}
	if !dataset.AllowedFile(header.Filename) {
		h.flashAndRedirect(w, r, "Invalid file type. Please upload a CSV.")
		return
	}

	opts := service.AnalyzeOptions{}
	if kStr := r.FormValue("k"); kStr != "" {
		k, err := strconv.Atoi(kStr)
		if err != nil {
			h.flashAndRedirect(w, r, fmt.Sprintf("Error: segments value %q is not a number", kStr))
			return
		}
		opts.K = k
	}
	if f := r.FormValue("features"); f != "" {
		pair, err := cluster.ParseFeaturePair(f)
		if err != nil {
			h.flashAndRedirect(w, r, "Error: "+err.Error())
			return
		}
		opts.Features = pair
	}

	report, err := h.Service.Analyze(file, opts)
	if err != nil {
		log.Println("❌ analysis failed:", err)
		h.flashAndRedirect(w, r, flashMessage(err))
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		name := "clustered_" + filepath.Base(header.Filename)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		if err := h.Service.WriteClusteredCSV(w, report); err != nil {
			log.Println("❌ streaming clustered csv:", err)
		}
		return
	}

	chartJSON, err := report.Chart.JSON()
	if err != nil {
		log.Println("❌ chart marshal failed:", err)
		h.flashAndRedirect(w, r, "Error processing file: could not render chart")
		return
	}

	render(w, "results.html", dashboardData{
		ReportID:  report.ID,
		ChartJSON: template.JS(chartJSON),
		KPIs:      report.KPIs,
		Insights:  report.Insights,
		K:         report.K,
	})
}

// flashMessage keeps the user-facing wording the dashboard has always used.
func flashMessage(err error) string {
	if appErrors.IsInvalidInput(err) {
		return "Error: " + err.Error()
	}
	return "Error processing file: " + err.Error()
}

func (h *PageHandler) flashAndRedirect(w http.ResponseWriter, r *http.Request, msg string) {
	session, _ := h.Store.Get(r, sessionName)
	session.AddFlash(msg)
	if err := session.Save(r, w); err != nil {
		log.Println("⚠️ failed to save session:", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		log.Println("❌ template render failed:", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
