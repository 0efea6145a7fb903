// internal/handler/page_handler_test.go
package handler_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/sessions"

	"github.com/sonalkolhe/customer-segmentation-webapp/internal/dataset"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/handler"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/insight"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/service"
)

func newPageHandler() *handler.PageHandler {
	return &handler.PageHandler{
		Service: &service.SegmentationService{
			Reader:     &dataset.CSVCustomerReader{MaxRows: dataset.DefaultMaxRows},
			Summarizer: insight.NewSummarizer(insight.DefaultRules()),
			DefaultK:   5,
			Restarts:   10,
			Seed:       42,
		},
		Store:          sessions.NewCookieStore([]byte("test-secret")),
		MaxUploadBytes: 10 << 20,
	}
}

func sampleCSV() string {
	var b strings.Builder
	b.WriteString("CustomerID,Gender,Age,Annual Income (k$),Spending Score (1-100)\n")
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&b, "%d,Female,%d,%d,%d\n", i+1, 44+i, 19+i, 9+i)
	}
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&b, "%d,Male,%d,%d,%d\n", i+6, 30+i, 79+i, 89+i)
	}
	return b.String()
}

func uploadRequest(t *testing.T, target, filename, content string, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// followRedirectHome replays the session cookie on a fresh GET / like a
// browser following the redirect.
func followRedirectHome(t *testing.T, h *handler.PageHandler, from *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range from.Result().Cookies() {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.Index(w, req)
	return w
}

func TestIndexRendersUploadForm(t *testing.T) {
	h := newPageHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.Index(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{`action="/analyze"`, `name="file"`, `name="k"`, `name="features"`} {
		if !strings.Contains(body, want) {
			t.Errorf("index page missing %s", want)
		}
	}
}

func TestAnalyzeRendersDashboard(t *testing.T) {
	h := newPageHandler()

	req := uploadRequest(t, "/analyze", "mall.csv", sampleCSV(), map[string]string{"k": "2"})
	w := httptest.NewRecorder()
	h.Analyze(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	body := w.Body.String()
	for _, want := range []string{
		"Total Customers",
		"Plotly.newPlot",
		"Cluster 0",
		"Target with VIP offers",
		"2 segments",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}

func TestAnalyzeInvalidExtensionFlashes(t *testing.T) {
	h := newPageHandler()

	req := uploadRequest(t, "/analyze", "data.txt", "not a csv", nil)
	w := httptest.NewRecorder()
	h.Analyze(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Fatalf("redirect location = %q, want /", loc)
	}

	home := followRedirectHome(t, h, w)
	if !strings.Contains(home.Body.String(), "Invalid file type. Please upload a CSV.") {
		t.Error("flash message not shown on the index page")
	}

	again := followRedirectHome(t, h, home)
	if strings.Contains(again.Body.String(), "Invalid file type") {
		t.Error("flash message should be consumed after one render")
	}
}

func TestAnalyzeMissingColumnsFlashes(t *testing.T) {
	h := newPageHandler()
	csv := "CustomerID,Gender,Age\n1,Female,23\n"

	req := uploadRequest(t, "/analyze", "broken.csv", csv, nil)
	w := httptest.NewRecorder()
	h.Analyze(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	home := followRedirectHome(t, h, w)
	if !strings.Contains(home.Body.String(), "missing required column") {
		t.Errorf("expected a missing-column flash, body: %s", home.Body.String())
	}
}

func TestAnalyzeMissingFileFlashes(t *testing.T) {
	h := newPageHandler()

	req := uploadRequest(t, "/analyze", "", "", map[string]string{"k": "3"})
	w := httptest.NewRecorder()
	h.Analyze(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	home := followRedirectHome(t, h, w)
	if !strings.Contains(home.Body.String(), "No file part") {
		t.Error("expected a no-file-part flash")
	}
}

func TestAnalyzeTooFewRowsFlashes(t *testing.T) {
	h := newPageHandler()
	csv := "CustomerID,Gender,Age,Annual Income (k$),Spending Score (1-100)\n" +
		"1,Female,23,20,30\n" +
		"2,Male,31,40,55\n"

	req := uploadRequest(t, "/analyze", "tiny.csv", csv, map[string]string{"k": "5"})
	w := httptest.NewRecorder()
	h.Analyze(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	home := followRedirectHome(t, h, w)
	if !strings.Contains(home.Body.String(), "Error processing file") {
		t.Error("expected an error-processing flash")
	}
}

func TestAnalyzeAgeFeatures(t *testing.T) {
	h := newPageHandler()

	req := uploadRequest(t, "/analyze", "mall.csv", sampleCSV(), map[string]string{"k": "2", "features": "age"})
	w := httptest.NewRecorder()
	h.Analyze(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Age vs Spending Segments") {
		t.Error("dashboard should carry the age chart title")
	}
}

func TestAnalyzeCSVDownload(t *testing.T) {
	h := newPageHandler()

	req := uploadRequest(t, "/analyze?format=csv", "mall.csv", sampleCSV(), map[string]string{"k": "2"})
	w := httptest.NewRecorder()
	h.Analyze(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type = %q, want text/csv", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "clustered_mall.csv") {
		t.Errorf("content disposition = %q", cd)
	}
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 11 {
		t.Fatalf("expected header plus 10 rows, got %d lines", len(lines))
	}
}
