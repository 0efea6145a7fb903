// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/sonalkolhe/customer-segmentation-webapp/internal/config"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/controller"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/dataset"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/handler"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/insight"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ invalid configuration: ", err)
	}

	rules := insight.DefaultRules()
	if cfg.SegmentRulesPath != "" {
		rules, err = insight.LoadRules(cfg.SegmentRulesPath)
		if err != nil {
			log.Fatal("❌ invalid segment rules: ", err)
		}
		log.Println("✅ segment rules loaded from", cfg.SegmentRulesPath)
	}

	segmentationService := &service.SegmentationService{
		Reader:     &dataset.CSVCustomerReader{MaxRows: cfg.MaxRows},
		Summarizer: insight.NewSummarizer(rules),
		DefaultK:   cfg.DefaultK,
		Restarts:   cfg.KMeansRestarts,
		Seed:       cfg.KMeansSeed,
	}

	segmentController := &controller.SegmentController{
		SegmentationService: segmentationService,
		MaxUploadBytes:      cfg.MaxUploadBytes,
	}

	pageHandler := &handler.PageHandler{
		Service:        segmentationService,
		Store:          sessions.NewCookieStore([]byte(cfg.SessionSecret)),
		MaxUploadBytes: cfg.MaxUploadBytes,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Dashboard routes
	r.Get("/", pageHandler.Index)
	r.Post("/analyze", pageHandler.Analyze)

	// JSON API routes
	apiCors := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	})
	r.Route("/api/v1", func(api chi.Router) {
		api.Use(apiCors.Handler)
		api.Get("/health", segmentController.Health)
		api.Post("/segment/income", segmentController.SegmentIncome)
		api.Post("/segment/age", segmentController.SegmentAge)
	})

	log.Println("🚀 Server running on :" + cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
