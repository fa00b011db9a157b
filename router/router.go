// Copyright (c) 2025 the herdwise authors.
// MIT licensed; see LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"herdwise/cliparse"
	"herdwise/handlers"
	"herdwise/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	farmerHandler := handlers.NewFarmerHandler(db, cfg)
	livestockHandler := handlers.NewLivestockHandler(db, cfg)
	referenceHandler := handlers.NewReferenceHandler(db, cfg)
	feedingHandler := handlers.NewFeedingHandler(db, cfg)
	diseaseHandler := handlers.NewDiseaseHandler(db, cfg)
	pricingHandler := handlers.NewPricingHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Farmer accounts
	mux.HandleFunc("POST /api/farmers/register", middleware.WithLogging(farmerHandler.Register))
	mux.HandleFunc("GET /api/farmers/me", middleware.WithLogging(farmerHandler.GetMe))

	// Livestock records (farmer operations)
	mux.HandleFunc("GET /api/user/livestock", middleware.WithLogging(livestockHandler.List))
	mux.HandleFunc("POST /api/user/livestock", middleware.WithLogging(livestockHandler.Create))
	mux.HandleFunc("GET /api/user/livestock/{id}", middleware.WithLogging(livestockHandler.Get))
	mux.HandleFunc("PUT /api/user/livestock/{id}", middleware.WithLogging(livestockHandler.Update))
	mux.HandleFunc("POST /api/user/livestock/{id}/costs", middleware.WithLogging(livestockHandler.AddCost))

	// Reference data (public)
	mux.HandleFunc("GET /api/animal-types", middleware.WithLogging(referenceHandler.ListAnimalTypes))
	mux.HandleFunc("GET /api/breeds", middleware.WithLogging(referenceHandler.ListBreeds))
	mux.HandleFunc("GET /api/feed-types", middleware.WithLogging(referenceHandler.ListFeedTypes))
	mux.HandleFunc("GET /api/diseases", middleware.WithLogging(referenceHandler.ListDiseases))
	mux.HandleFunc("GET /api/symptoms", middleware.WithLogging(referenceHandler.ListSymptoms))
	mux.HandleFunc("GET /api/system-info", middleware.WithLogging(referenceHandler.SystemInfo))

	// Feeding recommendations
	mux.HandleFunc("POST /api/feeding/recommendations", middleware.WithLogging(feedingHandler.Recommend))
	mux.HandleFunc("GET /api/feeding/livestock/{id}/summary", middleware.WithLogging(feedingHandler.Summary))

	// Disease monitoring
	mux.HandleFunc("GET /api/disease/symptom-suggestions", middleware.WithLogging(diseaseHandler.SymptomSuggestions))
	mux.HandleFunc("POST /api/disease/analyze-symptoms", middleware.WithLogging(diseaseHandler.AnalyzeSymptoms))
	mux.HandleFunc("GET /api/disease/prevention", middleware.WithLogging(diseaseHandler.Prevention))
	mux.HandleFunc("POST /api/disease/health-record", middleware.WithLogging(diseaseHandler.CreateHealthRecord))

	// Market pricing
	mux.HandleFunc("POST /api/pricing/analyze-market", middleware.WithLogging(pricingHandler.AnalyzeMarket))
	mux.HandleFunc("GET /api/pricing/livestock/{id}/profitability", middleware.WithLogging(pricingHandler.Profitability))
	mux.HandleFunc("GET /api/pricing/selling-recommendations", middleware.WithLogging(pricingHandler.SellingRecommendations))
	mux.HandleFunc("GET /api/market-prices", middleware.WithLogging(pricingHandler.ListMarketPrices))
	mux.HandleFunc("GET /api/market-prices/latest", middleware.WithLogging(pricingHandler.LatestMarketPrices))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("herdwise API v1"))
	})

	return mux
}
