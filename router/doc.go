// Copyright (c) 2025 the herdwise authors.
// MIT licensed; see LICENSE.

/*
Package router defines HTTP routes for the Herdwise API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Farmer accounts:

	POST /api/farmers/register - Register account (returns token)
	GET  /api/farmers/me       - Get own profile

Livestock records (requires X-Farmer-Token):

	GET   /api/user/livestock            - List own animals
	POST  /api/user/livestock            - Add animal
	GET   /api/user/livestock/{id}       - Get animal
	PUT   /api/user/livestock/{id}       - Update animal
	POST  /api/user/livestock/{id}/costs - Record expense

Reference data (public):

	GET /api/animal-types
	GET /api/breeds?animal_type=
	GET /api/feed-types?animal_type=
	GET /api/diseases?animal_type=
	GET /api/symptoms
	GET /api/system-info

Feeding:

	POST /api/feeding/recommendations           - Compute rations
	GET  /api/feeding/livestock/{id}/summary    - Feeding cost summary

Disease monitoring:

	GET  /api/disease/symptom-suggestions?animal_type_id=
	POST /api/disease/analyze-symptoms
	GET  /api/disease/prevention?animal_type_id=
	POST /api/disease/health-record

Market pricing:

	POST /api/pricing/analyze-market
	GET  /api/pricing/livestock/{id}/profitability
	GET  /api/pricing/selling-recommendations
	GET  /api/market-prices
	GET  /api/market-prices/latest

# Handler Initialization

The router creates handler instances with dependency injection:

	farmerHandler := handlers.NewFarmerHandler(db, cfg)
	livestockHandler := handlers.NewLivestockHandler(db, cfg)
	pricingHandler := handlers.NewPricingHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
