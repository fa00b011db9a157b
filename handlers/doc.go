// Copyright (c) 2025 the herdwise authors.
// MIT licensed; see LICENSE.

/*
Package handlers contains HTTP request handlers for the Herdwise API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - FarmerHandler: Account registration and profile
  - LivestockHandler: Animal records and cost tracking
  - ReferenceHandler: Animal types, breeds, feeds, diseases, symptoms
  - FeedingHandler: Ration recommendations and feeding summaries
  - DiseaseHandler: Symptom analysis and health records
  - PricingHandler: Market analysis, profitability, selling advice

Handlers are created via constructor functions that accept *sql.DB and Config:

	livestockHandler := handlers.NewLivestockHandler(db, cfg)

Farmer operations require the X-Farmer-Token header.

# Ration Computation

Feeding recommendations start from guidance rows matched on age, weight,
and purpose windows, then adjust the daily amount per animal profile.
The factors live in ration.go:

	adjusted := AdjustRation(base, input)

When no guidance row matches, emergency fallback rations are built from
the suitable-feed list with species default amounts.

# Symptom Analysis

Disease matching is implemented in diagnosis.go. Each disease affecting
the animal type is scored against the observed symptoms:

	match := ScoreDiseaseMatch(candidate, observed)

Scores blend symptom coverage with the observed match rate, weighted by
severity and contagiousness, then ranked descending.

# Market Analysis

Price trend classification and valuation helpers live in trend.go:

	trend, pct := ComputeTrend(pricesNewestFirst)

The trend compares the 5 newest observations against the 10 before them;
moves within a 5% band count as stable.
*/
package handlers
