// Copyright (c) 2025 the herdwise authors.
// MIT licensed; see LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"herdwise/cliparse"
	"herdwise/middleware"
	"herdwise/models"
)

// Lookback windows and list caps for market analysis
const (
	analysisWindowDays  = 90
	valuationWindowDays = 30
	maxHistoricalPoints = 30
	maxListedPrices     = 50
	maxLatestPrices     = 20
	currentPriceSamples = 5
)

type PricingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPricingHandler(db *sql.DB, cfg cliparse.Config) *PricingHandler {
	return &PricingHandler{db: db, cfg: cfg}
}

// AnalyzeMarket handles POST /api/pricing/analyze-market
// Analyzes recent market prices for an animal type and renders a trend
// classification with a selling recommendation.
func (h *PricingHandler) AnalyzeMarket(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeMarketRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.AnimalTypeID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "animal_type_id is required")
		return
	}
	if req.QualityGrade == "" {
		req.QualityGrade = models.GradeAverage
	}
	if !models.ValidQualityGrade(req.QualityGrade) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "quality_grade must be one of: PREMIUM, GOOD, AVERAGE, POOR")
		return
	}

	var animalTypeName string
	err := h.db.QueryRow("SELECT name FROM animal_type WHERE id = $1", req.AnimalTypeID).Scan(&animalTypeName)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Animal type not found")
		return
	}
	if err != nil {
		slog.Error("failed to query animal type", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	cutoff := time.Now().AddDate(0, 0, -analysisWindowDays)

	query := `
		SELECT date_recorded, price_per_kg, location, quality_grade
		FROM market_price
		WHERE animal_type_id = $1 AND date_recorded >= $2`
	args := []interface{}{req.AnimalTypeID, cutoff}

	if req.Location != "" {
		args = append(args, "%"+req.Location+"%")
		query += fmt.Sprintf(" AND location LIKE $%d", len(args))
	}
	args = append(args, req.QualityGrade)
	query += fmt.Sprintf(" AND quality_grade = $%d", len(args))
	if req.BreedID != "" {
		args = append(args, req.BreedID)
		query += fmt.Sprintf(" AND breed_id = $%d", len(args))
	}
	query += " ORDER BY date_recorded DESC"

	rows, err := h.db.Query(query, args...)
	if err != nil {
		slog.Error("failed to query market prices", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	prices := []float64{}
	points := []models.PricePoint{}
	for rows.Next() {
		var recorded time.Time
		var price float64
		var location, grade string
		if err := rows.Scan(&recorded, &price, &location, &grade); err != nil {
			slog.Error("failed to scan market price", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		prices = append(prices, price)
		if len(points) < maxHistoricalPoints {
			points = append(points, models.PricePoint{
				Date:     recorded.Format("2006-01-02"),
				Price:    price,
				Location: location,
				Quality:  grade,
			})
		}
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read market prices", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	today := time.Now().Format("2006-01-02")

	// No observations at all: fall back to the regional estimate
	if len(prices) == 0 {
		estimated := EstimatedPricePerKg(animalTypeName, req.QualityGrade)

		slog.Info("market analysis without data", "animal_type", animalTypeName)

		middleware.JSONResponse(w, http.StatusOK, models.PriceAnalysisResult{
			CurrentPricePerKg:    estimated,
			PriceTrend:           models.TrendStable,
			TrendPercentage:      0.0,
			MarketRecommendation: "No recent market data available. Price shown is a regional estimate.",
			ConfidenceLevel:      models.ConfidenceLow,
			HistoricalData:       []models.PricePoint{},
			Location:             req.Location,
			DateAnalyzed:         today,
		})
		return
	}

	currentPrice := roundTo(meanOf(prices[:minInt(currentPriceSamples, len(prices))]), 2)
	trend, pct := ComputeTrend(prices)

	slog.Info("market analyzed", "animal_type", animalTypeName,
		"records", len(prices), "trend", trend)

	middleware.JSONResponse(w, http.StatusOK, models.PriceAnalysisResult{
		CurrentPricePerKg:    currentPrice,
		PriceTrend:           trend,
		TrendPercentage:      pct,
		MarketRecommendation: MarketRecommendation(trend, pct, animalTypeName),
		ConfidenceLevel:      ConfidenceLevel(len(prices)),
		HistoricalData:       points,
		Location:             req.Location,
		DateAnalyzed:         today,
	})
}

// Profitability handles GET /api/pricing/livestock/{id}/profitability
// Values one of the farmer's animals against its accumulated costs.
func (h *PricingHandler) Profitability(w http.ResponseWriter, r *http.Request) {
	farmerID, err := requireFarmer(h.db, h.cfg, r)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	livestockID := r.PathValue("id")

	ls, err := scanLivestock(h.db.QueryRow(`
		SELECT `+livestockColumns+livestockJoins+`
		WHERE l.id = $1 AND l.farmer_id = $2
	`, livestockID, farmerID).Scan)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Livestock not found")
		return
	}
	if err != nil {
		slog.Error("failed to query livestock", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	result, err := h.profitability(ls)
	if err != nil {
		slog.Error("failed to compute profitability", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}

// SellingRecommendations handles GET /api/pricing/selling-recommendations
// Ranks the farmer's healthy animals by how urgently they should be sold.
func (h *PricingHandler) SellingRecommendations(w http.ResponseWriter, r *http.Request) {
	farmerID, err := requireFarmer(h.db, h.cfg, r)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	rows, err := h.db.Query(`
		SELECT `+livestockColumns+livestockJoins+`
		WHERE l.farmer_id = $1 AND l.status = $2
		ORDER BY l.tag_number
	`, farmerID, models.StatusHealthy)
	if err != nil {
		slog.Error("failed to query livestock", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	herd := []models.Livestock{}
	for rows.Next() {
		ls, err := scanLivestock(rows.Scan)
		if err != nil {
			slog.Error("failed to scan livestock", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		herd = append(herd, ls)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read livestock", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	recommendations := []models.SellingRecommendation{}
	for _, ls := range herd {
		prof, err := h.profitability(ls)
		if err != nil {
			slog.Error("failed to compute profitability", "livestock_id", ls.ID, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		age := 0
		if ls.AgeMonths != nil {
			age = *ls.AgeMonths
		}

		recommendations = append(recommendations, models.SellingRecommendation{
			Livestock:          ls,
			Profitability:      prof,
			ActionPriority:     ActionPriority(prof.ProfitMarginPercentage),
			OptimalSellingTime: OptimalSellingTime(ls.AnimalTypeName, age),
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		if recommendations[i].ActionPriority != recommendations[j].ActionPriority {
			return recommendations[i].ActionPriority > recommendations[j].ActionPriority
		}
		return recommendations[i].Profitability.EstimatedProfit > recommendations[j].Profitability.EstimatedProfit
	})

	middleware.JSONResponse(w, http.StatusOK, recommendations)
}

// priceFilters appends optional animal type and location conditions shared
// by the listing endpoints.
func priceFilters(r *http.Request, query string, args []interface{}) (string, []interface{}) {
	if animalTypeID := r.URL.Query().Get("animal_type"); animalTypeID != "" {
		args = append(args, animalTypeID)
		query += fmt.Sprintf(" AND mp.animal_type_id = $%d", len(args))
	}
	if location := r.URL.Query().Get("location"); location != "" {
		args = append(args, "%"+location+"%")
		query += fmt.Sprintf(" AND mp.location LIKE $%d", len(args))
	}
	return query, args
}

// ListMarketPrices handles GET /api/market-prices?animal_type=&location=
func (h *PricingHandler) ListMarketPrices(w http.ResponseWriter, r *http.Request) {
	query, args := priceFilters(r, `
		SELECT mp.id, mp.animal_type_id, at.name, mp.breed_id, mp.location,
		       mp.date_recorded, mp.price_per_kg, mp.quality_grade, mp.source
		FROM market_price mp
		JOIN animal_type at ON at.id = mp.animal_type_id
		WHERE 1 = 1`, nil)
	args = append(args, maxListedPrices)
	query += fmt.Sprintf(" ORDER BY mp.date_recorded DESC LIMIT $%d", len(args))

	prices, err := h.queryPrices(query, args...)
	if err != nil {
		slog.Error("failed to query market prices", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, prices)
}

// LatestMarketPrices handles GET /api/market-prices/latest?animal_type=&location=
// Prices recorded in the last 30 days, newest first.
func (h *PricingHandler) LatestMarketPrices(w http.ResponseWriter, r *http.Request) {
	cutoff := time.Now().AddDate(0, 0, -valuationWindowDays)

	query, args := priceFilters(r, `
		SELECT mp.id, mp.animal_type_id, at.name, mp.breed_id, mp.location,
		       mp.date_recorded, mp.price_per_kg, mp.quality_grade, mp.source
		FROM market_price mp
		JOIN animal_type at ON at.id = mp.animal_type_id
		WHERE mp.date_recorded >= $1`, []interface{}{cutoff})
	args = append(args, maxLatestPrices)
	query += fmt.Sprintf(" ORDER BY mp.date_recorded DESC LIMIT $%d", len(args))

	prices, err := h.queryPrices(query, args...)
	if err != nil {
		slog.Error("failed to query market prices", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	dateRange := fmt.Sprintf("%s to %s",
		cutoff.Format("2006-01-02"), time.Now().Format("2006-01-02"))

	middleware.JSONResponse(w, http.StatusOK, models.LatestPricesResponse{
		Prices:    prices,
		Count:     len(prices),
		DateRange: dateRange,
	})
}

func (h *PricingHandler) queryPrices(query string, args ...interface{}) ([]models.MarketPrice, error) {
	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prices := []models.MarketPrice{}
	for rows.Next() {
		var p models.MarketPrice
		if err := rows.Scan(&p.ID, &p.AnimalTypeID, &p.AnimalTypeName, &p.BreedID,
			&p.Location, &p.DateRecorded, &p.PricePerKg, &p.QualityGrade, &p.Source); err != nil {
			return nil, err
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

// profitability values an animal at recent market prices and nets its
// accumulated costs against that value.
func (h *PricingHandler) profitability(ls models.Livestock) (models.ProfitabilityResult, error) {
	pricePerKg, err := h.recentPricePerKg(ls)
	if err != nil {
		return models.ProfitabilityResult{}, err
	}

	weight := 0.0
	if ls.CurrentWeightKg != nil {
		weight = *ls.CurrentWeightKg
	}
	marketValue := roundTo(pricePerKg*weight, 2)

	breakdown, err := h.costBreakdown(ls)
	if err != nil {
		return models.ProfitabilityResult{}, err
	}

	investment := breakdown.PurchasePrice + breakdown.FeedCosts +
		breakdown.VeterinaryCosts + breakdown.MedicineCosts + breakdown.OtherCosts
	investment = roundTo(investment, 2)

	profit := roundTo(marketValue-investment, 2)

	margin := 0.0
	if investment > 0 {
		margin = roundTo(profit/investment*100, 2)
	}

	divisor := weight
	if divisor == 0 {
		divisor = 1
	}
	breakEven := roundTo(investment/divisor, 2)

	recommendation := ProfitRecommendation(margin)
	if profit > 0 {
		recommendation += " Estimated sale value " + FormatMoney(marketValue) + "."
	}

	return models.ProfitabilityResult{
		LivestockID:            ls.ID,
		CurrentMarketValue:     marketValue,
		TotalInvestment:        investment,
		EstimatedProfit:        profit,
		ProfitMarginPercentage: margin,
		BreakEvenPrice:         breakEven,
		Recommendation:         recommendation,
		CostBreakdown:          breakdown,
	}, nil
}

// recentPricePerKg averages the newest observations within the last 30 days
// for the animal's type, preferring breed-specific observations when the
// breed has any. Only the most recent samples count, so a stale tail inside
// the window cannot drag the valuation.
func (h *PricingHandler) recentPricePerKg(ls models.Livestock) (float64, error) {
	cutoff := time.Now().AddDate(0, 0, -valuationWindowDays)

	if ls.BreedID != nil {
		avg, n, err := h.averagePrice(`
			SELECT price_per_kg FROM market_price
			WHERE animal_type_id = $1 AND breed_id = $2 AND date_recorded >= $3
			ORDER BY date_recorded DESC LIMIT $4
		`, ls.AnimalTypeID, *ls.BreedID, cutoff, currentPriceSamples)
		if err != nil {
			return 0, err
		}
		if n > 0 {
			return avg, nil
		}
	}

	avg, n, err := h.averagePrice(`
		SELECT price_per_kg FROM market_price
		WHERE animal_type_id = $1 AND date_recorded >= $2
		ORDER BY date_recorded DESC LIMIT $3
	`, ls.AnimalTypeID, cutoff, currentPriceSamples)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return avg, nil
	}

	return EstimatedPricePerKg(ls.AnimalTypeName, models.GradeAverage), nil
}

func (h *PricingHandler) averagePrice(query string, args ...interface{}) (float64, int, error) {
	rows, err := h.db.Query(query, args...)
	if err != nil {
		return 0, 0, err
	}
	defer rows.Close()

	var sum float64
	var n int
	for rows.Next() {
		var price float64
		if err := rows.Scan(&price); err != nil {
			return 0, 0, err
		}
		sum += price
		n++
	}
	if err := rows.Err(); err != nil {
		return 0, 0, err
	}
	if n == 0 {
		return 0, 0, nil
	}
	return roundTo(sum/float64(n), 2), n, nil
}

func (h *PricingHandler) costBreakdown(ls models.Livestock) (models.CostBreakdown, error) {
	breakdown := models.CostBreakdown{}
	if ls.PurchasePrice != nil {
		breakdown.PurchasePrice = *ls.PurchasePrice
	}

	rows, err := h.db.Query(`
		SELECT category, amount FROM cost_record WHERE livestock_id = $1
	`, ls.ID)
	if err != nil {
		return breakdown, err
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var amount float64
		if err := rows.Scan(&category, &amount); err != nil {
			return breakdown, err
		}
		switch category {
		case models.CostFeed:
			breakdown.FeedCosts += amount
		case models.CostVeterinary:
			breakdown.VeterinaryCosts += amount
		case models.CostMedicine:
			breakdown.MedicineCosts += amount
		default:
			breakdown.OtherCosts += amount
		}
	}
	return breakdown, rows.Err()
}
