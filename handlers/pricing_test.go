// Copyright (c) 2025 the herdwise authors.
// MIT licensed; see LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herdwise/models"
	"herdwise/testutil"
)

func TestAnalyzeMarket_RisingTrend(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewPricingHandler(db, cfg)

	goatID := testutil.CreateTestAnimalType(t, db, "Goats")
	for day := 1; day <= 5; day++ {
		testutil.CreateTestMarketPrice(t, db, goatID, 12.0, day)
	}
	for day := 6; day <= 15; day++ {
		testutil.CreateTestMarketPrice(t, db, goatID, 10.0, day)
	}

	req := testutil.MakeRequest("POST", "/api/pricing/analyze-market", models.AnalyzeMarketRequest{
		AnimalTypeID: goatID,
		QualityGrade: models.GradeGood,
	}, nil)
	w := httptest.NewRecorder()

	handler.AnalyzeMarket(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.PriceAnalysisResult
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, 12.0, resp.CurrentPricePerKg)
	assert.Equal(t, models.TrendRising, resp.PriceTrend)
	assert.InDelta(t, 20.0, resp.TrendPercentage, 0.001)
	assert.Equal(t, models.ConfidenceHigh, resp.ConfidenceLevel)
	assert.Contains(t, resp.MarketRecommendation, "Good time to sell goats")
	assert.Len(t, resp.HistoricalData, 15)
}

func TestAnalyzeMarket_NoDataFallback(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewPricingHandler(db, cfg)

	cattleID := testutil.CreateTestAnimalType(t, db, "Cattle")

	req := testutil.MakeRequest("POST", "/api/pricing/analyze-market", models.AnalyzeMarketRequest{
		AnimalTypeID: cattleID,
	}, nil)
	w := httptest.NewRecorder()

	handler.AnalyzeMarket(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.PriceAnalysisResult
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, 8.50, resp.CurrentPricePerKg, "regional estimate for cattle at average grade")
	assert.Equal(t, models.TrendStable, resp.PriceTrend)
	assert.Equal(t, models.ConfidenceLow, resp.ConfidenceLevel)
	assert.Contains(t, resp.MarketRecommendation, "regional estimate")
	assert.Empty(t, resp.HistoricalData)
}

func TestAnalyzeMarket_GradeDefaultsToAverage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewPricingHandler(db, cfg)

	// All records are GOOD grade; a request without a grade filters on
	// AVERAGE and finds nothing, landing on the regional estimate
	goatID := testutil.CreateTestAnimalType(t, db, "Goats")
	for day := 1; day <= 10; day++ {
		testutil.CreateTestMarketPrice(t, db, goatID, 10.0, day)
	}

	req := testutil.MakeRequest("POST", "/api/pricing/analyze-market", models.AnalyzeMarketRequest{
		AnimalTypeID: goatID,
	}, nil)
	w := httptest.NewRecorder()

	handler.AnalyzeMarket(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.PriceAnalysisResult
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, 12.0, resp.CurrentPricePerKg, "goats estimate at average grade")
	assert.Equal(t, models.ConfidenceLow, resp.ConfidenceLevel)
	assert.Contains(t, resp.MarketRecommendation, "regional estimate")
	assert.Empty(t, resp.HistoricalData)
}

func TestAnalyzeMarket_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewPricingHandler(db, cfg)

	tests := []struct {
		name     string
		body     models.AnalyzeMarketRequest
		expected int
	}{
		{"missing animal type", models.AnalyzeMarketRequest{}, http.StatusBadRequest},
		{"bad grade", models.AnalyzeMarketRequest{AnimalTypeID: "x", QualityGrade: "SHINY"}, http.StatusBadRequest},
		{"unknown animal type", models.AnalyzeMarketRequest{AnimalTypeID: "missing"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/pricing/analyze-market", tt.body, nil)
			w := httptest.NewRecorder()

			handler.AnalyzeMarket(w, req)

			testutil.AssertStatus(t, w, tt.expected)
		})
	}
}

func TestProfitability(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewPricingHandler(db, cfg)

	farmerID, token := testutil.CreateTestFarmer(t, db, cfg, "farmer1")
	goatID := testutil.CreateTestAnimalType(t, db, "Goats")
	livestockID := testutil.CreateTestLivestock(t, db, farmerID, goatID, "GT-001", "MEAT")
	testutil.SetLivestockProfile(t, db, livestockID, 14, 30, 100)
	testutil.CreateTestCostRecord(t, db, livestockID, models.CostFeed, 50)

	testutil.CreateTestMarketPrice(t, db, goatID, 10.0, 1)
	testutil.CreateTestMarketPrice(t, db, goatID, 10.0, 2)

	req := testutil.MakeRequest("GET", "/api/pricing/livestock/"+livestockID+"/profitability", nil,
		map[string]string{"X-Farmer-Token": token})
	req.SetPathValue("id", livestockID)
	w := httptest.NewRecorder()

	handler.Profitability(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ProfitabilityResult
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, 300.0, resp.CurrentMarketValue, "30 kg at 10.0/kg")
	assert.Equal(t, 150.0, resp.TotalInvestment, "purchase price plus feed costs")
	assert.Equal(t, 150.0, resp.EstimatedProfit)
	assert.Equal(t, 100.0, resp.ProfitMarginPercentage)
	assert.Equal(t, 5.0, resp.BreakEvenPrice)
	assert.Contains(t, resp.Recommendation, "Excellent profit potential")
	assert.Contains(t, resp.Recommendation, "Estimated sale value $300.")
	assert.Equal(t, 100.0, resp.CostBreakdown.PurchasePrice)
	assert.Equal(t, 50.0, resp.CostBreakdown.FeedCosts)
}

func TestProfitability_FiveNewestPrices(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewPricingHandler(db, cfg)

	farmerID, token := testutil.CreateTestFarmer(t, db, cfg, "farmer1")
	goatID := testutil.CreateTestAnimalType(t, db, "Goats")
	livestockID := testutil.CreateTestLivestock(t, db, farmerID, goatID, "GT-001", "MEAT")
	testutil.SetLivestockProfile(t, db, livestockID, 14, 30, 100)

	// Five newest at 10.0/kg, plus an older tail at 20.0/kg still inside
	// the 30-day window that must not drag the valuation
	for day := 1; day <= 5; day++ {
		testutil.CreateTestMarketPrice(t, db, goatID, 10.0, day)
	}
	for day := 6; day <= 10; day++ {
		testutil.CreateTestMarketPrice(t, db, goatID, 20.0, day)
	}

	req := testutil.MakeRequest("GET", "/api/pricing/livestock/"+livestockID+"/profitability", nil,
		map[string]string{"X-Farmer-Token": token})
	req.SetPathValue("id", livestockID)
	w := httptest.NewRecorder()

	handler.Profitability(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ProfitabilityResult
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, 300.0, resp.CurrentMarketValue, "30 kg at the mean of the five newest prices")
}

func TestProfitability_NoMarketData(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewPricingHandler(db, cfg)

	farmerID, token := testutil.CreateTestFarmer(t, db, cfg, "farmer1")
	goatID := testutil.CreateTestAnimalType(t, db, "Goats")
	livestockID := testutil.CreateTestLivestock(t, db, farmerID, goatID, "GT-001", "MEAT")
	testutil.SetLivestockProfile(t, db, livestockID, 14, 30, 100)

	req := testutil.MakeRequest("GET", "/api/pricing/livestock/"+livestockID+"/profitability", nil,
		map[string]string{"X-Farmer-Token": token})
	req.SetPathValue("id", livestockID)
	w := httptest.NewRecorder()

	handler.Profitability(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ProfitabilityResult
	testutil.AssertJSON(t, w, &resp)
	// Goats estimate at average grade is 12.00/kg
	assert.Equal(t, 360.0, resp.CurrentMarketValue)
}

func TestProfitability_OtherFarmersAnimal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewPricingHandler(db, cfg)

	owner, _ := testutil.CreateTestFarmer(t, db, cfg, "owner")
	_, intruderToken := testutil.CreateTestFarmer(t, db, cfg, "intruder")
	goatID := testutil.CreateTestAnimalType(t, db, "Goats")
	livestockID := testutil.CreateTestLivestock(t, db, owner, goatID, "GT-001", "MEAT")

	req := testutil.MakeRequest("GET", "/api/pricing/livestock/"+livestockID+"/profitability", nil,
		map[string]string{"X-Farmer-Token": intruderToken})
	req.SetPathValue("id", livestockID)
	w := httptest.NewRecorder()

	handler.Profitability(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestSellingRecommendations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewPricingHandler(db, cfg)

	farmerID, token := testutil.CreateTestFarmer(t, db, cfg, "farmer1")
	goatID := testutil.CreateTestAnimalType(t, db, "Goats")

	profitable := testutil.CreateTestLivestock(t, db, farmerID, goatID, "GT-001", "MEAT")
	testutil.SetLivestockProfile(t, db, profitable, 14, 30, 100)

	losing := testutil.CreateTestLivestock(t, db, farmerID, goatID, "GT-002", "MEAT")
	testutil.SetLivestockProfile(t, db, losing, 6, 10, 500)

	// Sick animals are not recommended for sale
	sick := testutil.CreateTestLivestock(t, db, farmerID, goatID, "GT-003", "MEAT")
	_, err := db.Exec("UPDATE livestock SET status = 'SICK' WHERE id = $1", sick)
	require.NoError(t, err)

	testutil.CreateTestMarketPrice(t, db, goatID, 10.0, 1)

	req := testutil.MakeRequest("GET", "/api/pricing/selling-recommendations", nil,
		map[string]string{"X-Farmer-Token": token})
	w := httptest.NewRecorder()

	handler.SellingRecommendations(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp []models.SellingRecommendation
	testutil.AssertJSON(t, w, &resp)
	require.Len(t, resp, 2)

	// Highest action priority first
	assert.Equal(t, "GT-001", resp[0].Livestock.TagNumber)
	assert.Equal(t, 5, resp[0].ActionPriority)
	assert.Equal(t, "Ready for sale now", resp[0].OptimalSellingTime)

	assert.Equal(t, "GT-002", resp[1].Livestock.TagNumber)
	assert.Equal(t, 1, resp[1].ActionPriority)
	assert.Equal(t, "Optimal in 6 months", resp[1].OptimalSellingTime)
}

func TestLatestMarketPrices(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewPricingHandler(db, cfg)

	goatID := testutil.CreateTestAnimalType(t, db, "Goats")
	testutil.CreateTestMarketPrice(t, db, goatID, 10.0, 1)
	testutil.CreateTestMarketPrice(t, db, goatID, 11.0, 5)
	testutil.CreateTestMarketPrice(t, db, goatID, 9.5, 10)
	testutil.CreateTestMarketPrice(t, db, goatID, 8.0, 45) // outside the window

	req := testutil.MakeRequest("GET", "/api/market-prices/latest", nil, nil)
	w := httptest.NewRecorder()

	handler.LatestMarketPrices(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.LatestPricesResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, 3, resp.Count)
	require.Len(t, resp.Prices, 3)
	assert.Equal(t, 10.0, resp.Prices[0].PricePerKg, "newest first")
	assert.Equal(t, "Goats", resp.Prices[0].AnimalTypeName)
	assert.NotEmpty(t, resp.DateRange)
}

func TestListMarketPrices(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewPricingHandler(db, cfg)

	goatID := testutil.CreateTestAnimalType(t, db, "Goats")
	testutil.CreateTestMarketPrice(t, db, goatID, 10.0, 1)
	testutil.CreateTestMarketPrice(t, db, goatID, 8.0, 80)

	req := testutil.MakeRequest("GET", "/api/market-prices", nil, nil)
	w := httptest.NewRecorder()

	handler.ListMarketPrices(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var prices []models.MarketPrice
	testutil.AssertJSON(t, w, &prices)
	assert.Len(t, prices, 2, "no window on the full listing")
}
