// Copyright (c) 2025 the herdwise authors.
// MIT licensed; see LICENSE.

package handlers

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"herdwise/models"
)

// Trend band: moves within ±5% count as stable
const trendBandPercent = 5.0

// Species base prices per kg, used when no market data exists
var basePricesPerKg = map[string]float64{
	"Cattle":  8.50,
	"Goats":   12.00,
	"Sheep":   10.00,
	"Poultry": 4.50,
	"Pigs":    6.00,
}

const defaultBasePricePerKg = 7.00

// Months of age at which each species typically fetches its best price
var optimalSellingAges = map[string]int{
	"Cattle":  24,
	"Goats":   12,
	"Sheep":   12,
	"Poultry": 3,
}

// ComputeTrend classifies the price direction from observations ordered
// newest first: the mean of the 5 newest against the mean of the 10 that
// follow. Returns the trend constant and the signed percentage change.
func ComputeTrend(pricesNewestFirst []float64) (string, float64) {
	if len(pricesNewestFirst) < 2 {
		return models.TrendStable, 0.0
	}

	recentAvg := meanOf(pricesNewestFirst[:minInt(5, len(pricesNewestFirst))])

	olderAvg := recentAvg
	if len(pricesNewestFirst) > 5 {
		end := minInt(15, len(pricesNewestFirst))
		olderAvg = meanOf(pricesNewestFirst[5:end])
	}

	if olderAvg == 0 {
		return models.TrendStable, 0.0
	}

	change := (recentAvg - olderAvg) / olderAvg * 100
	change = roundTo(change, 2)

	switch {
	case change > trendBandPercent:
		return models.TrendRising, change
	case change < -trendBandPercent:
		return models.TrendFalling, change
	default:
		return models.TrendStable, change
	}
}

// ConfidenceLevel grades the analysis by how much data backed it.
func ConfidenceLevel(recordCount int) string {
	switch {
	case recordCount >= 15:
		return models.ConfidenceHigh
	case recordCount >= 5:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

// MarketRecommendation renders the advice line for a trend classification.
func MarketRecommendation(trend string, trendPercentage float64, animalTypeName string) string {
	pct := math.Abs(trendPercentage)

	switch {
	case trend == models.TrendRising && pct > 10:
		return fmt.Sprintf("Strong upward trend (+%.1f%%). Good time to sell %s. Consider selling mature animals.",
			pct, strings.ToLower(animalTypeName))
	case trend == models.TrendRising:
		return fmt.Sprintf("Prices rising (+%.1f%%). Monitor for optimal selling opportunity.", pct)
	case trend == models.TrendFalling && pct > 10:
		return fmt.Sprintf("Prices declining (-%.1f%%). Consider holding unless urgent. Focus on cost reduction.", pct)
	case trend == models.TrendFalling:
		return fmt.Sprintf("Slight price decline (-%.1f%%). Monitor market conditions.", pct)
	default:
		return "Stable market conditions. Normal selling/buying activities recommended."
	}
}

// EstimatedPricePerKg is the regional fallback price for a species adjusted
// by quality grade, used when the market has no recent observations.
func EstimatedPricePerKg(animalTypeName, qualityGrade string) float64 {
	base, ok := basePricesPerKg[animalTypeName]
	if !ok {
		base = defaultBasePricePerKg
	}

	adjustment := 1.0
	switch qualityGrade {
	case models.GradePremium:
		adjustment = 1.3
	case models.GradeGood:
		adjustment = 1.1
	case models.GradePoor:
		adjustment = 0.8
	}

	return roundTo(base*adjustment, 2)
}

// ProfitRecommendation renders the advice line for a profit margin band.
func ProfitRecommendation(marginPercent float64) string {
	switch {
	case marginPercent > 20:
		return fmt.Sprintf("Excellent profit potential (%.1f%%). Consider selling if market conditions are favorable.", marginPercent)
	case marginPercent > 10:
		return fmt.Sprintf("Good profit margin (%.1f%%). Ready for sale when convenient.", marginPercent)
	case marginPercent > 0:
		return fmt.Sprintf("Moderate profit expected (%.1f%%). Monitor growth and market prices.", marginPercent)
	case marginPercent > -10:
		return fmt.Sprintf("Close to break-even (%.1f%%). Hold and reduce costs if possible.", marginPercent)
	default:
		return fmt.Sprintf("Currently at loss (%.1f%%). Review feeding costs and consider veterinary consultation.", marginPercent)
	}
}

// ActionPriority maps a profit margin to a 1..5 selling priority.
func ActionPriority(marginPercent float64) int {
	switch {
	case marginPercent > 20:
		return 5
	case marginPercent > 10:
		return 4
	case marginPercent > 0:
		return 3
	case marginPercent > -10:
		return 2
	default:
		return 1
	}
}

// OptimalSellingTime compares an animal's age with the species optimum.
func OptimalSellingTime(animalTypeName string, ageMonths int) string {
	optimal, ok := optimalSellingAges[animalTypeName]
	if !ok {
		optimal = 12
	}

	if ageMonths >= optimal {
		return "Ready for sale now"
	}
	return fmt.Sprintf("Optimal in %d months", optimal-ageMonths)
}

// FormatMoney renders an amount for human-facing recommendation strings.
func FormatMoney(amount float64) string {
	return "$" + humanize.CommafWithDigits(amount, 2)
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
