// Copyright (c) 2025 the herdwise authors.
// MIT licensed; see LICENSE.

package handlers

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"herdwise/models"
)

// Ration sources
const (
	sourceDatabase  = "Database Recommendation"
	sourceAdjusted  = "Smart Recommendation"
	sourceEmergency = "Emergency Recommendation"
)

// RationInput is the animal profile a ration is computed for.
type RationInput struct {
	AnimalTypeName string
	AgeMonths      *int
	WeightKg       *float64
	Purpose        string
}

// weightFactor scales the daily amount by body weight, with per-species
// thresholds for young and oversized animals.
func weightFactor(animalTypeName string, weightKg float64) float64 {
	switch animalTypeName {
	case "Cattle":
		if weightKg < 100 {
			return 0.6
		}
		if weightKg < 300 {
			return 0.8
		}
		if weightKg > 600 {
			return 1.2
		}
	case "Goats", "Sheep":
		if weightKg < 20 {
			return 0.7
		}
		if weightKg > 70 {
			return 1.1
		}
	case "Poultry":
		if weightKg < 1 {
			return 0.8
		}
		if weightKg > 3 {
			return 1.1
		}
	}
	return 1.0
}

// ageFactor scales the daily amount by age in months.
func ageFactor(animalTypeName string, ageMonths int) float64 {
	switch animalTypeName {
	case "Cattle":
		if ageMonths < 6 {
			return 0.5 // calves need less solid feed
		}
		if ageMonths < 12 {
			return 0.8
		}
		if ageMonths > 60 {
			return 1.1
		}
	case "Goats", "Sheep":
		if ageMonths < 3 {
			return 0.6
		}
		if ageMonths < 8 {
			return 0.9
		}
	case "Poultry":
		if ageMonths < 2 {
			return 0.7
		}
		if ageMonths > 12 {
			return 1.05
		}
	}
	return 1.0
}

// purposeFactor boosts rations for animals in production.
func purposeFactor(purpose string) float64 {
	switch purpose {
	case models.PurposeMilk:
		return 1.3
	case models.PurposeBreeding:
		return 1.25
	case models.PurposeEggs:
		return 1.2
	case models.PurposeMixed:
		return 1.15
	case models.PurposeMeat:
		return 1.1
	}
	return 1.0
}

// AdjustRation applies the weight, age, and purpose factors to a base
// guidance row, annotating the notes with every adjustment made.
func AdjustRation(base models.FeedingResult, input RationInput) models.FeedingResult {
	adjusted := base
	smart := false

	if input.WeightKg != nil {
		f := weightFactor(input.AnimalTypeName, *input.WeightKg)
		if f != 1.0 {
			adjusted.DailyAmountKg *= f
			adjusted.Notes += fmt.Sprintf(" Amount adjusted by %.2fx for weight.", f)
			adjusted.Source = sourceAdjusted + " (Weight Adjusted)"
			smart = true
		}
	}

	if input.AgeMonths != nil {
		f := ageFactor(input.AnimalTypeName, *input.AgeMonths)
		if f != 1.0 {
			adjusted.DailyAmountKg *= f
			adjusted.Notes += fmt.Sprintf(" Amount adjusted by %.2fx for age.", f)
			if !smart {
				adjusted.Source = sourceAdjusted + " (Age Adjusted)"
				smart = true
			}
		}
	}

	if input.Purpose != "" {
		f := purposeFactor(input.Purpose)
		if f != 1.0 {
			adjusted.DailyAmountKg *= f
			adjusted.Notes += fmt.Sprintf(" Amount adjusted by %.2fx for %s purpose.", f, strings.ToLower(input.Purpose))
			if !smart {
				adjusted.Source = sourceAdjusted + " (Purpose Adjusted)"
			}
		}
	}

	adjusted.DailyAmountKg = roundTo(adjusted.DailyAmountKg, 2)
	adjusted.CostPerDay = roundTo(adjusted.FeedType.CostPerKg*adjusted.DailyAmountKg, 2)
	return adjusted
}

// EmergencyAmount returns the species fallback daily ration in kg.
func EmergencyAmount(animalTypeName string) float64 {
	switch animalTypeName {
	case "Cattle":
		return 15.0
	case "Goats", "Sheep":
		return 2.5
	case "Poultry":
		return 0.15
	}
	return 5.0
}

// RankRations orders results by cost then protein density and keeps the top n.
func RankRations(results []models.FeedingResult, n int) []models.FeedingResult {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].CostPerDay != results[j].CostPerDay {
			return results[i].CostPerDay < results[j].CostPerDay
		}
		return results[i].FeedType.ProteinPercentage > results[j].FeedType.ProteinPercentage
	})
	if len(results) > n {
		results = results[:n]
	}
	return results
}

func roundTo(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
