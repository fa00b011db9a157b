// Copyright (c) 2025 the herdwise authors.
// MIT licensed; see LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"herdwise/cliparse"
	"herdwise/middleware"
	"herdwise/models"
)

// Result list caps, matching the guidance the original advisors settled on
const (
	maxRationResults    = 5
	maxEmergencyRations = 3
)

type FeedingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewFeedingHandler(db *sql.DB, cfg cliparse.Config) *FeedingHandler {
	return &FeedingHandler{db: db, cfg: cfg}
}

// Recommend handles POST /api/feeding/recommendations
// Computes ration recommendations for an animal profile. When livestock_id
// is given, the stored animal overrides age/weight/purpose in the request.
func (h *FeedingHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req models.FeedingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.AnimalTypeID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "animal_type_id is required")
		return
	}
	if req.Purpose != "" && !models.ValidPurpose(req.Purpose) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "purpose must be one of: MEAT, MILK, EGGS, BREEDING, MIXED")
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

	input := RationInput{
		AnimalTypeName: animalTypeName,
		AgeMonths:      req.AgeMonths,
		WeightKg:       req.WeightKg,
		Purpose:        req.Purpose,
	}

	// An existing animal's profile wins over the request fields
	if req.LivestockID != "" {
		var dob *time.Time
		var weight *float64
		var purpose string
		err := h.db.QueryRow(`
			SELECT date_of_birth, current_weight_kg, purpose
			FROM livestock WHERE id = $1
		`, req.LivestockID).Scan(&dob, &weight, &purpose)
		if err != nil && err != sql.ErrNoRows {
			slog.Error("failed to query livestock", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if err == nil {
			if dob != nil {
				age := models.AgeInMonths(*dob, time.Now())
				input.AgeMonths = &age
			}
			input.WeightKg = weight
			input.Purpose = purpose
		}
	}

	results, err := h.computeRations(req.AnimalTypeID, input)
	if err != nil {
		slog.Error("failed to compute rations", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var totalCost float64
	for _, rec := range results {
		totalCost += rec.CostPerDay
	}
	avgCost := 0.0
	if len(results) > 0 {
		avgCost = roundTo(totalCost/float64(len(results)), 2)
	}

	slog.Info("feeding recommendations computed", "animal_type", animalTypeName,
		"results", len(results))

	middleware.JSONResponse(w, http.StatusOK, models.FeedingResponse{
		Recommendations: results,
		AnimalInfo: models.FeedingAnimalInfo{
			AnimalType: animalTypeName,
			AgeMonths:  input.AgeMonths,
			WeightKg:   input.WeightKg,
			Purpose:    input.Purpose,
		},
		TotalRecommendations: len(results),
		TotalDailyCost:       roundTo(totalCost, 2),
		AverageCostPerDay:    avgCost,
	})
}

// Summary handles GET /api/feeding/livestock/{id}/summary
// Full feeding picture for one of the farmer's animals, costed per day and
// per month.
func (h *FeedingHandler) Summary(w http.ResponseWriter, r *http.Request) {
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

	input := RationInput{
		AnimalTypeName: ls.AnimalTypeName,
		AgeMonths:      ls.AgeMonths,
		WeightKg:       ls.CurrentWeightKg,
		Purpose:        ls.Purpose,
	}

	results, err := h.computeRations(ls.AnimalTypeID, input)
	if err != nil {
		slog.Error("failed to compute rations", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var totalCost float64
	for _, rec := range results {
		totalCost += rec.CostPerDay
	}

	displayName := ls.TagNumber
	if ls.Name != nil {
		displayName = *ls.Name
	}

	middleware.JSONResponse(w, http.StatusOK, models.FeedingSummaryResponse{
		Livestock:           ls,
		Recommendations:     results,
		TotalDailyCost:      roundTo(totalCost, 2),
		MonthlyCostEstimate: roundTo(totalCost*30, 2),
		Summary: models.FeedingSummary{
			AnimalInfo:          fmt.Sprintf("%s - %s", ls.AnimalTypeName, displayName),
			AgeMonths:           ls.AgeMonths,
			WeightKg:            ls.CurrentWeightKg,
			Purpose:             ls.Purpose,
			RecommendationCount: len(results),
		},
	})
}

// computeRations loads the matching guidance rows, applies the adjustment
// factors, and ranks the results. Falls back to basic rations from the
// suitable-feed list when nothing matches.
func (h *FeedingHandler) computeRations(animalTypeID string, input RationInput) ([]models.FeedingResult, error) {
	query := `
		SELECT f.id, f.name, f.category, f.description,
		       f.protein_percentage, f.energy_mj_per_kg, f.cost_per_kg,
		       fr.daily_amount_kg, fr.feeding_frequency, fr.notes
		FROM feeding_recommendation fr
		JOIN feed_type f ON f.id = fr.feed_type_id
		WHERE fr.animal_type_id = $1`
	args := []interface{}{animalTypeID}

	if input.AgeMonths != nil {
		args = append(args, *input.AgeMonths)
		n := len(args)
		query += fmt.Sprintf(" AND fr.min_age_months <= $%d AND (fr.max_age_months >= $%d OR fr.max_age_months IS NULL)", n, n)
	}
	if input.WeightKg != nil {
		args = append(args, *input.WeightKg)
		n := len(args)
		query += fmt.Sprintf(" AND fr.min_weight_kg <= $%d AND (fr.max_weight_kg >= $%d OR fr.max_weight_kg IS NULL)", n, n)
	}
	if input.Purpose != "" {
		args = append(args, input.Purpose)
		query += fmt.Sprintf(" AND (fr.purpose = $%d OR fr.purpose = '')", len(args))
	}

	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []models.FeedingResult{}
	for rows.Next() {
		var base models.FeedingResult
		if err := rows.Scan(&base.FeedType.ID, &base.FeedType.Name, &base.FeedType.Category,
			&base.FeedType.Description, &base.FeedType.ProteinPercentage,
			&base.FeedType.EnergyMJPerKg, &base.FeedType.CostPerKg,
			&base.DailyAmountKg, &base.FeedingFrequency, &base.Notes); err != nil {
			return nil, err
		}
		base.Source = sourceDatabase
		results = append(results, AdjustRation(base, input))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return h.emergencyRations(animalTypeID, input.AnimalTypeName)
	}

	return RankRations(results, maxRationResults), nil
}

// emergencyRations builds basic recommendations from the suitable-feed list
// when no guidance row matches the animal profile.
func (h *FeedingHandler) emergencyRations(animalTypeID, animalTypeName string) ([]models.FeedingResult, error) {
	rows, err := h.db.Query(`
		SELECT f.id, f.name, f.category, f.description,
		       f.protein_percentage, f.energy_mj_per_kg, f.cost_per_kg
		FROM feed_type f
		JOIN feed_suitability fs ON fs.feed_type_id = f.id
		WHERE fs.animal_type_id = $1
		ORDER BY f.name
	`, animalTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	amount := EmergencyAmount(animalTypeName)

	results := []models.FeedingResult{}
	for rows.Next() {
		var feed models.FeedType
		if err := rows.Scan(&feed.ID, &feed.Name, &feed.Category, &feed.Description,
			&feed.ProteinPercentage, &feed.EnergyMJPerKg, &feed.CostPerKg); err != nil {
			return nil, err
		}
		results = append(results, models.FeedingResult{
			FeedType:         feed,
			DailyAmountKg:    amount,
			FeedingFrequency: 2,
			CostPerDay:       roundTo(feed.CostPerKg*amount, 2),
			Notes:            "Basic recommendation - please consult with veterinarian for specific needs.",
			Source:           sourceEmergency,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return RankRations(results, maxEmergencyRations), nil
}
