// Copyright (c) 2025 the herdwise authors.
// MIT licensed; see LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"herdwise/cliparse"
	"herdwise/middleware"
	"herdwise/models"
)

// ReferenceHandler serves the lookup endpoints the UI populates its
// dropdowns from. All of them are public.
type ReferenceHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewReferenceHandler(db *sql.DB, cfg cliparse.Config) *ReferenceHandler {
	return &ReferenceHandler{db: db, cfg: cfg}
}

// ListAnimalTypes handles GET /api/animal-types
func (h *ReferenceHandler) ListAnimalTypes(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, name, description
		FROM animal_type
		ORDER BY name
	`)
	if err != nil {
		slog.Error("failed to query animal types", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	types := []models.AnimalType{}
	for rows.Next() {
		var at models.AnimalType
		if err := rows.Scan(&at.ID, &at.Name, &at.Description); err != nil {
			slog.Error("failed to scan animal type", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		types = append(types, at)
	}

	middleware.JSONResponse(w, http.StatusOK, types)
}

// ListBreeds handles GET /api/breeds?animal_type=
func (h *ReferenceHandler) ListBreeds(w http.ResponseWriter, r *http.Request) {
	query := `
		SELECT b.id, b.animal_type_id, at.name, b.name, b.description,
		       b.average_weight_kg, b.maturity_months
		FROM breed b
		JOIN animal_type at ON at.id = b.animal_type_id`

	var rows *sql.Rows
	var err error
	if animalTypeID := r.URL.Query().Get("animal_type"); animalTypeID != "" {
		rows, err = h.db.Query(query+" WHERE b.animal_type_id = $1 ORDER BY b.name", animalTypeID)
	} else {
		rows, err = h.db.Query(query + " ORDER BY at.name, b.name")
	}
	if err != nil {
		slog.Error("failed to query breeds", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	breeds := []models.Breed{}
	for rows.Next() {
		var b models.Breed
		if err := rows.Scan(&b.ID, &b.AnimalTypeID, &b.AnimalTypeName, &b.Name,
			&b.Description, &b.AverageWeightKg, &b.MaturityMonths); err != nil {
			slog.Error("failed to scan breed", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		breeds = append(breeds, b)
	}

	middleware.JSONResponse(w, http.StatusOK, breeds)
}

// ListFeedTypes handles GET /api/feed-types?animal_type=
func (h *ReferenceHandler) ListFeedTypes(w http.ResponseWriter, r *http.Request) {
	var rows *sql.Rows
	var err error
	if animalTypeID := r.URL.Query().Get("animal_type"); animalTypeID != "" {
		rows, err = h.db.Query(`
			SELECT f.id, f.name, f.category, f.description,
			       f.protein_percentage, f.energy_mj_per_kg, f.cost_per_kg
			FROM feed_type f
			JOIN feed_suitability fs ON fs.feed_type_id = f.id
			WHERE fs.animal_type_id = $1
			ORDER BY f.name
		`, animalTypeID)
	} else {
		rows, err = h.db.Query(`
			SELECT id, name, category, description,
			       protein_percentage, energy_mj_per_kg, cost_per_kg
			FROM feed_type
			ORDER BY name
		`)
	}
	if err != nil {
		slog.Error("failed to query feed types", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	feeds := []models.FeedType{}
	for rows.Next() {
		var f models.FeedType
		if err := rows.Scan(&f.ID, &f.Name, &f.Category, &f.Description,
			&f.ProteinPercentage, &f.EnergyMJPerKg, &f.CostPerKg); err != nil {
			slog.Error("failed to scan feed type", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		feeds = append(feeds, f)
	}

	middleware.JSONResponse(w, http.StatusOK, feeds)
}

// ListDiseases handles GET /api/diseases?animal_type=
func (h *ReferenceHandler) ListDiseases(w http.ResponseWriter, r *http.Request) {
	query := `
		SELECT id, name, description, severity, is_contagious,
		       prevention_measures, treatment_advice, vet_required
		FROM disease`

	var rows *sql.Rows
	var err error
	if animalTypeID := r.URL.Query().Get("animal_type"); animalTypeID != "" {
		rows, err = h.db.Query(query+`
			WHERE id IN (SELECT disease_id FROM disease_animal WHERE animal_type_id = $1)
			ORDER BY name`, animalTypeID)
	} else {
		rows, err = h.db.Query(query + " ORDER BY name")
	}
	if err != nil {
		slog.Error("failed to query diseases", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	diseases := []models.Disease{}
	for rows.Next() {
		var d models.Disease
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Severity, &d.IsContagious,
			&d.PreventionMeasures, &d.TreatmentAdvice, &d.VetRequired); err != nil {
			slog.Error("failed to scan disease", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		diseases = append(diseases, d)
	}

	middleware.JSONResponse(w, http.StatusOK, diseases)
}

// ListSymptoms handles GET /api/symptoms
func (h *ReferenceHandler) ListSymptoms(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, name, description
		FROM symptom
		ORDER BY name
	`)
	if err != nil {
		slog.Error("failed to query symptoms", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	symptoms := []models.Symptom{}
	for rows.Next() {
		var s models.Symptom
		if err := rows.Scan(&s.ID, &s.Name, &s.Description); err != nil {
			slog.Error("failed to scan symptom", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		symptoms = append(symptoms, s)
	}

	middleware.JSONResponse(w, http.StatusOK, symptoms)
}

// SystemInfo handles GET /api/system-info
func (h *ReferenceHandler) SystemInfo(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.SystemInfoResponse{
		System:           "Herdwise",
		Description:      "Decision support system for small-scale livestock farmers",
		TargetUsers:      "Small-scale livestock farmers",
		SupportedAnimals: []string{"cattle", "goats", "sheep", "poultry"},
		KeyFeatures: []string{
			"Feeding recommendations",
			"Disease monitoring and alerts",
			"Market pricing guidance",
		},
	})
}
