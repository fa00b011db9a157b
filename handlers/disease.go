// Copyright (c) 2025 the herdwise authors.
// MIT licensed; see LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"herdwise/auth"
	"herdwise/cliparse"
	"herdwise/middleware"
	"herdwise/models"
)

// Top-of-list cap for symptom analysis results
const maxDiseaseMatches = 10

// Baseline husbandry advice returned with every prevention response
var generalHealthRecommendations = []string{
	"Maintain clean and dry living conditions",
	"Provide fresh, clean water daily",
	"Follow proper feeding schedules and nutrition",
	"Regular health checks and observations",
	"Quarantine new animals before introducing to herd",
	"Keep vaccination schedules up to date",
	"Maintain proper ventilation in housing",
	"Practice good hygiene when handling animals",
}

type DiseaseHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewDiseaseHandler(db *sql.DB, cfg cliparse.Config) *DiseaseHandler {
	return &DiseaseHandler{db: db, cfg: cfg}
}

// SymptomSuggestions handles GET /api/disease/symptom-suggestions?animal_type_id=
// Lists the symptoms worth asking about for an animal type: every symptom
// linked to a disease that affects it, with context for the checklist UI.
func (h *DiseaseHandler) SymptomSuggestions(w http.ResponseWriter, r *http.Request) {
	animalTypeID := r.URL.Query().Get("animal_type_id")
	if animalTypeID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "animal_type_id is required")
		return
	}

	if err := h.animalTypeExists(animalTypeID); err != nil {
		if err == sql.ErrNoRows {
			middleware.ErrorResponse(w, http.StatusNotFound, "Animal type not found")
			return
		}
		slog.Error("failed to query animal type", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// One row per (symptom, disease) pair for this animal type
	rows, err := h.db.Query(`
		SELECT s.id, s.name, s.description, d.severity
		FROM symptom s
		JOIN disease_symptom ds ON ds.symptom_id = s.id
		JOIN disease d ON d.id = ds.disease_id
		JOIN disease_animal da ON da.disease_id = d.id
		WHERE da.animal_type_id = $1
		ORDER BY s.name
	`, animalTypeID)
	if err != nil {
		slog.Error("failed to query symptom suggestions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	order := []string{}
	byID := map[string]*models.SymptomSuggestion{}
	severitiesSeen := map[string]map[string]bool{}

	for rows.Next() {
		var id, name, description, severity string
		if err := rows.Scan(&id, &name, &description, &severity); err != nil {
			slog.Error("failed to scan symptom suggestion", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		sugg, ok := byID[id]
		if !ok {
			sugg = &models.SymptomSuggestion{ID: id, Name: name, Description: description}
			byID[id] = sugg
			severitiesSeen[id] = map[string]bool{}
			order = append(order, id)
		}
		sugg.RelatedDiseasesCount++
		if !severitiesSeen[id][severity] {
			severitiesSeen[id][severity] = true
			sugg.SeverityLevels = append(sugg.SeverityLevels, severity)
		}
	}

	suggestions := make([]models.SymptomSuggestion, 0, len(order))
	for _, id := range order {
		sort.Strings(byID[id].SeverityLevels)
		suggestions = append(suggestions, *byID[id])
	}

	middleware.JSONResponse(w, http.StatusOK, suggestions)
}

// AnalyzeSymptoms handles POST /api/disease/analyze-symptoms
// Scores every disease affecting the animal type against the observed
// symptoms and returns the ranked matches plus any critical alerts.
func (h *DiseaseHandler) AnalyzeSymptoms(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeSymptomsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.AnimalTypeID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "animal_type_id is required")
		return
	}
	if len(req.Symptoms) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at least one symptom is required")
		return
	}

	if err := h.animalTypeExists(req.AnimalTypeID); err != nil {
		if err == sql.ErrNoRows {
			middleware.ErrorResponse(w, http.StatusNotFound, "Animal type not found")
			return
		}
		slog.Error("failed to query animal type", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	observed, err := h.loadSymptoms(req.Symptoms)
	if err != nil {
		slog.Error("failed to load symptoms", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if len(observed) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "no recognized symptoms given")
		return
	}

	candidates, err := h.loadCandidates(req.AnimalTypeID)
	if err != nil {
		slog.Error("failed to load disease candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	matches := make([]models.DiseaseMatch, 0, len(candidates))
	for _, c := range candidates {
		matches = append(matches, ScoreDiseaseMatch(c, observed))
	}
	ranked := RankDiseaseMatches(matches, maxDiseaseMatches)

	slog.Info("symptoms analyzed", "animal_type_id", req.AnimalTypeID,
		"symptoms", len(observed), "matches", len(ranked))

	middleware.JSONResponse(w, http.StatusOK, models.AnalyzeSymptomsResponse{
		Matches:        ranked,
		CriticalAlerts: CriticalAlerts(ranked),
		TotalMatches:   len(ranked),
	})
}

// Prevention handles GET /api/disease/prevention?animal_type_id=
func (h *DiseaseHandler) Prevention(w http.ResponseWriter, r *http.Request) {
	animalTypeID := r.URL.Query().Get("animal_type_id")
	if animalTypeID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "animal_type_id is required")
		return
	}

	var animalTypeName string
	err := h.db.QueryRow("SELECT name FROM animal_type WHERE id = $1", animalTypeID).Scan(&animalTypeName)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Animal type not found")
		return
	}
	if err != nil {
		slog.Error("failed to query animal type", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT d.name, d.severity, d.is_contagious, d.prevention_measures
		FROM disease d
		JOIN disease_animal da ON da.disease_id = d.id
		WHERE da.animal_type_id = $1
		ORDER BY d.severity, d.name
	`, animalTypeID)
	if err != nil {
		slog.Error("failed to query diseases", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	tips := []models.PreventionTip{}
	watchlist := []models.CriticalDisease{}
	for rows.Next() {
		var name, severity, prevention string
		var contagious bool
		if err := rows.Scan(&name, &severity, &contagious, &prevention); err != nil {
			slog.Error("failed to scan disease", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		if prevention != "" {
			tips = append(tips, models.PreventionTip{
				Disease:    name,
				Prevention: prevention,
				Severity:   severity,
			})
		}
		if severity == models.SeverityCritical || severity == models.SeverityHigh {
			watchlist = append(watchlist, models.CriticalDisease{
				Name:         name,
				Severity:     severity,
				IsContagious: contagious,
			})
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.PreventionResponse{
		AnimalType:              animalTypeName,
		PreventionTips:          tips,
		CriticalDiseasesToWatch: watchlist,
		GeneralRecommendations:  generalHealthRecommendations,
	})
}

// CreateHealthRecord handles POST /api/disease/health-record
// Persists an observation against one of the farmer's animals.
func (h *DiseaseHandler) CreateHealthRecord(w http.ResponseWriter, r *http.Request) {
	farmerID, err := requireFarmer(h.db, h.cfg, r)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	var req models.CreateHealthRecordRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.LivestockID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "livestock_id is required")
		return
	}
	if len(req.SymptomIDs) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at least one symptom is required")
		return
	}

	var owner, tagNumber string
	err = h.db.QueryRow("SELECT farmer_id, tag_number FROM livestock WHERE id = $1",
		req.LivestockID).Scan(&owner, &tagNumber)
	if err == sql.ErrNoRows || (err == nil && owner != farmerID) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Livestock not found")
		return
	}
	if err != nil {
		slog.Error("failed to query livestock", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	symptoms, err := h.loadSymptoms(req.SymptomIDs)
	if err != nil {
		slog.Error("failed to load symptoms", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if len(symptoms) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "no recognized symptoms given")
		return
	}

	var suspectedDiseaseID *string
	var suspectedDiseaseName *string
	requiresVet := false
	if req.SuspectedDiseaseID != "" {
		var name string
		var vet bool
		err = h.db.QueryRow("SELECT name, vet_required FROM disease WHERE id = $1",
			req.SuspectedDiseaseID).Scan(&name, &vet)
		if err != nil && err != sql.ErrNoRows {
			slog.Error("failed to query disease", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if err == nil {
			suspectedDiseaseID = &req.SuspectedDiseaseID
			suspectedDiseaseName = &name
			requiresVet = vet
		}
	}

	names := make([]string, len(symptoms))
	for i, s := range symptoms {
		names[i] = s.Name
	}
	diagnosis := "Symptoms observed: " + strings.Join(names, ", ")

	recordID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate health record ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create health record")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO health_record
			(id, livestock_id, recorded_at, suspected_disease_id, diagnosis,
			 veterinarian_consulted, recovery_status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, recordID, req.LivestockID, time.Now(), suspectedDiseaseID, diagnosis,
		false, models.RecoveryOngoing, req.Notes)
	if err != nil {
		slog.Error("failed to insert health record", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create health record")
		return
	}

	for _, s := range symptoms {
		if _, err := tx.Exec(`
			INSERT INTO health_record_symptom (health_record_id, symptom_id)
			VALUES ($1, $2)
		`, recordID, s.ID); err != nil {
			slog.Error("failed to link symptom", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create health record")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create health record")
		return
	}

	slog.Info("health record created", "health_record_id", recordID,
		"livestock_id", req.LivestockID, "symptoms", len(symptoms))

	middleware.JSONResponse(w, http.StatusCreated, models.CreateHealthRecordResponse{
		HealthRecordID:       recordID,
		LivestockTag:         tagNumber,
		SymptomsCount:        len(symptoms),
		SuspectedDisease:     suspectedDiseaseName,
		RequiresVetAttention: requiresVet,
	})
}

func (h *DiseaseHandler) animalTypeExists(id string) error {
	var one int
	return h.db.QueryRow("SELECT 1 FROM animal_type WHERE id = $1", id).Scan(&one)
}

// loadSymptoms fetches the symptom rows for the given ids, silently skipping
// unknown ids.
func (h *DiseaseHandler) loadSymptoms(ids []string) ([]models.Symptom, error) {
	symptoms := []models.Symptom{}
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		var s models.Symptom
		err := h.db.QueryRow("SELECT id, name, description FROM symptom WHERE id = $1", id).
			Scan(&s.ID, &s.Name, &s.Description)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, err
		}
		symptoms = append(symptoms, s)
	}
	return symptoms, nil
}

// loadCandidates fetches every disease affecting the animal type along with
// its full symptom set.
func (h *DiseaseHandler) loadCandidates(animalTypeID string) ([]DiseaseCandidate, error) {
	rows, err := h.db.Query(`
		SELECT d.id, d.name, d.description, d.severity, d.is_contagious,
		       d.prevention_measures, d.treatment_advice, d.vet_required
		FROM disease d
		JOIN disease_animal da ON da.disease_id = d.id
		WHERE da.animal_type_id = $1
		ORDER BY d.name
	`, animalTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := []DiseaseCandidate{}
	for rows.Next() {
		var d models.Disease
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Severity, &d.IsContagious,
			&d.PreventionMeasures, &d.TreatmentAdvice, &d.VetRequired); err != nil {
			return nil, err
		}
		candidates = append(candidates, DiseaseCandidate{Disease: d})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range candidates {
		srows, err := h.db.Query(`
			SELECT s.id, s.name, s.description
			FROM symptom s
			JOIN disease_symptom ds ON ds.symptom_id = s.id
			WHERE ds.disease_id = $1
			ORDER BY s.name
		`, candidates[i].Disease.ID)
		if err != nil {
			return nil, err
		}
		for srows.Next() {
			var s models.Symptom
			if err := srows.Scan(&s.ID, &s.Name, &s.Description); err != nil {
				srows.Close()
				return nil, err
			}
			candidates[i].Symptoms = append(candidates[i].Symptoms, s)
		}
		if err := srows.Err(); err != nil {
			srows.Close()
			return nil, err
		}
		srows.Close()
	}

	return candidates, nil
}
