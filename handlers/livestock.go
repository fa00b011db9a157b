// Copyright (c) 2025 the herdwise authors.
// MIT licensed; see LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"herdwise/auth"
	"herdwise/cliparse"
	"herdwise/middleware"
	"herdwise/models"
)

type LivestockHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewLivestockHandler(db *sql.DB, cfg cliparse.Config) *LivestockHandler {
	return &LivestockHandler{db: db, cfg: cfg}
}

const livestockColumns = `
	l.id, l.tag_number, l.name, l.animal_type_id, at.name, l.breed_id, b.name,
	l.gender, l.date_of_birth, l.current_weight_kg, l.purpose, l.status,
	l.purchase_date, l.purchase_price, l.notes, l.created_at, l.updated_at`

const livestockJoins = `
	FROM livestock l
	JOIN animal_type at ON at.id = l.animal_type_id
	LEFT JOIN breed b ON b.id = l.breed_id`

func scanLivestock(scan func(dest ...interface{}) error) (models.Livestock, error) {
	var ls models.Livestock
	err := scan(
		&ls.ID, &ls.TagNumber, &ls.Name, &ls.AnimalTypeID, &ls.AnimalTypeName,
		&ls.BreedID, &ls.BreedName, &ls.Gender, &ls.DateOfBirth, &ls.CurrentWeightKg,
		&ls.Purpose, &ls.Status, &ls.PurchaseDate, &ls.PurchasePrice, &ls.Notes,
		&ls.CreatedAt, &ls.UpdatedAt,
	)
	if err != nil {
		return ls, err
	}
	if ls.DateOfBirth != nil {
		age := models.AgeInMonths(*ls.DateOfBirth, time.Now())
		ls.AgeMonths = &age
	}
	return ls, nil
}

// List handles GET /api/user/livestock
// Returns the authenticated farmer's animals, newest first.
func (h *LivestockHandler) List(w http.ResponseWriter, r *http.Request) {
	farmerID, err := requireFarmer(h.db, h.cfg, r)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	rows, err := h.db.Query(`
		SELECT `+livestockColumns+livestockJoins+`
		WHERE l.farmer_id = $1
		ORDER BY l.created_at DESC
	`, farmerID)
	if err != nil {
		slog.Error("failed to query livestock", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	list := []models.Livestock{}
	for rows.Next() {
		ls, err := scanLivestock(rows.Scan)
		if err != nil {
			slog.Error("failed to scan livestock", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		list = append(list, ls)
	}

	middleware.JSONResponse(w, http.StatusOK, list)
}

// Create handles POST /api/user/livestock
func (h *LivestockHandler) Create(w http.ResponseWriter, r *http.Request) {
	farmerID, err := requireFarmer(h.db, h.cfg, r)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	var req models.CreateLivestockRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.TagNumber == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "tag_number is required")
		return
	}
	if req.Gender != models.GenderMale && req.Gender != models.GenderFemale {
		middleware.ErrorResponse(w, http.StatusBadRequest, "gender must be M or F")
		return
	}
	if !models.ValidPurpose(req.Purpose) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "purpose must be one of: MEAT, MILK, EGGS, BREEDING, MIXED")
		return
	}

	// Animal type must exist
	var animalTypeName string
	err = h.db.QueryRow("SELECT name FROM animal_type WHERE id = $1", req.AnimalTypeID).Scan(&animalTypeName)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Animal type not found")
		return
	}
	if err != nil {
		slog.Error("failed to query animal type", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Breed, when given, must belong to the same animal type
	var breedID *string
	if req.BreedID != "" {
		var breedAnimalType string
		err = h.db.QueryRow("SELECT animal_type_id FROM breed WHERE id = $1", req.BreedID).Scan(&breedAnimalType)
		if err == sql.ErrNoRows {
			middleware.ErrorResponse(w, http.StatusNotFound, "Breed not found")
			return
		}
		if err != nil {
			slog.Error("failed to query breed", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if breedAnimalType != req.AnimalTypeID {
			middleware.ErrorResponse(w, http.StatusBadRequest, "breed does not belong to the given animal type")
			return
		}
		breedID = &req.BreedID
	}

	dob, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
		return
	}
	purchaseDate, err := parseOptionalDate(req.PurchaseDate)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "purchase_date must be YYYY-MM-DD")
		return
	}

	// Tag numbers are unique across the whole herd book
	var existing string
	err = h.db.QueryRow("SELECT id FROM livestock WHERE tag_number = $1", req.TagNumber).Scan(&existing)
	if err == nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Tag number already in use")
		return
	}
	if err != sql.ErrNoRows {
		slog.Error("failed to query livestock", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	livestockID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate livestock ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create livestock")
		return
	}

	now := time.Now()
	_, err = h.db.Exec(`
		INSERT INTO livestock
			(id, farmer_id, animal_type_id, breed_id, tag_number, name, gender,
			 date_of_birth, current_weight_kg, purpose, status, purchase_date,
			 purchase_price, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`, livestockID, farmerID, req.AnimalTypeID, breedID, req.TagNumber,
		nullString(req.Name), req.Gender, dob, req.CurrentWeightKg, req.Purpose,
		models.StatusHealthy, purchaseDate, req.PurchasePrice, req.Notes, now, now)

	if err != nil {
		slog.Error("failed to insert livestock", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create livestock")
		return
	}

	slog.Info("livestock created", "livestock_id", livestockID, "farmer_id", farmerID,
		"tag_number", req.TagNumber, "animal_type", animalTypeName)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateLivestockResponse{
		LivestockID: livestockID,
	})
}

// Get handles GET /api/user/livestock/{id}
func (h *LivestockHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	middleware.JSONResponse(w, http.StatusOK, ls)
}

// Update handles PUT /api/user/livestock/{id}
// Applies partial updates to the mutable fields.
func (h *LivestockHandler) Update(w http.ResponseWriter, r *http.Request) {
	farmerID, err := requireFarmer(h.db, h.cfg, r)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	livestockID := r.PathValue("id")

	var req models.UpdateLivestockRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Purpose != nil && !models.ValidPurpose(*req.Purpose) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "purpose must be one of: MEAT, MILK, EGGS, BREEDING, MIXED")
		return
	}
	if req.Status != nil && !models.ValidStatus(*req.Status) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid status")
		return
	}

	// Owner check doubles as the existence check
	current, err := scanLivestock(h.db.QueryRow(`
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

	if req.Name != nil {
		current.Name = nullString(*req.Name)
	}
	if req.CurrentWeightKg != nil {
		current.CurrentWeightKg = req.CurrentWeightKg
	}
	if req.Purpose != nil {
		current.Purpose = *req.Purpose
	}
	if req.Status != nil {
		current.Status = *req.Status
	}
	if req.Notes != nil {
		current.Notes = *req.Notes
	}

	now := time.Now()
	_, err = h.db.Exec(`
		UPDATE livestock
		SET name = $1, current_weight_kg = $2, purpose = $3, status = $4, notes = $5, updated_at = $6
		WHERE id = $7
	`, current.Name, current.CurrentWeightKg, current.Purpose, current.Status,
		current.Notes, now, livestockID)

	if err != nil {
		slog.Error("failed to update livestock", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update livestock")
		return
	}

	current.UpdatedAt = now
	slog.Info("livestock updated", "livestock_id", livestockID, "farmer_id", farmerID)

	middleware.JSONResponse(w, http.StatusOK, current)
}

// AddCost handles POST /api/user/livestock/{id}/costs
// Records an expense against one animal for profitability tracking.
func (h *LivestockHandler) AddCost(w http.ResponseWriter, r *http.Request) {
	farmerID, err := requireFarmer(h.db, h.cfg, r)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	livestockID := r.PathValue("id")

	var req models.AddCostRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !models.ValidCostCategory(req.Category) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "category must be one of: FEED, VETERINARY, MEDICINE, OTHER")
		return
	}
	if req.Amount <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	var owner string
	err = h.db.QueryRow("SELECT farmer_id FROM livestock WHERE id = $1", livestockID).Scan(&owner)
	if err == sql.ErrNoRows || (err == nil && owner != farmerID) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Livestock not found")
		return
	}
	if err != nil {
		slog.Error("failed to query livestock", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	incurredAt := time.Now()
	if req.IncurredAt != "" {
		parsed, err := parseOptionalDate(req.IncurredAt)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "incurred_at must be YYYY-MM-DD")
			return
		}
		incurredAt = *parsed
	}

	costID, err := auth.GenerateID(12)
	if err != nil {
		slog.Error("failed to generate cost ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record cost")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO cost_record (id, livestock_id, category, amount, description, incurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, costID, livestockID, req.Category, req.Amount, req.Description, incurredAt, time.Now())

	if err != nil {
		slog.Error("failed to insert cost record", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record cost")
		return
	}

	slog.Info("cost recorded", "livestock_id", livestockID, "category", req.Category, "amount", req.Amount)

	middleware.JSONResponse(w, http.StatusCreated, models.AddCostResponse{CostID: costID})
}

// parseOptionalDate parses a YYYY-MM-DD string, returning nil for empty input.
func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
