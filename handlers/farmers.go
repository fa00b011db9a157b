// Copyright (c) 2025 the herdwise authors.
// MIT licensed; see LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"herdwise/auth"
	"herdwise/cliparse"
	"herdwise/middleware"
	"herdwise/models"
)

type FarmerHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewFarmerHandler(db *sql.DB, cfg cliparse.Config) *FarmerHandler {
	return &FarmerHandler{db: db, cfg: cfg}
}

// Register handles POST /api/farmers/register
// Creates a farmer account and returns its bearer token. The token is shown
// exactly once; only its hash is stored.
func (h *FarmerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterFarmerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}

	// Check username availability
	var existing string
	err := h.db.QueryRow("SELECT id FROM farmer WHERE username = $1", req.Username).Scan(&existing)
	if err == nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Username already taken")
		return
	}
	if err != sql.ErrNoRows {
		slog.Error("failed to query farmer", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	farmerID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate farmer ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register farmer")
		return
	}

	token, err := auth.GenerateFarmerToken()
	if err != nil {
		slog.Error("failed to generate farmer token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register farmer")
		return
	}

	now := time.Now()
	_, err = h.db.Exec(`
		INSERT INTO farmer (id, username, token_hash, phone_number, location,
		                    farm_size_acres, experience_years, created_at, last_seen_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, farmerID, req.Username, auth.HashToken(token, h.cfg.TokenSalt),
		nullString(req.PhoneNumber), nullString(req.Location),
		req.FarmSizeAcres, req.ExperienceYears, now, now)

	if err != nil {
		slog.Error("failed to insert farmer", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register farmer")
		return
	}

	slog.Info("farmer registered", "farmer_id", farmerID, "username", req.Username)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterFarmerResponse{
		FarmerID: farmerID,
		Token:    token,
	})
}

// GetMe handles GET /api/farmers/me
// Returns the authenticated farmer's profile and refreshes last_seen_at.
func (h *FarmerHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Farmer-Token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Farmer-Token header required")
		return
	}

	var farmer models.Farmer
	err := h.db.QueryRow(`
		SELECT id, username, phone_number, location, farm_size_acres,
		       experience_years, created_at, last_seen_at
		FROM farmer
		WHERE token_hash = $1
	`, auth.HashToken(token, h.cfg.TokenSalt)).Scan(
		&farmer.ID, &farmer.Username, &farmer.PhoneNumber, &farmer.Location,
		&farmer.FarmSizeAcres, &farmer.ExperienceYears, &farmer.CreatedAt, &farmer.LastSeenAt,
	)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid farmer token")
		return
	}
	if err != nil {
		slog.Error("failed to query farmer", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	_, err = h.db.Exec("UPDATE farmer SET last_seen_at = $1 WHERE id = $2", time.Now(), farmer.ID)
	if err != nil {
		slog.Error("failed to update farmer last_seen_at", "error", err)
	}

	middleware.JSONResponse(w, http.StatusOK, farmer)
}

// requireFarmer resolves the authenticated farmer ID from the X-Farmer-Token
// header. Returns auth.ErrMissingToken / auth.ErrInvalidToken for the caller
// to map to 401.
func requireFarmer(db *sql.DB, cfg cliparse.Config, r *http.Request) (string, error) {
	token := r.Header.Get("X-Farmer-Token")
	if token == "" {
		return "", auth.ErrMissingToken
	}

	var farmerID string
	err := db.QueryRow("SELECT id FROM farmer WHERE token_hash = $1",
		auth.HashToken(token, cfg.TokenSalt)).Scan(&farmerID)
	if err == sql.ErrNoRows {
		return "", auth.ErrInvalidToken
	}
	if err != nil {
		return "", err
	}
	return farmerID, nil
}

// writeAuthError maps a requireFarmer failure to the right status code.
func writeAuthError(w http.ResponseWriter, err error) {
	if errors.Is(err, auth.ErrMissingToken) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Farmer-Token header required")
		return
	}
	if errors.Is(err, auth.ErrInvalidToken) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid farmer token")
		return
	}
	slog.Error("failed to resolve farmer", "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
