// Copyright (c) 2025 the herdwise authors.
// MIT licensed; see LICENSE.

// Package testutil provides database and HTTP helpers shared by handler tests.
package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"herdwise/auth"
	"herdwise/cliparse"
	"herdwise/db"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full schema.
// The pool is limited to a single connection so every query sees the same
// in-memory database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", "file::memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8290,
		DatabaseURL:  "file::memory:",
		DatabaseType: "sqlite",
		TokenSalt:    "test-token-salt",
	}
}

// CreateTestFarmer registers a farmer and returns the ID and plain token
func CreateTestFarmer(t *testing.T, conn *sql.DB, cfg cliparse.Config, username string) (farmerID, token string) {
	t.Helper()

	farmerID, _ = auth.GenerateID(16)
	token, _ = auth.GenerateFarmerToken()

	_, err := conn.Exec(`
		INSERT INTO farmer (id, username, token_hash, phone_number, location, created_at, last_seen_at)
		VALUES ($1, $2, $3, '', '', $4, $5)
	`, farmerID, username, auth.HashToken(token, cfg.TokenSalt), time.Now(), time.Now())
	if err != nil {
		t.Fatalf("Failed to create test farmer: %v", err)
	}

	return farmerID, token
}

// CreateTestAnimalType inserts an animal type and returns its ID
func CreateTestAnimalType(t *testing.T, conn *sql.DB, name string) string {
	t.Helper()

	id, _ := auth.GenerateID(12)
	_, err := conn.Exec(`
		INSERT INTO animal_type (id, name, description, created_at)
		VALUES ($1, $2, '', $3)
	`, id, name, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test animal type: %v", err)
	}

	return id
}

// CreateTestBreed inserts a breed for an animal type and returns its ID
func CreateTestBreed(t *testing.T, conn *sql.DB, animalTypeID, name string) string {
	t.Helper()

	id, _ := auth.GenerateID(12)
	_, err := conn.Exec(`
		INSERT INTO breed (id, animal_type_id, name, description, created_at)
		VALUES ($1, $2, $3, '', $4)
	`, id, animalTypeID, name, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test breed: %v", err)
	}

	return id
}

// CreateTestLivestock inserts an animal for a farmer and returns its ID
func CreateTestLivestock(t *testing.T, conn *sql.DB, farmerID, animalTypeID, tagNumber, purpose string) string {
	t.Helper()

	id, _ := auth.GenerateID(16)
	_, err := conn.Exec(`
		INSERT INTO livestock (id, farmer_id, animal_type_id, tag_number, gender, purpose, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'F', $5, 'HEALTHY', $6, $7)
	`, id, farmerID, animalTypeID, tagNumber, purpose, time.Now(), time.Now())
	if err != nil {
		t.Fatalf("Failed to create test livestock: %v", err)
	}

	return id
}

// SetLivestockProfile fills in the optional profile fields used by the
// feeding and pricing computations
func SetLivestockProfile(t *testing.T, conn *sql.DB, livestockID string, ageMonths int, weightKg, purchasePrice float64) {
	t.Helper()

	dob := time.Now().AddDate(0, -ageMonths, 0)
	_, err := conn.Exec(`
		UPDATE livestock
		SET date_of_birth = $1, current_weight_kg = $2, purchase_price = $3
		WHERE id = $4
	`, dob, weightKg, purchasePrice, livestockID)
	if err != nil {
		t.Fatalf("Failed to set livestock profile: %v", err)
	}
}

// CreateTestFeed inserts a feed type suitable for the animal type
func CreateTestFeed(t *testing.T, conn *sql.DB, animalTypeID, name string, protein, costPerKg float64) string {
	t.Helper()

	id, _ := auth.GenerateID(12)
	_, err := conn.Exec(`
		INSERT INTO feed_type (id, name, category, description, protein_percentage, energy_mj_per_kg, cost_per_kg, created_at)
		VALUES ($1, $2, 'HAY', '', $3, 8.0, $4, $5)
	`, id, name, protein, costPerKg, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test feed: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO feed_suitability (feed_type_id, animal_type_id) VALUES ($1, $2)
	`, id, animalTypeID)
	if err != nil {
		t.Fatalf("Failed to create test feed suitability: %v", err)
	}

	return id
}

// CreateTestFeedingRecommendation inserts a guidance row that matches any
// age, weight, and purpose
func CreateTestFeedingRecommendation(t *testing.T, conn *sql.DB, animalTypeID, feedTypeID string, dailyAmountKg float64) string {
	t.Helper()

	id, _ := auth.GenerateID(12)
	_, err := conn.Exec(`
		INSERT INTO feeding_recommendation
			(id, animal_type_id, feed_type_id, min_age_months, min_weight_kg, purpose, daily_amount_kg, feeding_frequency, notes, created_at)
		VALUES ($1, $2, $3, 0, 0, '', $4, 2, 'Base guidance.', $5)
	`, id, animalTypeID, feedTypeID, dailyAmountKg, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test feeding recommendation: %v", err)
	}

	return id
}

// CreateTestDisease inserts a disease affecting the animal type
func CreateTestDisease(t *testing.T, conn *sql.DB, animalTypeID, name, severity string, contagious, vetRequired bool) string {
	t.Helper()

	id, _ := auth.GenerateID(12)
	_, err := conn.Exec(`
		INSERT INTO disease (id, name, description, severity, is_contagious, prevention_measures, treatment_advice, vet_required, created_at)
		VALUES ($1, $2, '', $3, $4, 'Vaccinate regularly.', 'Isolate and treat.', $5, $6)
	`, id, name, severity, contagious, vetRequired, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test disease: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO disease_animal (disease_id, animal_type_id) VALUES ($1, $2)
	`, id, animalTypeID)
	if err != nil {
		t.Fatalf("Failed to link test disease: %v", err)
	}

	return id
}

// CreateTestSymptom inserts a symptom and links it to the given diseases
func CreateTestSymptom(t *testing.T, conn *sql.DB, name string, diseaseIDs ...string) string {
	t.Helper()

	id, _ := auth.GenerateID(12)
	_, err := conn.Exec(`
		INSERT INTO symptom (id, name, description, created_at)
		VALUES ($1, $2, '', $3)
	`, id, name, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test symptom: %v", err)
	}

	for _, diseaseID := range diseaseIDs {
		_, err := conn.Exec(`
			INSERT INTO disease_symptom (disease_id, symptom_id) VALUES ($1, $2)
		`, diseaseID, id)
		if err != nil {
			t.Fatalf("Failed to link test symptom: %v", err)
		}
	}

	return id
}

// CreateTestMarketPrice inserts a price observation recorded daysAgo days ago
func CreateTestMarketPrice(t *testing.T, conn *sql.DB, animalTypeID string, pricePerKg float64, daysAgo int) string {
	t.Helper()

	id, _ := auth.GenerateID(12)
	recorded := time.Now().AddDate(0, 0, -daysAgo)
	_, err := conn.Exec(`
		INSERT INTO market_price (id, animal_type_id, location, date_recorded, price_per_kg, quality_grade, source, created_at)
		VALUES ($1, $2, 'Local Market', $3, $4, 'GOOD', 'Test Data', $5)
	`, id, animalTypeID, recorded, pricePerKg, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test market price: %v", err)
	}

	return id
}

// CreateTestCostRecord inserts an expense against an animal
func CreateTestCostRecord(t *testing.T, conn *sql.DB, livestockID, category string, amount float64) string {
	t.Helper()

	id, _ := auth.GenerateID(12)
	_, err := conn.Exec(`
		INSERT INTO cost_record (id, livestock_id, category, amount, description, incurred_at, created_at)
		VALUES ($1, $2, $3, $4, '', $5, $6)
	`, id, livestockID, category, amount, time.Now(), time.Now())
	if err != nil {
		t.Fatalf("Failed to create test cost record: %v", err)
	}

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
