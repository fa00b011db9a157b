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

func floatPtr(v float64) *float64 { return &v }
func strPtr(s string) *string     { return &s }

func TestCreateAndGetLivestock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewLivestockHandler(db, cfg)

	_, token := testutil.CreateTestFarmer(t, db, cfg, "farmer1")
	animalTypeID := testutil.CreateTestAnimalType(t, db, "Cattle")
	breedID := testutil.CreateTestBreed(t, db, animalTypeID, "Boran")

	headers := map[string]string{"X-Farmer-Token": token}

	req := testutil.MakeRequest("POST", "/api/user/livestock", models.CreateLivestockRequest{
		TagNumber:       "COW-001",
		Name:            "Bessie",
		AnimalTypeID:    animalTypeID,
		BreedID:         breedID,
		Gender:          models.GenderFemale,
		DateOfBirth:     "2024-01-15",
		CurrentWeightKg: floatPtr(320),
		Purpose:         models.PurposeMilk,
		PurchasePrice:   floatPtr(450),
	}, headers)
	w := httptest.NewRecorder()

	handler.Create(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var created models.CreateLivestockResponse
	testutil.AssertJSON(t, w, &created)
	require.NotEmpty(t, created.LivestockID)

	getReq := testutil.MakeRequest("GET", "/api/user/livestock/"+created.LivestockID, nil, headers)
	getReq.SetPathValue("id", created.LivestockID)
	getW := httptest.NewRecorder()
	handler.Get(getW, getReq)

	testutil.AssertStatus(t, getW, http.StatusOK)

	var ls models.Livestock
	testutil.AssertJSON(t, getW, &ls)
	assert.Equal(t, "COW-001", ls.TagNumber)
	assert.Equal(t, "Cattle", ls.AnimalTypeName)
	require.NotNil(t, ls.BreedName)
	assert.Equal(t, "Boran", *ls.BreedName)
	assert.Equal(t, models.StatusHealthy, ls.Status)
	require.NotNil(t, ls.AgeMonths, "age is derived from date of birth")
	assert.Greater(t, *ls.AgeMonths, 0)
}

func TestCreateLivestock_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewLivestockHandler(db, cfg)

	_, token := testutil.CreateTestFarmer(t, db, cfg, "farmer1")
	animalTypeID := testutil.CreateTestAnimalType(t, db, "Goats")
	headers := map[string]string{"X-Farmer-Token": token}

	tests := []struct {
		name     string
		body     models.CreateLivestockRequest
		expected int
	}{
		{
			name:     "missing tag number",
			body:     models.CreateLivestockRequest{AnimalTypeID: animalTypeID, Gender: "F", Purpose: "MEAT"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "bad gender",
			body:     models.CreateLivestockRequest{TagNumber: "G-1", AnimalTypeID: animalTypeID, Gender: "X", Purpose: "MEAT"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "bad purpose",
			body:     models.CreateLivestockRequest{TagNumber: "G-1", AnimalTypeID: animalTypeID, Gender: "F", Purpose: "RACING"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "unknown animal type",
			body:     models.CreateLivestockRequest{TagNumber: "G-1", AnimalTypeID: "nope", Gender: "F", Purpose: "MEAT"},
			expected: http.StatusNotFound,
		},
		{
			name:     "bad date",
			body:     models.CreateLivestockRequest{TagNumber: "G-1", AnimalTypeID: animalTypeID, Gender: "F", Purpose: "MEAT", DateOfBirth: "15/01/2024"},
			expected: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/user/livestock", tt.body, headers)
			w := httptest.NewRecorder()

			handler.Create(w, req)

			testutil.AssertStatus(t, w, tt.expected)
		})
	}
}

func TestCreateLivestock_DuplicateTag(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewLivestockHandler(db, cfg)

	farmerID, token := testutil.CreateTestFarmer(t, db, cfg, "farmer1")
	animalTypeID := testutil.CreateTestAnimalType(t, db, "Goats")
	testutil.CreateTestLivestock(t, db, farmerID, animalTypeID, "GT-001", "MEAT")

	req := testutil.MakeRequest("POST", "/api/user/livestock", models.CreateLivestockRequest{
		TagNumber:    "GT-001",
		AnimalTypeID: animalTypeID,
		Gender:       models.GenderFemale,
		Purpose:      models.PurposeMeat,
	}, map[string]string{"X-Farmer-Token": token})
	w := httptest.NewRecorder()

	handler.Create(w, req)

	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestCreateLivestock_BreedMismatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewLivestockHandler(db, cfg)

	_, token := testutil.CreateTestFarmer(t, db, cfg, "farmer1")
	goatTypeID := testutil.CreateTestAnimalType(t, db, "Goats")
	cattleTypeID := testutil.CreateTestAnimalType(t, db, "Cattle")
	cattleBreedID := testutil.CreateTestBreed(t, db, cattleTypeID, "Boran")

	req := testutil.MakeRequest("POST", "/api/user/livestock", models.CreateLivestockRequest{
		TagNumber:    "GT-001",
		AnimalTypeID: goatTypeID,
		BreedID:      cattleBreedID,
		Gender:       models.GenderFemale,
		Purpose:      models.PurposeMeat,
	}, map[string]string{"X-Farmer-Token": token})
	w := httptest.NewRecorder()

	handler.Create(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestListLivestock_OnlyOwnAnimals(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewLivestockHandler(db, cfg)

	farmer1, token1 := testutil.CreateTestFarmer(t, db, cfg, "farmer1")
	farmer2, _ := testutil.CreateTestFarmer(t, db, cfg, "farmer2")
	animalTypeID := testutil.CreateTestAnimalType(t, db, "Sheep")

	testutil.CreateTestLivestock(t, db, farmer1, animalTypeID, "SH-001", "MEAT")
	testutil.CreateTestLivestock(t, db, farmer1, animalTypeID, "SH-002", "MEAT")
	testutil.CreateTestLivestock(t, db, farmer2, animalTypeID, "SH-003", "MEAT")

	req := testutil.MakeRequest("GET", "/api/user/livestock", nil,
		map[string]string{"X-Farmer-Token": token1})
	w := httptest.NewRecorder()

	handler.List(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var list []models.Livestock
	testutil.AssertJSON(t, w, &list)
	assert.Len(t, list, 2)
}

func TestListLivestock_Unauthorized(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewLivestockHandler(db, cfg)

	req := testutil.MakeRequest("GET", "/api/user/livestock", nil, nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestUpdateLivestock_PartialUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewLivestockHandler(db, cfg)

	farmerID, token := testutil.CreateTestFarmer(t, db, cfg, "farmer1")
	animalTypeID := testutil.CreateTestAnimalType(t, db, "Goats")
	livestockID := testutil.CreateTestLivestock(t, db, farmerID, animalTypeID, "GT-001", "MEAT")

	req := testutil.MakeRequest("PUT", "/api/user/livestock/"+livestockID, models.UpdateLivestockRequest{
		Status:          strPtr(models.StatusPregnant),
		CurrentWeightKg: floatPtr(42.5),
	}, map[string]string{"X-Farmer-Token": token})
	req.SetPathValue("id", livestockID)
	w := httptest.NewRecorder()

	handler.Update(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var updated models.Livestock
	testutil.AssertJSON(t, w, &updated)
	assert.Equal(t, models.StatusPregnant, updated.Status)
	require.NotNil(t, updated.CurrentWeightKg)
	assert.Equal(t, 42.5, *updated.CurrentWeightKg)
	assert.Equal(t, models.PurposeMeat, updated.Purpose, "untouched fields are preserved")
}

func TestUpdateLivestock_OtherFarmersAnimal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewLivestockHandler(db, cfg)

	owner, _ := testutil.CreateTestFarmer(t, db, cfg, "owner")
	_, intruderToken := testutil.CreateTestFarmer(t, db, cfg, "intruder")
	animalTypeID := testutil.CreateTestAnimalType(t, db, "Goats")
	livestockID := testutil.CreateTestLivestock(t, db, owner, animalTypeID, "GT-001", "MEAT")

	req := testutil.MakeRequest("PUT", "/api/user/livestock/"+livestockID, models.UpdateLivestockRequest{
		Status: strPtr(models.StatusSold),
	}, map[string]string{"X-Farmer-Token": intruderToken})
	req.SetPathValue("id", livestockID)
	w := httptest.NewRecorder()

	handler.Update(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestAddCost(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewLivestockHandler(db, cfg)

	farmerID, token := testutil.CreateTestFarmer(t, db, cfg, "farmer1")
	animalTypeID := testutil.CreateTestAnimalType(t, db, "Cattle")
	livestockID := testutil.CreateTestLivestock(t, db, farmerID, animalTypeID, "COW-001", "MEAT")

	req := testutil.MakeRequest("POST", "/api/user/livestock/"+livestockID+"/costs", models.AddCostRequest{
		Category:    models.CostFeed,
		Amount:      35.50,
		Description: "Hay bales",
	}, map[string]string{"X-Farmer-Token": token})
	req.SetPathValue("id", livestockID)
	w := httptest.NewRecorder()

	handler.AddCost(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM cost_record WHERE livestock_id = $1", livestockID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAddCost_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewLivestockHandler(db, cfg)

	farmerID, token := testutil.CreateTestFarmer(t, db, cfg, "farmer1")
	animalTypeID := testutil.CreateTestAnimalType(t, db, "Cattle")
	livestockID := testutil.CreateTestLivestock(t, db, farmerID, animalTypeID, "COW-001", "MEAT")
	headers := map[string]string{"X-Farmer-Token": token}

	tests := []struct {
		name string
		body models.AddCostRequest
	}{
		{"bad category", models.AddCostRequest{Category: "FUEL", Amount: 10}},
		{"zero amount", models.AddCostRequest{Category: models.CostFeed, Amount: 0}},
		{"negative amount", models.AddCostRequest{Category: models.CostFeed, Amount: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/user/livestock/"+livestockID+"/costs", tt.body, headers)
			req.SetPathValue("id", livestockID)
			w := httptest.NewRecorder()

			handler.AddCost(w, req)

			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}
