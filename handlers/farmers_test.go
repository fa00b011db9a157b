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

func TestRegisterFarmer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewFarmerHandler(db, cfg)

	req := testutil.MakeRequest("POST", "/api/farmers/register", models.RegisterFarmerRequest{
		Username:    "amina",
		PhoneNumber: "+254700000001",
		Location:    "Nakuru",
	}, nil)
	w := httptest.NewRecorder()

	handler.Register(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.RegisterFarmerResponse
	testutil.AssertJSON(t, w, &resp)
	assert.NotEmpty(t, resp.FarmerID)
	assert.NotEmpty(t, resp.Token)

	// The returned token authenticates subsequent requests
	meReq := testutil.MakeRequest("GET", "/api/farmers/me", nil,
		map[string]string{"X-Farmer-Token": resp.Token})
	meW := httptest.NewRecorder()
	handler.GetMe(meW, meReq)

	testutil.AssertStatus(t, meW, http.StatusOK)

	var farmer models.Farmer
	testutil.AssertJSON(t, meW, &farmer)
	assert.Equal(t, resp.FarmerID, farmer.ID)
	assert.Equal(t, "amina", farmer.Username)
	require.NotNil(t, farmer.Location)
	assert.Equal(t, "Nakuru", *farmer.Location)
}

func TestRegisterFarmer_DuplicateUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewFarmerHandler(db, cfg)

	testutil.CreateTestFarmer(t, db, cfg, "amina")

	req := testutil.MakeRequest("POST", "/api/farmers/register", models.RegisterFarmerRequest{
		Username: "amina",
	}, nil)
	w := httptest.NewRecorder()

	handler.Register(w, req)

	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestRegisterFarmer_MissingUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewFarmerHandler(db, cfg)

	req := testutil.MakeRequest("POST", "/api/farmers/register", models.RegisterFarmerRequest{}, nil)
	w := httptest.NewRecorder()

	handler.Register(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestGetMe_MissingToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewFarmerHandler(db, cfg)

	req := testutil.MakeRequest("GET", "/api/farmers/me", nil, nil)
	w := httptest.NewRecorder()

	handler.GetMe(w, req)

	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestGetMe_InvalidToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewFarmerHandler(db, cfg)

	req := testutil.MakeRequest("GET", "/api/farmers/me", nil,
		map[string]string{"X-Farmer-Token": "not-a-real-token"})
	w := httptest.NewRecorder()

	handler.GetMe(w, req)

	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}
