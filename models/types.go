// Copyright (c) 2025 the herdwise authors.
// MIT licensed; see LICENSE.

package models

import "time"

// Livestock gender constants
const (
	GenderMale   = "M"
	GenderFemale = "F"
)

// Livestock purpose constants
const (
	PurposeMeat     = "MEAT"
	PurposeMilk     = "MILK"
	PurposeEggs     = "EGGS"
	PurposeBreeding = "BREEDING"
	PurposeMixed    = "MIXED"
)

// Livestock status constants
const (
	StatusHealthy    = "HEALTHY"
	StatusSick       = "SICK"
	StatusPregnant   = "PREGNANT"
	StatusQuarantine = "QUARANTINE"
	StatusSold       = "SOLD"
	StatusDeceased   = "DECEASED"
)

// Disease severity constants
const (
	SeverityLow      = "LOW"
	SeverityMedium   = "MEDIUM"
	SeverityHigh     = "HIGH"
	SeverityCritical = "CRITICAL"
)

// Market price quality grades
const (
	GradePremium = "PREMIUM"
	GradeGood    = "GOOD"
	GradeAverage = "AVERAGE"
	GradePoor    = "POOR"
)

// Price trend constants
const (
	TrendRising  = "RISING"
	TrendFalling = "FALLING"
	TrendStable  = "STABLE"
)

// Analysis confidence levels
const (
	ConfidenceLow    = "LOW"
	ConfidenceMedium = "MEDIUM"
	ConfidenceHigh   = "HIGH"
)

// Health record recovery status constants
const (
	RecoveryOngoing   = "ONGOING"
	RecoveryRecovered = "RECOVERED"
	RecoveryChronic   = "CHRONIC"
	RecoveryDeceased  = "DECEASED"
)

// Cost record categories
const (
	CostFeed       = "FEED"
	CostVeterinary = "VETERINARY"
	CostMedicine   = "MEDICINE"
	CostOther      = "OTHER"
)

// Domain types

type Farmer struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	PhoneNumber     *string   `json:"phone_number,omitempty"`
	Location        *string   `json:"location,omitempty"`
	FarmSizeAcres   *float64  `json:"farm_size_acres,omitempty"`
	ExperienceYears *int      `json:"experience_years,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	LastSeenAt      time.Time `json:"last_seen_at"`
}

type AnimalType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Breed struct {
	ID              string   `json:"id"`
	AnimalTypeID    string   `json:"animal_type_id"`
	AnimalTypeName  string   `json:"animal_type_name"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	AverageWeightKg *float64 `json:"average_weight_kg,omitempty"`
	MaturityMonths  *int     `json:"maturity_months,omitempty"`
}

type FeedType struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Category          string  `json:"category"`
	Description       string  `json:"description"`
	ProteinPercentage float64 `json:"protein_percentage"`
	EnergyMJPerKg     float64 `json:"energy_mj_per_kg"`
	CostPerKg         float64 `json:"cost_per_kg"`
}

type Livestock struct {
	ID              string     `json:"id"`
	TagNumber       string     `json:"tag_number"`
	Name            *string    `json:"name,omitempty"`
	AnimalTypeID    string     `json:"animal_type_id"`
	AnimalTypeName  string     `json:"animal_type_name"`
	BreedID         *string    `json:"breed_id,omitempty"`
	BreedName       *string    `json:"breed_name,omitempty"`
	Gender          string     `json:"gender"`
	DateOfBirth     *time.Time `json:"date_of_birth,omitempty"`
	AgeMonths       *int       `json:"age_months,omitempty"`
	CurrentWeightKg *float64   `json:"current_weight_kg,omitempty"`
	Purpose         string     `json:"purpose"`
	Status          string     `json:"status"`
	PurchaseDate    *time.Time `json:"purchase_date,omitempty"`
	PurchasePrice   *float64   `json:"purchase_price,omitempty"`
	Notes           string     `json:"notes"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type Disease struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	Severity           string `json:"severity"`
	IsContagious       bool   `json:"is_contagious"`
	PreventionMeasures string `json:"prevention_measures"`
	TreatmentAdvice    string `json:"treatment_advice"`
	VetRequired        bool   `json:"vet_required"`
}

type Symptom struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type MarketPrice struct {
	ID             string    `json:"id"`
	AnimalTypeID   string    `json:"animal_type_id"`
	AnimalTypeName string    `json:"animal_type_name"`
	BreedID        *string   `json:"breed_id,omitempty"`
	Location       string    `json:"location"`
	DateRecorded   time.Time `json:"date_recorded"`
	PricePerKg     float64   `json:"price_per_kg"`
	QualityGrade   string    `json:"quality_grade"`
	Source         string    `json:"source"`
}

type CostRecord struct {
	ID          string    `json:"id"`
	LivestockID string    `json:"livestock_id"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	IncurredAt  time.Time `json:"incurred_at"`
}

// Request types

type RegisterFarmerRequest struct {
	Username        string   `json:"username"`
	PhoneNumber     string   `json:"phone_number"`
	Location        string   `json:"location"`
	FarmSizeAcres   *float64 `json:"farm_size_acres"`
	ExperienceYears *int     `json:"experience_years"`
}

type CreateLivestockRequest struct {
	TagNumber       string   `json:"tag_number"`
	Name            string   `json:"name"`
	AnimalTypeID    string   `json:"animal_type_id"`
	BreedID         string   `json:"breed_id"`
	Gender          string   `json:"gender"`
	DateOfBirth     string   `json:"date_of_birth"` // YYYY-MM-DD
	CurrentWeightKg *float64 `json:"current_weight_kg"`
	Purpose         string   `json:"purpose"`
	PurchaseDate    string   `json:"purchase_date"` // YYYY-MM-DD
	PurchasePrice   *float64 `json:"purchase_price"`
	Notes           string   `json:"notes"`
}

// UpdateLivestockRequest carries partial updates; nil fields are left unchanged.
type UpdateLivestockRequest struct {
	Name            *string  `json:"name"`
	CurrentWeightKg *float64 `json:"current_weight_kg"`
	Purpose         *string  `json:"purpose"`
	Status          *string  `json:"status"`
	Notes           *string  `json:"notes"`
}

type AddCostRequest struct {
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	IncurredAt  string  `json:"incurred_at"` // YYYY-MM-DD, defaults to today
}

type FeedingRequest struct {
	AnimalTypeID string   `json:"animal_type_id"`
	AgeMonths    *int     `json:"age_months"`
	WeightKg     *float64 `json:"weight_kg"`
	Purpose      string   `json:"purpose"`
	LivestockID  string   `json:"livestock_id"`
}

type AnalyzeSymptomsRequest struct {
	AnimalTypeID string   `json:"animal_type_id"`
	Symptoms     []string `json:"symptoms"`
	LivestockID  string   `json:"livestock_id"`
}

type CreateHealthRecordRequest struct {
	LivestockID        string   `json:"livestock_id"`
	SymptomIDs         []string `json:"symptom_ids"`
	SuspectedDiseaseID string   `json:"suspected_disease_id"`
	Notes              string   `json:"notes"`
}

type AnalyzeMarketRequest struct {
	AnimalTypeID string `json:"animal_type_id"`
	Location     string `json:"location"`
	BreedID      string `json:"breed_id"`
	QualityGrade string `json:"quality_grade"`
}

// Response types

type RegisterFarmerResponse struct {
	FarmerID string `json:"farmer_id"`
	Token    string `json:"token"`
}

type CreateLivestockResponse struct {
	LivestockID string `json:"livestock_id"`
}

type AddCostResponse struct {
	CostID string `json:"cost_id"`
}

type FeedingResult struct {
	FeedType         FeedType `json:"feed_type"`
	DailyAmountKg    float64  `json:"daily_amount_kg"`
	FeedingFrequency int      `json:"feeding_frequency"`
	CostPerDay       float64  `json:"cost_per_day"`
	Notes            string   `json:"notes"`
	Source           string   `json:"recommendation_source"`
}

type FeedingAnimalInfo struct {
	AnimalType string   `json:"animal_type"`
	AgeMonths  *int     `json:"age_months"`
	WeightKg   *float64 `json:"weight_kg"`
	Purpose    string   `json:"purpose"`
}

type FeedingResponse struct {
	Recommendations      []FeedingResult   `json:"recommendations"`
	AnimalInfo           FeedingAnimalInfo `json:"animal_info"`
	TotalRecommendations int               `json:"total_recommendations"`
	TotalDailyCost       float64           `json:"total_daily_cost"`
	AverageCostPerDay    float64           `json:"average_cost_per_day"`
}

type FeedingSummary struct {
	AnimalInfo          string   `json:"animal_info"`
	AgeMonths           *int     `json:"age_months"`
	WeightKg            *float64 `json:"weight_kg"`
	Purpose             string   `json:"purpose"`
	RecommendationCount int      `json:"recommendation_count"`
}

type FeedingSummaryResponse struct {
	Livestock           Livestock       `json:"livestock"`
	Recommendations     []FeedingResult `json:"recommendations"`
	TotalDailyCost      float64         `json:"total_daily_cost"`
	MonthlyCostEstimate float64         `json:"monthly_cost_estimate"`
	Summary             FeedingSummary  `json:"summary"`
}

type DiseaseMatch struct {
	Disease          Disease   `json:"disease"`
	ConfidenceScore  float64   `json:"confidence_score"`
	MatchingSymptoms []Symptom `json:"matching_symptoms"`
	MissingSymptoms  []Symptom `json:"missing_symptoms"`
	SeverityLevel    string    `json:"severity_level"`
	RequiresVet      bool      `json:"requires_vet"`
	Recommendations  string    `json:"recommendations"`
	PreventionTips   string    `json:"prevention_tips"`
}

type AnalyzeSymptomsResponse struct {
	Matches        []DiseaseMatch `json:"matches"`
	CriticalAlerts []DiseaseMatch `json:"critical_alerts"`
	TotalMatches   int            `json:"total_matches"`
}

type SymptomSuggestion struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	RelatedDiseasesCount int      `json:"related_diseases_count"`
	SeverityLevels       []string `json:"severity_levels"`
}

type PreventionTip struct {
	Disease    string `json:"disease"`
	Prevention string `json:"prevention"`
	Severity   string `json:"severity"`
}

type CriticalDisease struct {
	Name         string `json:"name"`
	Severity     string `json:"severity"`
	IsContagious bool   `json:"is_contagious"`
}

type PreventionResponse struct {
	AnimalType              string            `json:"animal_type"`
	PreventionTips          []PreventionTip   `json:"prevention_tips"`
	CriticalDiseasesToWatch []CriticalDisease `json:"critical_diseases_to_watch"`
	GeneralRecommendations  []string          `json:"general_recommendations"`
}

type CreateHealthRecordResponse struct {
	HealthRecordID       string  `json:"health_record_id"`
	LivestockTag         string  `json:"livestock"`
	SymptomsCount        int     `json:"symptoms_count"`
	SuspectedDisease     *string `json:"suspected_disease"`
	RequiresVetAttention bool    `json:"requires_vet_attention"`
}

type PricePoint struct {
	Date     string  `json:"date"`
	Price    float64 `json:"price"`
	Location string  `json:"location"`
	Quality  string  `json:"quality"`
}

type PriceAnalysisResult struct {
	CurrentPricePerKg    float64      `json:"current_price_per_kg"`
	PriceTrend           string       `json:"price_trend"`
	TrendPercentage      float64      `json:"trend_percentage"`
	MarketRecommendation string       `json:"market_recommendation"`
	ConfidenceLevel      string       `json:"confidence_level"`
	HistoricalData       []PricePoint `json:"historical_data"`
	Location             string       `json:"location"`
	DateAnalyzed         string       `json:"date_analyzed"`
}

type CostBreakdown struct {
	PurchasePrice   float64 `json:"purchase_price"`
	FeedCosts       float64 `json:"feed_costs"`
	VeterinaryCosts float64 `json:"veterinary_costs"`
	MedicineCosts   float64 `json:"medicine_costs"`
	OtherCosts      float64 `json:"other_costs"`
}

type ProfitabilityResult struct {
	LivestockID            string        `json:"livestock_id"`
	CurrentMarketValue     float64       `json:"current_market_value"`
	TotalInvestment        float64       `json:"total_investment"`
	EstimatedProfit        float64       `json:"estimated_profit"`
	ProfitMarginPercentage float64       `json:"profit_margin_percentage"`
	BreakEvenPrice         float64       `json:"break_even_price"`
	Recommendation         string        `json:"recommendation"`
	CostBreakdown          CostBreakdown `json:"cost_breakdown"`
}

type SellingRecommendation struct {
	Livestock          Livestock           `json:"livestock"`
	Profitability      ProfitabilityResult `json:"profitability"`
	ActionPriority     int                 `json:"action_priority"`
	OptimalSellingTime string              `json:"optimal_selling_time"`
}

type LatestPricesResponse struct {
	Prices    []MarketPrice `json:"prices"`
	Count     int           `json:"count"`
	DateRange string        `json:"date_range"`
}

type SystemInfoResponse struct {
	System           string   `json:"system"`
	Description      string   `json:"description"`
	TargetUsers      string   `json:"target_users"`
	SupportedAnimals []string `json:"supported_animals"`
	KeyFeatures      []string `json:"key_features"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ValidPurpose reports whether p is a recognized livestock purpose.
func ValidPurpose(p string) bool {
	switch p {
	case PurposeMeat, PurposeMilk, PurposeEggs, PurposeBreeding, PurposeMixed:
		return true
	}
	return false
}

// ValidStatus reports whether s is a recognized livestock status.
func ValidStatus(s string) bool {
	switch s {
	case StatusHealthy, StatusSick, StatusPregnant, StatusQuarantine, StatusSold, StatusDeceased:
		return true
	}
	return false
}

// ValidQualityGrade reports whether g is a recognized market quality grade.
func ValidQualityGrade(g string) bool {
	switch g {
	case GradePremium, GradeGood, GradeAverage, GradePoor:
		return true
	}
	return false
}

// ValidCostCategory reports whether c is a recognized cost record category.
func ValidCostCategory(c string) bool {
	switch c {
	case CostFeed, CostVeterinary, CostMedicine, CostOther:
		return true
	}
	return false
}

// AgeInMonths computes a whole-month age from a date of birth, matching the
// calendar arithmetic the record keeping has always used.
func AgeInMonths(dob time.Time, now time.Time) int {
	return (now.Year()-dob.Year())*12 + int(now.Month()) - int(dob.Month())
}
