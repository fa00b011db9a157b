// Copyright (c) 2025 the herdwise authors.
// MIT licensed; see LICENSE.

package handlers

import (
	"sort"

	"herdwise/models"
)

// Confidence threshold above which a high-severity match becomes an alert
const criticalAlertThreshold = 0.3

// DiseaseCandidate pairs a disease with its full symptom set for scoring.
type DiseaseCandidate struct {
	Disease  models.Disease
	Symptoms []models.Symptom
}

// ScoreDiseaseMatch computes how well the observed symptoms fit one disease.
//
// The score blends two rates: coverage (share of the disease's symptoms that
// were observed, weight 0.7) and match rate (share of observed symptoms the
// disease explains, weight 0.3). Severe and contagious diseases get a small
// boost so they surface earlier; observed symptoms the disease cannot explain
// subtract up to 0.3. The result is clamped to [0, 1], and a disease with no
// overlapping symptoms always scores zero.
func ScoreDiseaseMatch(candidate DiseaseCandidate, observed []models.Symptom) models.DiseaseMatch {
	observedIDs := make(map[string]bool, len(observed))
	for _, s := range observed {
		observedIDs[s.ID] = true
	}

	var matching, missing []models.Symptom
	for _, s := range candidate.Symptoms {
		if observedIDs[s.ID] {
			matching = append(matching, s)
		} else {
			missing = append(missing, s)
		}
	}

	score := confidenceScore(candidate, len(matching), len(observed))

	recommendations := candidate.Disease.TreatmentAdvice
	if recommendations == "" {
		recommendations = "Consult with a veterinarian for proper treatment."
	}
	prevention := candidate.Disease.PreventionMeasures
	if prevention == "" {
		prevention = "Follow general livestock health practices."
	}

	if matching == nil {
		matching = []models.Symptom{}
	}
	if missing == nil {
		missing = []models.Symptom{}
	}

	return models.DiseaseMatch{
		Disease:          candidate.Disease,
		ConfidenceScore:  score,
		MatchingSymptoms: matching,
		MissingSymptoms:  missing,
		SeverityLevel:    candidate.Disease.Severity,
		RequiresVet:      candidate.Disease.VetRequired,
		Recommendations:  recommendations,
		PreventionTips:   prevention,
	}
}

func confidenceScore(candidate DiseaseCandidate, matchingCount, observedCount int) float64 {
	if matchingCount == 0 || len(candidate.Symptoms) == 0 {
		return 0.0
	}

	// Base score: share of the disease's symptoms that are present
	baseScore := float64(matchingCount) / float64(len(candidate.Symptoms))

	matchRate := 0.0
	if observedCount > 0 {
		matchRate = float64(matchingCount) / float64(observedCount)
	}

	// Observed symptoms the disease cannot explain suggest something else
	excess := observedCount - matchingCount
	excessPenalty := 0.1 * float64(excess)
	if excessPenalty > 0.3 {
		excessPenalty = 0.3
	}

	severityWeight := 1.0
	switch candidate.Disease.Severity {
	case models.SeverityCritical:
		severityWeight = 1.1
	case models.SeverityHigh:
		severityWeight = 1.05
	case models.SeverityLow:
		severityWeight = 0.95
	}

	contagiousWeight := 1.0
	if candidate.Disease.IsContagious {
		contagiousWeight = 1.05 // worth catching early
	}

	score := (baseScore*0.7+matchRate*0.3)*severityWeight*contagiousWeight - excessPenalty

	if score < 0 {
		return 0.0
	}
	if score > 1 {
		return 1.0
	}
	return score
}

// RankDiseaseMatches drops zero-confidence matches, sorts the rest by score
// descending, and keeps the top n.
func RankDiseaseMatches(matches []models.DiseaseMatch, n int) []models.DiseaseMatch {
	ranked := make([]models.DiseaseMatch, 0, len(matches))
	for _, m := range matches {
		if m.ConfidenceScore > 0 {
			ranked = append(ranked, m)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ConfidenceScore > ranked[j].ConfidenceScore
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// CriticalAlerts filters ranked matches down to the severe ones confident
// enough to warrant immediate attention.
func CriticalAlerts(matches []models.DiseaseMatch) []models.DiseaseMatch {
	alerts := []models.DiseaseMatch{}
	for _, m := range matches {
		severe := m.SeverityLevel == models.SeverityCritical || m.SeverityLevel == models.SeverityHigh
		if severe && m.ConfidenceScore > criticalAlertThreshold {
			alerts = append(alerts, m)
		}
	}
	return alerts
}
