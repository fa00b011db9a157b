// Copyright (c) 2025 the herdwise authors.
// MIT licensed; see LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"herdwise/auth"
)

// Seed loads the reference dataset: animal types, breeds, feeds, ration
// guidance, diseases with their symptoms, and a month of sample market
// prices. Rows are keyed on their natural unique names so seeding is
// idempotent.
func Seed(db *sql.DB) error {
	animalIDs, err := seedAnimalTypes(db)
	if err != nil {
		return fmt.Errorf("seed animal types: %w", err)
	}
	if err := seedBreeds(db, animalIDs); err != nil {
		return fmt.Errorf("seed breeds: %w", err)
	}
	feedIDs, err := seedFeedTypes(db, animalIDs)
	if err != nil {
		return fmt.Errorf("seed feed types: %w", err)
	}
	if err := seedFeedingRecommendations(db, animalIDs, feedIDs); err != nil {
		return fmt.Errorf("seed feeding recommendations: %w", err)
	}
	if err := seedDiseasesAndSymptoms(db, animalIDs); err != nil {
		return fmt.Errorf("seed diseases: %w", err)
	}
	if err := seedMarketPrices(db, animalIDs); err != nil {
		return fmt.Errorf("seed market prices: %w", err)
	}

	slog.Info("reference data seeded")
	return nil
}

func seedAnimalTypes(db *sql.DB) (map[string]string, error) {
	types := []struct {
		name, description string
	}{
		{"Cattle", "Domesticated bovine animals raised for meat, milk, and other dairy products"},
		{"Goats", "Small ruminants raised for meat, milk, and fiber"},
		{"Sheep", "Woolly ruminants raised for meat, wool, and milk"},
		{"Poultry", "Domesticated birds raised for eggs, meat, and feathers"},
	}

	ids := make(map[string]string, len(types))
	for _, at := range types {
		id, err := findOrInsert(db,
			"SELECT id FROM animal_type WHERE name = $1", at.name,
			"INSERT INTO animal_type (id, name, description, created_at) VALUES ($1, $2, $3, $4)",
			at.name, at.description)
		if err != nil {
			return nil, err
		}
		ids[at.name] = id
	}
	return ids, nil
}

func seedBreeds(db *sql.DB, animalIDs map[string]string) error {
	breeds := map[string][]struct {
		name      string
		avgWeight float64
		maturity  int
	}{
		"Cattle": {
			{"Holstein", 650, 24}, {"Angus", 550, 20}, {"Brahman", 500, 22}, {"Jersey", 400, 20},
		},
		"Goats": {
			{"Boer", 70, 8}, {"Nubian", 65, 10}, {"Saanen", 60, 9}, {"Kiko", 55, 7},
		},
		"Sheep": {
			{"Dorper", 80, 8}, {"Merino", 65, 9}, {"Suffolk", 90, 8}, {"Romney", 70, 9},
		},
		"Poultry": {
			{"Rhode Island Red", 3, 5}, {"Leghorn", 2.5, 4}, {"Broiler", 2.8, 2}, {"Sussex", 3.2, 5},
		},
	}

	for animal, list := range breeds {
		animalID := animalIDs[animal]
		for _, b := range list {
			var existing string
			err := db.QueryRow("SELECT id FROM breed WHERE animal_type_id = $1 AND name = $2",
				animalID, b.name).Scan(&existing)
			if err == nil {
				continue
			}
			if err != sql.ErrNoRows {
				return err
			}

			id, err := auth.GenerateID(12)
			if err != nil {
				return err
			}
			_, err = db.Exec(`
				INSERT INTO breed (id, animal_type_id, name, average_weight_kg, maturity_months, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, id, animalID, b.name, b.avgWeight, b.maturity, time.Now())
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func seedFeedTypes(db *sql.DB, animalIDs map[string]string) (map[string]string, error) {
	feeds := []struct {
		name, category        string
		protein, energy, cost float64
		suitableFor           []string
	}{
		{"Alfalfa Hay", "HAY", 18.0, 8.5, 0.25, []string{"Cattle", "Goats", "Sheep"}},
		{"Timothy Hay", "HAY", 12.0, 7.8, 0.20, []string{"Cattle", "Goats", "Sheep"}},
		{"Grass Hay", "HAY", 10.0, 7.2, 0.18, []string{"Cattle", "Goats", "Sheep"}},
		{"Corn", "GRAIN", 9.0, 14.2, 0.15, []string{"Cattle", "Goats", "Sheep", "Poultry"}},
		{"Barley", "GRAIN", 12.0, 13.8, 0.18, []string{"Cattle", "Goats", "Sheep", "Poultry"}},
		{"Wheat", "GRAIN", 14.0, 13.5, 0.22, []string{"Cattle", "Goats", "Sheep", "Poultry"}},
		{"Cattle Pellets", "PELLETS", 16.0, 11.5, 0.35, []string{"Cattle"}},
		{"Goat Pellets", "PELLETS", 14.0, 10.8, 0.40, []string{"Goats"}},
		{"Sheep Pellets", "PELLETS", 13.0, 10.5, 0.38, []string{"Sheep"}},
		{"Poultry Feed", "PELLETS", 18.0, 12.2, 0.45, []string{"Poultry"}},
		{"Fresh Pasture", "PASTURE", 15.0, 9.5, 0.05, []string{"Cattle", "Goats", "Sheep"}},
		{"Mineral Mix", "SUPPLEMENT", 0.0, 0.0, 1.20, []string{"Cattle", "Goats", "Sheep"}},
		{"Vitamin Supplement", "SUPPLEMENT", 0.0, 0.0, 2.50, []string{"Cattle", "Goats", "Sheep", "Poultry"}},
	}

	ids := make(map[string]string, len(feeds))
	for _, f := range feeds {
		var id string
		err := db.QueryRow("SELECT id FROM feed_type WHERE name = $1", f.name).Scan(&id)
		if err == sql.ErrNoRows {
			id, err = auth.GenerateID(12)
			if err != nil {
				return nil, err
			}
			_, err = db.Exec(`
				INSERT INTO feed_type (id, name, category, protein_percentage, energy_mj_per_kg, cost_per_kg, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, id, f.name, f.category, f.protein, f.energy, f.cost, time.Now())
			if err != nil {
				return nil, err
			}
			for _, animal := range f.suitableFor {
				_, err = db.Exec(`
					INSERT INTO feed_suitability (feed_type_id, animal_type_id)
					VALUES ($1, $2)
				`, id, animalIDs[animal])
				if err != nil {
					return nil, err
				}
			}
		} else if err != nil {
			return nil, err
		}
		ids[f.name] = id
	}
	return ids, nil
}

func seedFeedingRecommendations(db *sql.DB, animalIDs, feedIDs map[string]string) error {
	// Only seed once; the rows have no natural unique key
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM feeding_recommendation").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	type rec struct {
		animal, feed string
		minAge       int
		maxAge       *int
		minWeight    float64
		maxWeight    *float64
		purpose      string
		amount       float64
		frequency    int
	}
	intp := func(v int) *int { return &v }
	fp := func(v float64) *float64 { return &v }

	recs := []rec{
		{"Cattle", "Alfalfa Hay", 0, intp(6), 0, fp(150), "MILK", 5.0, 2},
		{"Cattle", "Cattle Pellets", 6, intp(24), 150, fp(500), "MEAT", 8.0, 2},
		{"Cattle", "Fresh Pasture", 3, nil, 100, nil, "", 25.0, 1},
		{"Goats", "Alfalfa Hay", 0, intp(12), 0, fp(30), "MILK", 1.5, 2},
		{"Goats", "Goat Pellets", 3, nil, 15, nil, "MEAT", 1.0, 2},
		{"Goats", "Fresh Pasture", 2, nil, 10, nil, "", 3.0, 1},
		{"Sheep", "Alfalfa Hay", 0, intp(8), 0, fp(40), "MEAT", 2.0, 2},
		{"Sheep", "Sheep Pellets", 4, nil, 20, nil, "MEAT", 1.2, 2},
		{"Sheep", "Fresh Pasture", 2, nil, 15, nil, "", 4.0, 1},
		{"Poultry", "Poultry Feed", 0, intp(2), 0, fp(1), "EGGS", 0.12, 2},
		{"Poultry", "Poultry Feed", 2, nil, 1, nil, "MEAT", 0.15, 3},
	}

	for _, r := range recs {
		id, err := auth.GenerateID(12)
		if err != nil {
			return err
		}
		_, err = db.Exec(`
			INSERT INTO feeding_recommendation
				(id, animal_type_id, feed_type_id, min_age_months, max_age_months,
				 min_weight_kg, max_weight_kg, purpose, daily_amount_kg, feeding_frequency, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, id, animalIDs[r.animal], feedIDs[r.feed], r.minAge, r.maxAge,
			r.minWeight, r.maxWeight, r.purpose, r.amount, r.frequency, time.Now())
		if err != nil {
			return err
		}
	}
	return nil
}

func seedDiseasesAndSymptoms(db *sql.DB, animalIDs map[string]string) error {
	diseases := []struct {
		name, description     string
		animals               []string
		severity              string
		contagious, vet       bool
		prevention, treatment string
	}{
		{
			"Foot and Mouth Disease",
			"Highly contagious viral disease affecting cloven-hoofed animals",
			[]string{"Cattle", "Goats", "Sheep"}, "CRITICAL", true, true,
			"Vaccination, quarantine new animals, proper sanitation",
			"Supportive care, isolation, veterinary supervision",
		},
		{
			"Mastitis",
			"Inflammation of the mammary gland, common in dairy animals",
			[]string{"Cattle", "Goats", "Sheep"}, "MEDIUM", false, true,
			"Proper milking hygiene, dry cow treatment",
			"Antibiotics, anti-inflammatory drugs, improved hygiene",
		},
		{
			"Newcastle Disease",
			"Viral disease affecting poultry respiratory and nervous systems",
			[]string{"Poultry"}, "HIGH", true, true,
			"Vaccination, biosecurity measures",
			"Supportive care, isolation of affected birds",
		},
		{
			"Parasitic Worms",
			"Internal parasites affecting digestive system",
			[]string{"Cattle", "Goats", "Sheep"}, "MEDIUM", false, false,
			"Regular deworming, pasture rotation, fecal testing",
			"Anthelmintic medications, improved nutrition",
		},
		{
			"Coccidiosis",
			"Parasitic disease affecting the intestinal tract",
			[]string{"Poultry", "Goats", "Sheep"}, "MEDIUM", true, false,
			"Clean water, dry bedding, proper sanitation",
			"Anticoccidial drugs, supportive care",
		},
	}

	diseaseIDs := make(map[string]string, len(diseases))
	for _, d := range diseases {
		var id string
		err := db.QueryRow("SELECT id FROM disease WHERE name = $1", d.name).Scan(&id)
		if err == sql.ErrNoRows {
			id, err = auth.GenerateID(12)
			if err != nil {
				return err
			}
			_, err = db.Exec(`
				INSERT INTO disease
					(id, name, description, severity, is_contagious, prevention_measures,
					 treatment_advice, vet_required, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			`, id, d.name, d.description, d.severity, d.contagious, d.prevention,
				d.treatment, d.vet, time.Now())
			if err != nil {
				return err
			}
			for _, animal := range d.animals {
				if _, err := db.Exec(`
					INSERT INTO disease_animal (disease_id, animal_type_id) VALUES ($1, $2)
				`, id, animalIDs[animal]); err != nil {
					return err
				}
			}
		} else if err != nil {
			return err
		}
		diseaseIDs[d.name] = id
	}

	symptoms := []struct {
		name     string
		diseases []string
	}{
		{"Fever", []string{"Foot and Mouth Disease", "Newcastle Disease"}},
		{"Loss of Appetite", []string{"Foot and Mouth Disease", "Newcastle Disease", "Parasitic Worms", "Coccidiosis"}},
		{"Lameness", []string{"Foot and Mouth Disease"}},
		{"Blisters on mouth/feet", []string{"Foot and Mouth Disease"}},
		{"Swollen udder", []string{"Mastitis"}},
		{"Abnormal milk", []string{"Mastitis"}},
		{"Respiratory distress", []string{"Newcastle Disease"}},
		{"Diarrhea", []string{"Parasitic Worms", "Coccidiosis"}},
		{"Weight loss", []string{"Parasitic Worms", "Coccidiosis"}},
		{"Pale mucous membranes", []string{"Parasitic Worms"}},
		{"Blood in droppings", []string{"Coccidiosis"}},
		{"Sudden death", []string{"Newcastle Disease", "Coccidiosis"}},
	}

	for _, s := range symptoms {
		var id string
		err := db.QueryRow("SELECT id FROM symptom WHERE name = $1", s.name).Scan(&id)
		if err == sql.ErrNoRows {
			id, err = auth.GenerateID(12)
			if err != nil {
				return err
			}
			_, err = db.Exec(`
				INSERT INTO symptom (id, name, created_at) VALUES ($1, $2, $3)
			`, id, s.name, time.Now())
			if err != nil {
				return err
			}
			for _, dn := range s.diseases {
				if _, err := db.Exec(`
					INSERT INTO disease_symptom (disease_id, symptom_id) VALUES ($1, $2)
				`, diseaseIDs[dn], id); err != nil {
					return err
				}
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}

func seedMarketPrices(db *sql.DB, animalIDs map[string]string) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM market_price").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	basePrices := map[string]float64{
		"Cattle":  4.50,
		"Goats":   6.00,
		"Sheep":   5.25,
		"Poultry": 8.50,
	}
	locations := map[string]float64{
		"Local Market":    1.0,
		"Regional Market": 1.05,
		"Premium Market":  1.15,
	}

	baseDate := time.Now().AddDate(0, 0, -30)
	for animal, animalID := range animalIDs {
		basePrice := basePrices[animal]
		for day := 0; day < 30; day += 5 {
			priceDate := baseDate.AddDate(0, 0, day)
			for location, multiplier := range locations {
				// Sample data gets some noise so trends are not perfectly flat
				variation := 0.8 + rand.Float64()*0.4
				price := round2(basePrice * variation * multiplier)

				id, err := auth.GenerateID(12)
				if err != nil {
					return err
				}
				_, err = db.Exec(`
					INSERT INTO market_price
						(id, animal_type_id, location, date_recorded, price_per_kg,
						 quality_grade, source, created_at)
					VALUES ($1, $2, $3, $4, $5, 'GOOD', 'Sample Data', $6)
				`, id, animalID, location, priceDate, price, time.Now())
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// findOrInsert returns the id matched by the lookup query, inserting a new
// row with a fresh id when none exists. The insert query must take the id as
// its first parameter followed by args.
func findOrInsert(db *sql.DB, lookup string, key string, insert string, args ...interface{}) (string, error) {
	var id string
	err := db.QueryRow(lookup, key).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", err
	}

	id, err = auth.GenerateID(12)
	if err != nil {
		return "", err
	}
	params := append([]interface{}{id}, args...)
	params = append(params, time.Now())
	if _, err := db.Exec(insert, params...); err != nil {
		return "", err
	}
	return id, nil
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
