// Copyright (c) 2025 the herdwise authors.
// MIT licensed; see LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS. The DDL sticks to the
// dialect subset shared by SQLite and PostgreSQL.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Farmers (token-authenticated accounts)
CREATE TABLE IF NOT EXISTS farmer (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    token_hash TEXT NOT NULL UNIQUE,
    phone_number TEXT,
    location TEXT,
    farm_size_acres REAL,
    experience_years INTEGER,
    created_at TIMESTAMP NOT NULL,
    last_seen_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_farmer_token_hash ON farmer(token_hash);

-- Animal types (cattle, goats, sheep, poultry)
CREATE TABLE IF NOT EXISTS animal_type (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

-- Breeds per animal type
CREATE TABLE IF NOT EXISTS breed (
    id TEXT PRIMARY KEY,
    animal_type_id TEXT NOT NULL REFERENCES animal_type(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    average_weight_kg REAL,
    maturity_months INTEGER,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (animal_type_id, name)
);

CREATE INDEX IF NOT EXISTS idx_breed_animal_type ON breed(animal_type_id);

-- Individual animals owned by farmers
CREATE TABLE IF NOT EXISTS livestock (
    id TEXT PRIMARY KEY,
    farmer_id TEXT NOT NULL REFERENCES farmer(id) ON DELETE CASCADE,
    animal_type_id TEXT NOT NULL REFERENCES animal_type(id),
    breed_id TEXT REFERENCES breed(id),
    tag_number TEXT NOT NULL UNIQUE,
    name TEXT,
    gender TEXT NOT NULL CHECK (gender IN ('M', 'F')),
    date_of_birth TIMESTAMP,
    current_weight_kg REAL,
    purpose TEXT NOT NULL CHECK (purpose IN ('MEAT', 'MILK', 'EGGS', 'BREEDING', 'MIXED')),
    status TEXT NOT NULL DEFAULT 'HEALTHY'
        CHECK (status IN ('HEALTHY', 'SICK', 'PREGNANT', 'QUARANTINE', 'SOLD', 'DECEASED')),
    purchase_date TIMESTAMP,
    purchase_price REAL,
    notes TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_livestock_farmer ON livestock(farmer_id);
CREATE INDEX IF NOT EXISTS idx_livestock_status ON livestock(farmer_id, status);

-- Feed catalogue
CREATE TABLE IF NOT EXISTS feed_type (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    category TEXT NOT NULL
        CHECK (category IN ('HAY', 'GRAIN', 'PELLETS', 'SILAGE', 'PASTURE', 'SUPPLEMENT', 'CONCENTRATE')),
    description TEXT NOT NULL DEFAULT '',
    protein_percentage REAL NOT NULL DEFAULT 0,
    energy_mj_per_kg REAL NOT NULL DEFAULT 0,
    cost_per_kg REAL NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS feed_suitability (
    feed_type_id TEXT NOT NULL REFERENCES feed_type(id) ON DELETE CASCADE,
    animal_type_id TEXT NOT NULL REFERENCES animal_type(id) ON DELETE CASCADE,
    PRIMARY KEY (feed_type_id, animal_type_id)
);

-- Ration guidance rows matched by age/weight/purpose windows
CREATE TABLE IF NOT EXISTS feeding_recommendation (
    id TEXT PRIMARY KEY,
    animal_type_id TEXT NOT NULL REFERENCES animal_type(id) ON DELETE CASCADE,
    feed_type_id TEXT NOT NULL REFERENCES feed_type(id) ON DELETE CASCADE,
    min_age_months INTEGER NOT NULL DEFAULT 0,
    max_age_months INTEGER,
    min_weight_kg REAL NOT NULL DEFAULT 0,
    max_weight_kg REAL,
    purpose TEXT NOT NULL DEFAULT '',
    daily_amount_kg REAL NOT NULL,
    feeding_frequency INTEGER NOT NULL DEFAULT 2,
    notes TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_feeding_rec_animal ON feeding_recommendation(animal_type_id);

-- Disease reference
CREATE TABLE IF NOT EXISTS disease (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    severity TEXT NOT NULL CHECK (severity IN ('LOW', 'MEDIUM', 'HIGH', 'CRITICAL')),
    is_contagious BOOLEAN NOT NULL DEFAULT FALSE,
    prevention_measures TEXT NOT NULL DEFAULT '',
    treatment_advice TEXT NOT NULL DEFAULT '',
    vet_required BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS disease_animal (
    disease_id TEXT NOT NULL REFERENCES disease(id) ON DELETE CASCADE,
    animal_type_id TEXT NOT NULL REFERENCES animal_type(id) ON DELETE CASCADE,
    PRIMARY KEY (disease_id, animal_type_id)
);

CREATE TABLE IF NOT EXISTS symptom (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS disease_symptom (
    disease_id TEXT NOT NULL REFERENCES disease(id) ON DELETE CASCADE,
    symptom_id TEXT NOT NULL REFERENCES symptom(id) ON DELETE CASCADE,
    PRIMARY KEY (disease_id, symptom_id)
);

-- Health history per animal
CREATE TABLE IF NOT EXISTS health_record (
    id TEXT PRIMARY KEY,
    livestock_id TEXT NOT NULL REFERENCES livestock(id) ON DELETE CASCADE,
    recorded_at TIMESTAMP NOT NULL,
    suspected_disease_id TEXT REFERENCES disease(id),
    diagnosis TEXT NOT NULL DEFAULT '',
    treatment_given TEXT NOT NULL DEFAULT '',
    veterinarian_consulted BOOLEAN NOT NULL DEFAULT FALSE,
    recovery_status TEXT NOT NULL DEFAULT 'ONGOING'
        CHECK (recovery_status IN ('ONGOING', 'RECOVERED', 'CHRONIC', 'DECEASED')),
    notes TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_health_record_livestock ON health_record(livestock_id);

CREATE TABLE IF NOT EXISTS health_record_symptom (
    health_record_id TEXT NOT NULL REFERENCES health_record(id) ON DELETE CASCADE,
    symptom_id TEXT NOT NULL REFERENCES symptom(id) ON DELETE CASCADE,
    PRIMARY KEY (health_record_id, symptom_id)
);

-- Market price observations
CREATE TABLE IF NOT EXISTS market_price (
    id TEXT PRIMARY KEY,
    animal_type_id TEXT NOT NULL REFERENCES animal_type(id) ON DELETE CASCADE,
    breed_id TEXT REFERENCES breed(id),
    location TEXT NOT NULL,
    date_recorded TIMESTAMP NOT NULL,
    price_per_kg REAL NOT NULL,
    quality_grade TEXT NOT NULL DEFAULT 'AVERAGE'
        CHECK (quality_grade IN ('PREMIUM', 'GOOD', 'AVERAGE', 'POOR')),
    source TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_market_price_lookup ON market_price(animal_type_id, date_recorded);

-- Per-animal expenses feeding the profitability breakdown
CREATE TABLE IF NOT EXISTS cost_record (
    id TEXT PRIMARY KEY,
    livestock_id TEXT NOT NULL REFERENCES livestock(id) ON DELETE CASCADE,
    category TEXT NOT NULL CHECK (category IN ('FEED', 'VETERINARY', 'MEDICINE', 'OTHER')),
    amount REAL NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    incurred_at TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cost_record_livestock ON cost_record(livestock_id);
`
