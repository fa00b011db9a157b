// Copyright (c) 2025 the herdwise authors.
// MIT licensed; see LICENSE.

/*
Package models defines the request, response, and domain types shared across
the herdwise API.

# Type Categories

Domain types mirror the database rows (Farmer, AnimalType, Breed, Livestock,
FeedType, Disease, Symptom, MarketPrice, CostRecord). Request types are the
JSON bodies accepted by the handlers; response types are what the handlers
encode back. All JSON uses snake_case field names.

# Enumerations

String enums (livestock status and purpose, disease severity, quality grade,
price trend, confidence level, cost category) are plain string constants with
ValidXxx helpers rather than custom types, so they round-trip through JSON and
database columns without conversion.

# Notes

Nullable database columns map to pointer fields and are omitted from JSON when
nil. Farmer tokens are never stored on a domain type; only the token hash ever
touches the database.
*/
package models
