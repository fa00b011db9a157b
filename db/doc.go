// Copyright (c) 2025 the herdwise authors.
// MIT licensed; see LICENSE.

/*
Package db owns schema creation and reference data seeding.

# Schema

CreateSchema issues idempotent DDL (IF NOT EXISTS) restricted to the SQL
subset both supported drivers accept, so the same statements run against
SQLite (modernc.org/sqlite) and PostgreSQL (lib/pq). All primary keys are
random hex TEXT ids. Positional parameters use the $N form, which both
drivers understand.

Key uniqueness constraints:

  - farmer.username, farmer.token_hash
  - animal_type.name, feed_type.name, disease.name, symptom.name
  - breed (animal_type_id, name)
  - livestock.tag_number

# Seeding

Seed loads the reference dataset a fresh deployment needs before the
decision-support endpoints return anything useful: four animal types, their
breeds, the feed catalogue with suitability links, ration guidance rows,
five diseases with twelve linked symptoms, and 30 days of sample market
prices. Seeding is idempotent; rows are keyed on their natural unique names
and the keyless tables are only filled when empty.
*/
package db
