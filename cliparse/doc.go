// Copyright (c) 2025 the herdwise authors.
// MIT licensed; see LICENSE.

/*
Package cliparse resolves server configuration from CLI flags with
environment variable fallback.

Precedence is flag, then environment, then default:

  - -p / PORT: listen port (default 8290)
  - -d / DATABASE_URL: database connection string
    (default file:herdwise.db when the database type is sqlite)
  - -t / DATABASE_TYPE: sqlite or postgres (default sqlite)
  - -seed / SEED_ON_START: load reference data on startup
  - --token-salt / FARMER_TOKEN_SALT: secret for farmer token hashing (required)

.env loading happens in main via godotenv before ParseFlags runs, so values
from a local .env file behave exactly like real environment variables.
*/
package cliparse
