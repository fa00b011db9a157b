// Copyright (c) 2025 the herdwise authors.
// MIT licensed; see LICENSE.

/*
Package main provides the entry point for the Herdwise API server.

Herdwise is a livestock management backend for smallholder farmers:
animal records, feeding recommendations, disease symptom analysis, and
market price guidance.

# Starting the Server

The server reads environment variables (including a .env file) or CLI
flags for configuration:

	FARMER_TOKEN_SALT=secret go run .

Or with flags:

	go run . -p 8290 -t sqlite -d "file:herdwise.db" --token-salt secret -seed

# Configuration

Required settings:

  - FARMER_TOKEN_SALT (--token-salt): Secret for farmer token HMAC

Optional settings:

  - PORT (-p): Server port (default: 8290)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: file:herdwise.db)
  - SEED_ON_START (-seed): Seed reference data on startup

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (livestock, feeding, disease, pricing)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging, rate limiting, JSON helpers
  - models: Request/response types
  - auth: Token generation and validation
  - db: Schema creation and reference data seeding
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
