// Copyright (c) 2025 the herdwise authors.
// MIT licensed; see LICENSE.

/*
Package middleware provides HTTP cross-cutting helpers used by every handler.

  - WithLogging: request start/completion logging with a per-request UUID
  - JSONResponse / ErrorResponse: the single JSON encoding path for replies
  - ParseJSONBody: request body decoding
  - RateLimiter: per-client-IP token buckets (golang.org/x/time/rate)
  - GetClientIP: proxy-aware client address extraction

CORS is not handled here; main wraps the router with github.com/rs/cors.
*/
package middleware
