// Copyright (c) 2025 the herdwise authors.
// MIT licensed; see LICENSE.

/*
Package auth provides token generation and verification for farmer accounts.

# Token Model

Registration issues a random 192-bit bearer token. The server stores only a
salted HMAC-SHA256 digest of it (HashToken); authenticated requests present
the raw token in the X-Farmer-Token header and the handler resolves the
farmer row by recomputing the digest. Losing the token means re-registering;
there is no recovery path by design of the deployment (no email/SMS channel).

# IDs

GenerateID produces random hex identifiers used as primary keys throughout
the schema.
*/
package auth
