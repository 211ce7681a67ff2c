// Package auth issues and resolves session tokens for the judge backend.
//
// A session token is an HMAC-SHA256 signed compact token whose payload is the
// plain string "<userId> <sessionId>". The signature only stops clients from
// forging pairs they do not own; the Redis session store remains the single
// authority on whether a session is still valid, so revocation takes effect
// the moment the store entry is gone.
package auth
