// Package session provides the Redis-backed session store for the judge backend.
//
// All mutations of a user's session set go through a single Lua script executed
// server-side, so two concurrent requests touching the same user can never
// interleave mid-operation. The script owns three keys per user: a monotonic
// session-id counter, a hash of last-access timestamps, and a hash of
// serialized session metadata.
//
// # Architecture boundaries
//
// This package owns the [Store] and the raw per-session [Entry]. It does NOT
// sign or verify session tokens, look up user accounts, or decide
// authentication policy — those responsibilities belong to the auth package.
package session
