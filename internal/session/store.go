package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable wraps every transport-level failure returned by the
// store, so callers can distinguish infrastructure outage from an
// authentication outcome.
var ErrRedisUnavailable = errors.New("redis unavailable")

// ErrInvalidReply is returned when the session script replies with a shape
// the store does not understand.
var ErrInvalidReply = errors.New("invalid session script reply")

// Store runs the session-manager script against Redis. Session ids are scoped
// to a user and allocated by a per-user monotonic counter, so concurrent
// creations never collide and a revoked id is never reused.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// NewStore creates a session [Store] backed by the given Redis client.
// prefix sets the Redis key namespace.
func NewStore(redis redis.UniversalClient, prefix string) *Store {
	return &Store{
		redis:  redis,
		prefix: prefix,
	}
}

// keys returns the counter, access-time and info keys for one user. All three
// are passed to every script invocation; the script picks what it needs.
func (s *Store) keys(userID int64) []string {
	base := s.prefix + ":" + strconv.FormatInt(userID, 10)
	return []string{base + ":counter", base + ":access", base + ":info"}
}

// New allocates the next session id for userID and records the session with
// the given last-access timestamp and metadata blob. Two concurrent calls for
// the same user are serialized by the script and never receive the same id.
func (s *Store) New(ctx context.Context, now int64, userID int64, info []byte) (int64, error) {
	sessionID, err := sessionManagerLua.Run(
		ctx,
		s.redis,
		s.keys(userID),
		"new",
		now,
		info,
	).Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return sessionID, nil
}

// Access atomically checks that (userID, sessionID) exists and refreshes its
// last-access timestamp to now. Returns false without mutating anything when
// the session is absent.
func (s *Store) Access(ctx context.Context, now int64, userID, sessionID int64) (bool, error) {
	ok, err := sessionManagerLua.Run(
		ctx,
		s.redis,
		s.keys(userID),
		"access",
		now,
		sessionID,
	).Int64()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return ok == 1, nil
}

// Revoke deletes (userID, sessionID). Revoking an absent session is a no-op.
func (s *Store) Revoke(ctx context.Context, userID, sessionID int64) error {
	err := sessionManagerLua.Run(
		ctx,
		s.redis,
		s.keys(userID),
		"revoke",
		sessionID,
	).Err()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return nil
}

// RevokeAllExcept deletes every session of userID in one atomic sweep. When
// keepSessionID is positive that session survives; any other value clears the
// whole set. The id counter is left untouched either way.
func (s *Store) RevokeAllExcept(ctx context.Context, userID, keepSessionID int64) error {
	keep := ""
	if keepSessionID > 0 {
		keep = strconv.FormatInt(keepSessionID, 10)
	}

	err := sessionManagerLua.Run(
		ctx,
		s.redis,
		s.keys(userID),
		"revoke_all_except",
		keep,
	).Err()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return nil
}

// List returns all current sessions of userID ordered by ascending session id.
func (s *Store) List(ctx context.Context, userID int64) ([]Entry, error) {
	reply, err := sessionManagerLua.Run(
		ctx,
		s.redis,
		s.keys(userID),
		"list",
	).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	rows, ok := reply.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrInvalidReply, reply)
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entry, err := decodeEntry(row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func decodeEntry(row interface{}) (Entry, error) {
	fields, ok := row.([]interface{})
	if !ok || len(fields) != 3 {
		return Entry{}, fmt.Errorf("%w: row %v", ErrInvalidReply, row)
	}

	sessionID, err := replyInt64(fields[0])
	if err != nil {
		return Entry{}, err
	}
	lastAccessTime, err := replyInt64(fields[1])
	if err != nil {
		return Entry{}, err
	}
	info, err := replyBytes(fields[2])
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		SessionID:      sessionID,
		LastAccessTime: lastAccessTime,
		Info:           info,
	}, nil
}

func replyInt64(v interface{}) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidReply, t)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrInvalidReply, v)
	}
}

func replyBytes(v interface{}) ([]byte, error) {
	switch t := v.(type) {
	case string:
		return []byte(t), nil
	case []byte:
		return t, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidReply, v)
	}
}
