package auth

import (
	"context"
	"time"

	"github.com/AntaresQAQ/tywzoj/internal/metrics"
	"github.com/AntaresQAQ/tywzoj/internal/model"
	"github.com/AntaresQAQ/tywzoj/internal/session"
	"github.com/AntaresQAQ/tywzoj/pkg/utils"
)

// UserFinder resolves the owning account of a session.
type UserFinder interface {
	FindUserByID(ctx context.Context, id int64) (*model.User, error)
}

// SessionInfo is one active session as shown in the "manage devices" UI.
type SessionInfo struct {
	SessionID      int64  `json:"sessionId"`
	LoginIP        string `json:"loginIp"`
	UserAgent      string `json:"userAgent"`
	LoginTime      int64  `json:"loginTime"`
	LastAccessTime int64  `json:"lastAccessTime"`
}

// sessionInfoBlob is the immutable part of a session, serialized into the
// store at creation time.
type sessionInfoBlob struct {
	LoginIP   string `json:"loginIp"`
	UserAgent string `json:"userAgent"`
	LoginTime int64  `json:"loginTime"`
}

// SessionManager is the process-side API over the session store. It is safe
// for concurrent use; all cross-request mutual exclusion lives in the store's
// script, so the manager itself holds no locks.
type SessionManager struct {
	store   *session.Store
	users   UserFinder
	secret  []byte
	metrics *metrics.Metrics
}

// NewSessionManager wires the session store, the user lookup and the token
// signing secret together. m may be nil to disable counters.
func NewSessionManager(store *session.Store, users UserFinder, secret []byte, m *metrics.Metrics) *SessionManager {
	return &SessionManager{
		store:   store,
		users:   users,
		secret:  secret,
		metrics: m,
	}
}

// Create opens a new session for user and returns its signed session key.
// The only error path is store or encoding failure; it is propagated, not
// swallowed.
func (m *SessionManager) Create(ctx context.Context, user *model.User, loginIP, userAgent string) (string, error) {
	now := time.Now().UnixMilli()
	info, err := utils.Json.Marshal(sessionInfoBlob{
		LoginIP:   loginIP,
		UserAgent: userAgent,
		LoginTime: now,
	})
	if err != nil {
		return "", err
	}

	sessionID, err := m.store.New(ctx, now, user.ID, info)
	if err != nil {
		return "", err
	}

	m.metrics.Inc(metrics.SessionCreated)
	return signSessionKey(m.secret, user.ID, sessionID)
}

// Resolve verifies sessionKey, touches the referenced session's last-access
// timestamp, and loads its owner. Any authentication failure — bad signature,
// garbled payload, revoked session, vanished user — degrades to (0, nil, nil)
// so callers cannot distinguish the cases. A non-nil error means the store or
// the user database was unreachable, nothing else.
func (m *SessionManager) Resolve(ctx context.Context, sessionKey string) (int64, *model.User, error) {
	userID, sessionID, err := decodeSessionKey(m.secret, sessionKey)
	if err != nil {
		m.metrics.Inc(metrics.SessionRejected)
		return 0, nil, nil
	}

	ok, err := m.store.Access(ctx, time.Now().UnixMilli(), userID, sessionID)
	if err != nil {
		return 0, nil, err
	}
	if !ok {
		m.metrics.Inc(metrics.SessionRejected)
		return 0, nil, nil
	}

	user, err := m.users.FindUserByID(ctx, userID)
	if err != nil {
		return 0, nil, err
	}
	if user == nil {
		m.metrics.Inc(metrics.SessionRejected)
		return 0, nil, nil
	}

	m.metrics.Inc(metrics.SessionResolved)
	return sessionID, user, nil
}

// End revokes the session referenced by sessionKey. Ending an already-invalid
// key is vacuously successful: an undecodable token is simply ignored.
func (m *SessionManager) End(ctx context.Context, sessionKey string) error {
	userID, sessionID, err := decodeSessionKey(m.secret, sessionKey)
	if err != nil {
		return nil
	}
	return m.Revoke(ctx, userID, sessionID)
}

// Revoke deletes one session of a user, immediately invalidating any token
// referencing it.
func (m *SessionManager) Revoke(ctx context.Context, userID, sessionID int64) error {
	if err := m.store.Revoke(ctx, userID, sessionID); err != nil {
		return err
	}
	m.metrics.Inc(metrics.SessionRevoked)
	return nil
}

// RevokeAllExcept deletes every session of userID except keepSessionID.
// Pass keepSessionID <= 0 to log the user out everywhere, e.g. after an
// administrative password reset.
func (m *SessionManager) RevokeAllExcept(ctx context.Context, userID, keepSessionID int64) error {
	if err := m.store.RevokeAllExcept(ctx, userID, keepSessionID); err != nil {
		return err
	}
	m.metrics.Inc(metrics.SessionSweep)
	return nil
}

// ListSessions returns the user's active sessions, merging the stored
// metadata blob with the live last-access timestamps.
func (m *SessionManager) ListSessions(ctx context.Context, userID int64) ([]SessionInfo, error) {
	entries, err := m.store.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	infos := make([]SessionInfo, 0, len(entries))
	for _, entry := range entries {
		var blob sessionInfoBlob
		if err := utils.Json.Unmarshal(entry.Info, &blob); err != nil {
			return nil, err
		}
		infos = append(infos, SessionInfo{
			SessionID:      entry.SessionID,
			LoginIP:        blob.LoginIP,
			UserAgent:      blob.UserAgent,
			LoginTime:      blob.LoginTime,
			LastAccessTime: entry.LastAccessTime,
		})
	}

	return infos, nil
}
