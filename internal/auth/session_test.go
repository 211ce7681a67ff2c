package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/AntaresQAQ/tywzoj/internal/model"
	"github.com/AntaresQAQ/tywzoj/internal/session"
)

type fakeUsers map[int64]*model.User

func (f fakeUsers) FindUserByID(_ context.Context, id int64) (*model.User, error) {
	return f[id], nil
}

func newManagerTest(t *testing.T) (*SessionManager, fakeUsers, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	users := fakeUsers{
		7: {ID: 7, Username: "alice", Level: model.LevelGeneral},
	}
	store := session.NewStore(rdb, "session")
	return NewSessionManager(store, users, testSecret, nil), users, mr
}

func TestCreateResolveRevoke(t *testing.T) {
	manager, _, _ := newManagerTest(t)
	ctx := context.Background()
	before := time.Now().UnixMilli()

	key, err := manager.Create(ctx, &model.User{ID: 7}, "10.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	sessionID, user, err := manager.Resolve(ctx, key)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if user == nil || user.ID != 7 {
		t.Fatalf("expected user 7, got %+v", user)
	}
	if sessionID != 1 {
		t.Fatalf("expected session id 1, got %d", sessionID)
	}

	infos, err := manager.ListSessions(ctx, 7)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("expected 1 session, got %d", len(infos))
	}
	if infos[0].LastAccessTime < before {
		t.Fatalf("last access %d not refreshed (created at %d)", infos[0].LastAccessTime, before)
	}
	if infos[0].LoginIP != "10.0.0.1" || infos[0].UserAgent != "test-agent" {
		t.Fatalf("unexpected session info %+v", infos[0])
	}

	if err := manager.Revoke(ctx, 7, sessionID); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	sessionID, user, err = manager.Resolve(ctx, key)
	if err != nil {
		t.Fatalf("resolve after revoke: %v", err)
	}
	if sessionID != 0 || user != nil {
		t.Fatal("revoked session must not resolve, even with a valid signature")
	}
}

func TestEndIsBestEffort(t *testing.T) {
	manager, _, _ := newManagerTest(t)
	ctx := context.Background()

	// Garbage keys are a vacuous success.
	if err := manager.End(ctx, "garbage"); err != nil {
		t.Fatalf("end with garbage key: %v", err)
	}

	key, err := manager.Create(ctx, &model.User{ID: 7}, "10.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := manager.End(ctx, key); err != nil {
		t.Fatalf("end: %v", err)
	}

	if _, user, err := manager.Resolve(ctx, key); err != nil || user != nil {
		t.Fatalf("ended session must not resolve, got user=%v err=%v", user, err)
	}
}

func TestRevokeAllExceptKeepsCurrent(t *testing.T) {
	manager, _, _ := newManagerTest(t)
	ctx := context.Background()

	var keys []string
	for i := 0; i < 3; i++ {
		key, err := manager.Create(ctx, &model.User{ID: 7}, "10.0.0.1", "test-agent")
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		keys = append(keys, key)
	}

	// Sessions were allocated 1, 2, 3; keep the middle one.
	if err := manager.RevokeAllExcept(ctx, 7, 2); err != nil {
		t.Fatalf("revoke all except: %v", err)
	}

	infos, err := manager.ListSessions(ctx, 7)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(infos) != 1 || infos[0].SessionID != 2 {
		t.Fatalf("expected only session 2 to survive, got %+v", infos)
	}

	for i, key := range keys {
		sessionID, user, err := manager.Resolve(ctx, key)
		if err != nil {
			t.Fatalf("resolve %d: %v", i, err)
		}
		if i == 1 && (user == nil || sessionID != 2) {
			t.Fatal("kept session must still resolve")
		}
		if i != 1 && user != nil {
			t.Fatalf("swept session %d must not resolve", i)
		}
	}
}

func TestRevokeAllExceptNothing(t *testing.T) {
	manager, _, _ := newManagerTest(t)
	ctx := context.Background()

	var keys []string
	for i := 0; i < 3; i++ {
		key, err := manager.Create(ctx, &model.User{ID: 7}, "10.0.0.1", "test-agent")
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		keys = append(keys, key)
	}

	if err := manager.RevokeAllExcept(ctx, 7, 0); err != nil {
		t.Fatalf("revoke all: %v", err)
	}

	for i, key := range keys {
		if _, user, err := manager.Resolve(ctx, key); err != nil || user != nil {
			t.Fatalf("key %d: expected unauthenticated, got user=%v err=%v", i, user, err)
		}
	}
}

func TestResolveUnknownUser(t *testing.T) {
	manager, users, _ := newManagerTest(t)
	ctx := context.Background()

	key, err := manager.Create(ctx, &model.User{ID: 7}, "10.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Account deleted while the session is still live.
	delete(users, 7)

	sessionID, user, err := manager.Resolve(ctx, key)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if sessionID != 0 || user != nil {
		t.Fatal("session of a vanished user must not resolve")
	}
}

func TestResolveStoreDown(t *testing.T) {
	manager, _, mr := newManagerTest(t)
	ctx := context.Background()

	key, err := manager.Create(ctx, &model.User{ID: 7}, "10.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	mr.Close()

	if _, _, err := manager.Resolve(ctx, key); err == nil {
		t.Fatal("store outage must surface as an error, not as unauthenticated")
	}
}
