package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/AntaresQAQ/tywzoj/internal/auth"
	"github.com/AntaresQAQ/tywzoj/internal/model"
	"github.com/AntaresQAQ/tywzoj/internal/session"
	"github.com/AntaresQAQ/tywzoj/server/common"
)

type fakeUsers map[int64]*model.User

func (f fakeUsers) FindUserByID(_ context.Context, id int64) (*model.User, error) {
	return f[id], nil
}

func newAuthTest(t *testing.T) (*gin.Engine, *auth.SessionManager, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	users := fakeUsers{7: {ID: 7, Username: "alice", Level: model.LevelGeneral}}
	manager := auth.NewSessionManager(
		session.NewStore(rdb, "session"),
		users,
		[]byte("test-secret"),
		nil,
	)

	e := gin.New()
	e.Use(Auth(manager))
	e.GET("/whoami", func(c *gin.Context) {
		if user := common.CurrentUser(c); user != nil {
			c.String(http.StatusOK, user.Username)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	e.GET("/private", AuthRequired, func(c *gin.Context) {
		c.String(http.StatusOK, "secret")
	})

	return e, manager, mr
}

func get(e *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestAuthAttachesUser(t *testing.T) {
	e, manager, _ := newAuthTest(t)

	token, err := manager.Create(context.Background(), &model.User{ID: 7}, "10.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	w := get(e, "/whoami", token)
	if w.Code != http.StatusOK || w.Body.String() != "alice" {
		t.Fatalf("expected alice, got %d %q", w.Code, w.Body.String())
	}
}

func TestAuthLeavesBadTokenUnauthenticated(t *testing.T) {
	e, _, _ := newAuthTest(t)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		w := get(e, "/whoami", token)
		if w.Code != http.StatusOK || w.Body.String() != "anonymous" {
			t.Fatalf("token %q: expected anonymous 200, got %d %q", token, w.Code, w.Body.String())
		}
	}
}

func TestAuthRevokedTokenUnauthenticated(t *testing.T) {
	e, manager, _ := newAuthTest(t)
	ctx := context.Background()

	token, err := manager.Create(ctx, &model.User{ID: 7}, "10.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := manager.End(ctx, token); err != nil {
		t.Fatalf("end session: %v", err)
	}

	w := get(e, "/whoami", token)
	if w.Body.String() != "anonymous" {
		t.Fatalf("revoked token must not authenticate, got %q", w.Body.String())
	}
}

func TestAuthRequiredRejectsAnonymous(t *testing.T) {
	e, manager, _ := newAuthTest(t)

	if w := get(e, "/private", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	token, err := manager.Create(context.Background(), &model.User{ID: 7}, "10.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if w := get(e, "/private", token); w.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", w.Code)
	}
}

func TestAuthStoreOutageIs500(t *testing.T) {
	e, manager, mr := newAuthTest(t)

	token, err := manager.Create(context.Background(), &model.User{ID: 7}, "10.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	mr.Close()

	if w := get(e, "/whoami", token); w.Code != http.StatusInternalServerError {
		t.Fatalf("store outage must be 500, got %d", w.Code)
	}
}
