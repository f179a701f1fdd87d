package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	redispkg "wanderlite.backend/pkg/redis"
)

func startMiniRedis(t *testing.T) (*miniredis.Miniredis, *redispkg.Store) {
	t.Helper()
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable in this environment: %v", err)
	}
	t.Cleanup(srv.Close)

	cli := redisv9.NewClient(&redisv9.Options{Addr: srv.Addr()})
	store := redispkg.NewStore(cli)
	t.Cleanup(func() { _ = store.Close() })
	return srv, store
}

func idempotentRouter(store *redispkg.Store, userID uuid.UUID) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)
	calls := 0
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(UserIDKey, userID)
		c.Next()
	})
	r.Use(IdempotencyMiddleware(store))
	r.POST("/payments", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"attempt": calls})
	})
	return r, &calls
}

func TestIdempotencyMiddleware_NoHeaderPassthrough(t *testing.T) {
	_, store := startMiniRedis(t)
	r, calls := idempotentRouter(store, uuid.New())

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payments", nil))
		require.Equal(t, http.StatusCreated, w.Code)
	}
	require.Equal(t, 2, *calls)
}

func TestIdempotencyMiddleware_ReplaysRecordedResponse(t *testing.T) {
	_, store := startMiniRedis(t)
	r, calls := idempotentRouter(store, uuid.New())

	req := httptest.NewRequest(http.MethodPost, "/payments", nil)
	req.Header.Set(IdempotencyHeader, "retry-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	first := w.Body.String()

	req = httptest.NewRequest(http.MethodPost, "/payments", nil)
	req.Header.Set(IdempotencyHeader, "retry-1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "true", w.Header().Get("X-Idempotency-Hit"))
	require.Equal(t, first, w.Body.String())
	require.Equal(t, 1, *calls)
}

func TestIdempotencyMiddleware_KeysAreUserScoped(t *testing.T) {
	_, store := startMiniRedis(t)

	rA, callsA := idempotentRouter(store, uuid.New())
	rB, callsB := idempotentRouter(store, uuid.New())

	req := httptest.NewRequest(http.MethodPost, "/payments", nil)
	req.Header.Set(IdempotencyHeader, "shared-key")
	rA.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodPost, "/payments", nil)
	req.Header.Set(IdempotencyHeader, "shared-key")
	rB.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, *callsA)
	require.Equal(t, 1, *callsB)
}

func TestIdempotencyMiddleware_ProcessingConflict(t *testing.T) {
	srv, store := startMiniRedis(t)
	userID := uuid.New()
	r, _ := idempotentRouter(store, userID)

	require.NoError(t, srv.Set("idempotency:"+userID.String()+":key-1", "processing"))

	req := httptest.NewRequest(http.MethodPost, "/payments", nil)
	req.Header.Set(IdempotencyHeader, "key-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestIdempotencyMiddleware_NilStorePassthrough(t *testing.T) {
	r, calls := idempotentRouter(nil, uuid.New())

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/payments", nil)
		req.Header.Set(IdempotencyHeader, "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)
	}
	require.Equal(t, 2, *calls)
}

func TestIdempotencyMiddleware_RedisOutagePassthrough(t *testing.T) {
	store := redispkg.NewStore(redisv9.NewClient(&redisv9.Options{Addr: "127.0.0.1:0"}))
	t.Cleanup(func() { _ = store.Close() })

	r, calls := idempotentRouter(store, uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/payments", nil)
	req.Header.Set(IdempotencyHeader, "key-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, 1, *calls)
}

func TestIdempotencyMiddleware_FailedAttemptRetryable(t *testing.T) {
	_, store := startMiniRedis(t)
	gin.SetMode(gin.TestMode)

	fail := true
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(UserIDKey, uuid.Nil); c.Next() })
	r.Use(IdempotencyMiddleware(store))
	r.POST("/payments", func(c *gin.Context) {
		if fail {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/payments", nil)
	req.Header.Set(IdempotencyHeader, "key-2")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	// the failed attempt left no record, so the retry executes
	fail = false
	req = httptest.NewRequest(http.MethodPost, "/payments", nil)
	req.Header.Set(IdempotencyHeader, "key-2")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Empty(t, w.Header().Get("X-Idempotency-Hit"))
}
