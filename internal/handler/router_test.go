package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/slinet/ehparse/internal/config"
	"github.com/slinet/ehparse/internal/handler"
	"github.com/slinet/ehparse/internal/middleware"
	"github.com/slinet/ehparse/pkg/parser"
)

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Total   *int64          `json:"total"`
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newRouter(t *testing.T, maxBody int64) *gin.Engine {
	t.Helper()
	cfg := config.ServerConfig{CORS: true, CORSOrigin: "*", MaxBodyBytes: maxBody}
	return handler.NewRouter(cfg, zap.NewNop(), parser.Default())
}

func do(t *testing.T, r http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func TestParseRoutes(t *testing.T) {
	t.Parallel()
	r := newRouter(t, 1<<20)

	t.Run("sign in", func(t *testing.T) {
		w, env := do(t, r, "POST", "/api/parse/signin", `<p>You are now logged in as: Tester<br />`)
		require.Equal(t, 200, w.Code)
		assert.JSONEq(t, `{"username":"Tester"}`, string(env.Data))
	})

	t.Run("empty listing", func(t *testing.T) {
		w, env := do(t, r, "POST", "/api/parse/list", `<div class="ido"><p>No hits found</p></div>`)
		require.Equal(t, 200, w.Code)
		assert.JSONEq(t, `{"layout":"none","galleries":[]}`, string(env.Data))
		require.NotNil(t, env.Total)
		assert.Equal(t, int64(0), *env.Total)
	})

	t.Run("sign in required", func(t *testing.T) {
		w, env := do(t, r, "POST", "/api/parse/detail", `<p>This page requires you to log on.</p>`)
		assert.Equal(t, 401, w.Code)
		assert.Equal(t, 401, env.Code)
	})

	t.Run("server message", func(t *testing.T) {
		w, env := do(t, r, "POST", "/api/parse/detail", `<div class="d"><p>This gallery is pining for the fjords.</p></div>`)
		assert.Equal(t, 422, w.Code)
		assert.Equal(t, "This gallery is pining for the fjords.", env.Message)
	})

	t.Run("banned", func(t *testing.T) {
		w, _ := do(t, r, "POST", "/api/parse/list",
			`<html><body>Your IP address has been temporarily banned. The ban expires in 2 hours and 13 minutes</body></html>`)
		assert.Equal(t, 422, w.Code)
		assert.Equal(t, "7980", w.Header().Get("Retry-After"))
	})

	t.Run("ban phrase quoted", func(t *testing.T) {
		w, _ := do(t, r, "POST", "/api/parse/page", `<p>got temporarily banned. The ban expires in 1 hours</p>`)
		assert.Equal(t, 400, w.Code)
		assert.Empty(t, w.Header().Get("Retry-After"))
	})

	t.Run("malformed", func(t *testing.T) {
		w, env := do(t, r, "POST", "/api/parse/page", `<p>not a page</p>`)
		assert.Equal(t, 400, w.Code)
		assert.True(t, strings.HasPrefix(env.Message, "malformed document: "), env.Message)
	})

	t.Run("empty body", func(t *testing.T) {
		w, env := do(t, r, "POST", "/api/parse/torrents", "")
		assert.Equal(t, 400, w.Code)
		assert.Equal(t, "empty document", env.Message)
	})

	t.Run("bad category mask", func(t *testing.T) {
		w, _ := do(t, r, "POST", "/api/parse/list?f_cats=abc", `<p>No hits found</p>`)
		assert.Equal(t, 400, w.Code)
	})
}

func TestParseRoutes_BodyLimit(t *testing.T) {
	t.Parallel()
	r := newRouter(t, 16)

	w, env := do(t, r, "POST", "/api/parse/archive", strings.Repeat("x", 64))
	assert.Equal(t, 413, w.Code)
	assert.Equal(t, "document is too large", env.Message)
}

func TestURLRoutes(t *testing.T) {
	t.Parallel()
	r := newRouter(t, 1<<20)

	w, env := do(t, r, "GET", "/api/url/detail?url=https://e-hentai.org/g/2455981/4bfdf1d4e4/", "")
	require.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"gid":2455981,"token":"4bfdf1d4e4"}`, string(env.Data))

	w, _ = do(t, r, "GET", "/api/url/detail?url=/g/2455981/4bfdf1d4e4/", "")
	assert.Equal(t, 400, w.Code)

	w, env = do(t, r, "GET", "/api/url/page?url=/s/0123456789/1-3&strict=false", "")
	require.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"gid":1,"p_token":"0123456789","page":2}`, string(env.Data))

	w, _ = do(t, r, "GET", "/api/url/page", "")
	assert.Equal(t, 400, w.Code)

	w, _ = do(t, r, "GET", "/api/url/page?url=x&strict=maybe", "")
	assert.Equal(t, 400, w.Code)
}

func TestCategoryRoutes(t *testing.T) {
	t.Parallel()
	r := newRouter(t, 1<<20)

	w, env := do(t, r, "GET", "/api/category", "")
	require.Equal(t, 200, w.Code)
	require.NotNil(t, env.Total)
	assert.Equal(t, int64(10), *env.Total)

	_, env = do(t, r, "GET", "/api/category/doujinshi", "")
	assert.JSONEq(t, `{"name":"Doujinshi","color":4294198070,"flag":2}`, string(env.Data))

	_, env = do(t, r, "GET", "/api/category/0x8", "")
	var cat parser.Category
	require.NoError(t, json.Unmarshal(env.Data, &cat))
	assert.Equal(t, "Artist CG", cat.Name)

	_, env = do(t, r, "GET", "/api/category?f_cats=1021", "")
	assert.JSONEq(t, `["Doujinshi"]`, string(env.Data))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	r := newRouter(t, 1<<20)

	w, env := do(t, r, "GET", "/health", "")
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "ok", env.Message)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "6f1c2d2e-3b0a-4c55-9a51-0d9d8a4c2f10")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "6f1c2d2e-3b0a-4c55-9a51-0d9d8a4c2f10", rec.Header().Get(middleware.RequestIDHeader))

	req = httptest.NewRequest("OPTIONS", "/api/parse/list", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, 204, rec.Code)
}
