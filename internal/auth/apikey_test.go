package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter(keys map[string]string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(APIKeyMiddleware(keys))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, ClientID(c)) })
	return r
}

func do(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if key != "" {
		req.Header.Set(APIKeyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAPIKey_OpenWhenNoKeys(t *testing.T) {
	w := do(newRouter(nil), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestAPIKey_Enforced(t *testing.T) {
	r := newRouter(map[string]string{"k1": "mobile"})

	w := do(r, "k1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mobile", w.Body.String())

	w = do(r, "nope")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")

	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
}
