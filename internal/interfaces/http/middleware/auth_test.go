package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"report-ai-api/pkg/utils"
)

const testAuthSecret = "test-secret"

func newAuthTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	skipPaths := append([]string{}, DefaultSkipPaths...)
	skipPaths = append(skipPaths, "/v1/auth")

	r := gin.New()
	r.Use(Auth(AuthConfig{
		Secret:    testAuthSecret,
		Issuer:    "report-ai",
		SkipPaths: skipPaths,
		Enabled:   true,
	}))

	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/health", ok)
	r.GET("/healthz", ok)
	r.POST("/v1/auth/login", ok)
	r.GET("/v1/authors", ok)
	r.GET("/v1/reports", ok)
	return r
}

func TestAuth_SkipPaths(t *testing.T) {
	r := newAuthTestEngine(t)

	do := func(method, path string) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
		return w.Code
	}

	t.Run("系统端点精确匹配放行", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/health"))
	})

	t.Run("子路径放行", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(http.MethodPost, "/v1/auth/login"))
	})

	t.Run("同前缀的兄弟路由不放行", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(http.MethodGet, "/v1/authors"))
	})

	t.Run("非路径边界的前缀不放行", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(http.MethodGet, "/healthz"))
	})

	t.Run("受保护路由无令牌返回401", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(http.MethodGet, "/v1/reports"))
	})
}

func TestAuth_AccessToken(t *testing.T) {
	r := newAuthTestEngine(t)
	jwtManager := utils.NewJWTManager(testAuthSecret, "report-ai")

	t.Run("有效访问令牌放行", func(t *testing.T) {
		token, err := jwtManager.GenerateToken("user-1", "access", time.Hour)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/reports", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("刷新令牌不可访问受保护路由", func(t *testing.T) {
		token, err := jwtManager.GenerateToken("user-1", "refresh", time.Hour)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/reports", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
