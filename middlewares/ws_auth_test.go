package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"comandero/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wsAuthRouter(t *testing.T, secret string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", WSAuthMiddleware(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": utils.CurrentUserID(c), "role": utils.CurrentRole(c)})
	})
	return r
}

func TestWSAuthAcceptsQueryToken(t *testing.T) {
	secret := "ws-test-secret"
	token, err := utils.GenerateToken(7, "kitchen", secret, time.Hour)
	require.NoError(t, err)

	r := wsAuthRouter(t, secret)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":7`)
	assert.Contains(t, w.Body.String(), `"role":"kitchen"`)
}

func TestWSAuthAcceptsBearerHeader(t *testing.T) {
	secret := "ws-test-secret"
	token, err := utils.GenerateToken(3, "waiter", secret, time.Hour)
	require.NoError(t, err)

	r := wsAuthRouter(t, secret)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWSAuthRejectsMissingOrBadToken(t *testing.T) {
	secret := "ws-test-secret"
	r := wsAuthRouter(t, secret)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws?token=not-a-jwt", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// token signed with a different secret
	foreign, err := utils.GenerateToken(9, "admin", "other-secret", time.Hour)
	require.NoError(t, err)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws?token="+foreign, nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
