package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"restaurant-orders-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/open", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"staff_id": GetStaffID(c)})
	})
	r.GET("/staff", AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"staff_id": GetStaffID(c), "role": GetRole(c)})
	})
	r.GET("/managers", AuthRequired(), RoleRequired(models.RoleManager), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/unauthenticated-managers", RoleRequired(models.RoleManager), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func request(t *testing.T, r http.Handler, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	r := newTestRouter()
	waiter, err := GenerateToken(&models.Staff{ID: 7, Email: "w@example.com", Role: models.RoleWaiter})
	require.NoError(t, err)
	manager, err := GenerateToken(&models.Staff{ID: 8, Email: "m@example.com", Role: models.RoleManager})
	require.NoError(t, err)

	tests := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"open without token", "/open", "", http.StatusOK},
		{"missing token", "/staff", "", http.StatusUnauthorized},
		{"garbage token", "/staff", "not-a-jwt", http.StatusUnauthorized},
		{"waiter", "/staff", waiter, http.StatusOK},
		{"waiter on manager route", "/managers", waiter, http.StatusForbidden},
		{"manager on manager route", "/managers", manager, http.StatusNoContent},
		{"role gate without auth", "/unauthenticated-managers", manager, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(t, r, tt.path, tt.token)
			assert.Equal(t, tt.want, w.Code)
			assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
		})
	}

	w := request(t, r, "/staff", waiter)
	assert.JSONEq(t, `{"staff_id":7,"role":"waiter"}`, w.Body.String())

	w = request(t, r, "/open", "")
	assert.JSONEq(t, `{"staff_id":0}`, w.Body.String())
}
