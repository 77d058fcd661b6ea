package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/service"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/dto"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/middleware"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupAuthRouter(authService service.AuthService) *gin.Engine {
	router := gin.New()
	auth := middleware.NewAuthMiddleware(authService, testutil.TestLogger())
	router.GET("/protected", auth.RequireAuth(), func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return router
}

func TestRequireAuth_Rejects(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		setupMock  func(m *testutil.MockAuthService)
		wantDetail string
	}{
		{
			name:       "missing header",
			wantDetail: "Not authenticated",
		},
		{
			name:       "wrong scheme",
			header:     "Basic dXNlcjpwYXNz",
			wantDetail: "Invalid authorization header format",
		},
		{
			name:       "scheme only",
			header:     "Bearer",
			wantDetail: "Invalid authorization header format",
		},
		{
			name:   "invalid token",
			header: "Bearer bad-token",
			setupMock: func(m *testutil.MockAuthService) {
				m.On("ValidateAccessToken", "bad-token").Return(uint(0), service.ErrInvalidToken)
			},
			wantDetail: "Could not validate credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAuth := new(testutil.MockAuthService)
			if tt.setupMock != nil {
				tt.setupMock(mockAuth)
			}
			router := setupAuthRouter(mockAuth)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantDetail, body.Detail)

			mockAuth.AssertExpectations(t)
		})
	}
}

func TestRequireAuth_SetsUserID(t *testing.T) {
	mockAuth := new(testutil.MockAuthService)
	mockAuth.On("ValidateAccessToken", "good-token").Return(uint(42), nil)
	router := setupAuthRouter(mockAuth)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id": 42}`, w.Body.String())
	mockAuth.AssertExpectations(t)
}
