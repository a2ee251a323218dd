package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfeintake/internal/domain"
	"nfeintake/internal/middleware"
	"nfeintake/internal/service"
	"nfeintake/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authRouter(authSvc service.AuthService) *gin.Engine {
	r := gin.New()
	r.Use(middleware.AuthMiddleware(authSvc))
	r.GET("/test", func(c *gin.Context) {
		tid, _ := middleware.GetTenantID(c)
		uid, _ := middleware.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{
			"tenant_id": tid,
			"user_id":   uid,
			"role":      c.GetString(middleware.ContextKeyRole),
		})
	})
	return r
}

func doGet(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errObj := resp["error"].(map[string]interface{})
	return errObj["code"].(string)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	claims := &service.Claims{TenantID: uuid.New(), UserID: uuid.New(), Role: domain.RoleMember}
	mockAuth.On("ValidateToken", "valid-token").Return(claims, nil)

	w := doGet(authRouter(mockAuth), "Bearer valid-token")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, claims.TenantID.String(), resp["tenant_id"])
	assert.Equal(t, claims.UserID.String(), resp["user_id"])
	assert.Equal(t, "member", resp["role"])
	mockAuth.AssertExpectations(t)
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	mockAuth.On("ValidateToken", "tok").
		Return(&service.Claims{TenantID: uuid.New(), UserID: uuid.New(), Role: domain.RoleAdmin}, nil)

	w := doGet(authRouter(mockAuth), "bearer tok")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_MissingOrMalformedHeader(t *testing.T) {
	for _, header := range []string{"", "Basic abc", "Bearer "} {
		mockAuth := new(mocks.MockAuthService)

		w := doGet(authRouter(mockAuth), header)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))
		mockAuth.AssertNotCalled(t, "ValidateToken")
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	mockAuth.On("ValidateToken", "expired").Return(nil, errors.New("token is expired"))

	w := doGet(authRouter(mockAuth), "Bearer expired")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))
}

func TestGetTenantID_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := middleware.GetTenantID(c)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	c.Set(middleware.ContextKeyTenantID, uuid.Nil)
	_, err = middleware.GetTenantID(c)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
