package service_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfeintake/internal/config"
	"nfeintake/internal/domain"
	"nfeintake/internal/service"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "identity", Audience: "nfeintake"}
}

func signToken(t *testing.T, secret string, claims *service.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func validClaims(tenantID, userID uuid.UUID) *service.Claims {
	now := time.Now()
	return &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    "identity",
			Audience:  jwt.ClaimStrings{"nfeintake"},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		TenantID: tenantID,
		UserID:   userID,
		Email:    "buyer@example.com",
		Role:     domain.RoleMember,
	}
}

func TestAuthService_ValidateToken_Success(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig())
	tenantID, userID := uuid.New(), uuid.New()

	claims, err := svc.ValidateToken(signToken(t, "test-secret", validClaims(tenantID, userID)))

	require.NoError(t, err)
	assert.Equal(t, tenantID, claims.TenantID)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, domain.RoleMember, claims.Role)
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig())

	_, err := svc.ValidateToken(signToken(t, "other-secret", validClaims(uuid.New(), uuid.New())))
	assert.Error(t, err)
}

func TestAuthService_ValidateToken_Expired(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig())
	claims := validClaims(uuid.New(), uuid.New())
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	_, err := svc.ValidateToken(signToken(t, "test-secret", claims))
	assert.Error(t, err)
}

func TestAuthService_ValidateToken_WrongAudience(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig())
	claims := validClaims(uuid.New(), uuid.New())
	claims.Audience = jwt.ClaimStrings{"billing"}

	_, err := svc.ValidateToken(signToken(t, "test-secret", claims))
	assert.Error(t, err)
}

func TestAuthService_ValidateToken_MissingTenant(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig())

	_, err := svc.ValidateToken(signToken(t, "test-secret", validClaims(uuid.Nil, uuid.New())))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig())

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
