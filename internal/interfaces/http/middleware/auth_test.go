package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/TalentMatch-AI/internal/config"
	"github.com/turtacn/TalentMatch-AI/internal/domain/identity"
)

const testSecret = "unit-test-secret"

func authCfg() config.AuthConfig {
	return config.AuthConfig{JWTSecret: testSecret, Audience: "talentmatch-api"}
}

func signToken(t *testing.T, sub string, role string, opts ...func(*Claims)) string {
	t.Helper()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Audience:  jwt.ClaimStrings{"talentmatch-api"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	for _, o := range opts {
		o(claims)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func authedRouter() (*gin.Engine, *identity.Identity) {
	gin.SetMode(gin.TestMode)
	captured := &identity.Identity{}
	r := gin.New()
	r.GET("/protected", Auth(authCfg()), func(c *gin.Context) {
		ident, _ := IdentityFrom(c)
		*captured = ident
		c.Status(http.StatusOK)
	})
	return r, captured
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthAcceptsValidToken(t *testing.T) {
	r, captured := authedRouter()
	userID := uuid.New()
	w := doGet(r, "Bearer "+signToken(t, userID.String(), "RECRUITER"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, captured.UserID)
	assert.Equal(t, identity.RoleRecruiter, captured.Role)
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	r, _ := authedRouter()
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "").Code)
}

func TestAuthRejectsWrongScheme(t *testing.T) {
	r, _ := authedRouter()
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Basic abc").Code)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	r, _ := authedRouter()
	token := signToken(t, uuid.NewString(), "JOB_SEEKER", func(c *Claims) {
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	})
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer "+token).Code)
}

func TestAuthRejectsWrongAudience(t *testing.T) {
	r, _ := authedRouter()
	token := signToken(t, uuid.NewString(), "JOB_SEEKER", func(c *Claims) {
		c.Audience = jwt.ClaimStrings{"someone-else"}
	})
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer "+token).Code)
}

func TestAuthRejectsTamperedToken(t *testing.T) {
	r, _ := authedRouter()
	token := signToken(t, uuid.NewString(), "JOB_SEEKER")
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer "+token+"x").Code)
}

func TestAuthRejectsNonUUIDSubject(t *testing.T) {
	r, _ := authedRouter()
	token := signToken(t, "not-a-uuid", "JOB_SEEKER")
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer "+token).Code)
}
