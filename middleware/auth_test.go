package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blog-platform-api/models"
	"blog-platform-api/repositories"
	"blog-platform-api/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type whoami struct {
	Anonymous bool   `json:"anonymous"`
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

func setupAuthTest(t *testing.T) (*gin.Engine, services.TokenService, repositories.UserRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repositories.NewMemoryStore()
	tokens := services.NewTokenService([]byte("test-secret"), time.Hour)

	router := gin.New()
	router.GET("/whoami", AuthContext(tokens, store.Users()), func(c *gin.Context) {
		identity := IdentityFromContext(c.Request.Context())
		c.JSON(http.StatusOK, whoami{
			Anonymous: identity.Anonymous,
			UserID:    identity.UserID,
			Email:     identity.Email,
			Role:      string(identity.Role),
		})
	})

	return router, tokens, store.Users()
}

func doWhoami(t *testing.T, router *gin.Engine, authorization string) whoami {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var got whoami
	require.NoError(t, unmarshalBody(recorder, &got))
	return got
}

func unmarshalBody(recorder *httptest.ResponseRecorder, v interface{}) error {
	return json.Unmarshal(recorder.Body.Bytes(), v)
}

func TestAuthContext_MissingHeaderIsAnonymous(t *testing.T) {
	router, _, _ := setupAuthTest(t)

	got := doWhoami(t, router, "")
	assert.True(t, got.Anonymous)
}

func TestAuthContext_ValidToken(t *testing.T) {
	router, tokens, users := setupAuthTest(t)

	now := time.Now()
	require.NoError(t, users.Create(&models.User{
		ID:        "alice",
		Email:     "alice@example.com",
		Name:      "Alice",
		Role:      models.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}))

	token, err := tokens.Issue("alice", "alice@example.com")
	require.NoError(t, err)

	got := doWhoami(t, router, "Bearer "+token)
	assert.False(t, got.Anonymous)
	assert.Equal(t, "alice", got.UserID)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, "admin", got.Role)
}

func TestAuthContext_TokenWithoutBearerPrefix(t *testing.T) {
	router, tokens, users := setupAuthTest(t)

	now := time.Now()
	require.NoError(t, users.Create(&models.User{
		ID:        "alice",
		Email:     "alice@example.com",
		Name:      "Alice",
		Role:      models.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}))

	token, err := tokens.Issue("alice", "alice@example.com")
	require.NoError(t, err)

	got := doWhoami(t, router, token)
	assert.False(t, got.Anonymous)
	assert.Equal(t, "alice", got.UserID)
}

func TestAuthContext_GarbageTokenFailsOpen(t *testing.T) {
	router, _, _ := setupAuthTest(t)

	got := doWhoami(t, router, "Bearer not-a-token")
	assert.True(t, got.Anonymous)
}

func TestAuthContext_ExpiredTokenFailsOpen(t *testing.T) {
	router, tokens, users := setupAuthTest(t)

	now := time.Now()
	require.NoError(t, users.Create(&models.User{
		ID:        "alice",
		Email:     "alice@example.com",
		Name:      "Alice",
		Role:      models.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}))

	token, err := tokens.IssueWithTTL("alice", "alice@example.com", -1*time.Second)
	require.NoError(t, err)

	got := doWhoami(t, router, "Bearer "+token)
	assert.True(t, got.Anonymous)
}

func TestAuthContext_TokenForUnknownUserIsAnonymous(t *testing.T) {
	router, tokens, _ := setupAuthTest(t)

	// Valid signature, but the user was never stored (or has been deleted).
	token, err := tokens.Issue("ghost", "ghost@example.com")
	require.NoError(t, err)

	got := doWhoami(t, router, "Bearer "+token)
	assert.True(t, got.Anonymous)
}
