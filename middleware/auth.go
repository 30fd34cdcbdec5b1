package middleware

import (
	"context"
	"errors"
	"strings"

	"blog-platform-api/models"
	"blog-platform-api/repositories"
	"blog-platform-api/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type identityContextKey struct{}

// AuthContext resolves the caller's identity for the request. A missing,
// expired or otherwise invalid token degrades to anonymous instead of
// rejecting the request; public reads must keep working when a client sends a
// stale token. Authorization failures happen later, in the guard.
func AuthContext(tokens services.TokenService, users repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := resolveIdentity(c.GetHeader("Authorization"), tokens, users)

		ctx := WithIdentity(c.Request.Context(), identity)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func resolveIdentity(header string, tokens services.TokenService, users repositories.UserRepository) models.Identity {
	tokenString := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(header), "Bearer "))
	if tokenString == "" {
		return models.Anonymous()
	}

	claims, err := tokens.Verify(tokenString)
	if err != nil {
		var tokenErr *models.TokenError
		if errors.As(err, &tokenErr) {
			logrus.WithField("kind", string(tokenErr.Kind)).Warn("token rejected, continuing as anonymous")
		} else {
			logrus.WithError(err).Warn("token verification failed, continuing as anonymous")
		}
		return models.Anonymous()
	}

	// A valid token pointing at a deleted user is anonymous, not an error.
	user, err := users.GetByID(claims.UserID)
	if err != nil {
		logrus.WithError(err).Warn("user lookup failed during auth, continuing as anonymous")
		return models.Anonymous()
	}
	if user == nil {
		logrus.WithField("user_id", claims.UserID).Warn("token references unknown user, continuing as anonymous")
		return models.Anonymous()
	}

	return models.Identity{UserID: user.ID, Email: user.Email, Role: user.Role}
}

func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// IdentityFromContext returns the request identity, anonymous when absent.
func IdentityFromContext(ctx context.Context) models.Identity {
	if identity, ok := ctx.Value(identityContextKey{}).(models.Identity); ok {
		return identity
	}
	return models.Anonymous()
}
