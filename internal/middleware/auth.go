package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/conduit-dev/conduit/db"
	"github.com/conduit-dev/conduit/internal/auth"
	"github.com/conduit-dev/conduit/internal/models"
	"github.com/conduit-dev/conduit/internal/types"
	"github.com/gin-gonic/gin"
)

type AuthenticatedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ResolveUser runs on every request. It turns an optional Authorization
// header into an identity in the request context: authenticated when the
// token verifies and the user row still exists, anonymous otherwise. It
// never rejects the request; anonymous access is valid for public routes,
// so verification failures are swallowed rather than surfaced.
func ResolveUser(tokens *auth.TokenService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 {
			ctx.Next()
			return
		}

		claims, err := tokens.Verify(parts[1])

		if err != nil {
			ctx.Next()
			return
		}

		var user models.User

		if err := db.DB.WithContext(ctx.Request.Context()).First(&user, claims.UserID).Error; err != nil {
			ctx.Next()
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		})
		ctx.Next()
	}
}

// AuthRequired rejects requests for which ResolveUser left the identity
// anonymous. This is the only place an anonymous identity becomes a hard
// failure.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, exists := ctx.Get(types.ContextUserKey); !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
			return
		}

		ctx.Next()
	}
}

// RequestTimeout attaches a deadline to the request context so in-flight
// store operations are cancelled cooperatively.
func RequestTimeout(d time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		timeoutCtx, cancel := context.WithTimeout(ctx.Request.Context(), d)
		defer cancel()

		ctx.Request = ctx.Request.WithContext(timeoutCtx)
		ctx.Next()
	}
}
