package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geoquiz/geoquiz-backend/internal/response"
	"github.com/geoquiz/geoquiz-backend/internal/service"
)

// CheckSingleDeviceSession validates the JWT's JTI against the active
// login session in Redis. If the JTI doesn't match, the token belongs to
// a login that has since been replaced or logged out.
func CheckSingleDeviceSession(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			// Anonymous requests carry no login session to check.
			c.Next()
			return
		}

		if err := authService.ValidateSession(c.Request.Context(), claims.Username, claims.ID); err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
			return
		}

		c.Next()
	}
}
