package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gabrielauvo/auvoautonomo-sub005/pkg"
)

const (
	// TechnicianIDHeader carries the authenticated technician id resolved by
	// the API gateway. This service trusts it; token verification happens
	// upstream, except for the optional shared-secret check below.
	TechnicianIDHeader = "X-Technician-ID"

	userIDContextKey = "user_id"
)

// TechnicianIdentity extracts the caller identity for ownership scoping.
// When SYNC_AUTH_TOKEN is set, the bearer token must match it; this is the
// local/dev substitute for running behind the gateway.
func TechnicianIdentity() gin.HandlerFunc {
	sharedToken := os.Getenv("SYNC_AUTH_TOKEN")

	return func(c *gin.Context) {
		if sharedToken != "" {
			auth := c.GetHeader("Authorization")
			token := strings.TrimPrefix(auth, "Bearer ")
			if token == auth || token != sharedToken {
				appErr := pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or invalid credentials", http.StatusUnauthorized)
				c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
				return
			}
		}

		userID := strings.TrimSpace(c.GetHeader(TechnicianIDHeader))
		if userID == "" {
			appErr := pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing technician identity", http.StatusUnauthorized)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}

		c.Set(userIDContextKey, userID)
		c.Next()
	}
}

// UserIDFromContext returns the technician id set by TechnicianIdentity.
func UserIDFromContext(c *gin.Context) string {
	return c.GetString(userIDContextKey)
}
