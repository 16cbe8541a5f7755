package middleware

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// InternalTokenAuth protects the import collaborator endpoints using a static
// bearer token. The importer is the only caller of these routes.
func InternalTokenAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !importEnabled() {
			logImportAuthFailure(c, http.StatusForbidden, "disabled")
			writeInternalError(c, http.StatusForbidden, "AUTH_INVALID", "Recipe import disabled")
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logImportAuthFailure(c, http.StatusUnauthorized, "missing_auth")
			writeInternalError(c, http.StatusUnauthorized, "AUTH_MISSING", "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logImportAuthFailure(c, http.StatusUnauthorized, "invalid_auth_format")
			writeInternalError(c, http.StatusUnauthorized, "AUTH_INVALID", "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		expected := os.Getenv("IMPORT_TOKEN")
		if expected == "" {
			logImportAuthFailure(c, http.StatusInternalServerError, "token_not_configured")
			writeInternalError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Import token is not configured")
			c.Abort()
			return
		}

		if parts[1] != expected {
			logImportAuthFailure(c, http.StatusForbidden, "invalid_token")
			writeInternalError(c, http.StatusForbidden, "AUTH_INVALID", "Invalid import token")
			c.Abort()
			return
		}

		c.Next()
	}
}

func writeInternalError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func importEnabled() bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv("IMPORT_ENABLED")))
	if value == "" {
		return true
	}
	return value == "true" || value == "1"
}

func logImportAuthFailure(c *gin.Context, status int, reason string) {
	log.Printf("import_auth status=%d request_id=%s reason=%s", status, requestID(c), reason)
}
