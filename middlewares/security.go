package middlewares

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")

		c.Next()
	}
}

// UploadsFilter only lets image files through under /uploads.
func UploadsFilter(allowed ...string) gin.HandlerFunc {
	set := make(map[string]bool, len(allowed))
	for _, ext := range allowed {
		set[ext] = true
	}
	return func(c *gin.Context) {
		if !set[strings.ToLower(path.Ext(c.Request.URL.Path))] {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
