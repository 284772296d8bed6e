package api

import (
	"github.com/gin-gonic/gin"
)

// jsonError aborts the request with a JSON error body.
func jsonError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
