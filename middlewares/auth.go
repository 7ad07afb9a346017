package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventdesk/utils"
)

// Authenticate verifies the bearer token and stores userId in the context
// for the handlers and the per-user limiters behind it.
func Authenticate(c *gin.Context) {
	token := c.Request.Header.Get("Authorization")
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized."})
		return
	}

	userId, err := utils.VerifyToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized."})
		return
	}

	c.Set("userId", userId)
	c.Next()
}
