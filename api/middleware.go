package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// requireAgent authenticates back-office requests with a bearer token issued
// by the auth service. Both agent and admin roles may retranscribe.
func (s *Server) requireAgent() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		agentID, role, err := s.auth.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("agent_id", agentID)
		c.Set("agent_role", string(role))
		c.Next()
	}
}
