package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"biomed-backend/internal/service/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func adminLoginHandler(svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		token, err := svc.Login(req.Email, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// adminMiddleware requires a Bearer token carrying the admin role.
func adminMiddleware(svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		claims, err := svc.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			if errors.Is(err, auth.ErrForbidden) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set("admin", claims)
		c.Next()
	}
}

func adminOrdersHandler(svc OrderService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.List(c.Request.Context())
		if err != nil {
			logger.Printf("list orders: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}
