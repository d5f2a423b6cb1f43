package middleware

import (
	"net/http"
	"os"
	"strings"

	"cpms-admin-api/config"
	"cpms-admin-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	FacultyID uint   `json:"faculty_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates JWT token
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get token from header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		// Check Bearer prefix
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		// Parse token
		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		// Get claims
		claims, ok := token.Claims.(*Claims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		// Check if the faculty account still exists
		var faculty models.Faculty
		if err := config.DB.Where("faculty_id = ? AND delete_at IS NULL", claims.FacultyID).First(&faculty).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Faculty not found"})
			c.Abort()
			return
		}

		// Set faculty info in context
		c.Set("facultyID", claims.FacultyID)
		c.Set("email", claims.Email)

		c.Next()
	}
}
