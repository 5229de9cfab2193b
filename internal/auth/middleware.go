package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"seguimiento_proyectos/internal/models"
)

const (
	ctxClaims  = "claims"
	ctxLoginID = "id_login"
)

// Session reads the session cookie (or a bearer token) and, when it belongs
// to an active login, stores the claims and id_login in the context.
// It never aborts: public routes still see the caller's identity when present.
func Session(db *gorm.DB, s Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))

		// Fallback: read from cookie if no Authorization header
		if tokenStr == "" {
			if cookie, err := c.Cookie(CookieName); err == nil {
				tokenStr = cookie
			}
		}
		if tokenStr == "" {
			c.Next()
			return
		}

		claims, err := s.Parse(tokenStr)
		if err != nil {
			c.Next()
			return
		}

		// Verify login still exists and is active
		var login models.Login
		if err := db.Select("id_login", "activo").First(&login, claims.LoginID).Error; err != nil || !login.Activo {
			c.Next()
			return
		}

		c.Set(ctxClaims, claims)
		c.Set(ctxLoginID, claims.LoginID)
		c.Next()
	}
}

// Required rejects requests without a valid session. Browser navigations
// are redirected to the dashboard login page instead.
func Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ctxLoginID); ok {
			c.Next()
			return
		}
		accept := c.GetHeader("Accept")
		if strings.Contains(accept, "text/html") && c.Request.Method == http.MethodGet {
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No autorizado"})
	}
}

// LoginID returns the authenticated login id, or nil for anonymous callers.
func LoginID(c *gin.Context) *int64 {
	v, ok := c.Get(ctxLoginID)
	if !ok {
		return nil
	}
	id, ok := v.(int64)
	if !ok {
		return nil
	}
	return &id
}

func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(ctxClaims)
	if !ok {
		return nil, false
	}
	cl, ok := v.(*Claims)
	return cl, ok
}

// SetLoginID marks the request as made by id, e.g. right after login.
func SetLoginID(c *gin.Context, id int64) {
	c.Set(ctxLoginID, id)
}
