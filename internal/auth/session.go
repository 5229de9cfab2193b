package auth

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"seguimiento_proyectos/internal/models"
)

const (
	CookieName = "sesion"
	SessionTTL = time.Hour
)

var ErrInvalidSession = errors.New("invalid or expired session")

// Claims represents the session JWT claims.
type Claims struct {
	LoginID int64  `json:"uid"`
	Correo  string `json:"correo"`
	Rol     string `json:"rol"`
	jwt.RegisteredClaims
}

// Sessions issues and clears the HTTP-only session cookie.
type Sessions struct {
	Secret   string
	Secure   bool
	SameSite http.SameSite
}

func (s Sessions) Issue(c *gin.Context, login models.Login) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		LoginID: login.ID,
		Correo:  login.Correo,
		Rol:     login.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(login.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	})

	signed, err := token.SignedString([]byte(s.Secret))
	if err != nil {
		return "", err
	}

	c.SetSameSite(s.SameSite)
	c.SetCookie(CookieName, signed, int(SessionTTL.Seconds()), "/", "", s.Secure, true)
	return signed, nil
}

func (s Sessions) Clear(c *gin.Context) {
	c.SetSameSite(s.SameSite)
	c.SetCookie(CookieName, "", -1, "/", "", s.Secure, true)
}

func (s Sessions) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.LoginID == 0 {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
