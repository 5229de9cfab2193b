package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ResetTokenTTL = 10 * time.Minute
	resetPurpose  = "password_reset"
)

var ErrInvalidResetToken = errors.New("invalid or expired reset token")

// ResetTokens signs the short-lived authorization handed out after a
// recovery code is verified.
type ResetTokens struct {
	Secret string
	TTL    time.Duration
}

func NewResetTokens(secret string) ResetTokens {
	return ResetTokens{Secret: secret, TTL: ResetTokenTTL}
}

type ResetClaims struct {
	Email  string
	CodeID int64
}

type resetClaims struct {
	Purpose string `json:"purpose"`
	Email   string `json:"email"`
	CodeID  int64  `json:"cid"`
	jwt.RegisteredClaims
}

func (r ResetTokens) Issue(email string, codeID int64) (string, error) {
	ttl := r.TTL
	if ttl == 0 {
		ttl = ResetTokenTTL
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, resetClaims{
		Purpose: resetPurpose,
		Email:   email,
		CodeID:  codeID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(codeID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString([]byte(r.Secret))
}

func (r ResetTokens) Parse(tokenStr string) (ResetClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &resetClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(r.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return ResetClaims{}, ErrInvalidResetToken
	}
	cl, ok := token.Claims.(*resetClaims)
	if !ok || cl.Purpose != resetPurpose || cl.CodeID == 0 {
		return ResetClaims{}, ErrInvalidResetToken
	}
	return ResetClaims{Email: cl.Email, CodeID: cl.CodeID}, nil
}
