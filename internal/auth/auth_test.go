package auth

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seguimiento_proyectos/internal/models"
	"seguimiento_proyectos/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSessionCookieRoundTrip(t *testing.T) {
	gdb := testhelpers.NewDB(t)
	login := testhelpers.CreateLogin(t, gdb, "admin@uni.edu", "x")
	s := Sessions{Secret: "test-secret", Secure: true, SameSite: http.SameSiteNoneMode}

	r := gin.New()
	r.POST("/login", func(c *gin.Context) {
		_, err := s.Issue(c, login)
		require.NoError(t, err)
		c.Status(http.StatusNoContent)
	})
	r.GET("/me", Session(gdb, s), Required(), func(c *gin.Context) {
		id := LoginID(c)
		require.NotNil(t, id)
		c.JSON(http.StatusOK, gin.H{"id_login": *id})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	ck := cookies[0]
	assert.Equal(t, CookieName, ck.Name)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, http.SameSiteNoneMode, ck.SameSite)
	assert.Equal(t, 3600, ck.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(ck)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id_login":`+strconv.FormatInt(login.ID, 10)+`}`, w.Body.String())
}

func TestRequiredRejectsAnonymous(t *testing.T) {
	gdb := testhelpers.NewDB(t)
	s := Sessions{Secret: "test-secret"}

	r := gin.New()
	r.GET("/api/x", Session(gdb, s), Required(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/x", nil)
	req.Header.Set("Accept", "text/html")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestSessionIgnoresInactiveLogin(t *testing.T) {
	gdb := testhelpers.NewDB(t)
	login := testhelpers.CreateLogin(t, gdb, "baja@uni.edu", "x")
	require.NoError(t, gdb.Model(&models.Login{}).Where("id_login = ?", login.ID).Update("activo", false).Error)
	s := Sessions{Secret: "test-secret"}

	r := gin.New()
	r.GET("/login", func(c *gin.Context) {
		tok, err := s.Issue(c, login)
		require.NoError(t, err)
		c.String(http.StatusOK, tok)
	})
	r.GET("/api/x", Session(gdb, s), Required(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	tok := w.Body.String()

	req := httptest.NewRequest(http.MethodGet, "/api/x", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionRejectsForeignSignature(t *testing.T) {
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		LoginID:          1,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	tok, err := other.SignedString([]byte("another-secret"))
	require.NoError(t, err)

	_, err = Sessions{Secret: "test-secret"}.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestClearExpiresCookie(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Sessions{Secret: "x"}.Clear(c)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestResetTokens(t *testing.T) {
	rt := NewResetTokens("test-secret")

	tok, err := rt.Issue("est@uni.edu", 42)
	require.NoError(t, err)

	cl, err := rt.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "est@uni.edu", cl.Email)
	assert.Equal(t, int64(42), cl.CodeID)

	// a session token must not pass as a reset authorization
	session := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		LoginID:          1,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	sessionTok, err := session.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = rt.Parse(sessionTok)
	assert.ErrorIs(t, err, ErrInvalidResetToken)

	expired := ResetTokens{Secret: "test-secret", TTL: -time.Minute}
	tok, err = expired.Issue("est@uni.edu", 42)
	require.NoError(t, err)
	_, err = rt.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secreto123")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "secreto123"))
	assert.False(t, CheckPassword(hash, "otro"))
}
