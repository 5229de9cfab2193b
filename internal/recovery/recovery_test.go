package recovery

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"seguimiento_proyectos/internal/auth"
	"seguimiento_proyectos/internal/mail"
	"seguimiento_proyectos/internal/models"
	"seguimiento_proyectos/internal/testhelpers"
)

type captureSender struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (c *captureSender) Send(_ context.Context, msg mail.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, msg)
	return c.err
}

func (c *captureSender) lastCode(t *testing.T) string {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	require.NotEmpty(t, c.sent)
	return testhelpers.MailedCode(t, c.sent[len(c.sent)-1].HTML)
}

func setup(t *testing.T) (*gorm.DB, *Manager, *captureSender) {
	t.Helper()
	gdb := testhelpers.NewDB(t)
	hash, err := auth.HashPassword("anterior1")
	require.NoError(t, err)
	testhelpers.CreateLogin(t, gdb, "test@example.com", hash)

	sender := &captureSender{}
	return gdb, NewManager(gdb, sender, auth.NewResetTokens("test-secret")), sender
}

func unusedCodes(t *testing.T, gdb *gorm.DB, email string) []models.CodigoRecuperacion {
	t.Helper()
	var rows []models.CodigoRecuperacion
	require.NoError(t, gdb.Where("email = ? AND usado = ?", email, false).Find(&rows).Error)
	return rows
}

func TestRequestCodeStoresSingleLiveCode(t *testing.T) {
	gdb, m, sender := setup(t)
	ctx := context.Background()

	sent, err := m.RequestCode(ctx, " Test@Example.com ")
	require.NoError(t, err)
	assert.True(t, sent)

	rows := unusedCodes(t, gdb, "test@example.com")
	require.Len(t, rows, 1)
	assert.WithinDuration(t, time.Now().Add(CodeTTL), rows[0].Expiracion, 5*time.Second)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "test@example.com", sender.sent[0].To)
	code := sender.lastCode(t)
	assert.Regexp(t, regexp.MustCompile(`^[1-9][0-9]{5}$`), code)
	assert.NotContains(t, rows[0].CodigoHash, code)
	assert.Len(t, rows[0].CodigoHash, 128)

	_, err = m.RequestCode(ctx, "test@example.com")
	require.NoError(t, err)

	live := unusedCodes(t, gdb, "test@example.com")
	require.Len(t, live, 1)
	assert.NotEqual(t, rows[0].ID, live[0].ID)

	var total int64
	require.NoError(t, gdb.Model(&models.CodigoRecuperacion{}).Count(&total).Error)
	assert.Equal(t, int64(2), total)
}

func TestRequestCodeUnknownEmail(t *testing.T) {
	gdb, m, sender := setup(t)

	sent, err := m.RequestCode(context.Background(), "nadie@example.com")
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, sender.sent)

	var total int64
	require.NoError(t, gdb.Model(&models.CodigoRecuperacion{}).Count(&total).Error)
	assert.Zero(t, total)
}

func TestRequestCodeMailFailure(t *testing.T) {
	_, m, sender := setup(t)
	sender.err = errors.New("relay down")

	_, err := m.RequestCode(context.Background(), "test@example.com")
	assert.ErrorContains(t, err, "relay down")
}

func TestVerifyCodeIsSingleUse(t *testing.T) {
	gdb, m, sender := setup(t)
	ctx := context.Background()

	_, err := m.RequestCode(ctx, "test@example.com")
	require.NoError(t, err)
	code := sender.lastCode(t)

	_, err = m.VerifyCode(ctx, "test@example.com", wrongCode(code))
	assert.ErrorIs(t, err, ErrInvalidCode)

	token, err := m.VerifyCode(ctx, "test@example.com", code)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = m.VerifyCode(ctx, "test@example.com", code)
	assert.ErrorIs(t, err, ErrInvalidCode)
	assert.Empty(t, unusedCodes(t, gdb, "test@example.com"))
}

func TestVerifyExpiredCodeMarksUsed(t *testing.T) {
	gdb, m, sender := setup(t)
	ctx := context.Background()

	_, err := m.RequestCode(ctx, "test@example.com")
	require.NoError(t, err)
	code := sender.lastCode(t)

	m.WithClock(func() time.Time { return time.Now().Add(CodeTTL + time.Minute) })

	_, err = m.VerifyCode(ctx, "test@example.com", code)
	assert.ErrorIs(t, err, ErrExpiredCode)
	assert.Empty(t, unusedCodes(t, gdb, "test@example.com"))

	_, err = m.VerifyCode(ctx, "test@example.com", code)
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestResetPasswordRequiresVerifiedCode(t *testing.T) {
	gdb, m, sender := setup(t)
	ctx := context.Background()

	err := m.ResetPassword(ctx, "test@example.com", "forged", "nueva123")
	assert.ErrorIs(t, err, ErrInvalidResetToken)

	_, err = m.RequestCode(ctx, "test@example.com")
	require.NoError(t, err)
	code := sender.lastCode(t)
	token, err := m.VerifyCode(ctx, "test@example.com", code)
	require.NoError(t, err)

	assert.ErrorIs(t, m.ResetPassword(ctx, "test@example.com", token, "corta"), ErrWeakPassword)
	assert.ErrorIs(t, m.ResetPassword(ctx, "otro@example.com", token, "nueva123"), ErrInvalidResetToken)

	require.NoError(t, m.ResetPassword(ctx, "test@example.com", token, "nueva123"))

	var login models.Login
	require.NoError(t, gdb.Where("correo = ?", "test@example.com").First(&login).Error)
	assert.True(t, auth.CheckPassword(login.Contrasena, "nueva123"))

	// the authorization is spent
	assert.ErrorIs(t, m.ResetPassword(ctx, "test@example.com", token, "otra1234"), ErrInvalidResetToken)
}

func TestWrongGuessesBurnTheCode(t *testing.T) {
	gdb, m, sender := setup(t)
	ctx := context.Background()

	_, err := m.RequestCode(ctx, "test@example.com")
	require.NoError(t, err)
	code := sender.lastCode(t)

	for i := 0; i < MaxAttempts-1; i++ {
		_, err = m.VerifyCode(ctx, "test@example.com", wrongCode(code))
		require.ErrorIs(t, err, ErrInvalidCode)
	}
	live := unusedCodes(t, gdb, "test@example.com")
	require.Len(t, live, 1)
	assert.Equal(t, MaxAttempts-1, live[0].Intentos)

	_, err = m.VerifyCode(ctx, "test@example.com", wrongCode(code))
	require.ErrorIs(t, err, ErrInvalidCode)
	assert.Empty(t, unusedCodes(t, gdb, "test@example.com"))

	// the right code is useless once burned
	_, err = m.VerifyCode(ctx, "test@example.com", code)
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestNewRequestRevokesIssuedResetToken(t *testing.T) {
	gdb, m, sender := setup(t)
	ctx := context.Background()

	_, err := m.RequestCode(ctx, "test@example.com")
	require.NoError(t, err)
	token, err := m.VerifyCode(ctx, "test@example.com", sender.lastCode(t))
	require.NoError(t, err)

	_, err = m.RequestCode(ctx, "test@example.com")
	require.NoError(t, err)

	assert.ErrorIs(t, m.ResetPassword(ctx, "test@example.com", token, "nueva123"), ErrInvalidResetToken)

	var login models.Login
	require.NoError(t, gdb.Where("correo = ?", "test@example.com").First(&login).Error)
	assert.True(t, auth.CheckPassword(login.Contrasena, "anterior1"))

	// the newer code still goes through
	token, err = m.VerifyCode(ctx, "test@example.com", sender.lastCode(t))
	require.NoError(t, err)
	require.NoError(t, m.ResetPassword(ctx, "test@example.com", token, "nueva123"))
}

func TestConcurrentRequestsKeepSingleLiveCode(t *testing.T) {
	gdb, m, _ := setup(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.RequestCode(ctx, "test@example.com")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.Len(t, unusedCodes(t, gdb, "test@example.com"), 1)
}

// wrongCode returns a valid-looking code that differs from code.
func wrongCode(code string) string {
	if code == "123456" {
		return "654321"
	}
	return "123456"
}

func TestGenerateCodeRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.GreaterOrEqual(t, code, "100000")
		assert.LessOrEqual(t, code, "999999")
	}
}
