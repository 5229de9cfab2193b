// Package recovery implements the emailed six-digit password recovery flow.
package recovery

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"seguimiento_proyectos/internal/auth"
	"seguimiento_proyectos/internal/mail"
	"seguimiento_proyectos/internal/models"
)

const (
	CodeTTL           = 15 * time.Minute
	MinPasswordLength = 6
	// MaxAttempts wrong guesses burn the live code.
	MaxAttempts = 5
)

var (
	ErrInvalidCode       = errors.New("código incorrecto o expirado")
	ErrExpiredCode       = errors.New("el código ha expirado")
	ErrWeakPassword      = fmt.Errorf("la contraseña debe tener al menos %d caracteres", MinPasswordLength)
	ErrInvalidResetToken = errors.New("autorización de restablecimiento inválida o expirada")
	ErrUnknownAccount    = errors.New("cuenta no encontrada")
)

type Manager struct {
	db     *gorm.DB
	mailer mail.Sender
	tokens auth.ResetTokens
	now    func() time.Time
}

func NewManager(db *gorm.DB, mailer mail.Sender, tokens auth.ResetTokens) *Manager {
	return &Manager{db: db, mailer: mailer, tokens: tokens, now: time.Now}
}

// WithClock replaces the time source; tests use it to age codes.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// RequestCode issues a new code for email and mails it. Unknown accounts
// get no code; sent reports which case happened so it can be
// audited, while callers answer both the same way.
func (m *Manager) RequestCode(ctx context.Context, email string) (sent bool, err error) {
	email = normalize(email)

	var login models.Login
	err = m.db.WithContext(ctx).Where("correo = ?", email).First(&login).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup login: %w", err)
	}

	code, err := generateCode()
	if err != nil {
		return false, err
	}
	now := m.now()
	row := models.CodigoRecuperacion{
		Email:      email,
		CodigoHash: m.hashCode(code),
		Expiracion: now.Add(CodeTTL),
	}

	// at most one live code per email; the login row lock serialises
	// concurrent requests for the same account
	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id_login = ?", login.ID).
			First(&models.Login{}).Error; err != nil {
			return err
		}
		// older codes, and reset tokens already issued from them, stop working
		if err := tx.Model(&models.CodigoRecuperacion{}).
			Where("email = ? AND restablecido_en IS NULL", email).
			Updates(map[string]any{"usado": true, "restablecido_en": now}).Error; err != nil {
			return err
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return false, fmt.Errorf("store code: %w", err)
	}

	msg, err := mail.RecoveryCodeMessage(email, code, CodeTTL)
	if err != nil {
		return false, err
	}
	if err := m.mailer.Send(ctx, msg); err != nil {
		return false, fmt.Errorf("send code: %w", err)
	}
	return true, nil
}

// VerifyCode consumes the code and returns a short-lived reset token.
// A matching but expired code is consumed too, and so is a live code after
// MaxAttempts wrong guesses.
func (m *Manager) VerifyCode(ctx context.Context, email, code string) (string, error) {
	email = normalize(email)
	code = strings.TrimSpace(code)

	var row models.CodigoRecuperacion
	err := m.db.WithContext(ctx).
		Where("email = ? AND usado = ?", email, false).
		Order("id DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrInvalidCode
	}
	if err != nil {
		return "", fmt.Errorf("lookup code: %w", err)
	}

	if !hmac.Equal([]byte(row.CodigoHash), []byte(m.hashCode(code))) {
		if err := m.countFailure(ctx, row.ID); err != nil {
			return "", err
		}
		return "", ErrInvalidCode
	}

	res := m.db.WithContext(ctx).Model(&models.CodigoRecuperacion{}).
		Where("id = ? AND usado = ?", row.ID, false).
		Update("usado", true)
	if res.Error != nil {
		return "", fmt.Errorf("consume code: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// consumed concurrently
		return "", ErrInvalidCode
	}

	if m.now().After(row.Expiracion) {
		return "", ErrExpiredCode
	}

	token, err := m.tokens.Issue(email, row.ID)
	if err != nil {
		return "", fmt.Errorf("issue reset token: %w", err)
	}
	return token, nil
}

// ResetPassword stores a new bcrypt hash. The token is spent on success.
func (m *Manager) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	email = normalize(email)
	if len(newPassword) < MinPasswordLength {
		return ErrWeakPassword
	}

	claims, err := m.tokens.Parse(token)
	if err != nil || claims.Email != email {
		return ErrInvalidResetToken
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CodigoRecuperacion{}).
			Where("id = ? AND email = ? AND restablecido_en IS NULL", claims.CodeID, email).
			Update("restablecido_en", m.now())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidResetToken
		}

		res = tx.Model(&models.Login{}).
			Where("correo = ?", email).
			Update("contrasena", hash)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUnknownAccount
		}
		return nil
	})
}

func (m *Manager) countFailure(ctx context.Context, id int64) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CodigoRecuperacion{}).
			Where("id = ?", id).
			Update("intentos", gorm.Expr("intentos + 1")).Error; err != nil {
			return fmt.Errorf("count attempt: %w", err)
		}
		if err := tx.Model(&models.CodigoRecuperacion{}).
			Where("id = ? AND intentos >= ?", id, MaxAttempts).
			Update("usado", true).Error; err != nil {
			return fmt.Errorf("burn code: %w", err)
		}
		return nil
	})
}

// hashCode keys the digest with the reset-token secret so a leaked table
// alone does not give the codes away.
func (m *Manager) hashCode(code string) string {
	mac := hmac.New(sha512.New, []byte(m.tokens.Secret))
	mac.Write([]byte(code))
	return hex.EncodeToString(mac.Sum(nil))
}

// generateCode returns a uniform six-digit code in [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
