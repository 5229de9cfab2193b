package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"seguimiento_proyectos/internal/audit"
	"seguimiento_proyectos/internal/mail"
	"seguimiento_proyectos/internal/recovery"
)

const (
	moduloRecuperacion = "Recuperación de contraseña"
	mensajeGenerico    = "Si el correo está registrado, recibirá un código de verificación"
)

// RecuperarPassword never tells whether the email exists.
func RecuperarPassword(mgr *recovery.Manager, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tr := newTrail(rec, c, moduloRecuperacion, "Solicitud de recuperación")

		var input struct {
			Email string `json:"email"`
		}
		if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Email) == "" {
			tr.fail("correo no indicado", "")
			respondError(c, http.StatusBadRequest, "El correo es obligatorio")
			return
		}

		sent, err := mgr.RequestCode(c.Request.Context(), input.Email)
		if err != nil {
			tr.exception(err, "")
			serverError(c, err, "Error al procesar la solicitud")
			return
		}

		if sent {
			tr.log("Código de recuperación enviado a "+input.Email, "")
		} else {
			tr.log("Solicitud para correo no registrado "+input.Email, "")
		}
		c.JSON(http.StatusOK, gin.H{"message": mensajeGenerico})
	}
}

func VerificarCodigo(mgr *recovery.Manager, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tr := newTrail(rec, c, moduloRecuperacion, "Verificación de código")

		var input struct {
			Email  string `json:"email"`
			Codigo string `json:"codigo"`
		}
		if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Codigo == "" {
			tr.fail("correo o código no indicados", "")
			respondError(c, http.StatusBadRequest, "Correo y código son obligatorios")
			return
		}

		token, err := mgr.VerifyCode(c.Request.Context(), input.Email, input.Codigo)
		switch {
		case errors.Is(err, recovery.ErrInvalidCode):
			tr.fail("código incorrecto para "+input.Email, "")
			respondError(c, http.StatusBadRequest, "Código incorrecto o expirado")
			return
		case errors.Is(err, recovery.ErrExpiredCode):
			tr.fail("código expirado para "+input.Email, "")
			respondError(c, http.StatusBadRequest, "El código ha expirado")
			return
		case err != nil:
			tr.exception(err, "")
			serverError(c, err, "Error al verificar el código")
			return
		}

		tr.log("Código verificado para "+input.Email, "")
		c.JSON(http.StatusOK, gin.H{
			"message":     "Código verificado correctamente",
			"reset_token": token,
		})
	}
}

func ResetearPassword(mgr *recovery.Manager, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tr := newTrail(rec, c, moduloRecuperacion, "Restablecer contraseña")

		var input struct {
			Email         string `json:"email"`
			NuevaPassword string `json:"nueva_password"`
			ResetToken    string `json:"reset_token"`
		}
		if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.NuevaPassword == "" {
			tr.fail("datos incompletos", "")
			respondError(c, http.StatusBadRequest, "Correo y nueva contraseña son obligatorios")
			return
		}

		err := mgr.ResetPassword(c.Request.Context(), input.Email, input.ResetToken, input.NuevaPassword)
		switch {
		case errors.Is(err, recovery.ErrWeakPassword):
			tr.fail("contraseña demasiado corta", "")
			respondError(c, http.StatusBadRequest, err.Error())
			return
		case errors.Is(err, recovery.ErrInvalidResetToken):
			tr.fail("autorización inválida para "+input.Email, "")
			respondError(c, http.StatusBadRequest, "Debe verificar el código antes de restablecer la contraseña")
			return
		case errors.Is(err, recovery.ErrUnknownAccount):
			tr.fail("cuenta inexistente "+input.Email, "")
			respondError(c, http.StatusNotFound, "Cuenta no encontrada")
			return
		case err != nil:
			tr.exception(err, "")
			serverError(c, err, "Error al restablecer la contraseña")
			return
		}

		tr.log("Contraseña restablecida para "+input.Email, "")
		c.JSON(http.StatusOK, gin.H{"message": "Contraseña actualizada correctamente"})
	}
}

// EnviarCorreoActivacion mails a new administrator the dashboard link.
func EnviarCorreoActivacion(mailer mail.Sender, loginURL string, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tr := newTrail(rec, c, "Administradores", "Envío de correo de activación")

		var input struct {
			Email  string `json:"email" binding:"required,email"`
			Nombre string `json:"nombre"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			tr.fail("correo inválido", "")
			respondError(c, http.StatusBadRequest, "Debe indicar un correo válido")
			return
		}

		msg, err := mail.ActivationMessage(input.Email, input.Nombre, loginURL)
		if err == nil {
			err = mailer.Send(c.Request.Context(), msg)
		}
		if err != nil {
			tr.exception(err, "")
			serverError(c, err, "Error al enviar el correo de activación")
			return
		}

		tr.log("Correo de activación enviado a "+input.Email, "")
		c.JSON(http.StatusOK, gin.H{"message": "Correo de activación enviado"})
	}
}
