package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"seguimiento_proyectos/internal/audit"
	"seguimiento_proyectos/internal/auth"
	"seguimiento_proyectos/internal/models"
)

const moduloAutenticacion = "Autenticación"

// LoginHandler checks the credentials and sets the session cookie.
func LoginHandler(db *gorm.DB, sessions auth.Sessions, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tr := newTrail(rec, c, moduloAutenticacion, "Inicio de sesión")

		var input struct {
			Correo     string `json:"correo" binding:"required,email"`
			Contrasena string `json:"contrasena" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			tr.fail("datos de acceso incompletos", "")
			respondError(c, http.StatusBadRequest, "Correo y contraseña son obligatorios")
			return
		}
		correo := strings.ToLower(strings.TrimSpace(input.Correo))

		var login models.Login
		if err := db.Where("correo = ?", correo).First(&login).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				tr.exception(err, "")
				serverError(c, err, "Error al iniciar sesión")
				return
			}
			tr.fail("credenciales inválidas para "+correo, "")
			respondError(c, http.StatusUnauthorized, "Correo o contraseña incorrectos")
			return
		}

		if !auth.CheckPassword(login.Contrasena, input.Contrasena) {
			tr.fail("credenciales inválidas para "+correo, idString(login.ID))
			respondError(c, http.StatusUnauthorized, "Correo o contraseña incorrectos")
			return
		}
		if !login.Activo {
			tr.fail("cuenta inactiva "+correo, idString(login.ID))
			respondError(c, http.StatusForbidden, "La cuenta está inactiva")
			return
		}

		if _, err := sessions.Issue(c, login); err != nil {
			tr.exception(err, idString(login.ID))
			serverError(c, err, "Error al iniciar sesión")
			return
		}

		// the session is new, so the actor is not in the context yet
		auth.SetLoginID(c, login.ID)
		tr.log("Inicio de sesión de "+correo, idString(login.ID))

		var admin models.Administrador
		if err := db.Where("id_login = ?", login.ID).First(&admin).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("⚠️ login %d: profile lookup: %v", login.ID, err)
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Inicio de sesión exitoso",
			"usuario": gin.H{
				"id_login": login.ID,
				"correo":   login.Correo,
				"rol":      login.Rol,
				"nombre":   admin.Nombre,
				"apellido": admin.Apellido,
			},
		})
	}
}

func LogoutHandler(sessions auth.Sessions, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tr := newTrail(rec, c, moduloAutenticacion, "Cerrar sesión")
		sessions.Clear(c)
		tr.log("Cierre de sesión", "")
		c.JSON(http.StatusOK, gin.H{"message": "Sesión cerrada"})
	}
}

// SessionHandler reports the current session for the dashboard.
func SessionHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cl, ok := auth.ClaimsFrom(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"autenticado": false})
			return
		}

		var admin models.Administrador
		err := db.Where("id_login = ?", cl.LoginID).First(&admin).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			serverError(c, err, "Error al consultar la sesión")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"autenticado": true,
			"usuario": gin.H{
				"id_login": cl.LoginID,
				"correo":   cl.Correo,
				"rol":      cl.Rol,
				"nombre":   admin.Nombre,
				"apellido": admin.Apellido,
			},
		})
	}
}
