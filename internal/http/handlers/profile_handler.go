package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"seguimiento_proyectos/internal/audit"
	"seguimiento_proyectos/internal/auth"
	"seguimiento_proyectos/internal/models"
	"seguimiento_proyectos/internal/recovery"
)

// ProfileHandler returns the signed-in administrator.
func ProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := auth.LoginID(c)
		if id == nil {
			respondError(c, http.StatusUnauthorized, "No autorizado")
			return
		}

		var admin models.Administrador
		if err := db.Preload("Login").Where("id_login = ?", *id).First(&admin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(c, http.StatusNotFound, "Perfil no encontrado")
				return
			}
			serverError(c, err, "Error al obtener el perfil")
			return
		}
		c.JSON(http.StatusOK, gin.H{"perfil": admin})
	}
}

// UpdateProfileHandler edits names and phone; a password change needs the
// current password.
func UpdateProfileHandler(db *gorm.DB, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tr := newTrail(rec, c, "Perfil", "Actualizar perfil")

		id := auth.LoginID(c)
		if id == nil {
			tr.fail("sin sesión", "")
			respondError(c, http.StatusUnauthorized, "No autorizado")
			return
		}

		var in struct {
			Nombre           string `json:"nombre" binding:"required"`
			Apellido         string `json:"apellido" binding:"required"`
			Telefono         string `json:"telefono"`
			ContrasenaActual string `json:"contrasena_actual"`
			ContrasenaNueva  string `json:"contrasena_nueva"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			tr.fail("datos inválidos", "")
			respondError(c, http.StatusBadRequest, "Nombre y apellido son obligatorios")
			return
		}

		var admin models.Administrador
		if err := db.Preload("Login").Where("id_login = ?", *id).First(&admin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				tr.fail("perfil inexistente", "")
				respondError(c, http.StatusNotFound, "Perfil no encontrado")
				return
			}
			tr.exception(err, "")
			serverError(c, err, "Error al actualizar el perfil")
			return
		}

		var hash string
		if in.ContrasenaNueva != "" {
			if admin.Login == nil || !auth.CheckPassword(admin.Login.Contrasena, in.ContrasenaActual) {
				tr.fail("contraseña actual incorrecta", idString(admin.ID))
				respondError(c, http.StatusBadRequest, "La contraseña actual es incorrecta")
				return
			}
			if len(in.ContrasenaNueva) < recovery.MinPasswordLength {
				tr.fail("contraseña demasiado corta", idString(admin.ID))
				respondError(c, http.StatusBadRequest, recovery.ErrWeakPassword.Error())
				return
			}
			h, err := auth.HashPassword(in.ContrasenaNueva)
			if err != nil {
				tr.exception(err, idString(admin.ID))
				serverError(c, err, "Error al actualizar el perfil")
				return
			}
			hash = h
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Administrador{}).Where("id = ?", admin.ID).Updates(map[string]any{
				"nombre":   strings.TrimSpace(in.Nombre),
				"apellido": strings.TrimSpace(in.Apellido),
				"telefono": strings.TrimSpace(in.Telefono),
			}).Error; err != nil {
				return err
			}
			if hash == "" {
				return nil
			}
			return tx.Model(&models.Login{}).Where("id_login = ?", *id).Update("contrasena", hash).Error
		})
		if err != nil {
			tr.exception(err, idString(admin.ID))
			serverError(c, err, "Error al actualizar el perfil")
			return
		}

		desc := "Se actualizó el perfil"
		if hash != "" {
			desc += " y la contraseña"
		}
		tr.log(desc, idString(admin.ID))
		c.JSON(http.StatusOK, gin.H{"message": "Perfil actualizado"})
	}
}
