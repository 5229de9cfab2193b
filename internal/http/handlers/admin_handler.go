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

const moduloAdministradores = "Administradores"

func ListAdministradores(db *gorm.DB) gin.HandlerFunc {
	return listAdministradores(db, true)
}

// ListAdministradoresEliminados lists logically deleted administrators.
func ListAdministradoresEliminados(db *gorm.DB) gin.HandlerFunc {
	return listAdministradores(db, false)
}

func listAdministradores(db *gorm.DB, activo bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var admins []models.Administrador
		err := db.Preload("Login").
			Where("activo = ?", activo).
			Order("apellido ASC, nombre ASC").
			Find(&admins).Error
		if err != nil {
			serverError(c, err, "Error al obtener los administradores")
			return
		}
		c.JSON(http.StatusOK, gin.H{"administradores": admins})
	}
}

func GetAdministrador(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			respondError(c, http.StatusBadRequest, "ID inválido")
			return
		}

		var admin models.Administrador
		if err := db.Preload("Login").First(&admin, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(c, http.StatusNotFound, "Administrador no encontrado")
				return
			}
			serverError(c, err, "Error al obtener el administrador")
			return
		}
		c.JSON(http.StatusOK, gin.H{"administrador": admin})
	}
}

// CreateAdministrador creates the login and the administrator profile in
// one transaction.
func CreateAdministrador(db *gorm.DB, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tr := newTrail(rec, c, moduloAdministradores, "Crear")

		var in struct {
			Correo     string `json:"correo" binding:"required,email"`
			Contrasena string `json:"contrasena" binding:"required"`
			Nombre     string `json:"nombre" binding:"required"`
			Apellido   string `json:"apellido" binding:"required"`
			Cedula     string `json:"cedula" binding:"required"`
			Telefono   string `json:"telefono"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			tr.fail("datos inválidos", "")
			respondError(c, http.StatusBadRequest, "Correo, contraseña, nombre, apellido y cédula son obligatorios")
			return
		}
		in.Correo = strings.ToLower(strings.TrimSpace(in.Correo))
		in.Cedula = strings.ToUpper(strings.TrimSpace(in.Cedula))

		if len(in.Contrasena) < recovery.MinPasswordLength {
			tr.fail("contraseña demasiado corta", "")
			respondError(c, http.StatusBadRequest, recovery.ErrWeakPassword.Error())
			return
		}

		if msg, err := checkAdministrador(db, in.Correo, in.Cedula, 0, 0); err != nil {
			tr.exception(err, "")
			serverError(c, err, "Error al crear el administrador")
			return
		} else if msg != "" {
			tr.fail(msg, "")
			respondError(c, http.StatusBadRequest, msg)
			return
		}

		hash, err := auth.HashPassword(in.Contrasena)
		if err != nil {
			tr.exception(err, "")
			serverError(c, err, "Error al crear el administrador")
			return
		}

		admin := models.Administrador{
			Nombre:   strings.TrimSpace(in.Nombre),
			Apellido: strings.TrimSpace(in.Apellido),
			Cedula:   in.Cedula,
			Telefono: strings.TrimSpace(in.Telefono),
			Activo:   true,
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			login := models.Login{
				Correo:     in.Correo,
				Contrasena: hash,
				Rol:        models.RolAdministrador,
				Activo:     true,
			}
			if err := tx.Create(&login).Error; err != nil {
				return err
			}
			admin.IDLogin = login.ID
			return tx.Omit("Login").Create(&admin).Error
		})
		if err != nil {
			tr.exception(err, "")
			serverError(c, err, "Error al crear el administrador")
			return
		}

		tr.log("Se creó el administrador "+in.Correo, idString(admin.ID))
		c.JSON(http.StatusCreated, gin.H{"message": "Administrador creado", "administrador": admin})
	}
}

func UpdateAdministrador(db *gorm.DB, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tr := newTrail(rec, c, moduloAdministradores, "Actualizar")

		id, ok := paramID(c)
		if !ok {
			tr.fail("ID inválido "+c.Param("id"), "")
			respondError(c, http.StatusBadRequest, "ID inválido")
			return
		}

		var admin models.Administrador
		if err := db.First(&admin, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				tr.fail("administrador inexistente", idString(id))
				respondError(c, http.StatusNotFound, "Administrador no encontrado")
				return
			}
			tr.exception(err, idString(id))
			serverError(c, err, "Error al actualizar el administrador")
			return
		}

		var in struct {
			Correo   string `json:"correo" binding:"required,email"`
			Nombre   string `json:"nombre" binding:"required"`
			Apellido string `json:"apellido" binding:"required"`
			Cedula   string `json:"cedula" binding:"required"`
			Telefono string `json:"telefono"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			tr.fail("datos inválidos", idString(id))
			respondError(c, http.StatusBadRequest, "Correo, nombre, apellido y cédula son obligatorios")
			return
		}
		in.Correo = strings.ToLower(strings.TrimSpace(in.Correo))
		in.Cedula = strings.ToUpper(strings.TrimSpace(in.Cedula))

		if msg, err := checkAdministrador(db, in.Correo, in.Cedula, admin.ID, admin.IDLogin); err != nil {
			tr.exception(err, idString(id))
			serverError(c, err, "Error al actualizar el administrador")
			return
		} else if msg != "" {
			tr.fail(msg, idString(id))
			respondError(c, http.StatusBadRequest, msg)
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Login{}).
				Where("id_login = ?", admin.IDLogin).
				Update("correo", in.Correo).Error; err != nil {
				return err
			}
			return tx.Model(&models.Administrador{}).Where("id = ?", id).Updates(map[string]any{
				"nombre":   strings.TrimSpace(in.Nombre),
				"apellido": strings.TrimSpace(in.Apellido),
				"cedula":   in.Cedula,
				"telefono": strings.TrimSpace(in.Telefono),
			}).Error
		})
		if err != nil {
			tr.exception(err, idString(id))
			serverError(c, err, "Error al actualizar el administrador")
			return
		}

		tr.log("Se actualizó el administrador "+in.Correo, idString(id))
		if !reload(c, db.Preload("Login"), &admin, id) {
			c.JSON(http.StatusOK, gin.H{"message": "Administrador actualizado"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Administrador actualizado", "administrador": admin})
	}
}

// EliminarLogicoAdministrador deactivates the profile and its login so the
// account can no longer sign in.
func EliminarLogicoAdministrador(db *gorm.DB, rec *audit.Recorder) gin.HandlerFunc {
	return setAdministradorActivo(db, rec, false)
}

func RestaurarAdministrador(db *gorm.DB, rec *audit.Recorder) gin.HandlerFunc {
	return setAdministradorActivo(db, rec, true)
}

func setAdministradorActivo(db *gorm.DB, rec *audit.Recorder, activo bool) gin.HandlerFunc {
	accion, hecho := "Eliminación lógica", "Se eliminó lógicamente el administrador"
	if activo {
		accion, hecho = "Restaurar", "Se restauró el administrador"
	}

	return func(c *gin.Context) {
		tr := newTrail(rec, c, moduloAdministradores, accion)

		id, ok := paramID(c)
		if !ok {
			tr.fail("ID inválido "+c.Param("id"), "")
			respondError(c, http.StatusBadRequest, "ID inválido")
			return
		}

		var admin models.Administrador
		err := db.Where("id = ? AND activo = ?", id, !activo).First(&admin).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tr.fail("administrador inexistente o ya procesado", idString(id))
			respondError(c, http.StatusNotFound, "Administrador no encontrado")
			return
		}
		if err != nil {
			tr.exception(err, idString(id))
			serverError(c, err, "Error al procesar el administrador")
			return
		}

		if self := auth.LoginID(c); !activo && self != nil && *self == admin.IDLogin {
			tr.fail("un administrador no puede eliminarse a sí mismo", idString(id))
			respondError(c, http.StatusBadRequest, "No puede eliminar su propia cuenta")
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Administrador{}).Where("id = ?", id).Update("activo", activo).Error; err != nil {
				return err
			}
			return tx.Model(&models.Login{}).Where("id_login = ?", admin.IDLogin).Update("activo", activo).Error
		})
		if err != nil {
			tr.exception(err, idString(id))
			serverError(c, err, "Error al procesar el administrador")
			return
		}

		tr.log(hecho+" "+admin.Nombre+" "+admin.Apellido, idString(id))
		c.JSON(http.StatusOK, gin.H{"message": hecho})
	}
}

// checkAdministrador reports duplicated email or cédula; the ids exclude
// the administrator being edited.
func checkAdministrador(db *gorm.DB, correo, cedula string, selfID, selfLogin int64) (string, error) {
	var n int64
	if err := db.Model(&models.Login{}).
		Where("correo = ? AND id_login <> ?", correo, selfLogin).
		Count(&n).Error; err != nil {
		return "", err
	}
	if n > 0 {
		return "Ya existe una cuenta con el correo " + correo, nil
	}

	if err := db.Model(&models.Administrador{}).
		Where("cedula = ? AND id <> ?", cedula, selfID).
		Count(&n).Error; err != nil {
		return "", err
	}
	if n > 0 {
		return "Ya existe un administrador con la cédula " + cedula, nil
	}
	return "", nil
}
