package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"seguimiento_proyectos/internal/audit"
	"seguimiento_proyectos/internal/models"
	"seguimiento_proyectos/internal/projects"
)

const moduloEstudiantes = "Estudiantes"

type estudianteInput struct {
	Cedula    string `json:"cedula" binding:"required"`
	Nombre    string `json:"nombre" binding:"required"`
	Apellido  string `json:"apellido" binding:"required"`
	Correo    string `json:"correo" binding:"omitempty,email"`
	Telefono  string `json:"telefono"`
	IDCarrera int64  `json:"id_carrera" binding:"required"`
}

func (in *estudianteInput) normalize() {
	in.Cedula = strings.ToUpper(strings.TrimSpace(in.Cedula))
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Apellido = strings.TrimSpace(in.Apellido)
	in.Correo = strings.ToLower(strings.TrimSpace(in.Correo))
	in.Telefono = strings.TrimSpace(in.Telefono)
}

// ListEstudiantes supports ?q= (name or cédula) and ?id_carrera=.
func ListEstudiantes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Carrera").Order("apellido ASC, nombre ASC")

		if q := strings.TrimSpace(c.Query("q")); q != "" {
			like := "%" + strings.ToLower(q) + "%"
			query = query.Where("(LOWER(nombre) LIKE ? OR LOWER(apellido) LIKE ? OR LOWER(cedula) LIKE ?)", like, like, like)
		}
		if carrera, err := strconv.ParseInt(c.Query("id_carrera"), 10, 64); err == nil && carrera > 0 {
			query = query.Where("id_carrera = ?", carrera)
		}

		var estudiantes []models.Estudiante
		if err := query.Find(&estudiantes).Error; err != nil {
			serverError(c, err, "Error al obtener los estudiantes")
			return
		}
		c.JSON(http.StatusOK, gin.H{"estudiantes": estudiantes})
	}
}

func GetEstudiante(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			respondError(c, http.StatusBadRequest, "ID inválido")
			return
		}

		var e models.Estudiante
		if err := db.Preload("Carrera").First(&e, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(c, http.StatusNotFound, "Estudiante no encontrado")
				return
			}
			serverError(c, err, "Error al obtener el estudiante")
			return
		}
		c.JSON(http.StatusOK, gin.H{"estudiante": e})
	}
}

func CreateEstudiante(db *gorm.DB, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tr := newTrail(rec, c, moduloEstudiantes, "Crear")

		var in estudianteInput
		if err := c.ShouldBindJSON(&in); err != nil {
			tr.fail("datos inválidos", "")
			respondError(c, http.StatusBadRequest, "Cédula, nombre, apellido y carrera son obligatorios")
			return
		}
		in.normalize()

		if msg, err := checkEstudiante(db, in, 0); err != nil {
			tr.exception(err, "")
			serverError(c, err, "Error al crear el estudiante")
			return
		} else if msg != "" {
			tr.fail(msg, "")
			respondError(c, http.StatusBadRequest, msg)
			return
		}

		e := models.Estudiante{
			Cedula:    in.Cedula,
			Nombre:    in.Nombre,
			Apellido:  in.Apellido,
			Correo:    in.Correo,
			Telefono:  in.Telefono,
			IDCarrera: in.IDCarrera,
		}
		if err := db.Create(&e).Error; err != nil {
			tr.exception(err, "")
			serverError(c, err, "Error al crear el estudiante")
			return
		}

		tr.log("Se creó el estudiante "+e.Cedula+" ("+e.Nombre+" "+e.Apellido+")", idString(e.ID))
		c.JSON(http.StatusCreated, gin.H{"message": "Estudiante creado", "estudiante": e})
	}
}

func UpdateEstudiante(db *gorm.DB, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tr := newTrail(rec, c, moduloEstudiantes, "Actualizar")

		id, ok := paramID(c)
		if !ok {
			tr.fail("ID inválido "+c.Param("id"), "")
			respondError(c, http.StatusBadRequest, "ID inválido")
			return
		}

		var e models.Estudiante
		if err := db.First(&e, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				tr.fail("estudiante inexistente", idString(id))
				respondError(c, http.StatusNotFound, "Estudiante no encontrado")
				return
			}
			tr.exception(err, idString(id))
			serverError(c, err, "Error al actualizar el estudiante")
			return
		}

		var in estudianteInput
		if err := c.ShouldBindJSON(&in); err != nil {
			tr.fail("datos inválidos", idString(id))
			respondError(c, http.StatusBadRequest, "Cédula, nombre, apellido y carrera son obligatorios")
			return
		}
		in.normalize()

		if msg, err := checkEstudiante(db, in, id); err != nil {
			tr.exception(err, idString(id))
			serverError(c, err, "Error al actualizar el estudiante")
			return
		} else if msg != "" {
			tr.fail(msg, idString(id))
			respondError(c, http.StatusBadRequest, msg)
			return
		}

		err := db.Model(&e).Updates(map[string]any{
			"cedula":     in.Cedula,
			"nombre":     in.Nombre,
			"apellido":   in.Apellido,
			"correo":     in.Correo,
			"telefono":   in.Telefono,
			"id_carrera": in.IDCarrera,
		}).Error
		if err != nil {
			tr.exception(err, idString(id))
			serverError(c, err, "Error al actualizar el estudiante")
			return
		}

		tr.log("Se actualizó el estudiante "+in.Cedula, idString(id))
		if !reload(c, db.Preload("Carrera"), &e, id) {
			c.JSON(http.StatusOK, gin.H{"message": "Estudiante actualizado"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Estudiante actualizado", "estudiante": e})
	}
}

// DeleteEstudiante removes the row; students linked to any project are kept.
func DeleteEstudiante(db *gorm.DB, store *projects.Store, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tr := newTrail(rec, c, moduloEstudiantes, "Eliminar")

		id, ok := paramID(c)
		if !ok {
			tr.fail("ID inválido "+c.Param("id"), "")
			respondError(c, http.StatusBadRequest, "ID inválido")
			return
		}

		inUse, err := store.StudentInUse(c.Request.Context(), id)
		if err != nil {
			tr.exception(err, idString(id))
			serverError(c, err, "Error al eliminar el estudiante")
			return
		}
		if inUse {
			tr.fail("el estudiante está asociado a proyectos", idString(id))
			respondError(c, http.StatusBadRequest, "El estudiante está asociado a uno o más proyectos")
			return
		}

		res := db.Delete(&models.Estudiante{}, id)
		if res.Error != nil {
			tr.exception(res.Error, idString(id))
			serverError(c, res.Error, "Error al eliminar el estudiante")
			return
		}
		if res.RowsAffected == 0 {
			tr.fail("estudiante inexistente", idString(id))
			respondError(c, http.StatusNotFound, "Estudiante no encontrado")
			return
		}

		tr.log("Se eliminó el estudiante", idString(id))
		c.JSON(http.StatusOK, gin.H{"message": "Estudiante eliminado"})
	}
}

// checkEstudiante returns a user-facing message when the input conflicts
// with stored data. selfID excludes the row being updated.
func checkEstudiante(db *gorm.DB, in estudianteInput, selfID int64) (string, error) {
	var n int64
	if err := db.Model(&models.Carrera{}).Where("id = ?", in.IDCarrera).Count(&n).Error; err != nil {
		return "", err
	}
	if n == 0 {
		return "La carrera indicada no existe", nil
	}

	if err := db.Model(&models.Estudiante{}).
		Where("cedula = ? AND id <> ?", in.Cedula, selfID).
		Count(&n).Error; err != nil {
		return "", err
	}
	if n > 0 {
		return "Ya existe un estudiante con la cédula " + in.Cedula, nil
	}
	return "", nil
}
