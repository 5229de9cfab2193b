package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"seguimiento_proyectos/internal/audit"
	"seguimiento_proyectos/internal/models"
)

const moduloCatalogos = "Catálogos"

func listCatalog[T any](db *gorm.DB, key, order string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rows []T
		if err := db.Order(order).Find(&rows).Error; err != nil {
			serverError(c, err, "Error al obtener "+key)
			return
		}
		c.JSON(http.StatusOK, gin.H{key: rows})
	}
}

func ListCarreras(db *gorm.DB) gin.HandlerFunc {
	return listCatalog[models.Carrera](db, "carreras", "nombre ASC")
}

func ListPeriodos(db *gorm.DB) gin.HandlerFunc {
	return listCatalog[models.Periodo](db, "periodos", "nombre DESC")
}

func ListTutores(db *gorm.DB) gin.HandlerFunc {
	return listCatalog[models.Tutor](db, "tutores", "apellido ASC, nombre ASC")
}

func CreateCarrera(db *gorm.DB, rec *audit.Recorder) gin.HandlerFunc {
	return createNamed(db, rec, "carrera", func(nombre string) any {
		return &models.Carrera{Nombre: nombre}
	}, &models.Carrera{})
}

func CreatePeriodo(db *gorm.DB, rec *audit.Recorder) gin.HandlerFunc {
	return createNamed(db, rec, "periodo", func(nombre string) any {
		return &models.Periodo{Nombre: nombre}
	}, &models.Periodo{})
}

// createNamed handles catalogs whose only field is a unique nombre.
func createNamed(db *gorm.DB, rec *audit.Recorder, key string, build func(string) any, model any) gin.HandlerFunc {
	return func(c *gin.Context) {
		tr := newTrail(rec, c, moduloCatalogos, "Crear")

		var in struct {
			Nombre string `json:"nombre" binding:"required"`
		}
		if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Nombre) == "" {
			tr.fail(key+" sin nombre", "")
			respondError(c, http.StatusBadRequest, "El nombre es obligatorio")
			return
		}
		nombre := strings.TrimSpace(in.Nombre)

		var n int64
		if err := db.Model(model).Where("nombre = ?", nombre).Count(&n).Error; err != nil {
			tr.exception(err, "")
			serverError(c, err, "Error al crear "+key)
			return
		}
		if n > 0 {
			tr.fail(key+" duplicado "+nombre, "")
			respondError(c, http.StatusBadRequest, "Ya existe "+key+" "+nombre)
			return
		}

		row := build(nombre)
		if err := db.Create(row).Error; err != nil {
			tr.exception(err, "")
			serverError(c, err, "Error al crear "+key)
			return
		}

		tr.log("Se creó "+key+" "+nombre, "")
		c.JSON(http.StatusCreated, gin.H{key: row})
	}
}

func CreateTutor(db *gorm.DB, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tr := newTrail(rec, c, moduloCatalogos, "Crear")

		var in struct {
			Nombre   string `json:"nombre" binding:"required"`
			Apellido string `json:"apellido" binding:"required"`
			Cedula   string `json:"cedula" binding:"required"`
			Correo   string `json:"correo" binding:"omitempty,email"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			tr.fail("tutor con datos inválidos", "")
			respondError(c, http.StatusBadRequest, "Nombre, apellido y cédula son obligatorios")
			return
		}

		tutor := models.Tutor{
			Nombre:   strings.TrimSpace(in.Nombre),
			Apellido: strings.TrimSpace(in.Apellido),
			Cedula:   strings.ToUpper(strings.TrimSpace(in.Cedula)),
			Correo:   strings.ToLower(strings.TrimSpace(in.Correo)),
		}

		var n int64
		if err := db.Model(&models.Tutor{}).Where("cedula = ?", tutor.Cedula).Count(&n).Error; err != nil {
			tr.exception(err, "")
			serverError(c, err, "Error al crear el tutor")
			return
		}
		if n > 0 {
			tr.fail("tutor duplicado "+tutor.Cedula, "")
			respondError(c, http.StatusBadRequest, "Ya existe un tutor con la cédula "+tutor.Cedula)
			return
		}

		if err := db.Create(&tutor).Error; err != nil {
			tr.exception(err, "")
			serverError(c, err, "Error al crear el tutor")
			return
		}

		tr.log("Se creó el tutor "+tutor.Cedula, idString(tutor.ID))
		c.JSON(http.StatusCreated, gin.H{"tutor": tutor})
	}
}
