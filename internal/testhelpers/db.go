// Package testhelpers builds throwaway databases for package tests.
package testhelpers

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"seguimiento_proyectos/internal/models"
)

// NewDB opens a private in-memory sqlite database with every model migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(uuid.NewString(), "-", "")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// One connection keeps the shared-cache database alive and serialises writers.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(models.All()...))
	return gdb
}

// Catalog holds the ids created by SeedCatalog.
type Catalog struct {
	CarreraID int64
	PeriodoID int64
	TutorID   int64
}

func SeedCatalog(t *testing.T, gdb *gorm.DB) Catalog {
	t.Helper()
	carrera := models.Carrera{Nombre: "Ingeniería de Sistemas"}
	periodo := models.Periodo{Nombre: "2025-I"}
	tutor := models.Tutor{Nombre: "Ana", Apellido: "Rojas", Cedula: "V-9000001", Correo: "ana.rojas@uni.edu"}
	require.NoError(t, gdb.Create(&carrera).Error)
	require.NoError(t, gdb.Create(&periodo).Error)
	require.NoError(t, gdb.Create(&tutor).Error)
	return Catalog{CarreraID: carrera.ID, PeriodoID: periodo.ID, TutorID: tutor.ID}
}

func CreateEstudiante(t *testing.T, gdb *gorm.DB, carreraID int64, cedula, nombre, apellido string) models.Estudiante {
	t.Helper()
	e := models.Estudiante{Cedula: cedula, Nombre: nombre, Apellido: apellido, IDCarrera: carreraID}
	require.NoError(t, gdb.Create(&e).Error)
	return e
}

// CreateLogin stores an active administrator login with the given hash.
func CreateLogin(t *testing.T, gdb *gorm.DB, correo, hash string) models.Login {
	t.Helper()
	l := models.Login{Correo: correo, Contrasena: hash, Rol: models.RolAdministrador, Activo: true}
	require.NoError(t, gdb.Create(&l).Error)
	return l
}
