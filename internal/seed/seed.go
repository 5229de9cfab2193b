package seed

import (
	"log"
	"strings"

	"gorm.io/gorm"

	"seguimiento_proyectos/internal/auth"
	"seguimiento_proyectos/internal/models"
)

var carreras = []string{
	"Ingeniería de Sistemas",
	"Ingeniería Industrial",
	"Administración",
	"Contaduría Pública",
	"Educación",
}

var periodos = []string{"2024-II", "2025-I", "2025-II"}

// FirstSetup creates the base catalogs and, when an email is given, the
// first administrator. Running it again changes nothing.
func FirstSetup(db *gorm.DB, adminEmail, adminPassword string) error {
	// -------------------------
	// 1) Catalogs
	// -------------------------
	for _, nombre := range carreras {
		c := models.Carrera{Nombre: nombre}
		if err := db.Where("nombre = ?", nombre).FirstOrCreate(&c).Error; err != nil {
			return err
		}
	}
	for _, nombre := range periodos {
		p := models.Periodo{Nombre: nombre}
		if err := db.Where("nombre = ?", nombre).FirstOrCreate(&p).Error; err != nil {
			return err
		}
	}

	adminEmail = strings.ToLower(strings.TrimSpace(adminEmail))
	if adminEmail == "" {
		log.Printf("✅ Seed OK | carreras=%d periodos=%d | no admin requested", len(carreras), len(periodos))
		return nil
	}

	// -------------------------
	// 2) Initial administrator
	// -------------------------
	var existing int64
	if err := db.Model(&models.Login{}).Where("correo = ?", adminEmail).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		log.Printf("✅ Seed OK | admin=%s already present", adminEmail)
		return nil
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		login := models.Login{
			Correo:     adminEmail,
			Contrasena: hash,
			Rol:        models.RolAdministrador,
			Activo:     true,
		}
		if err := tx.Create(&login).Error; err != nil {
			return err
		}
		return tx.Create(&models.Administrador{
			IDLogin:  login.ID,
			Nombre:   "Administrador",
			Apellido: "Principal",
			Cedula:   "ADMIN-1",
			Activo:   true,
		}).Error
	})
	if err != nil {
		return err
	}

	log.Printf("✅ Seed OK | admin=%s | carreras=%d periodos=%d", adminEmail, len(carreras), len(periodos))
	return nil
}
