// Package audit writes the bitácora: one append-only row per audited action.
package audit

import (
	"context"
	"encoding/json"
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"seguimiento_proyectos/internal/models"
)

// Entry describes one audited action. RegistroID is empty when no single
// record is affected.
type Entry struct {
	IDLogin     *int64
	Modulo      string
	Accion      string
	Descripcion string
	RegistroID  string
	Metadatos   map[string]any
}

type Recorder struct {
	db  *gorm.DB
	hub *Hub
}

func NewRecorder(db *gorm.DB, hub *Hub) *Recorder {
	return &Recorder{db: db, hub: hub}
}

// Record stores the entry and fans it out to live subscribers. A failed
// write is logged and swallowed so it never changes the caller's response.
func (r *Recorder) Record(ctx context.Context, e Entry) {
	if r == nil || r.db == nil {
		return
	}

	row := models.Auditoria{
		IDLogin:              e.IDLogin,
		ModuloAfectado:       e.Modulo,
		AccionRealizada:      e.Accion,
		DescripcionDetallada: e.Descripcion,
	}
	if e.RegistroID != "" {
		id := e.RegistroID
		row.RegistroAfectadoID = &id
	}
	if len(e.Metadatos) > 0 {
		if b, err := json.Marshal(e.Metadatos); err == nil {
			row.Metadatos = datatypes.JSON(b)
		}
	}

	// the request may already be gone; the trail must still be written
	if err := r.db.WithContext(context.WithoutCancel(ctx)).Create(&row).Error; err != nil {
		log.Printf("⚠️ audit write failed (%s/%s): %v", e.Modulo, e.Accion, err)
		return
	}

	if r.hub != nil {
		r.hub.Publish(row)
	}
}
