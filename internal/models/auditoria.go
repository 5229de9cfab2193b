package models

import (
	"time"

	"gorm.io/datatypes"
)

// Auditoria is one row of the bitácora. Rows are only ever inserted.
type Auditoria struct {
	ID                   int64          `gorm:"primaryKey" json:"id"`
	IDLogin              *int64         `gorm:"column:id_login;index" json:"id_login"` // nil for public actions
	ModuloAfectado       string         `gorm:"size:100;not null;index" json:"modulo_afectado"`
	AccionRealizada      string         `gorm:"size:150;not null" json:"accion_realizada"`
	DescripcionDetallada string         `gorm:"type:text" json:"descripcion_detallada"`
	RegistroAfectadoID   *string        `gorm:"size:64" json:"registro_afectado_id"`
	Metadatos            datatypes.JSON `json:"metadatos,omitempty"` // ip, user agent, request id
	FechaHora            time.Time      `gorm:"autoCreateTime;index" json:"fecha_hora"`
}

func (Auditoria) TableName() string { return "auditoria" }
