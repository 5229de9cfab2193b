package models

import "time"

type Carrera struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Nombre    string    `gorm:"size:200;uniqueIndex;not null" json:"nombre"`
	CreatedAt time.Time `json:"created_at"`
}

func (Carrera) TableName() string { return "carreras" }

// Periodo is an academic term, e.g. "2025-I".
type Periodo struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Nombre    string    `gorm:"size:50;uniqueIndex;not null" json:"nombre"`
	CreatedAt time.Time `json:"created_at"`
}

func (Periodo) TableName() string { return "periodos" }

type Tutor struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Nombre    string    `gorm:"size:120;not null" json:"nombre"`
	Apellido  string    `gorm:"size:120;not null" json:"apellido"`
	Cedula    string    `gorm:"size:20;uniqueIndex;not null" json:"cedula"`
	Correo    string    `gorm:"size:255" json:"correo"`
	CreatedAt time.Time `json:"created_at"`
}

func (Tutor) TableName() string { return "tutores" }
