package models

import "time"

type Estudiante struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Cedula    string    `gorm:"size:20;uniqueIndex;not null" json:"cedula"`
	Nombre    string    `gorm:"size:120;not null" json:"nombre"`
	Apellido  string    `gorm:"size:120;not null" json:"apellido"`
	Correo    string    `gorm:"size:255" json:"correo"`
	Telefono  string    `gorm:"size:30" json:"telefono"`
	IDCarrera int64     `gorm:"column:id_carrera;index;not null" json:"id_carrera"`
	Carrera   *Carrera  `gorm:"foreignKey:IDCarrera" json:"carrera,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Estudiante) TableName() string { return "estudiantes" }
