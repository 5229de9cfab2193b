package models

import "time"

type Administrador struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	IDLogin   int64     `gorm:"column:id_login;uniqueIndex;not null" json:"id_login"`
	Login     *Login    `gorm:"foreignKey:IDLogin;references:ID" json:"login,omitempty"`
	Nombre    string    `gorm:"size:120;not null" json:"nombre"`
	Apellido  string    `gorm:"size:120;not null" json:"apellido"`
	Cedula    string    `gorm:"size:20;uniqueIndex;not null" json:"cedula"`
	Telefono  string    `gorm:"size:30" json:"telefono"`
	Activo    bool      `gorm:"not null;index" json:"activo"` // false = eliminado lógicamente
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Administrador) TableName() string { return "administradores" }
