package models

import "time"

const RolAdministrador = "administrador"

// Login is the credential row shared by every dashboard account.
type Login struct {
	ID         int64     `gorm:"primaryKey;column:id_login" json:"id_login"`
	Correo     string    `gorm:"size:255;uniqueIndex;not null" json:"correo"`
	Contrasena string    `gorm:"size:255;not null" json:"-"`
	Rol        string    `gorm:"size:50;not null" json:"rol"`
	Activo     bool      `gorm:"not null" json:"activo"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Login) TableName() string { return "login" }
