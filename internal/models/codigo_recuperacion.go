package models

import "time"

// CodigoRecuperacion is a one-time password recovery code sent by email.
// Only a keyed hash of the code is stored.
type CodigoRecuperacion struct {
	ID             int64      `gorm:"primaryKey" json:"id"`
	Email          string     `gorm:"size:255;index;not null" json:"email"`
	CodigoHash     string     `gorm:"size:128;not null" json:"-"`
	Expiracion     time.Time  `gorm:"not null" json:"expiracion"`
	Usado          bool       `gorm:"not null;default:false" json:"usado"`
	Intentos       int        `gorm:"not null;default:0" json:"intentos"`
	RestablecidoEn *time.Time `json:"restablecido_en"` // set once the reset authorization is spent or superseded
	CreatedAt      time.Time  `json:"created_at"`
}

func (CodigoRecuperacion) TableName() string { return "codigos_recuperacion" }
