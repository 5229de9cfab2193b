package models

import "time"

// ServicioComunitario groups several students through the
// servicio_comunitario_estudiantes bridge table.
type ServicioComunitario struct {
	ID                  int64        `gorm:"primaryKey" json:"id"`
	NombreProyecto      string       `gorm:"size:255;not null" json:"nombre_proyecto"`
	IDCarrera           int64        `gorm:"column:id_carrera;index;not null" json:"id_carrera"`
	Carrera             *Carrera     `gorm:"foreignKey:IDCarrera" json:"carrera,omitempty"`
	IDPeriodo           int64        `gorm:"column:id_periodo;index;not null" json:"id_periodo"`
	Periodo             *Periodo     `gorm:"foreignKey:IDPeriodo" json:"periodo,omitempty"`
	IDTutor             *int64       `gorm:"column:id_tutor;index" json:"id_tutor"`
	Tutor               *Tutor       `gorm:"foreignKey:IDTutor" json:"tutor,omitempty"`
	Estudiantes         []Estudiante `gorm:"many2many:servicio_comunitario_estudiantes" json:"estudiantes,omitempty"`
	Eliminados          bool         `gorm:"column:eliminados;not null;default:false;index" json:"eliminados"`
	MensajeEliminacion  *string      `gorm:"type:text" json:"mensaje_eliminacion"`
	MensajeRestauracion *string      `gorm:"type:text" json:"mensaje_restauracion"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

func (ServicioComunitario) TableName() string { return "servicio_comunitario" }

type TrabajoDeGrado struct {
	ID                  int64       `gorm:"primaryKey" json:"id"`
	NombreProyecto      string      `gorm:"size:255;not null" json:"nombre_proyecto"`
	IDCarrera           int64       `gorm:"column:id_carrera;index;not null" json:"id_carrera"`
	Carrera             *Carrera    `gorm:"foreignKey:IDCarrera" json:"carrera,omitempty"`
	IDPeriodo           int64       `gorm:"column:id_periodo;index;not null" json:"id_periodo"`
	Periodo             *Periodo    `gorm:"foreignKey:IDPeriodo" json:"periodo,omitempty"`
	IDTutor             *int64      `gorm:"column:id_tutor;index" json:"id_tutor"`
	Tutor               *Tutor      `gorm:"foreignKey:IDTutor" json:"tutor,omitempty"`
	IDEstudiante        int64       `gorm:"column:id_estudiante;index;not null" json:"id_estudiante"`
	Estudiante          *Estudiante `gorm:"foreignKey:IDEstudiante" json:"estudiante,omitempty"`
	Eliminado           bool        `gorm:"column:eliminado;not null;default:false;index" json:"eliminado"`
	MensajeEliminacion  *string     `gorm:"type:text" json:"mensaje_eliminacion"`
	MensajeRestauracion *string     `gorm:"type:text" json:"mensaje_restauracion"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

func (TrabajoDeGrado) TableName() string { return "trabajos_de_grado" }

type ProyectoInvestigacion struct {
	ID                  int64       `gorm:"primaryKey" json:"id"`
	NombreProyecto      string      `gorm:"size:255;not null" json:"nombre_proyecto"`
	IDCarrera           int64       `gorm:"column:id_carrera;index;not null" json:"id_carrera"`
	Carrera             *Carrera    `gorm:"foreignKey:IDCarrera" json:"carrera,omitempty"`
	IDPeriodo           int64       `gorm:"column:id_periodo;index;not null" json:"id_periodo"`
	Periodo             *Periodo    `gorm:"foreignKey:IDPeriodo" json:"periodo,omitempty"`
	IDTutor             *int64      `gorm:"column:id_tutor;index" json:"id_tutor"`
	Tutor               *Tutor      `gorm:"foreignKey:IDTutor" json:"tutor,omitempty"`
	IDEstudiante        int64       `gorm:"column:id_estudiante;index;not null" json:"id_estudiante"`
	Estudiante          *Estudiante `gorm:"foreignKey:IDEstudiante" json:"estudiante,omitempty"`
	Eliminado           bool        `gorm:"column:eliminado;not null;default:false;index" json:"eliminado"`
	MensajeEliminacion  *string     `gorm:"type:text" json:"mensaje_eliminacion"`
	MensajeRestauracion *string     `gorm:"type:text" json:"mensaje_restauracion"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

func (ProyectoInvestigacion) TableName() string { return "proyectos_investigacion" }

// Pasantia is an internship; Empresa is the host organisation.
type Pasantia struct {
	ID                  int64       `gorm:"primaryKey" json:"id"`
	NombreProyecto      string      `gorm:"size:255;not null" json:"nombre_proyecto"`
	Empresa             string      `gorm:"size:255" json:"empresa"`
	IDCarrera           int64       `gorm:"column:id_carrera;index;not null" json:"id_carrera"`
	Carrera             *Carrera    `gorm:"foreignKey:IDCarrera" json:"carrera,omitempty"`
	IDPeriodo           int64       `gorm:"column:id_periodo;index;not null" json:"id_periodo"`
	Periodo             *Periodo    `gorm:"foreignKey:IDPeriodo" json:"periodo,omitempty"`
	IDTutor             *int64      `gorm:"column:id_tutor;index" json:"id_tutor"`
	Tutor               *Tutor      `gorm:"foreignKey:IDTutor" json:"tutor,omitempty"`
	IDEstudiante        int64       `gorm:"column:id_estudiante;index;not null" json:"id_estudiante"`
	Estudiante          *Estudiante `gorm:"foreignKey:IDEstudiante" json:"estudiante,omitempty"`
	Eliminado           bool        `gorm:"column:eliminado;not null;default:false;index" json:"eliminado"`
	MensajeEliminacion  *string     `gorm:"type:text" json:"mensaje_eliminacion"`
	MensajeRestauracion *string     `gorm:"type:text" json:"mensaje_restauracion"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

func (Pasantia) TableName() string { return "pasantias" }
