package projects

import "seguimiento_proyectos/internal/models"

type Persona struct {
	ID       int64  `json:"id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Cedula   string `json:"cedula"`
}

// Summary is the flattened shape shared by every project kind.
type Summary struct {
	ID                  int64     `json:"id"`
	TipoProyecto        string    `json:"tipo_proyecto"`
	Periodo             string    `json:"periodo"`
	NombreProyecto      string    `json:"nombre_proyecto"`
	Carrera             string    `json:"carrera"`
	Tutor               *Persona  `json:"tutor"`
	Estudiantes         []Persona `json:"estudiantes"`
	Empresa             string    `json:"empresa,omitempty"`
	MensajeEliminacion  *string   `json:"mensaje_eliminacion"`
	MensajeRestauracion *string   `json:"mensaje_restauracion,omitempty"`
}

func base(k Kind, id int64, nombre string, carrera *models.Carrera, periodo *models.Periodo, tutor *models.Tutor, elim, rest *string) Summary {
	s := Summary{
		ID:                  id,
		TipoProyecto:        k.Tipo,
		NombreProyecto:      nombre,
		Estudiantes:         []Persona{},
		MensajeEliminacion:  elim,
		MensajeRestauracion: rest,
	}
	if carrera != nil {
		s.Carrera = carrera.Nombre
	}
	if periodo != nil {
		s.Periodo = periodo.Nombre
	}
	if tutor != nil {
		s.Tutor = &Persona{ID: tutor.ID, Nombre: tutor.Nombre, Apellido: tutor.Apellido, Cedula: tutor.Cedula}
	}
	return s
}

func persona(e *models.Estudiante) Persona {
	return Persona{ID: e.ID, Nombre: e.Nombre, Apellido: e.Apellido, Cedula: e.Cedula}
}

func summarizeServicio(p *models.ServicioComunitario) Summary {
	s := base(ServicioComunitario, p.ID, p.NombreProyecto, p.Carrera, p.Periodo, p.Tutor, p.MensajeEliminacion, p.MensajeRestauracion)
	for i := range p.Estudiantes {
		s.Estudiantes = append(s.Estudiantes, persona(&p.Estudiantes[i]))
	}
	return s
}

func summarizeGrado(p *models.TrabajoDeGrado) Summary {
	s := base(TrabajoDeGrado, p.ID, p.NombreProyecto, p.Carrera, p.Periodo, p.Tutor, p.MensajeEliminacion, p.MensajeRestauracion)
	if p.Estudiante != nil {
		s.Estudiantes = append(s.Estudiantes, persona(p.Estudiante))
	}
	return s
}

func summarizeInvestigacion(p *models.ProyectoInvestigacion) Summary {
	s := base(ProyectoInvestigacion, p.ID, p.NombreProyecto, p.Carrera, p.Periodo, p.Tutor, p.MensajeEliminacion, p.MensajeRestauracion)
	if p.Estudiante != nil {
		s.Estudiantes = append(s.Estudiantes, persona(p.Estudiante))
	}
	return s
}

func summarizePasantia(p *models.Pasantia) Summary {
	s := base(Pasantia, p.ID, p.NombreProyecto, p.Carrera, p.Periodo, p.Tutor, p.MensajeEliminacion, p.MensajeRestauracion)
	s.Empresa = p.Empresa
	if p.Estudiante != nil {
		s.Estudiantes = append(s.Estudiantes, persona(p.Estudiante))
	}
	return s
}
