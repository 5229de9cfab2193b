package models

// All lists every model in migration order.
func All() []any {
	return []any{
		&Login{},
		&Administrador{},
		&Carrera{},
		&Periodo{},
		&Tutor{},
		&Estudiante{},
		&ServicioComunitario{},
		&TrabajoDeGrado{},
		&ProyectoInvestigacion{},
		&Pasantia{},
		&Auditoria{},
		&CodigoRecuperacion{},
	}
}
