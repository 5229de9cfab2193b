// Package projects serves the four soft-deletable project kinds through one
// store keyed by Kind.
package projects

// Kind describes one project table and how it is exposed.
type Kind struct {
	Slug      string // /api/{Slug}
	CountSlug string // /api/dashboard/count/{CountSlug}
	Tipo      string // tipo_proyecto in summaries
	Modulo    string // modulo_afectado in the bitácora
	Table     string
	Flag      string // soft-delete column
	Multiple  bool   // students through the bridge table
	Empresa   bool
}

var (
	ServicioComunitario = Kind{
		Slug:      "proyectos-comunitarios",
		CountSlug: "servicio-comunitario",
		Tipo:      "Servicio Comunitario",
		Modulo:    "Proyectos Comunitarios",
		Table:     "servicio_comunitario",
		Flag:      "eliminados",
		Multiple:  true,
	}
	TrabajoDeGrado = Kind{
		Slug:      "trabajos-de-grado",
		CountSlug: "trabajo-de-grado",
		Tipo:      "Trabajo de Grado",
		Modulo:    "Trabajos de Grado",
		Table:     "trabajos_de_grado",
		Flag:      "eliminado",
	}
	ProyectoInvestigacion = Kind{
		Slug:      "proyectos-investigacion",
		CountSlug: "proyectos-investigacion",
		Tipo:      "Proyecto de Investigación",
		Modulo:    "Proyectos de Investigación",
		Table:     "proyectos_investigacion",
		Flag:      "eliminado",
	}
	Pasantia = Kind{
		Slug:      "pasantias",
		CountSlug: "pasantias",
		Tipo:      "Pasantía",
		Modulo:    "Pasantías",
		Table:     "pasantias",
		Flag:      "eliminado",
		Empresa:   true,
	}
)

// Kinds is ordered the way the deleted-projects view lists them.
var Kinds = []Kind{ServicioComunitario, TrabajoDeGrado, ProyectoInvestigacion, Pasantia}

func KindBySlug(slug string) (Kind, bool) {
	for _, k := range Kinds {
		if k.Slug == slug {
			return k, true
		}
	}
	return Kind{}, false
}

func KindByCountSlug(slug string) (Kind, bool) {
	for _, k := range Kinds {
		if k.CountSlug == slug {
			return k, true
		}
	}
	return Kind{}, false
}
