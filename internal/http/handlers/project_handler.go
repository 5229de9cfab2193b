package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"seguimiento_proyectos/internal/audit"
	"seguimiento_proyectos/internal/projects"
)

func ListProyectos(store *projects.Store, k projects.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := store.List(c.Request.Context(), k)
		if err != nil {
			serverError(c, err, "Error al obtener los proyectos")
			return
		}
		c.JSON(http.StatusOK, gin.H{"proyectos": rows})
	}
}

func GetProyecto(store *projects.Store, k projects.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			respondError(c, http.StatusBadRequest, "ID inválido")
			return
		}

		p, err := store.Get(c.Request.Context(), k, id)
		if errors.Is(err, projects.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Proyecto no encontrado")
			return
		}
		if err != nil {
			serverError(c, err, "Error al obtener el proyecto")
			return
		}
		c.JSON(http.StatusOK, gin.H{"proyecto": p})
	}
}

func CreateProyecto(store *projects.Store, k projects.Kind, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tr := newTrail(rec, c, k.Modulo, "Crear")

		var in projects.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			tr.fail("cuerpo de la solicitud inválido", "")
			respondError(c, http.StatusBadRequest, "Datos del proyecto inválidos")
			return
		}

		id, err := store.Create(c.Request.Context(), k, in)
		if errors.Is(err, projects.ErrInvalidInput) {
			tr.fail(err.Error(), "")
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			tr.exception(err, "")
			serverError(c, err, "Error al crear el proyecto")
			return
		}

		tr.log("Se creó "+k.Tipo+": "+in.NombreProyecto, idString(id))
		c.JSON(http.StatusCreated, gin.H{"message": "Proyecto creado", "id": id})
	}
}

func UpdateProyecto(store *projects.Store, k projects.Kind, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tr := newTrail(rec, c, k.Modulo, "Actualizar")

		id, ok := paramID(c)
		if !ok {
			tr.fail("ID inválido "+c.Param("id"), "")
			respondError(c, http.StatusBadRequest, "ID inválido")
			return
		}

		var in projects.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			tr.fail("cuerpo de la solicitud inválido", idString(id))
			respondError(c, http.StatusBadRequest, "Datos del proyecto inválidos")
			return
		}

		err := store.Update(c.Request.Context(), k, id, in)
		switch {
		case errors.Is(err, projects.ErrInvalidInput):
			tr.fail(err.Error(), idString(id))
			respondError(c, http.StatusBadRequest, err.Error())
			return
		case errors.Is(err, projects.ErrNotFound):
			tr.fail("proyecto inexistente o eliminado", idString(id))
			respondError(c, http.StatusNotFound, "Proyecto no encontrado")
			return
		case err != nil:
			tr.exception(err, idString(id))
			serverError(c, err, "Error al actualizar el proyecto")
			return
		}

		tr.log("Se actualizó "+k.Tipo+": "+in.NombreProyecto, idString(id))
		c.JSON(http.StatusOK, gin.H{"message": "Proyecto actualizado"})
	}
}

func EliminarProyecto(store *projects.Store, k projects.Kind, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tr := newTrail(rec, c, k.Modulo, "Eliminar")

		id, ok := paramID(c)
		if !ok {
			tr.fail("ID inválido "+c.Param("id"), "")
			respondError(c, http.StatusBadRequest, "ID inválido")
			return
		}

		var in struct {
			Mensaje string `json:"mensaje_eliminacion"`
		}
		if err := bindOptional(c, &in); err != nil {
			tr.fail("cuerpo de la solicitud inválido", idString(id))
			respondError(c, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
			return
		}

		err := store.SoftDelete(c.Request.Context(), k, id, in.Mensaje)
		if errors.Is(err, projects.ErrNotFound) {
			tr.fail("proyecto inexistente o ya eliminado", idString(id))
			respondError(c, http.StatusNotFound, "Proyecto no encontrado")
			return
		}
		if err != nil {
			tr.exception(err, idString(id))
			serverError(c, err, "Error al eliminar el proyecto")
			return
		}

		desc := "Se eliminó " + k.Tipo
		if in.Mensaje != "" {
			desc += ". Motivo: " + in.Mensaje
		}
		tr.log(desc, idString(id))
		c.JSON(http.StatusOK, gin.H{"message": "Proyecto eliminado"})
	}
}

func RestaurarProyecto(store *projects.Store, k projects.Kind, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tr := newTrail(rec, c, k.Modulo, "Restaurar")

		id, ok := paramID(c)
		if !ok {
			tr.fail("ID inválido "+c.Param("id"), "")
			respondError(c, http.StatusBadRequest, "ID inválido")
			return
		}

		var in struct {
			Mensaje string `json:"mensaje_restauracion"`
		}
		if err := bindOptional(c, &in); err != nil {
			tr.fail("cuerpo de la solicitud inválido", idString(id))
			respondError(c, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
			return
		}

		err := store.Restore(c.Request.Context(), k, id, in.Mensaje)
		if errors.Is(err, projects.ErrNotFound) {
			tr.fail("proyecto inexistente o no eliminado", idString(id))
			respondError(c, http.StatusNotFound, "Proyecto no encontrado")
			return
		}
		if err != nil {
			tr.exception(err, idString(id))
			serverError(c, err, "Error al restaurar el proyecto")
			return
		}

		desc := "Se restauró " + k.Tipo
		if in.Mensaje != "" {
			desc += ". Motivo: " + in.Mensaje
		}
		tr.log(desc, idString(id))
		c.JSON(http.StatusOK, gin.H{"message": "Proyecto restaurado"})
	}
}

func ListProyectosEliminados(store *projects.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := store.ListAllDeleted(c.Request.Context())
		if err != nil {
			serverError(c, err, "Error al obtener los proyectos eliminados")
			return
		}
		c.JSON(http.StatusOK, gin.H{"proyectos": rows})
	}
}

// DatosPDF is public: the dashboard renders the PDF client side from it.
func DatosPDF(store *projects.Store, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		k, known := projects.KindBySlug(c.Param("slug"))
		if !known {
			newTrail(rec, c, "Proyectos", "Descarga PDF").fail("tipo de proyecto desconocido "+c.Param("slug"), "")
			respondError(c, http.StatusNotFound, "Tipo de proyecto no encontrado")
			return
		}
		tr := newTrail(rec, c, k.Modulo, "Descarga PDF")

		id, ok := paramID(c)
		if !ok {
			tr.fail("ID inválido "+c.Param("id"), "")
			respondError(c, http.StatusBadRequest, "ID inválido")
			return
		}

		p, err := store.Get(c.Request.Context(), k, id)
		if errors.Is(err, projects.ErrNotFound) {
			tr.fail("proyecto inexistente", idString(id))
			respondError(c, http.StatusNotFound, "Proyecto no encontrado")
			return
		}
		if err != nil {
			tr.exception(err, idString(id))
			serverError(c, err, "Error al obtener los datos del proyecto")
			return
		}

		tr.log("Descarga de PDF de "+k.Tipo+": "+p.NombreProyecto, idString(id))
		c.JSON(http.StatusOK, gin.H{
			"proyecto":    p,
			"generado_en": time.Now().Format(time.RFC3339),
		})
	}
}

func CountProyectos(store *projects.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		k, ok := projects.KindByCountSlug(c.Param("tipo"))
		if !ok {
			respondError(c, http.StatusNotFound, "Tipo de proyecto no encontrado")
			return
		}
		n, err := store.Count(c.Request.Context(), k)
		if err != nil {
			serverError(c, err, "Error al contar los proyectos")
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": n})
	}
}
