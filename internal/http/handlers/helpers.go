package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"seguimiento_proyectos/internal/audit"
	"seguimiento_proyectos/internal/auth"
)

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// serverError logs the cause and answers with a generic message.
func serverError(c *gin.Context, err error, msg string) {
	log.Printf("❌ %s %s: %v", c.Request.Method, c.FullPath(), err)
	respondError(c, http.StatusInternalServerError, msg)
}

// reload refreshes dest after a committed write. A failure is logged and
// the caller answers without the row.
func reload(c *gin.Context, q *gorm.DB, dest any, conds ...any) bool {
	if err := q.First(dest, conds...).Error; err != nil {
		log.Printf("⚠️ %s %s: reload: %v", c.Request.Method, c.FullPath(), err)
		return false
	}
	return true
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// bindOptional accepts an empty body; only malformed JSON is an error.
func bindOptional(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func idString(id int64) string {
	if id <= 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

// trail writes exactly one bitácora row per handled request, whichever
// exit path the handler takes.
type trail struct {
	rec    *audit.Recorder
	c      *gin.Context
	modulo string
	accion string
	done   bool
}

func newTrail(rec *audit.Recorder, c *gin.Context, modulo, accion string) *trail {
	return &trail{rec: rec, c: c, modulo: modulo, accion: accion}
}

func (t *trail) log(descripcion, registroID string) {
	if t.done {
		return
	}
	t.done = true
	t.rec.Record(t.c.Request.Context(), audit.Entry{
		IDLogin:     auth.LoginID(t.c),
		Modulo:      t.modulo,
		Accion:      t.accion,
		Descripcion: descripcion,
		RegistroID:  registroID,
		Metadatos: map[string]any{
			"ip":         t.c.ClientIP(),
			"user_agent": t.c.Request.UserAgent(),
			"request_id": t.c.GetString("request_id"),
		},
	})
}

func (t *trail) fail(motivo, registroID string) {
	t.log("Intento fallido: "+motivo, registroID)
}

func (t *trail) exception(err error, registroID string) {
	t.log("Error de excepción: "+err.Error(), registroID)
}
