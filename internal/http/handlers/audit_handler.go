package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"seguimiento_proyectos/internal/audit"
	"seguimiento_proyectos/internal/models"
)

// ListBitacora pages the audit trail newest first. Use next_cursor as
// after_id to fetch the following page.
func ListBitacora(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 20
		if limitStr := c.Query("limit"); limitStr != "" {
			if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
				limit = parsed
			}
		}

		var afterID int64
		if cursorStr := c.Query("after_id"); cursorStr != "" {
			if parsed, err := strconv.ParseInt(cursorStr, 10, 64); err == nil && parsed > 0 {
				afterID = parsed
			}
		}

		query := db.Model(&models.Auditoria{}).Order("id DESC")
		if afterID > 0 {
			query = query.Where("id < ?", afterID)
		}
		if modulo := strings.TrimSpace(c.Query("modulo")); modulo != "" {
			query = query.Where("modulo_afectado = ?", modulo)
		}
		if search := strings.TrimSpace(c.Query("q")); search != "" {
			like := "%" + strings.ToLower(search) + "%"
			query = query.Where("(LOWER(modulo_afectado) LIKE ? OR LOWER(accion_realizada) LIKE ? OR LOWER(descripcion_detallada) LIKE ?)",
				like, like, like)
		}

		var logs []models.Auditoria
		if err := query.Limit(limit + 1).Find(&logs).Error; err != nil {
			serverError(c, err, "Error al obtener la bitácora")
			return
		}

		var nextCursor *int64
		if len(logs) > limit {
			logs = logs[:limit]
			next := logs[limit-1].ID
			nextCursor = &next
		}

		c.JSON(http.StatusOK, gin.H{
			"registros":   logs,
			"next_cursor": nextCursor,
		})
	}
}

// StreamBitacora pushes new audit rows to the dashboard over a websocket.
func StreamBitacora(hub *audit.Hub, allowedOrigin string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origin == allowedOrigin || origin == "http://"+r.Host || origin == "https://"+r.Host
		},
	}

	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		feed, cancel := hub.Subscribe(32)
		defer cancel()
		log.Printf("🔌 Bitácora stream opened (%d listeners)", hub.Subscribers())

		// reader only notices the client going away
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-closed:
				return
			case row, ok := <-feed:
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
				if err := conn.WriteJSON(row); err != nil {
					return
				}
			case <-ping.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
					return
				}
			}
		}
	}
}
