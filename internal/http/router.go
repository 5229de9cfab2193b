package httpserver

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"seguimiento_proyectos/internal/audit"
	"seguimiento_proyectos/internal/auth"
	"seguimiento_proyectos/internal/http/handlers"
	"seguimiento_proyectos/internal/mail"
	"seguimiento_proyectos/internal/models"
	"seguimiento_proyectos/internal/projects"
	"seguimiento_proyectos/internal/rbac"
	"seguimiento_proyectos/internal/recovery"
)

// Deps are the shared services every route closes over.
type Deps struct {
	DB          *gorm.DB
	Sessions    auth.Sessions
	Recorder    *audit.Recorder
	Hub         *audit.Hub
	Projects    *projects.Store
	Recovery    *recovery.Manager
	Mailer      mail.Sender
	FrontendURL string
	StaticDir   string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), cors(d.FrontendURL))

	// dashboard assets, when bundled next to the binary
	if d.StaticDir != "" {
		if _, err := os.Stat(d.StaticDir); err == nil {
			r.Static("/static", d.StaticDir)
			r.StaticFile("/", filepath.Join(d.StaticDir, "index.html"))
		}
	}
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public PDF data: no session, so the audit actor is always null
	r.GET("/api/publicas/:slug/:id/datos-pdf", handlers.DatosPDF(d.Projects, d.Recorder))

	api := r.Group("/api", auth.Session(d.DB, d.Sessions))
	{
		// Public routes
		api.POST("/login", handlers.LoginHandler(d.DB, d.Sessions, d.Recorder))
		api.POST("/logout", handlers.LogoutHandler(d.Sessions, d.Recorder))
		api.GET("/sesion", handlers.SessionHandler(d.DB))
		api.POST("/recuperar-password", handlers.RecuperarPassword(d.Recovery, d.Recorder))
		api.POST("/verificar-codigo", handlers.VerificarCodigo(d.Recovery, d.Recorder))
		api.POST("/resetear-password", handlers.ResetearPassword(d.Recovery, d.Recorder))
	}

	chk := rbac.Checker{DB: d.DB}
	priv := api.Group("", auth.Required(), requireRole(chk, models.RolAdministrador))
	{
		priv.POST("/enviar-correo-activacion", handlers.EnviarCorreoActivacion(d.Mailer, d.FrontendURL, d.Recorder))

		// Profile
		priv.GET("/perfil", handlers.ProfileHandler(d.DB))
		priv.PUT("/perfil", handlers.UpdateProfileHandler(d.DB, d.Recorder))

		// Estudiantes
		est := priv.Group("/estudiantes")
		est.GET("", handlers.ListEstudiantes(d.DB))
		est.GET("/:id", handlers.GetEstudiante(d.DB))
		est.POST("", handlers.CreateEstudiante(d.DB, d.Recorder))
		est.PUT("/:id", handlers.UpdateEstudiante(d.DB, d.Recorder))
		est.DELETE("/:id", handlers.DeleteEstudiante(d.DB, d.Projects, d.Recorder))

		// Administradores
		adm := priv.Group("/administradores")
		adm.GET("", handlers.ListAdministradores(d.DB))
		adm.GET("/eliminados", handlers.ListAdministradoresEliminados(d.DB))
		adm.GET("/:id", handlers.GetAdministrador(d.DB))
		adm.POST("", handlers.CreateAdministrador(d.DB, d.Recorder))
		adm.PUT("/:id", handlers.UpdateAdministrador(d.DB, d.Recorder))
		adm.PUT("/eliminar-logico/:id", handlers.EliminarLogicoAdministrador(d.DB, d.Recorder))
		adm.PUT("/restaurar/:id", handlers.RestaurarAdministrador(d.DB, d.Recorder))

		// Catalogs
		priv.GET("/carreras", handlers.ListCarreras(d.DB))
		priv.POST("/carreras", handlers.CreateCarrera(d.DB, d.Recorder))
		priv.GET("/periodos", handlers.ListPeriodos(d.DB))
		priv.POST("/periodos", handlers.CreatePeriodo(d.DB, d.Recorder))
		priv.GET("/tutores", handlers.ListTutores(d.DB))
		priv.POST("/tutores", handlers.CreateTutor(d.DB, d.Recorder))

		// Projects, one router per kind
		for _, k := range projects.Kinds {
			g := priv.Group("/" + k.Slug)
			g.GET("", handlers.ListProyectos(d.Projects, k))
			g.GET("/:id", handlers.GetProyecto(d.Projects, k))
			g.POST("", handlers.CreateProyecto(d.Projects, k, d.Recorder))
			g.PUT("/:id", handlers.UpdateProyecto(d.Projects, k, d.Recorder))
			g.PUT("/eliminar/:id", handlers.EliminarProyecto(d.Projects, k, d.Recorder))
			g.PUT("/restaurar/:id", handlers.RestaurarProyecto(d.Projects, k, d.Recorder))
		}
		priv.GET("/dashboard/count/:tipo", handlers.CountProyectos(d.Projects))
		priv.GET("/proyectos-eliminados", handlers.ListProyectosEliminados(d.Projects))

		// Bitácora
		priv.GET("/bitacora", handlers.ListBitacora(d.DB))
		priv.GET("/bitacora/stream", handlers.StreamBitacora(d.Hub, d.FrontendURL))
	}

	return r
}

func requireRole(chk rbac.Checker, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := auth.LoginID(c)
		if id == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No autorizado"})
			return
		}
		ok, err := chk.Can(c.Request.Context(), *id, roles...)
		if err != nil || !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Acceso denegado"})
			return
		}
		c.Next()
	}
}
