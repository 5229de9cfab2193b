package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"seguimiento_proyectos/internal/audit"
	"seguimiento_proyectos/internal/auth"
	"seguimiento_proyectos/internal/config"
	"seguimiento_proyectos/internal/db"
	httpserver "seguimiento_proyectos/internal/http"
	"seguimiento_proyectos/internal/mail"
	"seguimiento_proyectos/internal/models"
	"seguimiento_proyectos/internal/projects"
	"seguimiento_proyectos/internal/recovery"
	"seguimiento_proyectos/internal/seed"
)

func main() {
	cfg := config.Load()

	gdb := db.Connect(cfg.DBDriver, cfg.DSN)
	if cfg.AutoMigrate {
		db.AutoMigrate(gdb, models.All()...)
	}
	if cfg.Seed {
		if err := seed.FirstSetup(gdb, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
			log.Fatalf("❌ Seed failed: %v", err)
		}
	}

	mailer, closeMailer, err := mail.NewSender(cfg.Mail, cfg.Kafka)
	if err != nil {
		log.Fatalf("❌ Mail transport: %v", err)
	}
	defer func() { _ = closeMailer() }()

	hub := audit.NewHub()
	sessions := auth.Sessions{
		Secret:   cfg.SessionSecret,
		Secure:   cfg.Production(),
		SameSite: cfg.SameSite(),
	}

	r := httpserver.NewRouter(httpserver.Deps{
		DB:          gdb,
		Sessions:    sessions,
		Recorder:    audit.NewRecorder(gdb, hub),
		Hub:         hub,
		Projects:    projects.NewStore(gdb),
		Recovery:    recovery.NewManager(gdb, mailer, auth.NewResetTokens(cfg.SessionSecret)),
		Mailer:      mailer,
		FrontendURL: cfg.FrontendURL,
		StaticDir:   cfg.StaticDir,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("🚀 Server listening on :%s (mail=%s)\n", cfg.AppPort, cfg.Mail.Transport)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ Shutdown: %v", err)
	}
}
