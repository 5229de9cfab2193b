// Command mailer drains the Kafka mail topic and delivers each message over SMTP.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"seguimiento_proyectos/internal/config"
	"seguimiento_proyectos/internal/mail"
)

func main() {
	cfg := config.LoadRelay()

	log.Println("Mailer starting...")
	log.Printf("KafkaBroker=%s Topic=%s GroupID=%s\n",
		cfg.Kafka.Broker,
		cfg.Kafka.Topic,
		cfg.Kafka.GroupID,
	)

	var next mail.Sender = mail.LogSender{}
	if cfg.Mail.SMTPHost != "" {
		next = mail.NewSMTPSender(cfg.Mail)
	} else {
		log.Println("⚠️ SMTP_HOST not set, messages will only be logged")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := mail.NewConsumer(cfg.Kafka, next)
	log.Println("Mailer listening for messages...")
	if err := consumer.Listen(ctx); err != nil {
		log.Printf("⚠️ consumer close: %v", err)
	}
	log.Println("Mailer stopped")
}
