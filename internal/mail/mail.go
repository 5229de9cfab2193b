// Package mail delivers the recovery and activation emails, either directly
// over SMTP or through the Kafka relay consumed by cmd/mailer.
package mail

import (
	"context"
	"fmt"
	"log"

	"seguimiento_proyectos/internal/config"
)

const (
	TipoRecuperacion = "recuperacion"
	TipoActivacion   = "activacion"
)

// Message is a rendered email. It is also the Kafka payload.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Tipo    string `json:"tipo"`
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender picks the transport named by MAIL_TRANSPORT. The returned close
// func releases the Kafka writer and is a no-op otherwise.
func NewSender(mc config.MailConfig, kc config.KafkaConfig) (Sender, func() error, error) {
	noop := func() error { return nil }
	switch mc.Transport {
	case "smtp":
		if mc.SMTPHost == "" {
			return nil, noop, fmt.Errorf("SMTP_HOST not set")
		}
		return NewSMTPSender(mc), noop, nil
	case "kafka":
		if kc.Broker == "" {
			return nil, noop, fmt.Errorf("KAFKA_BROKER not set")
		}
		ks := NewKafkaSender(kc)
		return ks, ks.Close, nil
	case "log", "":
		log.Println("⚠️ MAIL_TRANSPORT=log, emails will only be written to the log")
		return LogSender{}, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown MAIL_TRANSPORT %q", mc.Transport)
	}
}

// LogSender is the development transport.
type LogSender struct{}

func (LogSender) Send(_ context.Context, msg Message) error {
	log.Printf("[MAIL] (log) to=%s tipo=%s subject=%q", msg.To, msg.Tipo, msg.Subject)
	return nil
}
