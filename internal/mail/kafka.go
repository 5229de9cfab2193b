package mail

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"

	"seguimiento_proyectos/internal/config"
)

// KafkaSender hands messages to the relay instead of talking SMTP inline.
type KafkaSender struct {
	writer *kafka.Writer
}

func NewKafkaSender(kc config.KafkaConfig) *KafkaSender {
	transport := &kafka.Transport{}
	if kc.Username != "" {
		transport.SASL = plain.Mechanism{Username: kc.Username, Password: kc.Password}
		transport.TLS = &tls.Config{}
	}

	return &KafkaSender{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(kc.Broker),
			Topic:        kc.Topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			Transport:    transport,
			WriteTimeout: 10 * time.Second,
		},
	}
}

func (k *KafkaSender) Send(ctx context.Context, msg Message) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.To),
		Value: value,
		Time:  time.Now(),
	})
}

func (k *KafkaSender) Close() error {
	return k.writer.Close()
}

// Consumer reads queued messages and delivers them with the next Sender.
type Consumer struct {
	reader      *kafka.Reader
	next        Sender
	serviceName string
}

func NewConsumer(kc config.KafkaConfig, next Sender) *Consumer {
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}
	if kc.Username != "" {
		dialer.TLS = &tls.Config{}
		dialer.SASLMechanism = plain.Mechanism{Username: kc.Username, Password: kc.Password}
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{kc.Broker},
		GroupID:  kc.GroupID,
		Topic:    kc.Topic,
		MinBytes: 10e3,
		MaxBytes: 10e6,
		Dialer:   dialer,
	})

	return &Consumer{reader: reader, next: next, serviceName: "Mailer"}
}

// Listen blocks until ctx is canceled.
func (kc *Consumer) Listen(ctx context.Context) error {
	for {
		m, err := kc.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return kc.reader.Close()
			}
			log.Printf("[%s] read error: %v", kc.serviceName, err)
			continue
		}

		if err := kc.Handle(ctx, m.Value); err != nil {
			log.Printf("[%s] handler error: %v", kc.serviceName, err)
		}
	}
}

func (kc *Consumer) Handle(ctx context.Context, value []byte) error {
	var msg Message
	if err := json.Unmarshal(value, &msg); err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	if msg.To == "" {
		return errors.New("message without recipient")
	}
	log.Printf("[%s] delivering tipo=%s to=%s", kc.serviceName, msg.Tipo, msg.To)
	return kc.next.Send(ctx, msg)
}
