package mail

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seguimiento_proyectos/internal/config"
)

type captureSender struct {
	sent []Message
	err  error
}

func (c *captureSender) Send(_ context.Context, msg Message) error {
	c.sent = append(c.sent, msg)
	return c.err
}

func TestRecoveryCodeMessage(t *testing.T) {
	msg, err := RecoveryCodeMessage("est@uni.edu", "048213", 15*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, "est@uni.edu", msg.To)
	assert.Equal(t, TipoRecuperacion, msg.Tipo)
	assert.Contains(t, msg.HTML, "048213")
	assert.Contains(t, msg.HTML, "15 minutos")
}

func TestActivationMessageEscapesInput(t *testing.T) {
	msg, err := ActivationMessage("nuevo@uni.edu", "<script>", "https://proyectos.uni.edu")
	require.NoError(t, err)

	assert.Equal(t, TipoActivacion, msg.Tipo)
	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.HTML, "https://proyectos.uni.edu")
}

func TestBuildMIME(t *testing.T) {
	raw := string(buildMIME("Gestión de Proyectos", "no-reply@uni.edu", Message{
		To:      "est@uni.edu",
		Subject: "Activación de cuenta",
		HTML:    "<p>hola</p>",
	}))

	assert.Contains(t, raw, "To: est@uni.edu\r\n")
	assert.Contains(t, raw, "<no-reply@uni.edu>")
	assert.Contains(t, raw, "Subject: =?UTF-8?q?")
	assert.Contains(t, raw, "Content-Type: text/html")
	assert.True(t, strings.HasSuffix(raw, "\r\n\r\n<p>hola</p>"))
}

func TestConsumerHandle(t *testing.T) {
	next := &captureSender{}
	c := &Consumer{next: next, serviceName: "test"}

	err := c.Handle(context.Background(), []byte(`{"to":"a@uni.edu","subject":"s","html":"<p/>","tipo":"activacion"}`))
	require.NoError(t, err)
	require.Len(t, next.sent, 1)
	assert.Equal(t, "a@uni.edu", next.sent[0].To)

	assert.Error(t, c.Handle(context.Background(), []byte(`{"subject":"s"}`)))
	assert.Error(t, c.Handle(context.Background(), []byte(`not json`)))

	next.err = errors.New("smtp down")
	assert.ErrorContains(t, c.Handle(context.Background(), []byte(`{"to":"b@uni.edu"}`)), "smtp down")
}

func TestNewSender(t *testing.T) {
	s, closeFn, err := NewSender(config.MailConfig{Transport: "log"}, config.KafkaConfig{})
	require.NoError(t, err)
	assert.IsType(t, LogSender{}, s)
	assert.NoError(t, closeFn())

	_, _, err = NewSender(config.MailConfig{Transport: "smtp"}, config.KafkaConfig{})
	assert.Error(t, err)

	_, _, err = NewSender(config.MailConfig{Transport: "kafka"}, config.KafkaConfig{})
	assert.Error(t, err)

	s, closeFn, err = NewSender(config.MailConfig{Transport: "kafka"}, config.KafkaConfig{Broker: "localhost:9092", Topic: "correos"})
	require.NoError(t, err)
	assert.IsType(t, &KafkaSender{}, s)
	assert.NoError(t, closeFn())

	_, _, err = NewSender(config.MailConfig{Transport: "pigeon"}, config.KafkaConfig{})
	assert.Error(t, err)
}
