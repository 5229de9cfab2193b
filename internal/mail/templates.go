package mail

import (
	"bytes"
	"html/template"
	"time"
)

var recoveryTmpl = template.Must(template.New("recuperacion").Parse(`<!DOCTYPE html>
<html lang="es">
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2>Recuperación de contraseña</h2>
  <p>Recibimos una solicitud para restablecer la contraseña de su cuenta.</p>
  <p>Su código de verificación es:</p>
  <p style="font-size: 28px; font-weight: bold; letter-spacing: 6px;">{{.Codigo}}</p>
  <p>El código vence en {{.Minutos}} minutos y solo puede usarse una vez.</p>
  <p>Si usted no hizo esta solicitud, ignore este mensaje.</p>
</body>
</html>`))

var activationTmpl = template.Must(template.New("activacion").Parse(`<!DOCTYPE html>
<html lang="es">
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2>Bienvenido{{if .Nombre}}, {{.Nombre}}{{end}}</h2>
  <p>Se ha creado una cuenta de administrador para usted en el sistema de gestión de proyectos.</p>
  <p>Puede ingresar desde el siguiente enlace:</p>
  <p><a href="{{.Link}}">{{.Link}}</a></p>
  <p>Si olvidó su contraseña, use la opción "Recuperar contraseña" en la pantalla de inicio.</p>
</body>
</html>`))

func RecoveryCodeMessage(to, codigo string, ttl time.Duration) (Message, error) {
	var buf bytes.Buffer
	err := recoveryTmpl.Execute(&buf, map[string]any{
		"Codigo":  codigo,
		"Minutos": int(ttl.Minutes()),
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      to,
		Subject: "Código de recuperación de contraseña",
		HTML:    buf.String(),
		Tipo:    TipoRecuperacion,
	}, nil
}

func ActivationMessage(to, nombre, link string) (Message, error) {
	var buf bytes.Buffer
	err := activationTmpl.Execute(&buf, map[string]string{
		"Nombre": nombre,
		"Link":   link,
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      to,
		Subject: "Activación de cuenta",
		HTML:    buf.String(),
		Tipo:    TipoActivacion,
	}, nil
}
