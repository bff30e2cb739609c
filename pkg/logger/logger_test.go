package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Cobranza-api/pkg/logger"
)

func TestNew_JSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	l.Component("followups").Info().Str("client_id", "c-1").Msg("seguimiento creado")

	out := buf.String()
	assert.Contains(t, out, `"component":"followups"`)
	assert.Contains(t, out, `"client_id":"c-1"`)
	assert.Contains(t, out, `"message":"seguimiento creado"`)
}

func TestNew_NivelFiltraDebug(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})

	l.Info().Msg("oculto")
	l.Warn().Msg("visible")

	assert.NotContains(t, buf.String(), "oculto")
	assert.Contains(t, buf.String(), "visible")
}

func TestComponent_ReceptorNil(t *testing.T) {
	var l *logger.Logger
	assert.NotPanics(t, func() { l.Component("x").Info().Msg("nada") })
}
