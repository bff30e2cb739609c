package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cobranza-api/pkg/config"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "cobranza-api", cfg.App.Name)
	assert.Equal(t, ',', cfg.Export.Delimiter)
	assert.Equal(t, "N/A", cfg.Export.Placeholder)
	assert.False(t, cfg.Export.Legacy)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, int32(10), cfg.DB.MaxConns)
}

func TestFromViper_LeeVariables(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("EXPORT_DELIMITER", "tab")
	v.Set("EXPORT_LEGACY", "true")
	v.Set("DB_FORCE_IPV4", "false")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, '\t', cfg.Export.Delimiter)
	assert.True(t, cfg.Export.Legacy)
	assert.False(t, cfg.DB.ForceIPv4)
}

func TestFromViper_DelimitadorInvalido(t *testing.T) {
	v := viper.New()
	v.Set("EXPORT_DELIMITER", ";;")
	_, err := config.FromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "cobranza", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/cobranza?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgresql://x@y/z"
	assert.Equal(t, "postgresql://x@y/z", c.ConnectionString())
}
