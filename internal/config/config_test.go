package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "DATABASE_URL", "DB_SSL_INSECURE", "DB_MAX_CONNS", "DB_CONNECT_TIMEOUT",
		"ADMIN_USERNAME", "ADMIN_PASSWORD", "COLLATE_LOCALE", "LOG_LEVEL", "LOG_FORMAT",
		"LOGIN_RATE", "LOGIN_BURST",
	} {
		t.Setenv(k, "")
	}

	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "5000", c.Port)
	assert.Equal(t, "casamento", c.AdminUsername)
	assert.Equal(t, "1995", c.AdminPassword)
	assert.Equal(t, int32(10), c.DBMaxConns)
	assert.Equal(t, 10*time.Second, c.DBConnectTimeout)
	assert.False(t, c.DBInsecureTLS)
	assert.Equal(t, language.Und, c.Locale)
	assert.Equal(t, 5, c.LoginBurst)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("DB_SSL_INSECURE", "true")
	t.Setenv("DB_MAX_CONNS", "3")
	t.Setenv("DB_CONNECT_TIMEOUT", "2s")
	t.Setenv("COLLATE_LOCALE", "pt-BR")

	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8081", c.Port)
	assert.True(t, c.DBInsecureTLS)
	assert.Equal(t, int32(3), c.DBMaxConns)
	assert.Equal(t, 2*time.Second, c.DBConnectTimeout)
	assert.Equal(t, language.MustParse("pt-BR"), c.Locale)
}

func TestFromEnvInvalid(t *testing.T) {
	tests := []struct {
		name, key, val string
	}{
		{"port", "PORT", "http"},
		{"tls toggle", "DB_SSL_INSECURE", "maybe"},
		{"zero conns", "DB_MAX_CONNS", "0"},
		{"conns overflow int32", "DB_MAX_CONNS", "4294967297"},
		{"timeout without unit", "DB_CONNECT_TIMEOUT", "10"},
		{"locale", "COLLATE_LOCALE", "not a locale!"},
		{"login rate", "LOGIN_RATE", "fast"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
