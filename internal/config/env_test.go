// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("BOT_TOKEN", "env-token")
	t.Setenv("BOT_POLL_TIMEOUT", "45s")
	t.Setenv("APP_LINK_URL", "https://example.com/x")
	t.Setenv("CAPTCHA_LENGTH", "8")
	t.Setenv("CAPTCHA_FONT_PATHS", "/a.ttf:/b.ttf")
	t.Setenv("ACCESS_COOLDOWN", "10m")
	t.Setenv("STORAGE_DB_DRIVER", "pgx")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://localhost/gate")
	t.Setenv("SERVER_ADDRESS", "localhost:8080")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "env-token", cfg.Bot.Token)
	assert.Equal(t, 45*time.Second, cfg.Bot.PollTimeout)
	assert.Equal(t, "https://example.com/x", cfg.App.LinkURL)
	assert.Equal(t, 8, cfg.Captcha.Length)
	assert.Equal(t, []string{"/a.ttf", "/b.ttf"}, cfg.Captcha.FontPaths)
	assert.Equal(t, 10*time.Minute, cfg.Access.Cooldown)
	assert.Equal(t, "pgx", cfg.Storage.DB.Driver)
	assert.Equal(t, "postgres://localhost/gate", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
}

func TestParseEnv_BadValue(t *testing.T) {
	t.Setenv("CAPTCHA_LENGTH", "not-a-number")

	cfg := &StructuredConfig{}
	assert.Error(t, parseEnv(cfg))
}
