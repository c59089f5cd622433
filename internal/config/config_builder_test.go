package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validBase returns a config that passes validation, for tests that
// mutate one field at a time.
func validBase() *StructuredConfig {
	cfg := defaultConfig()
	cfg.Bot.Token = "test-token"
	cfg.App.LinkURL = "https://example.com/protected"
	return cfg
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validBase().validate())
}

func TestValidate_MissingToken(t *testing.T) {
	cfg := validBase()
	cfg.Bot.Token = ""
	assert.ErrorIs(t, cfg.validate(), ErrInvalidBotConfigs)
}

func TestValidate_MissingLink(t *testing.T) {
	cfg := validBase()
	cfg.App.LinkURL = ""
	assert.ErrorIs(t, cfg.validate(), ErrInvalidAppConfigs)
}

func TestValidate_BadCaptchaGeometry(t *testing.T) {
	cfg := validBase()
	cfg.Captcha.Length = 0
	assert.ErrorIs(t, cfg.validate(), ErrInvalidCaptchaConfigs)
}

func TestValidate_BadCooldown(t *testing.T) {
	cfg := validBase()
	cfg.Access.Cooldown = 0
	assert.ErrorIs(t, cfg.validate(), ErrInvalidAccessConfigs)
}

func TestValidate_UnsupportedDriver(t *testing.T) {
	cfg := validBase()
	cfg.Storage.DB.Driver = "oracle"
	assert.ErrorIs(t, cfg.validate(), ErrInvalidStorageConfigs)
}

// TestBuild_EarlierSourceWins verifies the merge order: a field set by an
// earlier source is not overwritten by a later one, while unset fields are
// filled from later sources (defaults last).
func TestBuild_EarlierSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Bot:     Bot{Token: "from-env"},
		App:     App{LinkURL: "https://example.com"},
		Captcha: Captcha{Length: 8},
	})
	b = b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Bot.Token)
	assert.Equal(t, 8, cfg.Captcha.Length)
	// filled by defaults
	assert.Equal(t, 300, cfg.Captcha.Width)
	assert.Equal(t, 5*time.Minute, cfg.Access.Cooldown)
	assert.Equal(t, "sqlite3", cfg.Storage.DB.Driver)
}

func TestParseJSON(t *testing.T) {
	payload := `{
		"app": {"link_url": "https://example.com/x", "link_title": "Go"},
		"bot": {"token": "json-token", "poll_timeout": "45s"},
		"captcha": {"length": 5, "width": 200, "height": 80},
		"access": {"cooldown": "10m"},
		"storage": {"db": {"driver": "pgx", "dsn": "postgres://localhost/gate"}},
		"server": {"http_address": "localhost:8080"}
	}`

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/x", cfg.App.LinkURL)
	assert.Equal(t, "json-token", cfg.Bot.Token)
	assert.Equal(t, 45*time.Second, cfg.Bot.PollTimeout)
	assert.Equal(t, 5, cfg.Captcha.Length)
	assert.Equal(t, 10*time.Minute, cfg.Access.Cooldown)
	assert.Equal(t, "pgx", cfg.Storage.DB.Driver)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
}

func TestParseJSON_FileMissing(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestDuration_UnmarshalString(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalJSON([]byte(`"1h30m"`)))
	assert.Equal(t, 90*time.Minute, time.Duration(d))
}

func TestDuration_UnmarshalNumber(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalJSON([]byte(`1000000000`)))
	assert.Equal(t, time.Second, time.Duration(d))
}
