// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error from
// errors.go otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Bot.Token == "" {
		return ErrInvalidBotConfigs
	}

	if cfg.App.LinkURL == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Captcha.Length < 1 || cfg.Captcha.Width < 1 || cfg.Captcha.Height < 1 {
		return ErrInvalidCaptchaConfigs
	}

	if cfg.Access.Cooldown <= 0 {
		return ErrInvalidAccessConfigs
	}

	if cfg.Storage.DB.Driver != "sqlite3" && cfg.Storage.DB.Driver != "pgx" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}
