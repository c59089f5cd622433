package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidBotConfigs indicates invalid chat transport settings
	// (for example, a missing bot token).
	ErrInvalidBotConfigs = errors.New("invalid bot configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a missing protected link URL).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidCaptchaConfigs indicates invalid challenge settings
	// (for example, a zero text length or canvas dimension).
	ErrInvalidCaptchaConfigs = errors.New("invalid captcha configuration")
	// ErrInvalidAccessConfigs indicates invalid gating policy settings
	// (for example, a non-positive cooldown window).
	ErrInvalidAccessConfigs = errors.New("invalid access configuration")
	// ErrInvalidStorageConfigs indicates invalid ledger storage settings
	// (for example, empty DSN or unsupported driver).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
)
