package service

import (
	"github.com/MKhiriev/go-captcha-gate/internal/config"
	"github.com/MKhiriev/go-captcha-gate/internal/logger"
	"github.com/MKhiriev/go-captcha-gate/internal/store"
)

type Services struct {
	VerificationService VerificationService
}

func NewServices(
	storages *store.Storages,
	sessions SessionStore,
	generator ChallengeGenerator,
	messenger Messenger,
	cfg *config.StructuredConfig,
	logger *logger.Logger,
) *Services {
	return &Services{
		VerificationService: NewVerificationService(
			storages.UserRepository,
			sessions,
			generator,
			messenger,
			cfg.App,
			cfg.Access,
			logger,
		),
	}
}
