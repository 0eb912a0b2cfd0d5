package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// AuthSettings holds settings for JWT token issuing and validation.
// DemoSecret is the shared credential a caller must present to obtain a
// token; the pilot has no user directory yet.
type AuthSettings struct {
	SigningKey string        `mapstructure:"signing_key" validate:"required,min=32"`
	DemoSecret string        `mapstructure:"demo_secret" validate:"required,min=8"`
	Issuer     string        `mapstructure:"issuer" validate:"required"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

// Validate checks that all fields in AuthSettings are valid
func (s *AuthSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for AuthSettings: %w", err)
	}
	return nil
}

// ApplyDefaults fills unset fields with safe values
func (s *AuthSettings) ApplyDefaults() {
	if s.TokenTTL <= 0 {
		s.TokenTTL = 24 * time.Hour
	}
}
