package config

import (
	"os"
	"strings"
)

const (
	appEnvVar              = "APP_ENV"
	environmentDevelopment = "development"
	environmentProduction  = "production"
	environmentStaging     = "staging"
)

const (
	// EnvironmentDevelopment exposes the canonical development environment
	// identifier. It can be used by callers outside the config package when
	// environment specific behaviour is required.
	EnvironmentDevelopment = environmentDevelopment
	// EnvironmentProduction exposes the canonical production environment
	// identifier.
	EnvironmentProduction = environmentProduction
	// EnvironmentStaging exposes the canonical staging environment
	// identifier.
	EnvironmentStaging = environmentStaging
)

const (
	apiKeyEnvVar    = "EXMO_API_KEY"
	apiSecretEnvVar = "EXMO_API_SECRET"
)

var environmentAliases = map[string]string{
	"prod": environmentProduction,
	"stag": environmentStaging,
}

// Credentials holds the API key pair used to sign private requests.
// Both fields are empty when the process runs without trading access.
type Credentials struct {
	APIKey    string
	APISecret string
}

// Configured reports whether both the key and the secret are present.
func (c Credentials) Configured() bool {
	return c.APIKey != "" && c.APISecret != ""
}

// CredentialsFromEnv reads the API key pair from EXMO_API_KEY and
// EXMO_API_SECRET. Missing variables yield empty fields; the adapter
// rejects private calls made with incomplete credentials.
func CredentialsFromEnv() Credentials {
	return Credentials{
		APIKey:    strings.TrimSpace(os.Getenv(apiKeyEnvVar)),
		APISecret: strings.TrimSpace(os.Getenv(apiSecretEnvVar)),
	}
}

// AppEnvironment exposes the current application environment as configured
// through the APP_ENV environment variable. The value is normalised using
// alias rules so callers can rely on a consistent identifier.
func AppEnvironment() string {
	env := strings.ToLower(strings.TrimSpace(os.Getenv(appEnvVar)))
	if env == "" {
		return environmentDevelopment
	}
	if canonical, ok := environmentAliases[env]; ok {
		return canonical
	}
	return env
}

// IsProductionLike reports whether the provided environment should behave
// like a production deployment. Production-like environments (production and
// staging) are stricter about missing credentials.
func IsProductionLike(env string) bool {
	switch env {
	case environmentProduction, environmentStaging:
		return true
	default:
		return false
	}
}
