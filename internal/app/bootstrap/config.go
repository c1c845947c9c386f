// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for EmeraldHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_expiry, etc.
//   - Environment variables: EMERALDHUB_MONGO_URI, EMERALDHUB_SESSION_EXPIRY, etc.
//   - Command-line flags: --mongo_uri, --session_expiry, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "emerald_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	// Sessions
	{Name: "session_expiry", Default: "168h", Desc: "Bearer session lifetime (absolute, never extended)"},
	{Name: "session_cleanup_interval", Default: "10m", Desc: "How often the expired-session reaper runs"},

	// Identity broker
	{Name: "broker_url", Default: "", Desc: "Identity broker endpoint for external sign-in (blank disables it)"},
	{Name: "broker_timeout", Default: "10s", Desc: "Per-exchange timeout for the identity broker"},

	// Credentials
	{Name: "bcrypt_cost", Default: 12, Desc: "bcrypt cost for password hashing"},

	// Rate limiting on register/login/session
	{Name: "auth_rate_limit", Default: 5, Desc: "Credential endpoint requests per second per IP"},
	{Name: "auth_rate_burst", Default: 10, Desc: "Credential endpoint burst per IP"},

	// SuperAdmin bootstrap
	{Name: "superadmin_email", Default: "", Desc: "Email of the superadmin user (promoted on startup)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, EMERALDHUB_* for app) and
// command-line flags, merging with precedence: flags > env > files >
// defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "EMERALDHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionExpiry:          appValues.Duration("session_expiry", 168*time.Hour),
		SessionCleanupInterval: appValues.Duration("session_cleanup_interval", 10*time.Minute),

		BrokerURL:     appValues.String("broker_url"),
		BrokerTimeout: appValues.Duration("broker_timeout", 10*time.Second),

		BcryptCost: appValues.Int("bcrypt_cost"),

		AuthRateLimit: float64(appValues.Int("auth_rate_limit")),
		AuthRateBurst: appValues.Int("auth_rate_burst"),

		SuperAdminEmail: appValues.String("superadmin_email"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation, catching
// configuration errors before any connection attempt.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.SessionExpiry <= 0 {
		return fmt.Errorf("session_expiry must be positive")
	}
	if appCfg.BrokerURL == "" {
		logger.Warn("broker_url is blank; external sign-in is disabled")
	}
	return nil
}
