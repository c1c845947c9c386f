// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS); everything specific to EmeraldHub lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session configuration. Expiry is absolute from issuance.
	SessionExpiry          time.Duration
	SessionCleanupInterval time.Duration

	// Identity broker for external sign-in. A blank URL disables the
	// exchange endpoint.
	BrokerURL     string
	BrokerTimeout time.Duration

	// BcryptCost for password hashing. Outside bcrypt's valid range it
	// falls back to the package default.
	BcryptCost int

	// Per-IP rate limit on the credential endpoints.
	AuthRateLimit float64
	AuthRateBurst int

	// SuperAdminEmail is promoted to admin on startup when the account
	// exists.
	SuperAdminEmail string
}
