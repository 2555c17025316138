// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, log level, body limits); everything
// that belongs to CardHub itself lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Token signing
	JWTKey string        // HMAC key for signing auth tokens (must be strong in production)
	JWTTTL time.Duration // Token lifetime

	// Login lockout policy
	LockoutThreshold int           // Failures that trigger a lockout check (default 3)
	LockoutWindow    time.Duration // Lookback window (default 24h)

	// First business number handed out when no cards exist
	BizNumberSeed int64

	// Origins allowed by CORS. Empty means any origin.
	CORSAllowedOrigins []string

	// Registered user promoted to admin on startup (blank disables)
	AdminEmail string

	// Audit logging: "all", "db", "log" or "off"
	AuditLogAuth  string
	AuditLogAdmin string
}
