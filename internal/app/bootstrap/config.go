// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/cardhub/internal/app/system/auditlog"
	"github.com/dalemusser/cardhub/internal/app/system/biznumber"
	"github.com/dalemusser/cardhub/internal/app/system/inputval"
	"github.com/dalemusser/cardhub/internal/app/system/lockout"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// devJWTKey is the shipped default. ValidateConfig refuses it in prod.
const devJWTKey = "dev-only-change-me-please-0123456789ABCDEF"

// minJWTKeyLen is the shortest signing key accepted.
const minJWTKeyLen = 32

// appConfigKeys defines the configuration keys for CardHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_key, etc.
//   - Environment variables: CARDHUB_MONGO_URI, CARDHUB_JWT_KEY, etc.
//   - Command-line flags: --mongo_uri, --jwt_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "business_card_app", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "jwt_key", Default: devJWTKey, Desc: "Token signing key (must be strong in production)"},
	{Name: "jwt_ttl", Default: "24h", Desc: "Token lifetime (e.g., 24h, 90m)"},

	{Name: "lockout_threshold", Default: lockout.DefaultThreshold, Desc: "Failed logins that trigger a lockout check"},
	{Name: "lockout_window", Default: "24h", Desc: "How long a lockout lasts after the last counted failure"},

	{Name: "biznumber_seed", Default: int(biznumber.DefaultSeed), Desc: "Business number given to the first card"},

	{Name: "cors_allowed_origins", Default: "", Desc: "Comma-separated CORS origins (blank allows any)"},

	{Name: "admin_email", Default: "", Desc: "Email of a registered user to promote to admin on startup"},

	{Name: "audit_log_auth", Default: auditlog.All, Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: auditlog.All, Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges .env files, config files,
// CARDHUB_* environment variables and flags with precedence
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CARDHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTKey: appValues.String("jwt_key"),
		JWTTTL: appValues.Duration("jwt_ttl", 24*time.Hour),

		LockoutThreshold: appValues.Int("lockout_threshold"),
		LockoutWindow:    appValues.Duration("lockout_window", lockout.DefaultWindow),

		BizNumberSeed: int64(appValues.Int("biznumber_seed")),

		CORSAllowedOrigins: splitList(appValues.String("cors_allowed_origins")),

		AdminEmail: strings.TrimSpace(appValues.String("admin_email")),

		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// CardHub checks the MongoDB URI format before attempting to connect,
// rejects weak signing keys, and refuses the development key in prod.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if strings.TrimSpace(appCfg.MongoDatabase) == "" {
		return fmt.Errorf("mongo_database must be set")
	}

	if len(appCfg.JWTKey) < minJWTKeyLen {
		return fmt.Errorf("jwt_key must be at least %d characters", minJWTKeyLen)
	}
	if coreCfg != nil && coreCfg.Env == "prod" && appCfg.JWTKey == devJWTKey {
		return fmt.Errorf("jwt_key must be changed from the development default in prod")
	}
	if appCfg.JWTTTL <= 0 {
		return fmt.Errorf("jwt_ttl must be positive")
	}

	if appCfg.LockoutThreshold < 1 {
		return fmt.Errorf("lockout_threshold must be at least 1")
	}
	if appCfg.LockoutWindow <= 0 {
		return fmt.Errorf("lockout_window must be positive")
	}
	if appCfg.BizNumberSeed < 1 {
		return fmt.Errorf("biznumber_seed must be at least 1")
	}

	if appCfg.AdminEmail != "" && !inputval.IsValidEmail(appCfg.AdminEmail) {
		return fmt.Errorf("admin_email %q is not a valid email address", appCfg.AdminEmail)
	}

	for _, s := range []string{appCfg.AuditLogAuth, appCfg.AuditLogAdmin} {
		switch s {
		case "", auditlog.All, auditlog.DB, auditlog.Log, auditlog.Off:
		default:
			return fmt.Errorf("invalid audit log setting %q (want all, db, log or off)", s)
		}
	}

	return nil
}

// splitList turns "a, b,,c" into [a b c].
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
