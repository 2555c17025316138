// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	userstore "github.com/dalemusser/cardhub/internal/app/store/users"
	"github.com/dalemusser/cardhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		cur := timeouts.Current()
		logger.Info("timeouts overridden from environment",
			zap.Duration("ping", cur.Ping),
			zap.Duration("short", cur.Short),
			zap.Duration("medium", cur.Medium))
	}

	if err := ensureAdmin(ctx, deps, appCfg.AdminEmail, logger); err != nil {
		return err
	}

	logger.Info("cardhub starting",
		zap.Int("lockout_threshold", appCfg.LockoutThreshold),
		zap.Duration("lockout_window", appCfg.LockoutWindow),
		zap.Int64("biznumber_seed", appCfg.BizNumberSeed),
		zap.Strings("cors_allowed_origins", appCfg.CORSAllowedOrigins))
	return nil
}

// ensureAdmin promotes the registered user with email to admin. A blank
// email does nothing. An unknown email is logged and startup continues, so
// the account can be registered and picked up on the next start.
func ensureAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	if email == "" {
		return nil
	}
	users := userstore.New(deps.CardHubMongoDatabase)

	existing, err := users.GetByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		logger.Warn("admin email not registered yet; no admin promoted", zap.String("email", email))
		return nil
	}
	if err != nil {
		return fmt.Errorf("look up admin user: %w", err)
	}
	if existing.IsAdmin {
		logger.Info("admin user already present", zap.String("email", email))
		return nil
	}

	u, err := users.SetAdminByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("promote admin user: %w", err)
	}
	logger.Info("promoted user to admin",
		zap.String("email", email),
		zap.String("user_id", u.ID.Hex()))
	return nil
}
