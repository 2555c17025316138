// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	auditlogfeature "github.com/dalemusser/cardhub/internal/app/features/auditlog"
	cardsfeature "github.com/dalemusser/cardhub/internal/app/features/cards"
	customerrequestsfeature "github.com/dalemusser/cardhub/internal/app/features/customerrequests"
	errorsfeature "github.com/dalemusser/cardhub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/cardhub/internal/app/features/health"
	loginfeature "github.com/dalemusser/cardhub/internal/app/features/login"
	logosfeature "github.com/dalemusser/cardhub/internal/app/features/logos"
	stocksfeature "github.com/dalemusser/cardhub/internal/app/features/stocks"
	usersfeature "github.com/dalemusser/cardhub/internal/app/features/users"
	"github.com/dalemusser/cardhub/internal/app/store/audit"
	cardstore "github.com/dalemusser/cardhub/internal/app/store/cards"
	customerrequeststore "github.com/dalemusser/cardhub/internal/app/store/customerrequests"
	loginfailurestore "github.com/dalemusser/cardhub/internal/app/store/loginfailures"
	logostore "github.com/dalemusser/cardhub/internal/app/store/logos"
	stockstore "github.com/dalemusser/cardhub/internal/app/store/stocks"
	userstore "github.com/dalemusser/cardhub/internal/app/store/users"
	"github.com/dalemusser/cardhub/internal/app/system/auditlog"
	"github.com/dalemusser/cardhub/internal/app/system/auth"
	"github.com/dalemusser/cardhub/internal/app/system/lockout"
	"github.com/dalemusser/cardhub/internal/app/system/requestlog"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. CardHub builds its stores and policy
// services here, applies request logging and CORS, and mounts one feature
// router per API area under /api.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.CardHubMongoDatabase

	tokens, err := auth.NewTokens(appCfg.JWTKey, appCfg.JWTTTL, logger)
	if err != nil {
		logger.Error("token issuer init failed", zap.Error(err))
		return nil, err
	}

	// Stores and policy services.
	users := userstore.New(db)
	cards := cardstore.New(db, appCfg.BizNumberSeed)
	tracker := lockout.New(loginfailurestore.New(db), appCfg.LockoutThreshold, appCfg.LockoutWindow, logger)
	events := audit.New(db)
	auditLog := auditlog.New(events, logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestlog.Middleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(corsOptions(appCfg.CORSAllowedOrigins)))

	r.NotFound(errorsfeature.NotFound)
	r.MethodNotAllowed(errorsfeature.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.CardHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Users and login share a prefix; /login is matched before /{id}.
	loginHandler := loginfeature.NewHandler(users, tracker, tokens, auditLog, errLog, logger)
	usersHandler := usersfeature.NewHandler(users, cards, auditLog, errLog, logger)
	r.Route("/api/users", func(ur chi.Router) {
		ur.Mount("/login", loginfeature.Routes(loginHandler))
		ur.Mount("/", usersfeature.Routes(usersHandler, tokens))
	})

	cardsHandler := cardsfeature.NewHandler(cards, auditLog, errLog, logger)
	r.Mount("/api/cards", cardsfeature.Routes(cardsHandler, tokens))

	stocksHandler := stocksfeature.NewHandler(stockstore.New(db), errLog, logger)
	r.Mount("/api/stocks", stocksfeature.Routes(stocksHandler, tokens))

	logosHandler := logosfeature.NewHandler(logostore.New(db), errLog, logger)
	r.Mount("/api/logos", logosfeature.Routes(logosHandler, tokens))

	requestsHandler := customerrequestsfeature.NewHandler(customerrequeststore.New(db), errLog, logger)
	r.Mount("/api/customerrequest", customerrequestsfeature.Routes(requestsHandler, tokens))

	auditHandler := auditlogfeature.NewHandler(events, errLog, logger)
	r.Mount("/api/audit", auditlogfeature.Routes(auditHandler, tokens))

	return r, nil
}

// corsOptions allows any origin when none are configured.
func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}
}
