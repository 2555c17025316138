// internal/app/features/users/handler.go
package users

import (
	uierrors "github.com/dalemusser/cardhub/internal/app/features/errors"
	cardstore "github.com/dalemusser/cardhub/internal/app/store/cards"
	userstore "github.com/dalemusser/cardhub/internal/app/store/users"
	"github.com/dalemusser/cardhub/internal/app/system/auditlog"
	"go.uber.org/zap"
)

type Handler struct {
	Users    *userstore.Store
	Cards    *cardstore.Store
	AuditLog *auditlog.Logger
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

// NewHandler constructs a Users feature handler. Cards is used to remove a
// deleted user's cards.
func NewHandler(users *userstore.Store, cards *cardstore.Store, audit *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    users,
		Cards:    cards,
		AuditLog: audit,
		ErrLog:   errLog,
		Log:      logger,
	}
}
