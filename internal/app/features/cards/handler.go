// internal/app/features/cards/handler.go
package cards

import (
	uierrors "github.com/dalemusser/cardhub/internal/app/features/errors"
	cardstore "github.com/dalemusser/cardhub/internal/app/store/cards"
	"github.com/dalemusser/cardhub/internal/app/system/auditlog"
	"go.uber.org/zap"
)

type Handler struct {
	Cards    *cardstore.Store
	AuditLog *auditlog.Logger
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

// NewHandler constructs a Cards feature handler. Business numbers are
// allocated and reassigned through the store's allocator.
func NewHandler(cards *cardstore.Store, audit *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Cards:    cards,
		AuditLog: audit,
		ErrLog:   errLog,
		Log:      logger,
	}
}
