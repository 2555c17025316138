// internal/app/features/logos/handler.go
package logos

import (
	uierrors "github.com/dalemusser/cardhub/internal/app/features/errors"
	logostore "github.com/dalemusser/cardhub/internal/app/store/logos"
	"go.uber.org/zap"
)

type Handler struct {
	Logos  *logostore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(logos *logostore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Logos: logos, ErrLog: errLog, Log: logger}
}
