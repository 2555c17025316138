// internal/app/features/stocks/handler.go
package stocks

import (
	uierrors "github.com/dalemusser/cardhub/internal/app/features/errors"
	stockstore "github.com/dalemusser/cardhub/internal/app/store/stocks"
	"go.uber.org/zap"
)

type Handler struct {
	Stocks *stockstore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(stocks *stockstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Stocks: stocks, ErrLog: errLog, Log: logger}
}
