// internal/app/features/errors/errors.go
package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/dalemusser/cardhub/internal/app/system/biznumber"
	"github.com/dalemusser/cardhub/internal/app/system/lockout"
	"github.com/dalemusser/cardhub/internal/app/system/respond"
	"github.com/go-chi/chi/v5/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// RouteNotFound is the body message for unknown paths.
const RouteNotFound = "Illegal path - Route not found"

// ErrorLogger logs a failure with request context and writes a safe JSON
// error to the client.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

func (e *ErrorLogger) fields(r *http.Request, err error) []zap.Field {
	f := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if id := middleware.GetReqID(r.Context()); id != "" {
		f = append(f, zap.String("request_id", id))
	}
	if err != nil {
		f = append(f, zap.Error(err))
	}
	return f
}

// LogServerError logs at error level and responds 500 with userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.Log.Error(msg, e.fields(r, err)...)
	respond.Error(w, http.StatusInternalServerError, userMsg)
}

// LogBadRequest logs at info level and responds 400 with userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.Log.Info(msg, e.fields(r, err)...)
	respond.Error(w, http.StatusBadRequest, userMsg)
}

// LogForbidden logs at warn level and responds 403 with userMsg.
func (e *ErrorLogger) LogForbidden(w http.ResponseWriter, r *http.Request, msg string, userMsg string) {
	e.Log.Warn(msg, e.fields(r, nil)...)
	respond.Error(w, http.StatusForbidden, userMsg)
}

// LogError maps err onto a status code. Known kinds are answered with
// their own message; anything else is a 500 with userMsg.
func (e *ErrorLogger) LogError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	code := Status(err)
	switch code {
	case http.StatusInternalServerError:
		e.LogServerError(w, r, msg, err, userMsg)
		return
	case http.StatusServiceUnavailable:
		e.Log.Error(msg, e.fields(r, err)...)
		respond.Error(w, code, "Service temporarily unavailable. Try again later.")
		return
	case http.StatusNotFound:
		e.Log.Debug(msg, e.fields(r, err)...)
		respond.Error(w, code, userMsg)
		return
	}
	e.Log.Info(msg, e.fields(r, err)...)
	respond.Error(w, code, err.Error())
}

// Status returns the HTTP status for an error kind.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case stderrors.Is(err, lockout.ErrLockedOut):
		return http.StatusTooManyRequests
	case stderrors.Is(err, biznumber.ErrPermissionDenied):
		return http.StatusForbidden
	case stderrors.Is(err, biznumber.ErrConflict):
		return http.StatusConflict
	case stderrors.Is(err, biznumber.ErrNotFound), stderrors.Is(err, mongo.ErrNoDocuments):
		return http.StatusNotFound
	case stderrors.Is(err, lockout.ErrStorageUnavailable), stderrors.Is(err, biznumber.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// NotFound answers unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, http.StatusNotFound, RouteNotFound)
}

// MethodNotAllowed answers known paths hit with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
}
