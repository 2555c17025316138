// internal/app/system/auditlog/logger.go
package auditlog

// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) that uniquely identifies a user record

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/cardhub/internal/app/store/audit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Destination settings for Config fields.
const (
	All = "all" // MongoDB + zap
	DB  = "db"  // MongoDB only
	Log = "log" // zap only
	Off = "off" // disabled
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for authentication events (login, lockout, registration).
	Auth string
	// Admin controls logging for card and account changes.
	Admin string
}

// Recorder is the persistence the Logger writes to. *audit.Store satisfies it.
type Recorder interface {
	Log(ctx context.Context, event audit.Event) error
}

// Logger provides convenience methods for logging audit events.
// It logs to both MongoDB (via audit.Store) and structured logs (via zap).
type Logger struct {
	store  Recorder
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store Recorder, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}

	if event.UserID != nil {
		fields = append(fields, zap.String("user_id", event.UserID.Hex()))
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	}
	if setting == "" {
		setting = All
	}
	if setting == Off {
		return
	}

	if setting == All || setting == Log {
		l.logToZap(event)
	}

	if setting == All || setting == DB {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

func (l *Logger) auth(r *http.Request, eventType string, userID *primitive.ObjectID, success bool, reason string, details map[string]string) {
	l.Log(r.Context(), audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     eventType,
		UserID:        userID,
		IP:            getClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       success,
		FailureReason: reason,
		Details:       details,
	})
}

func (l *Logger) admin(r *http.Request, eventType string, actorID primitive.ObjectID, userID *primitive.ObjectID, details map[string]string) {
	l.Log(r.Context(), audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		UserID:    userID,
		ActorID:   &actorID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   details,
	})
}

// --- Authentication Events ---

// LoginSuccess logs a successful login.
func (l *Logger) LoginSuccess(r *http.Request, userID primitive.ObjectID, email string) {
	if l == nil {
		return
	}
	l.auth(r, audit.EventLoginSuccess, &userID, true, "", map[string]string{"email": email})
}

// LoginFailedUserNotFound logs a login attempt for an unknown email.
func (l *Logger) LoginFailedUserNotFound(r *http.Request, attemptedEmail string) {
	if l == nil {
		return
	}
	l.auth(r, audit.EventLoginFailedUserNotFound, nil, false, "user not found",
		map[string]string{"attempted_email": attemptedEmail})
}

// LoginFailedWrongPassword logs a password mismatch.
func (l *Logger) LoginFailedWrongPassword(r *http.Request, userID primitive.ObjectID, email string) {
	if l == nil {
		return
	}
	l.auth(r, audit.EventLoginFailedWrongPassword, &userID, false, "wrong password",
		map[string]string{"email": email})
}

// LoginFailedLockedOut logs a login refused by the failure tracker.
func (l *Logger) LoginFailedLockedOut(r *http.Request, userID primitive.ObjectID, email string) {
	if l == nil {
		return
	}
	l.auth(r, audit.EventLoginFailedLockedOut, &userID, false, "locked out",
		map[string]string{"email": email})
}

// UserRegistered logs a self-registration.
func (l *Logger) UserRegistered(r *http.Request, userID primitive.ObjectID, email string) {
	if l == nil {
		return
	}
	l.auth(r, audit.EventUserRegistered, &userID, true, "", map[string]string{"email": email})
}

// --- Admin Events ---

// UserDeleted logs an account deletion by its owner or an admin.
func (l *Logger) UserDeleted(r *http.Request, actorID, targetUserID primitive.ObjectID, actorIsAdmin bool) {
	if l == nil {
		return
	}
	l.admin(r, audit.EventUserDeleted, actorID, &targetUserID,
		map[string]string{"actor_is_admin": strconv.FormatBool(actorIsAdmin)})
}

// CardCreated logs a new card with its allocated business number.
func (l *Logger) CardCreated(r *http.Request, actorID, cardID primitive.ObjectID, bizNumber int64) {
	if l == nil {
		return
	}
	l.admin(r, audit.EventCardCreated, actorID, &actorID, map[string]string{
		"card_id":    cardID.Hex(),
		"biz_number": strconv.FormatInt(bizNumber, 10),
	})
}

// CardDeleted logs a card removal by its owner or an admin.
func (l *Logger) CardDeleted(r *http.Request, actorID, cardID, ownerID primitive.ObjectID, actorIsAdmin bool) {
	if l == nil {
		return
	}
	l.admin(r, audit.EventCardDeleted, actorID, &ownerID, map[string]string{
		"card_id":        cardID.Hex(),
		"actor_is_admin": strconv.FormatBool(actorIsAdmin),
	})
}

// BizNumberReassigned logs an admin override of a card's business number.
func (l *Logger) BizNumberReassigned(r *http.Request, actorID, cardID, ownerID primitive.ObjectID, from, to int64) {
	if l == nil {
		return
	}
	l.admin(r, audit.EventBizNumberReassigned, actorID, &ownerID, map[string]string{
		"card_id": cardID.Hex(),
		"from":    strconv.FormatInt(from, 10),
		"to":      strconv.FormatInt(to, 10),
	})
}
