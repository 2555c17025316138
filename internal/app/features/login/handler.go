// internal/app/features/login/handler.go
package login

// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) that uniquely identifies a user record

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/cardhub/internal/app/features/errors"
	userstore "github.com/dalemusser/cardhub/internal/app/store/users"
	"github.com/dalemusser/cardhub/internal/app/system/auditlog"
	"github.com/dalemusser/cardhub/internal/app/system/auth"
	"github.com/dalemusser/cardhub/internal/app/system/formutil"
	"github.com/dalemusser/cardhub/internal/app/system/lockout"
	"github.com/dalemusser/cardhub/internal/app/system/normalize"
	"github.com/dalemusser/cardhub/internal/app/system/respond"
	"github.com/dalemusser/cardhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MsgBadCredentials is returned for an unknown email and for a wrong
// password alike.
const MsgBadCredentials = "Email or password are incorrect"

type Handler struct {
	Users    *userstore.Store
	Tracker  *lockout.Tracker
	Tokens   *auth.Tokens
	AuditLog *auditlog.Logger
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(users *userstore.Store, tracker *lockout.Tracker, tokens *auth.Tokens, audit *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    users,
		Tracker:  tracker,
		Tokens:   tokens,
		AuditLog: audit,
		ErrLog:   errLog,
		Log:      logger,
	}
}

type loginInput struct {
	Email    string `json:"email" validate:"required,min=2,email" label:"Email"`
	Password string `json:"password" validate:"required,min=8" label:"Password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// HandleLogin authenticates by email and password and answers with a token.
//
// A user with exactly Threshold retained failures is checked for lockout
// before the password is compared; a locked user is refused without a new
// failure being recorded.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if msg, ok := formutil.Bind(w, r, &in); !ok {
		respond.Error(w, http.StatusBadRequest, msg)
		return
	}
	email := normalize.Email(in.Email)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "login")
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.AuditLog.LoginFailedUserNotFound(r, email)
		respond.Error(w, http.StatusBadRequest, MsgBadCredentials)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error loading user for login", err, "A database error occurred.")
		return
	}

	n, err := h.Tracker.Count(ctx, u.ID)
	if err != nil {
		h.ErrLog.LogError(w, r, "count login failures", err, "")
		return
	}
	if n == int64(h.Tracker.Threshold()) {
		if err := h.Tracker.CheckLockout(ctx, u.ID); err != nil {
			if errors.Is(err, lockout.ErrLockedOut) {
				h.AuditLog.LoginFailedLockedOut(r, u.ID, email)
			}
			h.ErrLog.LogError(w, r, "login refused", err, "")
			return
		}
	}

	if !userstore.CheckPassword(u, in.Password) {
		h.Tracker.RecordFailure(ctx, u.ID)
		h.AuditLog.LoginFailedWrongPassword(r, u.ID, email)
		respond.Error(w, http.StatusBadRequest, MsgBadCredentials)
		return
	}

	token, err := h.Tokens.Issue(*u)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "token generation failed", err, "Token generation failed.")
		return
	}

	h.AuditLog.LoginSuccess(r, u.ID, email)
	h.Log.Info("user logged in", zap.String("user_id", u.ID.Hex()))
	respond.JSON(w, http.StatusOK, tokenResponse{Token: token})
}
