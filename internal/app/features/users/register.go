// internal/app/features/users/register.go
package users

import (
	"errors"
	"net/http"

	userstore "github.com/dalemusser/cardhub/internal/app/store/users"
	"github.com/dalemusser/cardhub/internal/app/system/formutil"
	"github.com/dalemusser/cardhub/internal/app/system/respond"
	"github.com/dalemusser/cardhub/internal/app/system/timeouts"
	"github.com/dalemusser/cardhub/internal/domain/models"
	"go.uber.org/zap"
)

// HandleRegister creates an account. Admin rights cannot be requested here.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if msg, ok := formutil.Bind(w, r, &in); !ok {
		respond.Error(w, http.StatusBadRequest, msg)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "register user")
	defer cancel()

	u := models.User{
		Name:           in.Name.Model(),
		Phone:          in.Phone,
		Email:          in.Email,
		Image:          in.Image.Model(),
		Address:        in.Address.Model(),
		IsRegisterUser: in.IsRegisterUser,
	}
	created, err := h.Users.Create(ctx, u, in.Password)
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		respond.Error(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error creating user", err, "A database error occurred.")
		return
	}

	h.AuditLog.UserRegistered(r, created.ID, created.Email)
	h.Log.Info("user registered", zap.String("user_id", created.ID.Hex()))
	respond.JSON(w, http.StatusCreated, created)
}
