// internal/app/features/users/edit.go
package users

import (
	"net/http"

	userstore "github.com/dalemusser/cardhub/internal/app/store/users"
	"github.com/dalemusser/cardhub/internal/app/system/auth"
	"github.com/dalemusser/cardhub/internal/app/system/formutil"
	"github.com/dalemusser/cardhub/internal/app/system/respond"
	"github.com/dalemusser/cardhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const msgOwnDataOnly = "User can change only his own data"

// selfOnly resolves the {id} parameter and refuses callers other than that
// user. It writes the response and returns false on refusal.
func (h *Handler) selfOnly(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, ok := formutil.ParseID(r, "id")
	if !ok {
		respond.Error(w, http.StatusBadRequest, msgInvalidID)
		return id, false
	}
	p, ok := auth.CurrentUser(r)
	if !ok || p.ID != id {
		h.ErrLog.LogForbidden(w, r, "user edit refused", msgOwnDataOnly)
		return id, false
	}
	return id, true
}

// HandleUpdate replaces the caller's own profile. Email and password are
// not changed here.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.selfOnly(w, r)
	if !ok {
		return
	}

	var in profileInput
	if msg, ok := formutil.Bind(w, r, &in); !ok {
		respond.Error(w, http.StatusBadRequest, msg)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update user")
	defer cancel()

	u, err := h.Users.UpdateProfile(ctx, id, userstore.ProfileUpdate{
		Name:    in.Name.Model(),
		Phone:   in.Phone,
		Image:   in.Image.Model(),
		Address: in.Address.Model(),
	})
	if err != nil {
		h.ErrLog.LogError(w, r, "update user", err, msgNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, u)
}

// HandleSetRegisterUser switches the caller's business-user flag.
func (h *Handler) HandleSetRegisterUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.selfOnly(w, r)
	if !ok {
		return
	}

	var in registerUserInput
	if msg, ok := formutil.Bind(w, r, &in); !ok {
		if in.IsRegisterUser == nil && msg != formutil.MsgInvalidBody {
			msg = "Missing isRegisterUser field change"
		}
		respond.Error(w, http.StatusBadRequest, msg)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "set business user")
	defer cancel()

	u, err := h.Users.SetRegisterUser(ctx, id, *in.IsRegisterUser)
	if err != nil {
		h.ErrLog.LogError(w, r, "set business user", err, msgNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, u)
}
