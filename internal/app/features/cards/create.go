// internal/app/features/cards/create.go
package cards

import (
	"net/http"

	"github.com/dalemusser/cardhub/internal/app/system/auth"
	"github.com/dalemusser/cardhub/internal/app/system/formutil"
	"github.com/dalemusser/cardhub/internal/app/system/respond"
	"github.com/dalemusser/cardhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleCreate stores a new card owned by the caller, who must be a
// business user.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentUser(r)
	if !ok || !p.IsRegisterUser {
		h.ErrLog.LogForbidden(w, r, "card create refused", "only Business user can create new card")
		return
	}

	var in createInput
	if msg, ok := formutil.Bind(w, r, &in); !ok {
		if msg == formutil.MsgEmptyBody {
			msg = "Card details are missing"
		}
		respond.Error(w, http.StatusBadRequest, msg)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create card")
	defer cancel()

	c := in.Model()
	c.UserID = p.ID
	created, err := h.Cards.Create(ctx, c)
	if err != nil {
		h.ErrLog.LogError(w, r, "create card", err, "A database error occurred.")
		return
	}

	h.AuditLog.CardCreated(r, p.ID, created.ID, created.BizNumber)
	h.Log.Info("card created",
		zap.String("card_id", created.ID.Hex()),
		zap.Int64("biz_number", created.BizNumber))
	respond.JSON(w, http.StatusCreated, created)
}
