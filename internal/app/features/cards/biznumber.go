// internal/app/features/cards/biznumber.go
package cards

import (
	"net/http"

	"github.com/dalemusser/cardhub/internal/app/system/auth"
	"github.com/dalemusser/cardhub/internal/app/system/biznumber"
	"github.com/dalemusser/cardhub/internal/app/system/formutil"
	"github.com/dalemusser/cardhub/internal/app/system/respond"
	"github.com/dalemusser/cardhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleReassignBizNumber moves a card to the business number in the body.
// Non-admins are refused before the body or the card is looked at.
func (h *Handler) HandleReassignBizNumber(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentUser(r)
	if !ok || !p.IsAdmin {
		h.ErrLog.LogError(w, r, "biz number reassign refused", biznumber.ErrPermissionDenied, "")
		return
	}

	id, ok := formutil.ParseID(r, "id")
	if !ok {
		respond.Error(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	var in bizNumberInput
	if msg, ok := formutil.Bind(w, r, &in); !ok {
		if in.BizNumber == 0 && msg != formutil.MsgInvalidBody {
			msg = "Missing new bizNumber"
		}
		respond.Error(w, http.StatusBadRequest, msg)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "reassign biz number")
	defer cancel()

	before, err := h.Cards.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogError(w, r, "load card for biz number reassign", err, msgNotFound)
		return
	}

	c, err := h.Cards.Allocator().Reassign(ctx, id, in.BizNumber, *p)
	if err != nil {
		h.ErrLog.LogError(w, r, "reassign biz number", err, msgNotFound)
		return
	}

	h.AuditLog.BizNumberReassigned(r, p.ID, c.ID, c.UserID, before.BizNumber, c.BizNumber)
	h.Log.Info("biz number reassigned",
		zap.String("card_id", c.ID.Hex()),
		zap.Int64("from", before.BizNumber),
		zap.Int64("to", c.BizNumber))
	respond.JSON(w, http.StatusOK, c)
}
