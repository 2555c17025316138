// internal/app/features/auditlog/list.go
package auditlog

// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) that uniquely identifies a user record

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/cardhub/internal/app/store/audit"
	"github.com/dalemusser/cardhub/internal/app/system/respond"
	"github.com/dalemusser/cardhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxLimit = 500

// ServeList handles GET /api/audit, most recent events first.
//
// Query parameters: user_id, category, event_type, since (RFC 3339 or
// YYYY-MM-DD) and limit (1..500, default 100).
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := audit.QueryFilter{
		Category:  strings.TrimSpace(q.Get("category")),
		EventType: strings.TrimSpace(q.Get("event_type")),
		Limit:     audit.DefaultLimit,
	}

	if s := strings.TrimSpace(q.Get("user_id")); s != "" {
		oid, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "Invalid user_id.")
			return
		}
		filter.UserID = &oid
	}

	if s := strings.TrimSpace(q.Get("since")); s != "" {
		t, err := parseSince(s)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "since must be RFC 3339 or YYYY-MM-DD.")
			return
		}
		filter.Since = &t
	}

	if s := q.Get("limit"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n <= 0 {
			respond.Error(w, http.StatusBadRequest, "limit must be a positive number.")
			return
		}
		if n > maxLimit {
			n = maxLimit
		}
		filter.Limit = n
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "audit log list")
	defer cancel()

	events, err := h.Events.Query(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error querying audit log", err, "A database error occurred.")
		return
	}
	respond.JSON(w, http.StatusOK, events)
}

func parseSince(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse("2006-01-02", s)
}
