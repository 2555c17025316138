package auditlog_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/cardhub/internal/app/store/audit"
	"github.com/dalemusser/cardhub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type memRecorder struct {
	events []audit.Event
	err    error
}

func (m *memRecorder) Log(_ context.Context, e audit.Event) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, e)
	return nil
}

func TestLogger_NilLogger(t *testing.T) {
	var logger *auditlog.Logger
	req := httptest.NewRequest("POST", "/api/users/login", nil)

	logger.Log(context.Background(), audit.Event{EventType: "test"})
	logger.LoginSuccess(req, primitive.NewObjectID(), "a@b.co")
	logger.LoginFailedUserNotFound(req, "a@b.co")
	logger.CardDeleted(req, primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID(), false)
}

func TestLogger_Destinations(t *testing.T) {
	tests := []struct {
		setting string
		wantDB  int
		wantZap int
	}{
		{auditlog.All, 1, 1},
		{auditlog.DB, 1, 0},
		{auditlog.Log, 0, 1},
		{auditlog.Off, 0, 0},
		{"", 1, 1},
	}
	for _, tt := range tests {
		t.Run("setting="+tt.setting, func(t *testing.T) {
			rec := &memRecorder{}
			core, logs := observer.New(zap.InfoLevel)
			logger := auditlog.New(rec, zap.New(core), auditlog.Config{Auth: tt.setting, Admin: tt.setting})

			req := httptest.NewRequest("POST", "/api/users/login", nil)
			logger.LoginSuccess(req, primitive.NewObjectID(), "a@b.co")

			if len(rec.events) != tt.wantDB {
				t.Errorf("stored %d events, want %d", len(rec.events), tt.wantDB)
			}
			if logs.Len() != tt.wantZap {
				t.Errorf("logged %d entries, want %d", logs.Len(), tt.wantZap)
			}
		})
	}
}

func TestLogger_CategoriesRoutedSeparately(t *testing.T) {
	rec := &memRecorder{}
	logger := auditlog.New(rec, zap.NewNop(), auditlog.Config{Auth: auditlog.Off, Admin: auditlog.DB})
	req := httptest.NewRequest("DELETE", "/api/cards/x", nil)

	logger.LoginFailedWrongPassword(req, primitive.NewObjectID(), "a@b.co")
	logger.CardDeleted(req, primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID(), true)

	if len(rec.events) != 1 {
		t.Fatalf("stored %d events, want 1", len(rec.events))
	}
	e := rec.events[0]
	if e.Category != audit.CategoryAdmin || e.EventType != audit.EventCardDeleted {
		t.Errorf("stored %s/%s, want admin/card_deleted", e.Category, e.EventType)
	}
	if e.Details["actor_is_admin"] != "true" {
		t.Errorf("actor_is_admin = %q, want true", e.Details["actor_is_admin"])
	}
}

func TestLogger_EventFields(t *testing.T) {
	rec := &memRecorder{}
	logger := auditlog.New(rec, zap.NewNop(), auditlog.Config{Auth: auditlog.DB, Admin: auditlog.DB})

	req := httptest.NewRequest("PATCH", "/api/cards/bizNumber/x", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	req.Header.Set("User-Agent", "cardhub-test")

	actor, card, owner := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	logger.BizNumberReassigned(req, actor, card, owner, 101, 555)

	if len(rec.events) != 1 {
		t.Fatalf("stored %d events, want 1", len(rec.events))
	}
	e := rec.events[0]
	if e.IP != "203.0.113.9" {
		t.Errorf("IP = %q, want first forwarded address", e.IP)
	}
	if e.UserAgent != "cardhub-test" {
		t.Errorf("UserAgent = %q", e.UserAgent)
	}
	if e.ActorID == nil || *e.ActorID != actor {
		t.Error("ActorID not set to actor")
	}
	if e.UserID == nil || *e.UserID != owner {
		t.Error("UserID not set to card owner")
	}
	if e.Details["from"] != "101" || e.Details["to"] != "555" || e.Details["card_id"] != card.Hex() {
		t.Errorf("unexpected details %v", e.Details)
	}
}

func TestLogger_StoreErrorLogged(t *testing.T) {
	rec := &memRecorder{err: errors.New("boom")}
	core, logs := observer.New(zap.ErrorLevel)
	logger := auditlog.New(rec, zap.New(core), auditlog.Config{Auth: auditlog.DB})

	req := httptest.NewRequest("POST", "/api/users/login", nil)
	logger.LoginFailedUserNotFound(req, "ghost@example.com")

	if logs.FilterMessage("failed to store audit event").Len() != 1 {
		t.Error("expected store failure to be logged")
	}
}
