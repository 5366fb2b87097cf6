package service

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/sparkhub/sparkhub-cli/pkg/api"
)

func TestSyncUnreadUpdatesBadge(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/notifications/unread-count" {
			t.Errorf("path = %s", r.URL.Path)
		}
		respondOK(w, api.UnreadCount{Count: 7})
	})
	svc := NewNotificationService(h.client, h.sess, h.state, slog.Default())

	n, err := svc.SyncUnread(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 7 || h.sess.UnreadCount() != 7 {
		t.Errorf("badge = %d/%d, want 7", n, h.sess.UnreadCount())
	}
}

func TestMarkReadDecrementsOnlyUnread(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		respondOK(w, nil)
	})
	h.sess.SetUnreadCount(2)
	svc := NewNotificationService(h.client, h.sess, h.state, slog.Default())

	if err := svc.MarkRead(context.Background(), 10, true); err != nil {
		t.Fatal(err)
	}
	if h.sess.UnreadCount() != 1 {
		t.Errorf("badge = %d, want 1", h.sess.UnreadCount())
	}

	// Re-reading an already-read entry leaves the badge alone.
	if err := svc.MarkRead(context.Background(), 11, false); err != nil {
		t.Fatal(err)
	}
	if h.sess.UnreadCount() != 1 {
		t.Errorf("badge = %d, want 1", h.sess.UnreadCount())
	}
}

func TestMarkAllReadZeroesBadge(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/notifications/read-all" {
			t.Errorf("path = %s", r.URL.Path)
		}
		respondOK(w, nil)
	})
	h.sess.SetUnreadCount(9)
	svc := NewNotificationService(h.client, h.sess, h.state, slog.Default())

	if err := svc.MarkAllRead(context.Background()); err != nil {
		t.Fatal(err)
	}
	if h.sess.UnreadCount() != 0 {
		t.Errorf("badge = %d, want 0", h.sess.UnreadCount())
	}
}

func TestMarkAllReadFailureLeavesBadge(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	h.sess.SetUnreadCount(9)
	svc := NewNotificationService(h.client, h.sess, h.state, slog.Default())

	if err := svc.MarkAllRead(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if h.sess.UnreadCount() != 9 {
		t.Errorf("badge = %d, want 9 after failure", h.sess.UnreadCount())
	}
}
