package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type ReconcileProgressEvent struct {
	Type      string `json:"type"`
	UserID    string `json:"user_id"`
	Processed int    `json:"processed"`
	Total     int    `json:"total"`
	Timestamp string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyReconcileProgress broadcasts how far a reconciliation batch has
// advanced. Safe to call before a hub is installed.
func NotifyReconcileProgress(userID uuid.UUID, processed, total int) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := ReconcileProgressEvent{
		Type:      "reconcile_progress",
		UserID:    userID.String(),
		Processed: processed,
		Total:     total,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
