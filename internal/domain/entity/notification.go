package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an in-app notification record. It is created by the
// dispatcher as a side effect of a transition and mutated only by the
// recipient marking it read; delivery transport is out of scope.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	RelatedID string    `json:"related_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NewNotification creates an unread notification for a recipient.
func NewNotification(userID, ntype, title, message, relatedID string) *Notification {
	return &Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      ntype,
		Title:     title,
		Message:   message,
		RelatedID: relatedID,
		Read:      false,
		CreatedAt: time.Now(),
	}
}
