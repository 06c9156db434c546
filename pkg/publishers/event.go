package publishers

import (
	"time"

	"github.com/samvad-hq/samvad-comments/pkg/comments"
)

// Event types emitted after a successful remote change.
const (
	EventCommentCreated = "comment.created"
	EventCommentUpdated = "comment.updated"
)

// Event represents the payload published downstream.
type Event struct {
	Type       string           `json:"type"`
	Comment    comments.Comment `json:"comment"`
	BaseURI    string           `json:"base_uri"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// NewEvent stamps a change of comment against the given comments endpoint.
func NewEvent(typ string, comment comments.Comment, baseURI string) Event {
	return Event{
		Type:       typ,
		Comment:    comment,
		BaseURI:    baseURI,
		OccurredAt: time.Now().UTC(),
	}
}

// attributes are copied onto transports that support message metadata.
func (e Event) attributes() map[string]string {
	attrs := map[string]string{"event_type": e.Type}
	if id, ok := e.Comment.ID(); ok {
		attrs["comment_id"] = formatID(id)
	}
	return attrs
}
