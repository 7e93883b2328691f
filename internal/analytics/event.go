package analytics

import "time"

const (
	// TopicLinkCreated carries events emitted when a URL is shortened.
	TopicLinkCreated = "link.created"
	// TopicLinkClicked carries events emitted when a short URL is followed.
	TopicLinkClicked = "link.clicked"
)

// LinkCreatedEvent is emitted when a URL is shortened.
type LinkCreatedEvent struct {
	ID        string    `json:"id"`
	Target    string    `json:"target"`
	Sponsor   string    `json:"sponsor,omitempty"`
	Safe      bool      `json:"safe"`
	CreatedAt time.Time `json:"createdAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
}

// ClickEvent is emitted when a short URL redirect is served.
type ClickEvent struct {
	EventID   string    `json:"eventId"`
	ID        string    `json:"id"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
	Referrer  string    `json:"referrer,omitempty"`
	ClickedAt time.Time `json:"clickedAt"`
}
