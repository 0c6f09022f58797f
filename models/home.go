package models

import "time"

// HomeStats are the aggregate counts shown on the home page.
type HomeStats struct {
	ArticleCount int64 `json:"articleCount"`
	MeetupCount  int64 `json:"meetupCount"`
	MemberCount  int64 `json:"memberCount"`
}

// TopicSummary is a featured article card on the home page.
type TopicSummary struct {
	ID        string        `json:"id"`
	Title     LocalizedText `json:"title"`
	Topics    []string      `json:"topics"`
	ImageURL  *string       `json:"imageUrl,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}
