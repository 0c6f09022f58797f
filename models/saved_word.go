package models

import "time"

// SavedWords is the per-user saved word document.
type SavedWords struct {
	UserID string      `json:"user_id"`
	Words  []SavedWord `json:"words"`
}

// SavedWord is one word a user kept from an article.
type SavedWord struct {
	Word      string    `json:"word"`
	ArticleID string    `json:"article_id,omitempty"`
	AddedAt   time.Time `json:"added_at"`
}

// WordDetail is the fetched dictionary detail for a saved word.
type WordDetail struct {
	Word    string            `json:"word"`
	Entries []DictionaryEntry `json:"entries"`
}
