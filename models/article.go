package models

import "time"

// Article represents one reading article in the content store.
type Article struct {
	ID        string         `json:"id"`
	Title     LocalizedText  `json:"title"`
	Content   ArticleContent `json:"content"`
	Audio     *ArticleAudio  `json:"audio,omitempty"`
	Topics    []string       `json:"topics,omitempty"`
	ImageURL  *string        `json:"image_url,omitempty"` // Nullable TEXT
	Featured  bool           `json:"featured"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// LocalizedText carries an English string and its Korean counterpart.
type LocalizedText struct {
	English string `json:"english"`
	Korean  string `json:"korean"`
}

// ArticleContent holds the paragraph sequences in reading order.
// Korean is index-aligned with English.
type ArticleContent struct {
	English []string `json:"english"`
	Korean  []string `json:"korean"`
}

// ArticleAudio is the synthesized narration attached to an article.
type ArticleAudio struct {
	URL                        string      `json:"url"`
	Timestamps                 []Timestamp `json:"timestamps"`
	Characters                 []string    `json:"characters,omitempty"`
	CharacterStartTimesSeconds []float64   `json:"character_start_times_seconds,omitempty"`
	CharacterEndTimesSeconds   []float64   `json:"character_end_times_seconds,omitempty"`
}

// Normalize pads the Korean paragraphs to the English length and replaces
// absent audio sub-fields with empty sequences.
func (a *Article) Normalize() {
	if a.Content.English == nil {
		a.Content.English = []string{}
	}
	if len(a.Content.Korean) > len(a.Content.English) {
		a.Content.Korean = a.Content.Korean[:len(a.Content.English)]
	}
	for len(a.Content.Korean) < len(a.Content.English) {
		a.Content.Korean = append(a.Content.Korean, "")
	}
	if a.Audio == nil {
		return
	}
	if a.Audio.Timestamps == nil {
		a.Audio.Timestamps = []Timestamp{}
	}
	if a.Audio.Characters == nil {
		a.Audio.Characters = []string{}
	}
	if a.Audio.CharacterStartTimesSeconds == nil {
		a.Audio.CharacterStartTimesSeconds = []float64{}
	}
	if a.Audio.CharacterEndTimesSeconds == nil {
		a.Audio.CharacterEndTimesSeconds = []float64{}
	}
}

// HasAudio reports whether the article has a playable narration.
func (a *Article) HasAudio() bool {
	return a.Audio != nil && a.Audio.URL != ""
}

// ParallelArrays reports whether the character, start and end arrays are
// present and of equal length.
func (au *ArticleAudio) ParallelArrays() bool {
	if au == nil || len(au.Characters) == 0 {
		return false
	}
	return len(au.Characters) == len(au.CharacterStartTimesSeconds) &&
		len(au.Characters) == len(au.CharacterEndTimesSeconds)
}

// Track returns the timestamp entries for playback. Articles stored with only
// the parallel character arrays get entries derived from those arrays.
func (au *ArticleAudio) Track() []Timestamp {
	if au == nil {
		return nil
	}
	if len(au.Timestamps) > 0 || !au.ParallelArrays() {
		return au.Timestamps
	}
	track := make([]Timestamp, len(au.Characters))
	for i, ch := range au.Characters {
		track[i] = Timestamp{
			Start:     au.CharacterStartTimesSeconds[i],
			End:       au.CharacterEndTimesSeconds[i],
			Character: ch,
		}
	}
	return track
}

// CharacterStream returns the synthesized character sequence, falling back to
// the characters carried by the timestamp entries.
func (au *ArticleAudio) CharacterStream() []string {
	if au == nil {
		return nil
	}
	if len(au.Characters) > 0 {
		return au.Characters
	}
	if len(au.Timestamps) == 0 {
		return nil
	}
	chars := make([]string, len(au.Timestamps))
	for i, ts := range au.Timestamps {
		chars[i] = ts.Character
	}
	return chars
}
