package playback

import (
	"context"
	"errors"
)

// ErrNoSource is returned by operations that need an attached audio source.
var ErrNoSource = errors.New("playback: no audio source loaded")

// SourceEventType names a notification from an audio source.
type SourceEventType string

const (
	SourceLoadedMetadata SourceEventType = "loadedmetadata"
	SourceTimeUpdate     SourceEventType = "timeupdate"
	SourceEnded          SourceEventType = "ended"
)

type SourceEvent struct {
	Type SourceEventType
	Time float64
}

// Source is a streamable audio resource.
//
// Implementations must not call subscribers from inside Play, Pause, Seek or
// SetRate; notifications arrive from the source's own playback progress or
// from Preload.
type Source interface {
	URL() string
	// Preload fetches metadata such as duration.
	Preload(ctx context.Context) error
	// Play may block until playback actually starts and returns an error
	// when it is refused.
	Play(ctx context.Context) error
	Pause()
	Seek(seconds float64)
	SetRate(rate float64)
	CurrentTime() float64
	// Duration is NaN until metadata is known.
	Duration() float64
	Subscribe(fn func(SourceEvent)) (unsubscribe func())
	Close() error
}

// SourceFactory opens the audio resource at url.
type SourceFactory func(url string) (Source, error)
