// Package reader coordinates the article reading view: display mode,
// pointer gestures, click-to-seek, the Korean paragraph toggles and the
// definition modal.
package reader

import "fmt"

// Mode is the display mode of the reading view. Modes are mutually
// exclusive.
type Mode string

type ModeEvent string

const (
	ModeNormal    Mode = "normal"
	ModeQuickRead Mode = "quick_read"
	ModeAudio     Mode = "audio"
)

const (
	EventToggleQuickRead ModeEvent = "toggle_quick_read"
	EventToggleAudio     ModeEvent = "toggle_audio"
)

// NextMode returns the mode reached from current on event. Toggling the
// active mode returns to normal; toggling the other mode switches directly.
func NextMode(current Mode, event ModeEvent) (Mode, error) {
	var target Mode
	switch event {
	case EventToggleQuickRead:
		target = ModeQuickRead
	case EventToggleAudio:
		target = ModeAudio
	default:
		return current, fmt.Errorf("unknown mode event %q", event)
	}

	switch current {
	case ModeNormal:
		return target, nil
	case ModeQuickRead, ModeAudio:
		if current == target {
			return ModeNormal, nil
		}
		return target, nil
	default:
		return current, fmt.Errorf("unknown mode %q", current)
	}
}
