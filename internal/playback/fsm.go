package playback

import "fmt"

type State string

type Event string

const (
	StateIdle    State = "idle"
	StateLoaded  State = "loaded"
	StatePlaying State = "playing"
	StatePaused  State = "paused"
	StateEnded   State = "ended"
)

const (
	EventLoad   Event = "load"
	EventPlay   Event = "play"
	EventPause  Event = "pause"
	EventReject Event = "reject"
	EventEnd    Event = "end"
	EventReset  Event = "reset"
	EventUnload Event = "unload"
)

// Transition returns the state reached from current on event.
func Transition(current State, event Event) (State, error) {
	if event == EventUnload {
		return StateIdle, nil
	}

	switch current {
	case StateIdle:
		switch event {
		case EventLoad:
			return StateLoaded, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateLoaded:
		switch event {
		case EventLoad:
			return StateLoaded, nil
		case EventPlay:
			return StatePlaying, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StatePlaying:
		switch event {
		case EventPause, EventReject:
			return StatePaused, nil
		case EventEnd:
			return StateEnded, nil
		case EventLoad:
			return StateLoaded, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StatePaused:
		switch event {
		case EventPlay:
			return StatePlaying, nil
		case EventEnd:
			return StateEnded, nil
		case EventLoad:
			return StateLoaded, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateEnded:
		switch event {
		case EventReset:
			return StateLoaded, nil
		case EventPlay:
			return StatePlaying, nil
		default:
			return current, invalidTransition(current, event)
		}
	default:
		return current, fmt.Errorf("unknown state %q", current)
	}
}

func invalidTransition(state State, event Event) error {
	return fmt.Errorf("invalid transition: %s --(%s)--> ?", state, event)
}
