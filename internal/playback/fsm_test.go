package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		from  State
		event Event
		want  State
	}{
		{StateIdle, EventLoad, StateLoaded},
		{StateLoaded, EventPlay, StatePlaying},
		{StatePlaying, EventPause, StatePaused},
		{StatePlaying, EventReject, StatePaused},
		{StatePaused, EventPlay, StatePlaying},
		{StatePlaying, EventEnd, StateEnded},
		{StateEnded, EventReset, StateLoaded},
		{StatePaused, EventLoad, StateLoaded},
		{StatePlaying, EventUnload, StateIdle},
		{StateIdle, EventUnload, StateIdle},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"_"+string(tt.event), func(t *testing.T) {
			got, err := Transition(tt.from, tt.event)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransitionRejectsInvalid(t *testing.T) {
	invalid := []struct {
		from  State
		event Event
	}{
		{StateIdle, EventPlay},
		{StateIdle, EventPause},
		{StateLoaded, EventPause},
		{StatePaused, EventPause},
		{StateEnded, EventPause},
	}
	for _, tt := range invalid {
		got, err := Transition(tt.from, tt.event)
		assert.Error(t, err, "%s on %s", tt.event, tt.from)
		assert.Equal(t, tt.from, got)
	}

	_, err := Transition("buffering", EventPlay)
	assert.Error(t, err)
}
