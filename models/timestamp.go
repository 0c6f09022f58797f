package models

// Timestamp is one unit of the text-to-speech alignment track.
type Timestamp struct {
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Character string  `json:"character"`
}

// Contains reports whether t falls inside the entry, bounds inclusive.
func (ts Timestamp) Contains(t float64) bool {
	return ts.Start <= t && t <= ts.End
}
