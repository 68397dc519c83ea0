package models

// Departure is a single upcoming vehicle at a stop, derived per request.
type Departure struct {
	Line      string `json:"line"`
	Direction string `json:"direction"`
	Countdown int    `json:"countdown"` // minutes
}

// Stop is a known transit location. ID holds one RBL id or a comma separated list.
type Stop struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
