package models

// Favourite is a stop saved by a user. (UserID, StopID) is unique.
type Favourite struct {
	ID       int    `json:"id"`
	UserID   int    `json:"user_id"`
	StopID   string `json:"stop_id"`
	StopName string `json:"stop_name"`
}
