package models

// User is a registered account. Password is stored as given (demo only).
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // never expose
}

// Identity is the authenticated caller attached to a request.
type Identity struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}
