package domain

// User Model (as served by the backend)
type User struct {
	Username    string `json:"username"`              // Unique username
	CoinBalance int    `json:"coin_balance"`          // Current coin balance
	Description string `json:"description,omitempty"` // Profile description
}

// Session is the persisted record for one authenticated user
type Session struct {
	User      *User  `json:"user"`       // Authenticated user, nil when logged out
	Token     string `json:"token"`      // Opaque token from the backend, if any
	IsAuthed  bool   `json:"is_authed"`  // Authenticated flag
	AppName   string `json:"app_name"`   // App display name at login time
	CreatedAt int64  `json:"created_at"` // Unix millis at session creation
}
