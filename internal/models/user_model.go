package models

// UserProfile is stored at users/<uid>, keyed by the identity provider's user id.
type UserProfile struct {
	Email  string `json:"email"`
	Name   string `json:"nome"`
	Handle string `json:"usuario"`
}

// UserOut is the public view of a user returned by /register and /users/me.
type UserOut struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"nome"`
	Handle string `json:"usuario"`
}
