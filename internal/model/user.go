package model

// User represents an account holder. The password field holds a bcrypt
// hash and is never serialized.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

// PublicUser is the shape exposed by user listing and lookup endpoints.
type PublicUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// SignupRequest is the payload for account creation.
type SignupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginRequest is the payload for login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
