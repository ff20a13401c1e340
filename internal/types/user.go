package types

import "time"

// User represents a registered account in the credential store.
type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email" example:"john.doe@example.com"` // Unique email address used for login.
	Password  string    `json:"-"`                                    // Hashed password (never exposed).
	CreatedAt time.Time `json:"created_at"`
}

// UserResponse is the wire projection of a user. The password hash
// never leaves the repository layer.
type UserResponse struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

type UsersResponse struct {
	Users []UserResponse `json:"users"`
}

type SingleUserResponse struct {
	User UserResponse `json:"user"`
}

type CreateUserRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// MessageResponse is the body for status and error messages.
type MessageResponse struct {
	Message string `json:"message"`
}
