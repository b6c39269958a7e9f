package models

// User represents a registered marketplace account as stored in the "user"
// collection. PasswordHash is never serialized to JSON.
type User struct {
	ID           string  `json:"id"`
	Name         string  `json:"name" validate:"required"`
	Email        string  `json:"email" validate:"required,email"`
	PasswordHash string  `json:"-"`
	AvatarURL    *string `json:"avatar_url,omitempty"`
	IsActive     bool    `json:"is_active"`
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserSummary is the projection of a user returned by the auth endpoints.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Summary projects the user to its public shape.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// LoginResponse is returned on successful login. Token is the user's
// identifier acting as a trivial session token; it is not signed and does
// not expire.
type LoginResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}
