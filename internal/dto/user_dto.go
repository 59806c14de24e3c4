package dto

import "time"

type MeResponse struct {
	Id            int64      `json:"id"`
	Email         *string    `json:"email"`
	EmailVerified *time.Time `json:"email_verified"`
	DisplayName   *string    `json:"display_name"`
	Image         *string    `json:"image"`
	Bio           string     `json:"bio"`
	CreatedAt     time.Time  `json:"created_at"`
}

type AuthStatusResponse struct {
	Authenticated bool `json:"authenticated"`
}

// GoogleLoginStart is what the login route needs to redirect the browser.
type GoogleLoginStart struct {
	AuthURL     string
	StateCookie string
	ExpiresAt   time.Time
}

// LoginResult carries the new session token back to the callback route.
type LoginResult struct {
	UserId    int64
	Token     string
	ExpiresAt time.Time
	IsNewUser bool
}
