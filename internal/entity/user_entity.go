package entity

import "time"

type User struct {
	Id            int64
	Email         *string
	EmailVerified *time.Time
	CreatedAt     time.Time
}

type Account struct {
	Id       int64
	UserId   int64
	GoogleId *string
}

type Profile struct {
	Id          int64
	UserId      int64
	DisplayName *string
	ImageId     *string
	Image       *string
	Bio         string
}

// Session is keyed by the hex SHA-256 of the cookie token; the raw token is
// never stored.
type Session struct {
	Id        string
	UserId    int64
	ExpiresAt time.Time
}
