package model

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a credential store record. Users are created only by the
// startup seeding routine; there is no public registration.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthClaims is the identity carried by a validated access token. The
// token asserts only the username; the role is re-resolved from the
// credential store on every authorized call.
type AuthClaims struct {
	Username string `json:"sub"`
	TokenID  string `json:"jti"`
}
