package domain

import "time"

// Account is the persisted user record. PasswordDigest never leaves the
// service layer; read paths go through dto.AccountOutput instead.
type Account struct {
	ID             string
	Username       string
	Email          string
	PasswordDigest string
	Blocked        bool
	RegisteredAt   time.Time
	LastLoginAt    *time.Time
}
