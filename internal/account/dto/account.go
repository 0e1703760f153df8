package dto

import (
	"time"
)

// AccountOutput is the read model for listing accounts. It deliberately has
// no digest field: credential material stays out of every read path.
type AccountOutput struct {
	ID               string     `json:"id"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	Blocked          bool       `json:"is_blocked"`
	RegistrationDate time.Time  `json:"registration_date"`
	LastLogin        *time.Time `json:"last_login,omitempty"`
}
