package model

import "time"

// Account is a stored user identity record. The password is an opaque
// credential value compared by equality; hashing and strength policy are
// outside this service.
type Account struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecoveryAttempt is the ephemeral record of an issued one-time code
// awaiting verification for one account. It lives inside the owning
// session's state and is never written to the credential store.
type RecoveryAttempt struct {
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}
