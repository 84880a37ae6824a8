// Package session holds per-caller authentication state, including the
// single pending recovery attempt a session may carry. Each session owns its
// own slot; there is no process-wide recovery state.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"member-portal/accountd/internal/model"
)

var ErrNotFound = errors.New("session_not_found")

type Phase string

const (
	PhaseAnonymous   Phase = "anonymous"
	PhaseLoggedIn    Phase = "logged_in"
	PhaseAwaitingOTP Phase = "awaiting_otp"
	PhaseOTPVerified Phase = "otp_verified"
)

// State is one caller's view of the auth machine.
type State struct {
	ID         string                 `json:"id"`
	Phase      Phase                  `json:"phase"`
	Username   string                 `json:"username,omitempty"`
	Recovery   *model.RecoveryAttempt `json:"recovery,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	LastSeenAt time.Time              `json:"last_seen_at"`
}

func NewState() *State {
	now := time.Now().UTC()
	return &State{
		ID:         uuid.NewString(),
		Phase:      PhaseAnonymous,
		CreatedAt:  now,
		LastSeenAt: now,
	}
}

// BeginRecovery installs a fresh attempt, overwriting any prior one. At most
// one attempt is live per session.
func (s *State) BeginRecovery(email, username, code string) {
	s.Recovery = &model.RecoveryAttempt{
		Email:     email,
		Username:  username,
		Code:      code,
		CreatedAt: time.Now().UTC(),
	}
	s.Phase = PhaseAwaitingOTP
}

// ClearRecovery drops the attempt and returns the session to anonymous.
func (s *State) ClearRecovery() {
	s.Recovery = nil
	s.Phase = PhaseAnonymous
}

// Store persists session state between requests. Put stamps LastSeenAt.
type Store interface {
	Get(ctx context.Context, id string) (*State, error)
	Put(ctx context.Context, st *State) error
	Delete(ctx context.Context, id string) error

	// PurgeIdle removes sessions not seen since the cutoff and reports how
	// many were dropped.
	PurgeIdle(ctx context.Context, cutoff time.Time) (int, error)
}
