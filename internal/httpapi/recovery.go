package httpapi

import (
	"net/http"
	"strings"

	"member-portal/accountd/internal/session"
)

type recoveryRequestRequest struct {
	Email     string `json:"email"`
	SessionID string `json:"session_id,omitempty"`
}

type recoveryVerifyRequest struct {
	SessionID string `json:"session_id"`
	Code      string `json:"code"`
}

type recoveryResetRequest struct {
	SessionID       string `json:"session_id"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type reprovisionRequest struct {
	Username        string `json:"username"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// resolveSession loads the named session, or creates a fresh one when the
// caller did not send an ID. A false return means the error is written.
func (s *Server) resolveSession(w http.ResponseWriter, r *http.Request, id string) (*session.State, bool) {
	if id == "" {
		return session.NewState(), true
	}
	st, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		writeTransitionError(w, err)
		return nil, false
	}
	return st, true
}

func (s *Server) handleRecoveryRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}

	var req recoveryRequestRequest
	if !readJSON(w, r, &req) {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "email is required")
		return
	}

	st, ok := s.resolveSession(w, r, req.SessionID)
	if !ok {
		return
	}

	// Dispatch happens inside the machine before any state changes; on
	// failure the session is not persisted and no attempt exists anywhere.
	if err := s.machine.ForgotPassword(r.Context(), st, req.Email); err != nil {
		writeTransitionError(w, err)
		return
	}

	if err := s.sessions.Put(r.Context(), st); err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "failed to persist session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"session_id": st.ID})
}

func (s *Server) handleRecoveryVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}

	var req recoveryVerifyRequest
	if !readJSON(w, r, &req) {
		return
	}

	st, err := s.sessions.Get(r.Context(), req.SessionID)
	if err != nil {
		writeTransitionError(w, err)
		return
	}

	if err := s.machine.VerifyOTP(st, req.Code); err != nil {
		writeTransitionError(w, err)
		return
	}

	if err := s.sessions.Put(r.Context(), st); err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "failed to persist session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"verified": true})
}

func (s *Server) handleRecoveryReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}

	var req recoveryResetRequest
	if !readJSON(w, r, &req) {
		return
	}

	st, err := s.sessions.Get(r.Context(), req.SessionID)
	if err != nil {
		writeTransitionError(w, err)
		return
	}

	if err := s.machine.Reset(r.Context(), st, req.NewPassword, req.ConfirmPassword); err != nil {
		writeTransitionError(w, err)
		return
	}

	if err := s.sessions.Put(r.Context(), st); err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "failed to persist session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"reset": true})
}

// handleReprovision is the direct password-set path: no OTP, no identity
// proof. Intended for operator-assisted reprovisioning only; see the
// README's security notes before exposing this deployment-wide.
func (s *Server) handleReprovision(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}

	var req reprovisionRequest
	if !readJSON(w, r, &req) {
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "username is required")
		return
	}

	if err := s.machine.Reprovision(r.Context(), req.Username, req.NewPassword, req.ConfirmPassword); err != nil {
		writeTransitionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"updated": true})
}
