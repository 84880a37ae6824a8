package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"member-portal/accountd/internal/auth"
	"member-portal/accountd/internal/mailer"
	"member-portal/accountd/internal/model"
	"member-portal/accountd/internal/session"
	"member-portal/accountd/internal/store"
)

type registerRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string        `json:"token"`
	SessionID string        `json:"session_id"`
	Account   model.Account `json:"account"`
}

// writeTransitionError maps the machine's typed outcomes to wire codes.
func writeTransitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password")
	case errors.Is(err, auth.ErrPasswordMismatch):
		writeError(w, http.StatusBadRequest, "password_mismatch", "passwords do not match")
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", "username already exists")
	case errors.Is(err, auth.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, "account_not_found", "email address not found")
	case errors.Is(err, mailer.ErrDelivery):
		writeError(w, http.StatusBadGateway, "delivery_failed", "could not send the one-time code")
	case errors.Is(err, auth.ErrInvalidOTPFormat):
		writeError(w, http.StatusBadRequest, "invalid_otp_format", "OTP must be a 6-digit numeric code")
	case errors.Is(err, auth.ErrInvalidOTP):
		writeError(w, http.StatusUnauthorized, "invalid_otp", "invalid OTP")
	case errors.Is(err, auth.ErrRecoveryIncomplete):
		writeError(w, http.StatusConflict, "recovery_incomplete", "no verified recovery attempt for this session")
	case errors.Is(err, session.ErrNotFound):
		writeError(w, http.StatusNotFound, "session_not_found", "unknown recovery session")
	default:
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}

	var req registerRequest
	if !readJSON(w, r, &req) {
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "username is required")
		return
	}

	acct, err := s.machine.Register(r.Context(), req.Username, req.Password, req.FullName, req.Email, req.ConfirmPassword)
	if err != nil {
		writeTransitionError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]model.Account{"account": acct})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}

	var req loginRequest
	if !readJSON(w, r, &req) {
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "username is required")
		return
	}

	st := session.NewState()
	acct, err := s.machine.Login(r.Context(), st, req.Username, req.Password)
	if err != nil {
		writeTransitionError(w, err)
		return
	}

	if err := s.sessions.Put(r.Context(), st); err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "failed to persist session")
		return
	}

	token, err := generateJWT(acct.ID, acct.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, SessionID: st.ID, Account: acct})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET only")
		return
	}

	authz := r.Header.Get("Authorization")
	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authz, bearerPrefix) {
		writeError(w, http.StatusUnauthorized, "unauthorized", "no token provided")
		return
	}

	accountID, username, err := parseJWT(strings.TrimSpace(strings.TrimPrefix(authz, bearerPrefix)))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"account_id": accountID,
		"username":   username,
	})
}
