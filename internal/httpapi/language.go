package httpapi

import (
	"errors"
	"net/http"

	"member-portal/accountd/internal/langid"
)

type languageRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleLanguage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}

	var req languageRequest
	if !readJSON(w, r, &req) {
		return
	}

	res, err := s.detector.Detect(req.Text)
	if err != nil {
		if errors.Is(err, langid.ErrEmptyText) {
			writeError(w, http.StatusBadRequest, "empty_text", "text is required for prediction")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", "language detection failed")
		return
	}

	writeJSON(w, http.StatusOK, res)
}
