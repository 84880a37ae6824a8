package httpapi

import (
	"net/http"

	"member-portal/accountd/internal/auth"
	"member-portal/accountd/internal/config"
	"member-portal/accountd/internal/langid"
	"member-portal/accountd/internal/mailer"
	"member-portal/accountd/internal/session"
	"member-portal/accountd/internal/store"
)

type Server struct {
	cfg      config.Config
	store    store.Store
	sessions session.Store
	machine  *auth.Machine
	detector *langid.Detector
	bus      *eventBus
	mux      *http.ServeMux
}

// NewServer wires the auth machine to its collaborators. The machine is
// built here so its audit recorder can feed the server's event bus.
func NewServer(cfg config.Config, st store.Store, sessions session.Store, gen auth.CodeGenerator, m mailer.Mailer) *Server {
	s := &Server{
		cfg:      cfg,
		store:    st,
		sessions: sessions,
		detector: langid.NewDetector(),
		bus:      newEventBus(),
		mux:      http.NewServeMux(),
	}
	s.machine = auth.NewMachine(st, gen, m, s.bus.Publish)
	initJWTKey(cfg.JWTSecret)
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = adminAuthMiddleware(s.cfg, h)
	h = recoverMiddleware(h)
	h = requestIDMiddleware(h)
	h = loggingMiddleware(h)
	return h
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)

	s.mux.HandleFunc("/v1/auth/register", s.handleRegister)
	s.mux.HandleFunc("/v1/auth/login", s.handleLogin)
	s.mux.HandleFunc("/v1/auth/validate", s.handleValidate)

	s.mux.HandleFunc("/v1/auth/recovery/request", s.handleRecoveryRequest)
	s.mux.HandleFunc("/v1/auth/recovery/verify", s.handleRecoveryVerify)
	s.mux.HandleFunc("/v1/auth/recovery/reset", s.handleRecoveryReset)
	s.mux.HandleFunc("/v1/auth/reprovision", s.handleReprovision)

	s.mux.HandleFunc("/v1/users", s.handleUsers)
	s.mux.HandleFunc("/v1/events", s.handleEvents)

	s.mux.HandleFunc("/v1/language", s.handleLanguage)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
