package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"member-portal/accountd/internal/config"
	"member-portal/accountd/internal/httpapi"
	"member-portal/accountd/internal/mailer"
	"member-portal/accountd/internal/otp"
	"member-portal/accountd/internal/session"
	"member-portal/accountd/internal/store"
	"member-portal/accountd/internal/store/memory"
	"member-portal/accountd/internal/store/postgres"
)

func main() {
	// Local .env is optional; real deployments inject the environment.
	_ = godotenv.Load()

	cfg := config.Load()
	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	var st store.Store
	var closers []func()

	if cfg.DatabaseURL != "" {
		pg, err := postgres.NewStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to init postgres store: %v", err)
		}
		if err := pg.Migrate(rootCtx); err != nil {
			log.Fatalf("failed to migrate postgres store: %v", err)
		}
		st = pg
		closers = append(closers, pg.Close)
		log.Printf("using postgres account store")
	} else {
		st = memory.NewStore()
		log.Printf("using memory account store")
	}

	var sessions session.Store
	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid redis url: %v", err)
		}
		rdb := redis.NewClient(opts)
		if err := rdb.Ping(rootCtx).Err(); err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		sessions = session.NewRedisStore(rdb, ttl)
		closers = append(closers, func() { _ = rdb.Close() })
		log.Printf("using redis session store")
	} else {
		sessions = session.NewMemoryStore()
		log.Printf("using memory session store")
	}

	for i := len(closers) - 1; i >= 0; i-- {
		defer closers[i]()
	}

	var mail mailer.Mailer
	if cfg.MailConfigured() {
		mail = mailer.NewSMTP(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Sender:   cfg.SMTPSender,
			Password: cfg.SMTPPassword,
		})
		log.Printf("sending one-time codes via %s:%d", cfg.SMTPHost, cfg.SMTPPort)
	} else {
		mail = mailer.LogMailer{}
		log.Printf("no SMTP configured, one-time codes go to the process log")
	}

	if cfg.SessionTTLHours > 0 {
		go runSessionPurgeLoop(rootCtx, sessions, cfg.SessionTTLHours, cfg.PurgeIntervalHours)
	}

	srv := httpapi.NewServer(cfg, st, sessions, otp.NewGenerator(), mail)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("accountd listening on %s", cfg.ListenAddr())
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Printf("shutdown requested")
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	cancelRoot()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	_ = httpServer.Shutdown(ctxShutdown)
}

// runSessionPurgeLoop drops sessions idle longer than the configured TTL.
// Pending recovery attempts stored on those sessions go with them, which is
// the only expiry one-time codes get.
func runSessionPurgeLoop(ctx context.Context, sessions session.Store, ttlHours, intervalHours int) {
	ttl := time.Duration(ttlHours) * time.Hour
	interval := time.Duration(intervalHours) * time.Hour
	if interval <= 0 {
		interval = time.Hour
	}

	runOnce := func() {
		cutoff := time.Now().UTC().Add(-ttl)
		ctxPurge, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		n, err := sessions.PurgeIdle(ctxPurge, cutoff)
		if err != nil {
			log.Printf("session purge failed: %v", err)
			return
		}
		if n > 0 {
			log.Printf("purged %d idle sessions (< %s)", n, cutoff.Format(time.RFC3339))
		}
	}

	runOnce()

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			runOnce()
		}
	}
}
