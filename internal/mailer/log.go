package mailer

import (
	"context"
	"log"
)

// LogMailer prints mail to the process log instead of sending it. Used when
// no SMTP host is configured so the recovery flow stays runnable locally.
// It logs the body, codes included, so never wire it up in production.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, body string) error {
	log.Printf("mail (dry run) to=%s subject=%q body=%q", to, subject, body)
	return nil
}
