// Package mailer is the outbound mail boundary. The auth flow only ever
// needs Send; everything SMTP-specific stays behind the interface.
package mailer

import (
	"context"
	"errors"
)

// ErrDelivery wraps any transport failure. A recovery flow seeing it must
// abort before recording attempt state.
var ErrDelivery = errors.New("delivery_failed")

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// OTP notice text, kept verbatim from the original application.
const (
	otpSubject    = "OTP Verification"
	otpBodyPrefix = "Your OTP is: "
)

// SendOTP delivers a recovery code to the address.
func SendOTP(ctx context.Context, m Mailer, to, code string) error {
	return m.Send(ctx, to, otpSubject, otpBodyPrefix+code)
}
