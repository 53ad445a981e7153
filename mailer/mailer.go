package mailer

import "log"

// Mailer delivers the password-reset email. Actual delivery belongs to an
// external provider; this boundary only hands the message off.
type Mailer interface {
	SendPasswordReset(to, link string) error
}

// LogMailer writes the reset link to the log instead of sending mail. Used in
// development and wherever no provider is configured.
type LogMailer struct{}

func (LogMailer) SendPasswordReset(to, link string) error {
	log.Printf("password reset for %s: %s", to, link)
	return nil
}
