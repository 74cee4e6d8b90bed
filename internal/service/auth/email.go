// internal/service/auth/email.go
package auth

import (
	"fmt"
	"html"

	"go.uber.org/zap"
)

// Mailer sends one HTML email.
type Mailer interface {
	Send(to, subject, bodyHTML string) error
}

// EmailHelper handles email template generation and sending
type EmailHelper struct {
	sender Mailer
	logger *zap.Logger
}

func NewEmailHelper(sender Mailer, logger *zap.Logger) *EmailHelper {
	return &EmailHelper{
		sender: sender,
		logger: logger,
	}
}

var _ Notifier = (*EmailHelper)(nil)

// ========== Verification Code ==========

// VerificationCodeEmail builds the code email body (wrapped in the branded layout by the sender).
func (h *EmailHelper) VerificationCodeEmail(name, code string) (string, string) {
	if name == "" {
		name = "there"
	}

	subject := "Your verification code"
	body := fmt.Sprintf(`
		<h2>Verify your admin account</h2>
		<p>Hello %s,</p>
		<p>Use the code below to finish signing in to the admin dashboard:</p>
		<p style="font-size: 28px; letter-spacing: 6px; font-weight: bold;">%s</p>
		<p>If you did not expect this email, someone may have your password. Change it right away.</p>
	`, html.EscapeString(name), code)

	return subject, body
}

// SendVerificationCode mails the code asynchronously. Failures are logged, never returned.
func (h *EmailHelper) SendVerificationCode(to, name, code string) {
	go func() {
		subject, body := h.VerificationCodeEmail(name, code)
		if err := h.sender.Send(to, subject, body); err != nil {
			h.logger.Error("failed to send verification code",
				zap.String("email", to),
				zap.Error(err),
			)
		} else {
			h.logger.Info("verification code sent",
				zap.String("email", to),
			)
		}
	}()
}
