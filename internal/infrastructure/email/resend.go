package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/counselling-appointment/booking-system/internal/core/ports"
)

// ResendMailer delivers verification emails via the Resend API.
type ResendMailer struct {
	client  *resend.Client
	from    string
	baseURL string
	log     zerolog.Logger
}

// NewResendMailer creates a mailer with the given API key, sender address,
// and the public base URL used to build verification links.
func NewResendMailer(apiKey, from, baseURL string, log zerolog.Logger) *ResendMailer {
	return &ResendMailer{
		client:  resend.NewClient(apiKey),
		from:    from,
		baseURL: baseURL,
		log:     log,
	}
}

// SendVerification sends the account-verification message for one recipient.
func (m *ResendMailer) SendVerification(ctx context.Context, mail ports.VerificationMail) error {
	link := fmt.Sprintf("%s/auth/verify?token=%s", m.baseURL, mail.Token)

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{mail.To},
		Subject: "Verify your counselling appointment account",
		Html: fmt.Sprintf(
			`<p>Welcome! Please confirm your email address to finish setting up your account.</p>`+
				`<p><a href=%q>Verify email</a></p>`+
				`<p>If you did not register, you can ignore this message.</p>`,
			link,
		),
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}

	m.log.Info().Str("message_id", sent.Id).Str("to", mail.To).Msg("verification mail sent")
	return nil
}
