package ports

import "context"

// VerificationMail is a single verification message to be delivered.
type VerificationMail struct {
	To    string
	Token string
}

// Mailer delivers verification emails through an external provider.
type Mailer interface {
	SendVerification(ctx context.Context, mail VerificationMail) error
}

// MailDispatcher accepts verification mail for asynchronous delivery so
// registration never blocks on the provider.
type MailDispatcher interface {
	Enqueue(mail VerificationMail)
}

// VerificationStore holds pending verification tokens with a bounded
// lifetime. Issue stores token -> userID; Consume resolves and removes it.
type VerificationStore interface {
	Issue(ctx context.Context, token, userID string) error
	// Consume returns the user the token was issued for and invalidates the
	// token. Unknown or expired tokens fail with domain.ErrBadVerificationToken.
	Consume(ctx context.Context, token string) (string, error)
}
