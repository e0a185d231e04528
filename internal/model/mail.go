package model

import "context"

// Message is a plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers messages through an external transport.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// PasswordHasher is a one-way password transform with verification.
type PasswordHasher interface {
	Hash(password string) ([]byte, error)
	// Compare reports false without error when the password does not match.
	Compare(hash []byte, password string) (bool, error)
}
