// Package verification issues one-time email verification codes.
package verification

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/dtroode/profile-server/internal/model"
)

const (
	// CodeMin and CodeMax bound the 6-digit codes, inclusive.
	CodeMin = 100000
	CodeMax = 999999

	subject = "Verify Your Account"
)

// Issuer generates codes and sends them to the user's email.
type Issuer struct {
	mailer model.Mailer
	random io.Reader
}

func NewIssuer(mailer model.Mailer) *Issuer {
	return &Issuer{mailer: mailer, random: rand.Reader}
}

// Generate draws a code uniformly from [CodeMin, CodeMax].
func (i *Issuer) Generate() (int, error) {
	n, err := rand.Int(i.random, big.NewInt(CodeMax-CodeMin+1))
	if err != nil {
		return 0, fmt.Errorf("failed to generate verification code: %w", err)
	}
	return CodeMin + int(n.Int64()), nil
}

// Dispatch mails code to the given address.
func (i *Issuer) Dispatch(ctx context.Context, to string, code int) error {
	err := i.mailer.Send(ctx, model.Message{
		To:      to,
		Subject: subject,
		Body:    fmt.Sprintf("Your verification code is: %d", code),
	})
	if err != nil {
		return fmt.Errorf("failed to send verification code: %w", err)
	}
	return nil
}
