package verification

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/profile-server/internal/mocks"
	"github.com/dtroode/profile-server/internal/model"
	"github.com/dtroode/profile-server/internal/testutil"
)

func TestIssuer_Generate_Range(t *testing.T) {
	i := NewIssuer(&testutil.RecordingMailer{})

	for range 1000 {
		code, err := i.Generate()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, code, CodeMin)
		assert.LessOrEqual(t, code, CodeMax)
	}
}

func TestIssuer_Generate_Bounds(t *testing.T) {
	// rand.Int reads big-endian bytes and rejects values >= max, so an
	// all-zero source yields the lower bound.
	i := &Issuer{random: bytes.NewReader(make([]byte, 64))}
	code, err := i.Generate()
	require.NoError(t, err)
	assert.Equal(t, CodeMin, code)
}

func TestIssuer_Generate_SourceError(t *testing.T) {
	i := &Issuer{random: bytes.NewReader(nil)}
	_, err := i.Generate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate verification code")
}

func TestIssuer_Dispatch(t *testing.T) {
	mailer := &testutil.RecordingMailer{}
	i := NewIssuer(mailer)

	require.NoError(t, i.Dispatch(context.Background(), "alice@x.com", 123456))

	msgs := mailer.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "alice@x.com", msgs[0].To)
	assert.Equal(t, "Verify Your Account", msgs[0].Subject)
	assert.Equal(t, "Your verification code is: 123456", msgs[0].Body)
}

func TestIssuer_Dispatch_Error(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "request")

	mailer := mocks.NewMailer(t)
	mailer.On("Send", ctx, model.Message{
		To:      "alice@x.com",
		Subject: "Verify Your Account",
		Body:    "Your verification code is: 123456",
	}).Return(errors.New("smtp down"))

	err := NewIssuer(mailer).Dispatch(ctx, "alice@x.com", 123456)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send verification code")
	assert.Contains(t, err.Error(), "smtp down")
}
