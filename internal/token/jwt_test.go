package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestJWT_SessionToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret")
	sid := uuid.New()

	tok, err := j.GenerateSessionToken(sid, time.Now().Add(time.Hour))
	require.NoError(t, err)

	got, err := j.ParseSessionToken(tok)
	require.NoError(t, err)
	require.Equal(t, sid, got)
}

func TestJWT_SessionToken_Expired(t *testing.T) {
	j := NewJWT("secret")

	tok, err := j.GenerateSessionToken(uuid.New(), time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = j.ParseSessionToken(tok)
	require.Error(t, err)
}

func TestJWT_SessionToken_WrongSecret(t *testing.T) {
	tok, err := NewJWT("secret").GenerateSessionToken(uuid.New(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = NewJWT("other").ParseSessionToken(tok)
	require.Error(t, err)
}

func TestJWT_SessionToken_Tampered(t *testing.T) {
	j := NewJWT("secret")

	tok, err := j.GenerateSessionToken(uuid.New(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = j.ParseSessionToken(tok + "x")
	require.Error(t, err)

	_, err = j.ParseSessionToken("")
	require.Error(t, err)
}

func TestJWT_TokenType_Mismatch(t *testing.T) {
	j := &JWT{secretKey: "secret"}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		SessionID:        uuid.New(),
		TokenType:        "access",
	})
	signed, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = j.ParseSessionToken(signed)
	require.Error(t, err)
}

func TestJWT_WrongSigningMethod(t *testing.T) {
	j := NewJWT("secret")
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{SessionID: uuid.New(), TokenType: typeSession})
	signed, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = j.ParseSessionToken(signed)
	require.Error(t, err)
}
