package testhelpers

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

// TestKID is the key id advertised by SigningKey.
const TestKID = "test-key"

// SigningKey is an RSA key pair with a matching in-memory JWKS.
type SigningKey struct {
	Private *rsa.PrivateKey
	JWKS    *keyfunc.JWKS
}

// NewSigningKey generates a fresh RSA key and its key set.
func NewSigningKey(t testing.TB) *SigningKey {
	t.Helper()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}

	jwks := keyfunc.NewGiven(map[string]keyfunc.GivenKey{
		TestKID: keyfunc.NewGivenRSA(&priv.PublicKey, keyfunc.GivenKeyOptions{Algorithm: "RS256"}),
	})
	return &SigningKey{Private: priv, JWKS: jwks}
}

// Token signs an RS256 token for subject issued by issuer, valid for ttl.
// A negative ttl yields an expired token.
func (k *SigningKey) Token(t testing.TB, issuer, subject string, ttl time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = TestKID

	signed, err := token.SignedString(k.Private)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
