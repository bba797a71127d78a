package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is shown inline next to the login form.
var ErrInvalidCredentials = errors.New("invalid credentials: check your ID and password")

// Default admin credentials used when nothing else is configured.
const (
	DefaultAdminID     = "admin"
	DefaultAdminSecret = "batman25"
)

// CredentialVerifier decides whether an identifier/secret pair grants admin
// access. Implementations return ErrInvalidCredentials on mismatch.
type CredentialVerifier interface {
	Verify(ctx context.Context, id, secret string) error
}

// FixedVerifier compares against a single configured pair.
type FixedVerifier struct {
	ID     string
	Secret string
}

func DefaultVerifier() FixedVerifier {
	return FixedVerifier{ID: DefaultAdminID, Secret: DefaultAdminSecret}
}

func (v FixedVerifier) Verify(_ context.Context, id, secret string) error {
	idOK := subtle.ConstantTimeCompare([]byte(id), []byte(v.ID))
	secretOK := subtle.ConstantTimeCompare([]byte(secret), []byte(v.Secret))
	if idOK&secretOK != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

// BcryptVerifier checks the secret against a bcrypt hash so the plain
// secret never has to be stored.
type BcryptVerifier struct {
	ID   string
	Hash []byte
}

func (v BcryptVerifier) Verify(_ context.Context, id, secret string) error {
	if subtle.ConstantTimeCompare([]byte(id), []byte(v.ID)) != 1 {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(v.Hash, []byte(secret)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// VerifierFunc adapts a function to CredentialVerifier.
type VerifierFunc func(ctx context.Context, id, secret string) error

func (f VerifierFunc) Verify(ctx context.Context, id, secret string) error {
	return f(ctx, id, secret)
}

// Authenticate verifies the pair and returns the admin session it grants.
func Authenticate(ctx context.Context, v CredentialVerifier, id, secret string, now time.Time) (Session, error) {
	if err := v.Verify(ctx, id, secret); err != nil {
		return Session{}, err
	}
	return Session{Subject: id, Admin: true, IssuedAt: now}, nil
}
