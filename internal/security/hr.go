package security

import (
	"errors"
	"time"
)

// ErrWrongPassword is returned by Login when the password does not match.
var ErrWrongPassword = errors.New("wrong password")

// HRSubject is the token subject for the shared HR login.
const HRSubject = "hr"

// HRAuthenticator checks the shared HR password and issues access tokens.
// The configured password is hashed once at construction and never kept in memory as plaintext.
type HRAuthenticator struct {
	hasher *Hasher
	hash   string
	tokens *TokenProvider
}

// NewHRAuthenticator hashes password with hasher and returns an authenticator issuing tokens from tokens.
func NewHRAuthenticator(password string, hasher *Hasher, tokens *TokenProvider) (*HRAuthenticator, error) {
	if password == "" {
		return nil, errors.New("hr password is empty")
	}
	hash, err := hasher.Hash([]byte(password))
	if err != nil {
		return nil, err
	}
	return &HRAuthenticator{hasher: hasher, hash: hash, tokens: tokens}, nil
}

// Login verifies password and returns a signed HR access token.
func (a *HRAuthenticator) Login(password string) (token string, expiresAt time.Time, err error) {
	if err := a.hasher.Compare(a.hash, []byte(password)); err != nil {
		return "", time.Time{}, ErrWrongPassword
	}
	return a.tokens.IssueAccess(HRSubject)
}

// Validate reports whether token is a valid HR access token.
func (a *HRAuthenticator) Validate(token string) error {
	_, err := a.tokens.ValidateAccess(token)
	return err
}
