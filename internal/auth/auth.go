package auth

import (
	"context"
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Verifier decides whether a username/password pair may log in.
type Verifier interface {
	Verify(ctx context.Context, username, password string) bool
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// StaticVerifier accepts exactly one credential pair. Only the bcrypt hash
// of the password is kept in memory.
type StaticVerifier struct {
	username string
	hash     string
}

func NewStaticVerifier(username, password string) (*StaticVerifier, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &StaticVerifier{username: username, hash: hash}, nil
}

func (v *StaticVerifier) Verify(_ context.Context, username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1
	// always hash so a wrong username costs the same as a wrong password
	pwOK := CheckPassword(v.hash, password)
	return userOK && pwOK
}
