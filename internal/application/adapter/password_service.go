// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// PasswordService defines the contract for password hashing and verification.
type PasswordService interface {
	// HashPassword hashes a plain-text password.
	HashPassword(password string) (string, error)

	// VerifyPassword compares a hash with a plain-text password.
	VerifyPassword(hash, password string) error
}
