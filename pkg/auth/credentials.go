package auth

import "golang.org/x/crypto/bcrypt"

// VerifyPassword compares a presented plaintext password against a stored
// bcrypt hash. An empty hash never matches; the placeholder owner row has
// no password and must not be reachable through the password login path.
func VerifyPassword(plain, storedHash string) bool {
	if storedHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plain)) == nil
}

// HashPassword produces a bcrypt hash for storage. The plaintext is never
// logged or persisted.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyAPIKey compares a presented sflow API key against the configured
// value. An empty configured key never matches, so an instance without a
// key provisioned cannot be logged into by presenting an empty string.
func VerifyAPIKey(presented, configured string) bool {
	if configured == "" {
		return false
	}
	return presented == configured
}
