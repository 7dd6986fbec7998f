package v1

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted bcrypt digest of the password. bcrypt
// embeds a fresh random salt per call, so two hashes of the same
// password differ.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether the password matches the stored digest.
// Malformed digests verify as false rather than erroring; the caller
// makes the authorization decision, not this function.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
