package auth

import "golang.org/x/crypto/bcrypt"

// defaultHashCost is used when the configured AUTH_BCRYPT_COST falls
// outside bcrypt's supported range.
const defaultHashCost = 12

// HashPassword hashes a plaintext password at the given bcrypt cost.
// An out-of-range cost falls back to defaultHashCost rather than
// failing the registration.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = defaultHashCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a plaintext password against its stored hash.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
