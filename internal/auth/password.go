package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordSymbols is the set of characters that satisfy the symbol requirement.
const PasswordSymbols = "@$!%*?&"

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

var (
	// ErrHashing wraps failures of the underlying hash primitive.
	ErrHashing = errors.New("hash password")
	// ErrPasswordTooLong is returned by Hash for passwords over MaxPasswordBytes.
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
	// ErrInvalidHash is returned by Verify when the stored hash is not a bcrypt hash.
	ErrInvalidHash = errors.New("invalid password hash")
)

// Password strength requirements, reported when unmet.
const (
	RequirementLength    = "Minimum 8 characters"
	RequirementUppercase = "At least one uppercase letter"
	RequirementLowercase = "At least one lowercase letter"
	RequirementNumber    = "At least one number"
	RequirementSymbol    = "At least one special character (" + PasswordSymbols + ")"
	RequirementCharset   = "Only letters, numbers and " + PasswordSymbols
)

// PasswordHasher hashes and verifies passwords with bcrypt at a configured cost.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher validates cost against bcrypt's bounds.
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &PasswordHasher{cost: cost}, nil
}

// Cost returns the configured work factor.
func (h *PasswordHasher) Cost() int {
	return h.cost
}

// Hash hashes a plaintext password with a fresh salt.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashing, err)
	}
	return string(hashed), nil
}

// Verify reports whether password matches hashed. A mismatch is not an error.
func (h *PasswordHasher) Verify(password, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", ErrInvalidHash, err)
	}
}

// PasswordStrength is the advisory rating of a password.
type PasswordStrength struct {
	IsStrong          bool     `json:"isStrong"`
	UnmetRequirements []string `json:"unmetRequirements"`
}

// RateStrength checks password against the strength requirements. Only ASCII
// letters, digits and PasswordSymbols are allowed in a strong password.
func RateStrength(password string) PasswordStrength {
	var lower, upper, digit, symbol, foreign bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		default:
			foreign = true
		}
	}

	unmet := []string{}
	if len([]rune(password)) < 8 {
		unmet = append(unmet, RequirementLength)
	}
	if !upper {
		unmet = append(unmet, RequirementUppercase)
	}
	if !lower {
		unmet = append(unmet, RequirementLowercase)
	}
	if !digit {
		unmet = append(unmet, RequirementNumber)
	}
	if !symbol {
		unmet = append(unmet, RequirementSymbol)
	}
	if foreign {
		unmet = append(unmet, RequirementCharset)
	}

	return PasswordStrength{IsStrong: len(unmet) == 0, UnmetRequirements: unmet}
}
