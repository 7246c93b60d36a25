package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is a valid bcrypt digest that matches no secret we ever issue.
// It is compared against whenever the stored hash is missing, so the
// missing-hash and wrong-secret paths take comparable time.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// BcryptHasher implements domain.Hasher using bcrypt.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = 10
	}
	return &BcryptHasher{Cost: cost}
}

func (h *BcryptHasher) Hash(secret string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(secret), h.Cost)
	return string(bytes), err
}

func (h *BcryptHasher) Compare(secret, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	return err == nil
}
