package service

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// PasswordHasher turns a plaintext password into a storable digest.
type PasswordHasher interface {
	Hash(plaintext string) string
}

// SHA3Hasher produces a hex-encoded SHA3-256 digest. Digests are deterministic
// and unsalted: two accounts with the same password share a digest, and login
// matches on digest equality in the store. See DESIGN.md for the implications.
type SHA3Hasher struct{}

func NewSHA3Hasher() *SHA3Hasher {
	return &SHA3Hasher{}
}

func (h *SHA3Hasher) Hash(plaintext string) string {
	sum := sha3.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
