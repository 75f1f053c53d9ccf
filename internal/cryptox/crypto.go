// Package cryptox hashes account passwords with argon2id.
package cryptox

import (
	"crypto/subtle"

	"golang.org/x/crypto/argon2"

	"github.com/infixtech/ixtportal/internal/common"
)

const (
	SaltSize = 16
	KeySize  = 32

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// DeriveKey stretches password with salt.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, KeySize)
}

// HashPassword returns a fresh random salt and the derived hash.
func HashPassword(password string) (salt, hash []byte) {
	salt = common.GenerateRandByteArray(SaltSize)
	pw := []byte(password)
	defer common.WipeByteArray(pw)
	return salt, DeriveKey(pw, salt)
}

// CheckPassword compares in constant time.
func CheckPassword(password string, salt, hash []byte) bool {
	pw := []byte(password)
	defer common.WipeByteArray(pw)
	return subtle.ConstantTimeCompare(DeriveKey(pw, salt), hash) == 1
}
