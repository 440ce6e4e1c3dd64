// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a bcrypt hash from a plain-text password. The
// auth service calls this explicitly before writing a credential; the
// storage layer never hashes on its own.
func HashPassword(plainTextPassword string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("password_hash: %w", err)
	}
	return string(hashed), nil
}

// CheckPasswordHash reports whether the plain-text password matches the
// stored bcrypt hash.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword)) == nil
}
